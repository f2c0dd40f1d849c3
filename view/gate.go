package view

// Gate admits at most one outbound intent per server round-trip. The zero
// value is open.
type Gate struct {
	closed bool
}

// Open lets the next click through.
func (g *Gate) Open() { g.closed = false }

// TryClose closes the gate and reports whether it was open.
func (g *Gate) TryClose() bool {
	if g.closed {
		return false
	}
	g.closed = true
	return true
}

// Closed reports whether clicks are currently dropped.
func (g *Gate) Closed() bool { return g.closed }
