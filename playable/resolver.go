// Package playable decides which card handles accept clicks and keeps their
// tint and click handler in step with that decision.
package playable

import (
	"golf-client/engine"
	"golf-client/golf"
)

// IsPlayable reports whether the server lists zone as playable in s.
func IsPlayable(s *golf.Snapshot, zone golf.Zone) bool {
	if s == nil {
		return false
	}
	return s.IsPlayable(zone)
}

// Resolver tracks which handles currently carry a click handler.
type Resolver struct {
	granted map[engine.CardHandle]golf.Zone
}

func NewResolver() *Resolver {
	return &Resolver{granted: make(map[engine.CardHandle]golf.Zone)}
}

// Grant makes h clickable for zone. Any previous handler is removed first so
// a handle never carries two.
func (r *Resolver) Grant(h engine.CardHandle, zone golf.Zone, onClick func()) {
	h.SetInteractive(nil)
	h.SetTint(engine.TintPlayable)
	h.SetInteractive(onClick)
	r.granted[h] = zone
}

// Revoke clears tint and handler. Revoking a plain handle does nothing.
func (r *Resolver) Revoke(h engine.CardHandle) {
	if _, ok := r.granted[h]; !ok && !h.Interactive() {
		return
	}
	h.SetTint(engine.TintNone)
	h.SetInteractive(nil)
	delete(r.granted, h)
}

// Sync grants h when zone is playable in s and revokes it otherwise.
func (r *Resolver) Sync(h engine.CardHandle, s *golf.Snapshot, zone golf.Zone, onClick func()) {
	if h == nil {
		return
	}
	if IsPlayable(s, zone) {
		r.Grant(h, zone, onClick)
		return
	}
	r.Revoke(h)
}

// Granted reports the zone h was granted for.
func (r *Resolver) Granted(h engine.CardHandle) (golf.Zone, bool) {
	z, ok := r.granted[h]
	return z, ok
}

// Zones lists the zones that currently have a clickable handle.
func (r *Resolver) Zones() []golf.Zone {
	out := make([]golf.Zone, 0, len(r.granted))
	for _, z := range r.granted {
		out = append(out, z)
	}
	return out
}

// Forget drops h without touching it; used right before it is destroyed.
func (r *Resolver) Forget(h engine.CardHandle) {
	delete(r.granted, h)
}

// Reset forgets every handle.
func (r *Resolver) Reset() {
	clear(r.granted)
}
