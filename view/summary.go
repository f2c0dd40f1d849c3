package view

import (
	"slices"

	"golf-client/golf"
)

// Summary is a read-only picture of the view for logs and the debug
// endpoint.
type Summary struct {
	State       string            `json:"state"`
	Phase       golf.Phase        `json:"phase,omitempty"`
	Deck        bool              `json:"deck"`
	Table       int               `json:"table"`
	Hands       map[golf.Seat]int `json:"hands"`
	Held        []golf.Seat       `json:"held"`
	Interactive []golf.Zone       `json:"interactive"`
	GateClosed  bool              `json:"gate_closed"`
	Pending     int               `json:"pending_animations"`
}

func (v *View) Summary() Summary {
	s := Summary{
		State:       v.state.String(),
		Deck:        v.deck != nil,
		Table:       len(v.table),
		Hands:       make(map[golf.Seat]int, len(v.hands)),
		Held:        []golf.Seat{},
		Interactive: v.res.Zones(),
		GateClosed:  v.gate.Closed(),
		Pending:     v.seq.Pending(),
	}
	if v.last != nil {
		s.Phase = v.last.Phase
	}
	for seat, hand := range v.hands {
		s.Hands[seat] = len(hand)
	}
	for seat := range v.held {
		s.Held = append(s.Held, seat)
	}
	slices.Sort(s.Held)
	slices.Sort(s.Interactive)
	return s
}
