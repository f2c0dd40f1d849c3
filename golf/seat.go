package golf

import (
	"fmt"

	"golf-client/viewerrors"
)

// Seat is a fixed screen position. Bottom is the local player by convention.
type Seat string

const (
	Bottom Seat = "bottom"
	Top    Seat = "top"
	Left   Seat = "left"
	Right  Seat = "right"
)

// Seats lists every seat in a stable order.
var Seats = [4]Seat{Bottom, Left, Top, Right}

// Valid reports whether s is one of the four seats.
func (s Seat) Valid() bool {
	switch s {
	case Bottom, Top, Left, Right:
		return true
	default:
		return false
	}
}

// ParseSeat converts a wire position into a Seat.
func ParseSeat(v string) (Seat, error) {
	s := Seat(v)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", viewerrors.ErrUnknownSeat, v)
	}
	return s, nil
}

// Phase is the server-declared game phase.
type Phase string

const (
	NoRound   Phase = "no_round"
	InRound   Phase = "in_round"
	RoundOver Phase = "round_over"
	GameOver  Phase = "game_over"
)

// Valid reports whether p is a known phase.
func (p Phase) Valid() bool {
	switch p {
	case NoRound, InRound, RoundOver, GameOver:
		return true
	default:
		return false
	}
}

// ParsePhase converts a wire state into a Phase.
func ParsePhase(v string) (Phase, error) {
	p := Phase(v)
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", viewerrors.ErrUnknownPhase, v)
	}
	return p, nil
}
