package golf

import (
	"fmt"

	"golf-client/viewerrors"
)

// Action is the discriminant of a game event.
type Action string

const (
	Flip          Action = "flip"
	TakeFromDeck  Action = "take_from_deck"
	TakeFromTable Action = "take_from_table"
	Discard       Action = "discard"
	Swap          Action = "swap"
)

// ParseAction accepts both the canonical names and the short wire names
// ("take_deck", "take_table") older servers send.
func ParseAction(v string) (Action, error) {
	switch v {
	case "flip":
		return Flip, nil
	case "take_from_deck", "take_deck":
		return TakeFromDeck, nil
	case "take_from_table", "take_table":
		return TakeFromTable, nil
	case "discard":
		return Discard, nil
	case "swap":
		return Swap, nil
	default:
		return "", fmt.Errorf("%w: %q", viewerrors.ErrUnknownAction, v)
	}
}

// NeedsHandIndex reports whether the action targets a hand slot.
func (a Action) NeedsHandIndex() bool {
	return a == Flip || a == Swap
}

// Event explains why the latest snapshot differs from the previous one.
type Event struct {
	Action    Action
	ActorID   PlayerID
	HandIndex *int
}

// Resolve checks the event against the snapshot it arrived with and returns
// the acting player.
func (e Event) Resolve(s *Snapshot, handSize int) (*Player, error) {
	const n = "game_event"
	switch e.Action {
	case Flip, TakeFromDeck, TakeFromTable, Discard, Swap:
	default:
		return nil, viewerrors.Protocol(n, viewerrors.ErrUnknownAction, "action %q", e.Action)
	}
	p, ok := s.Player(e.ActorID)
	if !ok {
		return nil, viewerrors.Protocol(n, viewerrors.ErrUnknownPlayer, "actor %d", e.ActorID)
	}
	if e.HandIndex != nil {
		i := *e.HandIndex
		if i < 0 || i >= handSize {
			return nil, viewerrors.Protocol(n, viewerrors.ErrHandIndexOutOfRange, "hand index %d", i)
		}
	}
	if e.Action.NeedsHandIndex() {
		if e.HandIndex == nil {
			return nil, viewerrors.Protocol(n, viewerrors.ErrMissingHandIndex, "action %q", e.Action)
		}
		if *e.HandIndex >= len(p.Hand) {
			return nil, viewerrors.Protocol(n, viewerrors.ErrHandIndexOutOfRange,
				"hand index %d, player %d holds %d cards", *e.HandIndex, p.ID, len(p.Hand))
		}
	}
	return p, nil
}
