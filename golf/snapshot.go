package golf

import (
	"fmt"
	"slices"

	"golf-client/viewerrors"
)

// PlayerID identifies a player. NoPlayer marks "none" (spectating, unset).
type PlayerID int64

const NoPlayer PlayerID = 0

// HandCard is one dealt hand slot.
type HandCard struct {
	Card   Card
	FaceUp bool
}

// Player is one seated player as the server describes them.
type Player struct {
	ID     PlayerID
	Name   string
	Seat   Seat
	Hand   []HandCard
	Held   *Card
	Score  int
	CanAct bool
}

// Snapshot is the full game state as last communicated by the server.
// TableCards is ordered most recent first.
type Snapshot struct {
	Phase         Phase
	Players       []Player
	TableCards    []Card
	LocalPlayerID PlayerID
	IsHost        bool
	Playable      []Zone
	FirstPlayerID PlayerID
	// Flipped is set on the last turn of a round: every hand card is shown.
	Flipped bool
}

// Player returns the player with the given id.
func (s *Snapshot) Player(id PlayerID) (*Player, bool) {
	if id == NoPlayer {
		return nil, false
	}
	for i := range s.Players {
		if s.Players[i].ID == id {
			return &s.Players[i], true
		}
	}
	return nil, false
}

// PlayerAt returns the player sitting at seat.
func (s *Snapshot) PlayerAt(seat Seat) (*Player, bool) {
	for i := range s.Players {
		if s.Players[i].Seat == seat {
			return &s.Players[i], true
		}
	}
	return nil, false
}

// LocalPlayer returns this client's player, if it is not spectating.
func (s *Snapshot) LocalPlayer() (*Player, bool) {
	return s.Player(s.LocalPlayerID)
}

// IsPlayable reports whether zone is in the playable set.
func (s *Snapshot) IsPlayable(zone Zone) bool {
	return slices.Contains(s.Playable, zone)
}

// TurnOrder returns the players rotated so the first player comes first.
func (s *Snapshot) TurnOrder() ([]Player, error) {
	idx := slices.IndexFunc(s.Players, func(p Player) bool { return p.ID == s.FirstPlayerID })
	if idx < 0 {
		return nil, fmt.Errorf("%w: first player %d", viewerrors.ErrUnknownPlayer, s.FirstPlayerID)
	}
	out := make([]Player, 0, len(s.Players))
	out = append(out, s.Players[idx:]...)
	out = append(out, s.Players[:idx]...)
	return out, nil
}

// Winner returns the player with the lowest score. Ties keep server order.
func (s *Snapshot) Winner() (*Player, bool) {
	var best *Player
	for i := range s.Players {
		if best == nil || s.Players[i].Score < best.Score {
			best = &s.Players[i]
		}
	}
	return best, best != nil
}

// Visible is the identity a hand slot should be drawn with.
func (s *Snapshot) Visible(hc HandCard) Card {
	if hc.FaceUp || s.Flipped {
		return hc.Card
	}
	return DownCard
}

// Validate checks the structural invariants the view relies on.
func (s *Snapshot) Validate(handSize int) error {
	const n = "snapshot"
	if !s.Phase.Valid() {
		return viewerrors.Protocol(n, viewerrors.ErrUnknownPhase, "phase %q", s.Phase)
	}
	seats := make(map[Seat]bool, len(s.Players))
	ids := make(map[PlayerID]bool, len(s.Players))
	for _, p := range s.Players {
		if p.ID == NoPlayer {
			return viewerrors.Protocol(n, viewerrors.ErrUnknownPlayer, "player without id")
		}
		if ids[p.ID] {
			return viewerrors.Protocol(n, viewerrors.ErrDuplicatePlayer, "player %d", p.ID)
		}
		ids[p.ID] = true
		if !p.Seat.Valid() {
			return viewerrors.Protocol(n, viewerrors.ErrUnknownSeat, "player %d seat %q", p.ID, p.Seat)
		}
		if seats[p.Seat] {
			return viewerrors.Protocol(n, viewerrors.ErrDuplicateSeat, "seat %q", p.Seat)
		}
		seats[p.Seat] = true
		if len(p.Hand) > handSize {
			return viewerrors.Protocol(n, viewerrors.ErrHandTooLarge, "player %d holds %d cards", p.ID, len(p.Hand))
		}
		for _, hc := range p.Hand {
			if !hc.Card.Valid() {
				return viewerrors.Protocol(n, viewerrors.ErrInvalidCard, "player %d card %q", p.ID, hc.Card)
			}
		}
		if p.Held != nil && !p.Held.Valid() {
			return viewerrors.Protocol(n, viewerrors.ErrInvalidCard, "player %d held %q", p.ID, *p.Held)
		}
	}
	for _, c := range s.TableCards {
		if !c.Valid() {
			return viewerrors.Protocol(n, viewerrors.ErrInvalidCard, "table card %q", c)
		}
	}
	for _, z := range s.Playable {
		if err := z.validate(handSize); err != nil {
			return viewerrors.Protocol(n, err, "playable set")
		}
	}
	if s.LocalPlayerID != NoPlayer && !ids[s.LocalPlayerID] {
		return viewerrors.Protocol(n, viewerrors.ErrUnknownPlayer, "local player %d", s.LocalPlayerID)
	}
	if s.FirstPlayerID != NoPlayer && !ids[s.FirstPlayerID] {
		return viewerrors.Protocol(n, viewerrors.ErrUnknownPlayer, "first player %d", s.FirstPlayerID)
	}
	return nil
}
