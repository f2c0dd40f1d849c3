package ws

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"golf-client/golf"
	"golf-client/viewerrors"
)

// Decode turns one inbound frame into a notification. Field-level problems
// (unknown seat, phase or action) come back as *viewerrors.ProtocolError.
func Decode(data []byte) (golf.Notification, error) {
	var envelope InboundEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decoding envelope: %w", err)
	}

	switch envelope.Type {
	case TypeGameLoaded:
		var msg GameLoadedMsg
		if err := json.Unmarshal(envelope.Raw, &msg); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", envelope.Type, err)
		}
		s, err := msg.Game.snapshot()
		if err != nil {
			return nil, viewerrors.Protocol(envelope.Type, err, "game")
		}
		return golf.SnapshotLoaded{Snapshot: s}, nil

	case TypeRoundStarted:
		var msg RoundStartedMsg
		if err := json.Unmarshal(envelope.Raw, &msg); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", envelope.Type, err)
		}
		s, err := msg.Game.snapshot()
		if err != nil {
			return nil, viewerrors.Protocol(envelope.Type, err, "game")
		}
		return golf.RoundStarted{Snapshot: s}, nil

	case TypeGameEvent:
		var msg GameEventMsg
		if err := json.Unmarshal(envelope.Raw, &msg); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", envelope.Type, err)
		}
		s, err := msg.Game.snapshot()
		if err != nil {
			return nil, viewerrors.Protocol(envelope.Type, err, "game")
		}
		action, err := golf.ParseAction(msg.Event.Action)
		if err != nil {
			return nil, viewerrors.Protocol(envelope.Type, err, "event")
		}
		return golf.GameEvent{Snapshot: s, Event: golf.Event{
			Action:    action,
			ActorID:   golf.PlayerID(msg.Event.PlayerID),
			HandIndex: msg.Event.HandIndex,
		}}, nil

	default:
		return nil, viewerrors.Protocol(envelope.Type, viewerrors.ErrUnknownMessage, "type %q", envelope.Type)
	}
}

func (g GameJSON) snapshot() (golf.Snapshot, error) {
	phase, err := golf.ParsePhase(g.State)
	if err != nil {
		return golf.Snapshot{}, err
	}
	s := golf.Snapshot{
		Phase:         phase,
		Players:       make([]golf.Player, 0, len(g.Players)),
		TableCards:    make([]golf.Card, len(g.TableCards)),
		LocalPlayerID: golf.PlayerID(g.PlayerID),
		IsHost:        g.UserIsHost,
		Playable:      make([]golf.Zone, len(g.PlayableCards)),
		FirstPlayerID: golf.PlayerID(g.FirstPlayerID),
		Flipped:       g.IsFlipped,
	}
	for i, c := range g.TableCards {
		s.TableCards[i] = golf.Card(c)
	}
	for i, z := range g.PlayableCards {
		s.Playable[i] = golf.Zone(z)
	}
	for _, pj := range g.Players {
		seat, err := golf.ParseSeat(pj.Position)
		if err != nil {
			return golf.Snapshot{}, fmt.Errorf("player %d: %w", pj.ID, err)
		}
		p := golf.Player{
			ID:     golf.PlayerID(pj.ID),
			Name:   pj.User.Name,
			Seat:   seat,
			Hand:   make([]golf.HandCard, len(pj.Hand)),
			Score:  pj.Score,
			CanAct: pj.CanAct,
		}
		for i, hc := range pj.Hand {
			p.Hand[i] = golf.HandCard{Card: golf.Card(hc.Name), FaceUp: hc.FaceUp}
		}
		if pj.HeldCard != nil {
			held := golf.Card(*pj.HeldCard)
			p.Held = &held
		}
		s.Players = append(s.Players, p)
	}
	return s, nil
}

// EncodeIntent marshals an outbound intent stamped with ref.
func EncodeIntent(i golf.Intent, ref uuid.UUID) ([]byte, error) {
	switch i := i.(type) {
	case golf.StartRound:
		return json.Marshal(StartRoundMsg{Type: TypeStartRound, Ref: ref.String()})
	case golf.CardClick:
		return json.Marshal(CardClickMsg{
			Type:      TypeCardClick,
			Ref:       ref.String(),
			PlayerID:  int64(i.PlayerID),
			Place:     string(i.Place),
			HandIndex: i.HandIndex,
		})
	default:
		return nil, fmt.Errorf("unsupported intent %T", i)
	}
}

// EncodeAuth marshals the first message of an authenticated connection.
func EncodeAuth(token string) ([]byte, error) {
	return json.Marshal(AuthMsg{Type: TypeAuth, Token: token})
}
