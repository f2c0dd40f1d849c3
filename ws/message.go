package ws

import "encoding/json"

// InboundEnvelope is the generic envelope for all server-to-client messages.
// The Type field is used for routing; Raw holds the full JSON payload.
type InboundEnvelope struct {
	Type string          `json:"type"`
	Raw  json.RawMessage `json:"-"`
}

// UnmarshalJSON implements custom unmarshaling to capture the raw payload.
func (e *InboundEnvelope) UnmarshalJSON(data []byte) error {
	type typeOnly struct {
		Type string `json:"type"`
	}
	var t typeOnly
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	e.Type = t.Type
	e.Raw = json.RawMessage(data)
	return nil
}

// Inbound message types.
const (
	TypeGameLoaded   = "game_loaded"
	TypeRoundStarted = "round_started"
	TypeGameEvent    = "game_event"
)

// Outbound message types.
const (
	TypeAuth       = "auth"
	TypeStartRound = "start_round"
	TypeCardClick  = "card_click"
)

// --- Server-to-Client message payloads ---

// UserJSON is the account behind a seat.
type UserJSON struct {
	Name string `json:"name"`
}

// HandCardJSON is one hand slot.
type HandCardJSON struct {
	Name   string `json:"name"`
	FaceUp bool   `json:"face_up?"`
}

// PlayerJSON is one seated player.
type PlayerJSON struct {
	ID       int64          `json:"id"`
	Position string         `json:"position"`
	Hand     []HandCardJSON `json:"hand"`
	HeldCard *string        `json:"held_card"`
	Score    int            `json:"score"`
	CanAct   bool           `json:"can_act?"`
	User     UserJSON       `json:"user"`
}

// GameJSON is the full game snapshot as the server sends it.
type GameJSON struct {
	State         string       `json:"state"`
	Players       []PlayerJSON `json:"players"`
	TableCards    []string     `json:"tableCards"`
	PlayerID      int64        `json:"playerId"`
	UserIsHost    bool         `json:"userIsHost"`
	PlayableCards []string     `json:"playableCards"`
	FirstPlayerID int64        `json:"firstPlayerId"`
	IsFlipped     bool         `json:"isFlipped"`
}

// EventJSON names the action that produced a snapshot.
type EventJSON struct {
	Action    string `json:"action"`
	PlayerID  int64  `json:"player_id"`
	HandIndex *int   `json:"hand_index"`
}

// GameLoadedMsg carries the first snapshot a client sees.
type GameLoadedMsg struct {
	Type string   `json:"type"`
	Game GameJSON `json:"game"`
}

// RoundStartedMsg announces a fresh deal.
type RoundStartedMsg struct {
	Type string   `json:"type"`
	Game GameJSON `json:"game"`
}

// GameEventMsg carries one action and the snapshot after it.
type GameEventMsg struct {
	Type  string    `json:"type"`
	Game  GameJSON  `json:"game"`
	Event EventJSON `json:"event"`
}

// --- Client-to-Server messages ---

// AuthMsg is sent by the client as the first message when a token is set.
type AuthMsg struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// StartRoundMsg asks the server to deal the next round.
type StartRoundMsg struct {
	Type string `json:"type"`
	Ref  string `json:"ref"`
}

// CardClickMsg reports a click on a playable card.
type CardClickMsg struct {
	Type      string `json:"type"`
	Ref       string `json:"ref"`
	PlayerID  int64  `json:"playerId"`
	Place     string `json:"place"`
	HandIndex *int   `json:"handIndex,omitempty"`
}
