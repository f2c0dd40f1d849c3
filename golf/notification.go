package golf

// Notification is one inbound message from the transport. It is a closed
// set: SnapshotLoaded, RoundStarted and GameEvent.
type Notification interface {
	notification()
	// Name is the wire name, used in logs and errors.
	Name() string
}

// SnapshotLoaded is the first full state for a newly attached view.
type SnapshotLoaded struct {
	Snapshot Snapshot
}

// RoundStarted reports that a round began; the snapshot is post-deal.
type RoundStarted struct {
	Snapshot Snapshot
}

// GameEvent carries one action together with the resulting snapshot.
type GameEvent struct {
	Snapshot Snapshot
	Event    Event
}

func (SnapshotLoaded) notification() {}
func (RoundStarted) notification()   {}
func (GameEvent) notification()      {}

func (SnapshotLoaded) Name() string { return "game_loaded" }
func (RoundStarted) Name() string   { return "round_started" }
func (GameEvent) Name() string      { return "game_event" }

// Intent is one outbound client request. It is a closed set: StartRound and
// CardClick.
type Intent interface {
	intent()
}

// StartRound asks the server to deal. Only the host's view sends it.
type StartRound struct{}

// CardClick reports a click on a playable zone.
type CardClick struct {
	PlayerID  PlayerID
	Place     Place
	HandIndex *int
}

func (StartRound) intent() {}
func (CardClick) intent()  {}
