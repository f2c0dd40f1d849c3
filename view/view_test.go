package view

import (
	"errors"
	"testing"
	"time"

	"golf-client/config"
	"golf-client/engine"
	"golf-client/engine/headless"
	"golf-client/golf"
	"golf-client/viewerrors"
)

// sink records every intent the view sends.
type sink struct {
	intents []golf.Intent
}

func (s *sink) Send(i golf.Intent) { s.intents = append(s.intents, i) }

func newTestView() (*View, *headless.Engine, *sink) {
	e := headless.New()
	out := &sink{}
	return New(config.Defaults(), e, out), e, out
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func card(c golf.Card) *golf.Card { return &c }

// hand deals six face-down cards of one suit.
func hand(suit string) []golf.HandCard {
	h := make([]golf.HandCard, 6)
	for i, r := range "A23456" {
		h[i] = golf.HandCard{Card: golf.Card(string(r) + suit)}
	}
	return h
}

// inRound is a four-player game in progress; alice (id 1, bottom) is local.
func inRound() golf.Snapshot {
	return golf.Snapshot{
		Phase: golf.InRound,
		Players: []golf.Player{
			{ID: 1, Name: "alice", Seat: golf.Bottom, Hand: hand("H"), CanAct: true},
			{ID: 2, Name: "bob", Seat: golf.Left, Hand: hand("S")},
			{ID: 3, Name: "carol", Seat: golf.Top, Hand: hand("D")},
			{ID: 4, Name: "dave", Seat: golf.Right, Hand: hand("C")},
		},
		TableCards:    []golf.Card{"TD"},
		LocalPlayerID: 1,
		FirstPlayerID: 1,
	}
}

func noRound() golf.Snapshot {
	s := inRound()
	s.Phase = golf.NoRound
	s.TableCards = nil
	for i := range s.Players {
		s.Players[i].Hand = nil
	}
	return s
}

func mustApply(t *testing.T, v *View, n golf.Notification) {
	t.Helper()
	if err := v.Apply(n); err != nil {
		t.Fatalf("apply %s: %v", n.Name(), err)
	}
}

// assertPlayability checks that each of the local player's zones is
// interactive exactly when the snapshot lists it, and nothing else is.
func assertPlayability(t *testing.T, v *View, e *headless.Engine) {
	t.Helper()
	s := v.Snapshot()
	zones := []golf.Zone{golf.ZoneDeck, golf.ZoneTable, golf.ZoneHeld}
	for i := 0; i < 6; i++ {
		zones = append(zones, golf.HandZone(i))
	}
	expected := 0
	for _, z := range zones {
		h, ok := v.Handle(z)
		if !ok {
			continue
		}
		want := s.IsPlayable(z)
		if want {
			expected++
		}
		if h.Interactive() != want {
			t.Errorf("zone %s: interactive=%v, playable=%v", z, h.Interactive(), want)
		}
	}
	got := 0
	for _, c := range e.Cards() {
		if c.Interactive() {
			got++
		}
	}
	if got != expected {
		t.Errorf("expected %d interactive cards on screen, got %d", expected, got)
	}
}

func TestSnapshotLoaded_NoRoundEmptyHands(t *testing.T) {
	v, e, _ := newTestView()
	mustApply(t, v, golf.SnapshotLoaded{Snapshot: noRound()})

	sum := v.Summary()
	if !sum.Deck || sum.Table != 0 || len(sum.Hands) != 0 || len(sum.Held) != 0 {
		t.Errorf("expected only a deck, got %+v", sum)
	}
	if n := len(e.Cards()); n != 1 {
		t.Errorf("expected 1 card handle, got %d", n)
	}
	for _, c := range e.Cards() {
		if c.Interactive() {
			t.Error("no handle should be interactive")
		}
	}
	if v.State() != Loaded {
		t.Errorf("expected Loaded, got %s", v.State())
	}
	if got := v.deck.Position(); got != v.vp.Deck(golf.NoRound) {
		t.Errorf("deck should be centred before the deal, got %+v", got)
	}
	if len(e.Labels()) != 4 {
		t.Errorf("expected 4 score labels, got %d", len(e.Labels()))
	}
}

func TestSnapshotLoaded_HandlesMatchSnapshot(t *testing.T) {
	v, e, _ := newTestView()
	s := inRound()
	s.TableCards = []golf.Card{"TD", "9C"}
	s.Players[0].Held = card("QS")
	s.Players[1].Held = card("KH")
	s.Players[3].Hand = s.Players[3].Hand[:4]

	mustApply(t, v, golf.SnapshotLoaded{Snapshot: s})

	// deck + table + hands + held
	want := 1 + 2 + (6 + 6 + 6 + 4) + 2
	if n := len(e.Cards()); n != want {
		t.Fatalf("expected %d handles, got %d", want, n)
	}
	if n := len(v.hands[golf.Right]); n != 4 {
		t.Errorf("expected right seat to hold 4, got %d", n)
	}
	if got := v.held[golf.Bottom].Card(); got != "QS" {
		t.Errorf("local held card should be face up, got %q", got)
	}
	if got := v.held[golf.Left].Card(); got != golf.DownCard {
		t.Errorf("opponent held card should be hidden, got %q", got)
	}
	if got := v.table[0].Card(); got != "TD" {
		t.Errorf("top of table should be TD, got %q", got)
	}
	top, under := v.table[0].(*headless.Card), v.table[1].(*headless.Card)
	if top.Z() <= under.Z() {
		t.Error("most recent table card should be drawn on top")
	}
	if v.State() != RoundActive {
		t.Errorf("expected RoundActive, got %s", v.State())
	}
}

func TestSnapshotLoaded_ReplacesPreviousScene(t *testing.T) {
	v, e, _ := newTestView()
	mustApply(t, v, golf.SnapshotLoaded{Snapshot: inRound()})
	mustApply(t, v, golf.SnapshotLoaded{Snapshot: noRound()})

	if n := len(e.Cards()); n != 1 {
		t.Errorf("expected only the deck after reload, got %d handles", n)
	}
	if n := len(e.Labels()); n != 4 {
		t.Errorf("expected 4 labels after reload, got %d", n)
	}
}

func TestSnapshotLoaded_RoundOverShowsWinnerAndDeal(t *testing.T) {
	v, e, out := newTestView()
	s := inRound()
	s.Phase = golf.RoundOver
	s.IsHost = true
	s.Players[2].Score = -4

	mustApply(t, v, golf.SnapshotLoaded{Snapshot: s})

	if v.banner == nil || v.banner.(*headless.Label).Text() != "carol won!" {
		t.Fatalf("expected carol's banner, got %v", v.banner)
	}
	if len(e.Buttons()) != 1 {
		t.Fatalf("expected a deal button for the host, got %d", len(e.Buttons()))
	}
	if e.Celebrations() != 0 {
		t.Error("loading a finished round should not celebrate")
	}
	e.ClickButton()
	if len(out.intents) != 1 {
		t.Fatalf("expected one intent, got %d", len(out.intents))
	}
	if _, ok := out.intents[0].(golf.StartRound); !ok {
		t.Errorf("expected StartRound, got %T", out.intents[0])
	}
}

func TestSnapshotLoaded_NonHostHasNoDealButton(t *testing.T) {
	v, e, _ := newTestView()
	mustApply(t, v, golf.SnapshotLoaded{Snapshot: noRound()})

	if len(e.Buttons()) != 0 {
		t.Error("non-host should not see the deal button")
	}
	s := noRound()
	s.IsHost = true
	mustApply(t, v, golf.SnapshotLoaded{Snapshot: s})
	if len(e.Buttons()) != 1 {
		t.Error("host should see the deal button before the first round")
	}
}

func TestSnapshotLoaded_RejectsInvalidSnapshot(t *testing.T) {
	v, e, _ := newTestView()
	s := inRound()
	s.Players[1].Seat = golf.Bottom

	err := v.Apply(golf.SnapshotLoaded{Snapshot: s})
	var pe *viewerrors.ProtocolError
	if !errors.As(err, &pe) || !errors.Is(err, viewerrors.ErrDuplicateSeat) {
		t.Fatalf("expected duplicate seat protocol error, got %v", err)
	}
	if e.Created() != 0 || v.State() != Uninitialized {
		t.Errorf("rejected snapshot changed the view: created=%d state=%s", e.Created(), v.State())
	}
}

func TestPlayability_MatchesSnapshot(t *testing.T) {
	v, e, _ := newTestView()
	s := inRound()
	s.Playable = []golf.Zone{golf.ZoneDeck, golf.ZoneTable, golf.HandZone(1), golf.HandZone(4)}

	mustApply(t, v, golf.SnapshotLoaded{Snapshot: s})
	assertPlayability(t, v, e)

	deck := v.deck.(*headless.Card)
	if deck.Tint() != engine.TintPlayable {
		t.Error("playable deck should be tinted")
	}
	if v.table[0].(*headless.Card).Tint() != engine.TintPlayable {
		t.Error("playable table card should be tinted")
	}
}

func TestPlayability_OpponentHandsNeverInteractive(t *testing.T) {
	v, _, _ := newTestView()
	s := inRound()
	s.Playable = []golf.Zone{golf.HandZone(0), golf.HandZone(1)}

	mustApply(t, v, golf.SnapshotLoaded{Snapshot: s})
	for _, seat := range []golf.Seat{golf.Left, golf.Top, golf.Right} {
		for i, h := range v.hands[seat] {
			if h.Interactive() {
				t.Errorf("%s hand %d should not be interactive", seat, i)
			}
		}
	}
}

func TestPlayability_SpectatorGetsNoHand(t *testing.T) {
	v, e, _ := newTestView()
	s := inRound()
	s.LocalPlayerID = golf.NoPlayer
	s.Playable = []golf.Zone{golf.HandZone(0)}

	mustApply(t, v, golf.SnapshotLoaded{Snapshot: s})
	for _, c := range e.Cards() {
		if c.Interactive() {
			t.Errorf("spectator view has an interactive card %q", c.Card())
		}
	}
}

func TestGate_OneIntentPerRoundTrip(t *testing.T) {
	v, e, out := newTestView()
	s := inRound()
	s.Playable = []golf.Zone{golf.ZoneDeck, golf.HandZone(2)}
	mustApply(t, v, golf.SnapshotLoaded{Snapshot: s})

	deck, _ := v.Handle(golf.ZoneDeck)
	slot, _ := v.Handle(golf.HandZone(2))
	e.Click(deck)
	e.Click(deck)
	e.Click(slot)

	if len(out.intents) != 1 {
		t.Fatalf("expected exactly one intent, got %d", len(out.intents))
	}
	click, ok := out.intents[0].(golf.CardClick)
	if !ok || click.Place != golf.PlaceDeck || click.PlayerID != 1 || click.HandIndex != nil {
		t.Errorf("unexpected intent %+v", out.intents[0])
	}
	if !v.Gate().Closed() {
		t.Error("gate should be closed after a click")
	}
	if deck.(*headless.Card).Tint() != engine.TintPressed {
		t.Error("clicked card should show the pressed tint")
	}

	// the next accepted notification reopens the gate
	mustApply(t, v, golf.SnapshotLoaded{Snapshot: s})
	slot, _ = v.Handle(golf.HandZone(2))
	e.Click(slot)
	if len(out.intents) != 2 {
		t.Fatalf("expected a second intent, got %d", len(out.intents))
	}
	click = out.intents[1].(golf.CardClick)
	if click.Place != golf.PlaceHand || click.HandIndex == nil || *click.HandIndex != 2 {
		t.Errorf("unexpected hand click %+v", click)
	}
}

func TestGate_RejectedNotificationKeepsGateClosed(t *testing.T) {
	v, e, out := newTestView()
	s := inRound()
	s.Playable = []golf.Zone{golf.ZoneDeck}
	mustApply(t, v, golf.SnapshotLoaded{Snapshot: s})

	e.Click(v.deck)
	err := v.Apply(golf.GameEvent{Snapshot: s, Event: golf.Event{Action: golf.TakeFromDeck, ActorID: 99}})
	if err == nil {
		t.Fatal("expected unknown actor to be rejected")
	}
	e.Click(v.deck)
	if len(out.intents) != 1 {
		t.Errorf("gate should stay closed after a rejected notification, got %d intents", len(out.intents))
	}
}

func TestHeldAndTableAreDistinctZones(t *testing.T) {
	v, e, out := newTestView()
	s := inRound()
	s.Players[0].Held = card("QS")
	s.Playable = []golf.Zone{golf.ZoneHeld}
	mustApply(t, v, golf.SnapshotLoaded{Snapshot: s})

	if v.table[0].Interactive() {
		t.Error("held token must not make the table card clickable")
	}
	held, ok := v.Handle(golf.ZoneHeld)
	if !ok || !held.Interactive() {
		t.Fatal("held card should be clickable")
	}
	e.Click(held)
	if len(out.intents) != 1 || out.intents[0].(golf.CardClick).Place != golf.PlaceHeld {
		t.Errorf("expected a held click, got %+v", out.intents)
	}

	s.Playable = []golf.Zone{golf.ZoneTable}
	mustApply(t, v, golf.SnapshotLoaded{Snapshot: s})
	held, _ = v.Handle(golf.ZoneHeld)
	if held.Interactive() {
		t.Error("table token must not make the held card clickable")
	}
	e.Click(v.table[0])
	if len(out.intents) != 2 || out.intents[1].(golf.CardClick).Place != golf.PlaceTable {
		t.Errorf("expected a table click, got %+v", out.intents)
	}
}

func TestScoreLabels(t *testing.T) {
	v, _, _ := newTestView()
	s := inRound()
	s.Players[0].Score = 1
	s.Players[1].Score = -1
	s.Players[2].Score = 12
	mustApply(t, v, golf.SnapshotLoaded{Snapshot: s})

	cases := map[golf.Seat]struct{ text, color string }{
		golf.Bottom: {"alice\n(1pt)", "#00ff00"},
		golf.Left:   {"bob\n(-1pt)", "#ff77ff"},
		golf.Top:    {"carol\n(12pts)", "#ff77ff"},
		golf.Right:  {"dave\n(0pts)", "#ff77ff"},
	}
	for seat, want := range cases {
		l := v.labels[seat].(*headless.Label)
		if l.Text() != want.text || l.Color() != want.color {
			t.Errorf("%s label: got %q %s, want %q %s", seat, l.Text(), l.Color(), want.text, want.color)
		}
	}
}

func TestClose_DestroysEverything(t *testing.T) {
	v, e, _ := newTestView()
	s := inRound()
	s.Phase = golf.RoundOver
	s.IsHost = true
	mustApply(t, v, golf.SnapshotLoaded{Snapshot: s})

	v.Close()
	if len(e.Cards()) != 0 || len(e.Labels()) != 0 || len(e.Buttons()) != 0 {
		t.Errorf("handles left after close: cards=%d labels=%d buttons=%d",
			len(e.Cards()), len(e.Labels()), len(e.Buttons()))
	}
	if v.State() != Uninitialized || v.Snapshot() != nil {
		t.Error("closed view should be uninitialized")
	}
}

func TestStateNames(t *testing.T) {
	for s, want := range map[State]string{
		Uninitialized: "uninitialized",
		Loaded:        "loaded",
		RoundActive:   "round_active",
		RoundOver:     "round_over",
		GameOver:      "game_over",
	} {
		if s.String() != want {
			t.Errorf("State(%d).String() = %q, want %q", s, s.String(), want)
		}
	}
}

func TestSummary(t *testing.T) {
	v, _, _ := newTestView()
	s := inRound()
	s.Players[2].Held = card("9C")
	s.Playable = []golf.Zone{golf.HandZone(3), golf.ZoneDeck}
	mustApply(t, v, golf.SnapshotLoaded{Snapshot: s})

	sum := v.Summary()
	if sum.State != "round_active" || sum.Phase != golf.InRound || sum.Table != 1 {
		t.Errorf("unexpected summary %+v", sum)
	}
	if sum.Hands[golf.Top] != 6 || len(sum.Held) != 1 || sum.Held[0] != golf.Top {
		t.Errorf("unexpected zone counts %+v", sum)
	}
	if len(sum.Interactive) != 2 || sum.Interactive[0] != golf.ZoneDeck || sum.Interactive[1] != golf.HandZone(3) {
		t.Errorf("unexpected interactive zones %v", sum.Interactive)
	}
}
