// Package view keeps on-screen card handles in step with the snapshots the
// server pushes, animating each change and turning clicks on playable zones
// into outbound intents.
//
// A View is owned by a single goroutine. Every method, including the click
// callbacks it registers on handles, must run on that goroutine.
package view

import (
	"log/slog"
	"time"

	"golf-client/anim"
	"golf-client/config"
	"golf-client/engine"
	"golf-client/golf"
	"golf-client/layout"
	"golf-client/playable"
	"golf-client/viewerrors"
)

// State is the view's lifecycle position. After every accepted
// notification it follows from the snapshot phase.
type State int

const (
	Uninitialized State = iota
	Loaded
	RoundActive
	RoundOver
	GameOver
)

// String returns the name used in logs and the debug endpoint.
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loaded:
		return "loaded"
	case RoundActive:
		return "round_active"
	case RoundOver:
		return "round_over"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

func stateFor(p golf.Phase) State {
	switch p {
	case golf.InRound:
		return RoundActive
	case golf.RoundOver:
		return RoundOver
	case golf.GameOver:
		return GameOver
	default:
		return Loaded
	}
}

// Sender receives outbound intents.
type Sender interface {
	Send(golf.Intent)
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(golf.Intent)

func (f SenderFunc) Send(i golf.Intent) { f(i) }

type timings struct {
	dealCard, cardStagger, seatStagger time.Duration
	deckSlide, tableReveal             time.Duration
	flight, wiggle                     time.Duration
}

func timingsFrom(t config.TweenConfig) timings {
	return timings{
		dealCard:    config.MS(t.DealCardMS),
		cardStagger: config.MS(t.DealCardStaggerMS),
		seatStagger: config.MS(t.DealSeatStaggerMS),
		deckSlide:   config.MS(t.DeckSlideMS),
		tableReveal: config.MS(t.TableRevealMS),
		flight:      config.MS(t.FlightMS),
		wiggle:      config.MS(t.WiggleMS),
	}
}

const wiggleRepeat = 2

// View is the game view state machine.
type View struct {
	r   engine.Renderer
	out Sender
	vp  layout.Viewport
	tm  timings

	seq  *anim.Sequencer
	res  *playable.Resolver
	gate Gate

	state State
	last  *golf.Snapshot

	deck   engine.CardHandle
	table  []engine.CardHandle // index 0 is the top of the pile
	hands  map[golf.Seat][]engine.CardHandle
	held   map[golf.Seat]engine.CardHandle
	labels map[golf.Seat]engine.Label
	banner engine.Label
	button engine.Button
}

// New creates an uninitialized view drawing through r.
func New(cfg *config.Config, r engine.Renderer, out Sender) *View {
	return &View{
		r:      r,
		out:    out,
		vp:     cfg.Viewport(),
		tm:     timingsFrom(cfg.Tweens),
		seq:    anim.New(),
		res:    playable.NewResolver(),
		hands:  make(map[golf.Seat][]engine.CardHandle),
		held:   make(map[golf.Seat]engine.CardHandle),
		labels: make(map[golf.Seat]engine.Label),
	}
}

// Apply routes one notification to its handler. A rejected notification
// leaves the view untouched and returns a *viewerrors.ProtocolError.
func (v *View) Apply(n golf.Notification) error {
	switch n := n.(type) {
	case golf.SnapshotLoaded:
		return v.OnSnapshotLoaded(n.Snapshot)
	case golf.RoundStarted:
		return v.OnRoundStarted(n.Snapshot)
	case golf.GameEvent:
		return v.OnGameEvent(n.Snapshot, n.Event)
	default:
		return viewerrors.Protocol("unknown", viewerrors.ErrUnknownMessage, "%T", n)
	}
}

// accept finishes a successfully applied notification.
func (v *View) accept(s *golf.Snapshot) {
	v.state = stateFor(s.Phase)
	v.gate.Open()
}

// State returns the current lifecycle state.
func (v *View) State() State { return v.state }

// Snapshot returns the last accepted snapshot, or nil before the first one.
func (v *View) Snapshot() *golf.Snapshot { return v.last }

// Gate exposes the input gate.
func (v *View) Gate() *Gate { return &v.gate }

// Pending counts animation batches still running.
func (v *View) Pending() int { return v.seq.Pending() }

// Close cancels animations and destroys every handle.
func (v *View) Close() {
	v.seq.CancelAll()
	v.clearRound()
	if v.deck != nil {
		v.destroy(v.deck)
		v.deck = nil
	}
	for seat, l := range v.labels {
		l.Destroy()
		delete(v.labels, seat)
	}
	v.res.Reset()
	v.last = nil
	v.state = Uninitialized
	v.gate.Open()
}

// Handle returns the local player's handle for zone, if one is on screen.
func (v *View) Handle(zone golf.Zone) (engine.CardHandle, bool) {
	var h engine.CardHandle
	switch zone {
	case golf.ZoneDeck:
		h = v.deck
	case golf.ZoneTable:
		if len(v.table) > 0 {
			h = v.table[0]
		}
	case golf.ZoneHeld:
		if seat, ok := v.localSeat(); ok {
			h = v.held[seat]
		}
	default:
		i, ok := zone.HandIndex()
		seat, local := v.localSeat()
		if ok && local && i < len(v.hands[seat]) {
			h = v.hands[seat][i]
		}
	}
	return h, h != nil
}

func (v *View) localSeat() (golf.Seat, bool) {
	if v.last == nil {
		return "", false
	}
	p, ok := v.last.LocalPlayer()
	if !ok {
		return "", false
	}
	return p.Seat, true
}

// destroy removes h from the screen and from the resolver.
func (v *View) destroy(h engine.CardHandle) {
	v.res.Forget(h)
	h.Destroy()
}

// clearRound destroys everything a new deal replaces: the table pile, hands,
// held cards, the banner and the deal button.
func (v *View) clearRound() {
	for _, h := range v.table {
		v.destroy(h)
	}
	v.table = nil
	for seat, hand := range v.hands {
		for _, h := range hand {
			v.destroy(h)
		}
		delete(v.hands, seat)
	}
	for seat, h := range v.held {
		v.destroy(h)
		delete(v.held, seat)
	}
	v.clearTerminal()
}

func (v *View) clearTerminal() {
	if v.banner != nil {
		v.banner.Destroy()
		v.banner = nil
	}
	if v.button != nil {
		v.button.Destroy()
		v.button = nil
	}
}

func (v *View) newCard(at engine.Point, c golf.Card) engine.CardHandle {
	return v.r.NewCard(engine.Placement{Point: at}, c)
}

// slot and heldAt wrap layout lookups whose inputs were validated with the
// snapshot; an error here is a programming error.
func (v *View) slot(seat golf.Seat, i int) engine.Point {
	p, err := v.vp.HandSlot(seat, i)
	if err != nil {
		panic(err)
	}
	return p.Point
}

func (v *View) heldAt(seat golf.Seat) engine.Point {
	p, err := v.vp.Held(seat)
	if err != nil {
		panic(err)
	}
	return p.Point
}

func logReject(err error) error {
	slog.Debug("notification rejected", "tag", "view", "err", err)
	return err
}
