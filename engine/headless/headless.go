// Package headless is a deterministic in-memory engine. Time only moves when
// Advance is called, which makes it the engine for tests and for the
// terminal client.
package headless

import (
	"time"

	"golf-client/engine"
	"golf-client/golf"
)

// Engine implements engine.Renderer without drawing anything.
type Engine struct {
	now     time.Duration
	cards   []*Card
	labels  []*Label
	buttons []*Button
	tweens  []*tween
	log     []TweenRecord
	created int
	z       int

	celebrations int
}

var _ engine.Renderer = (*Engine)(nil)

// New returns an empty engine at time zero.
func New() *Engine {
	return &Engine{}
}

// TweenRecord is one MoveTo call as the engine received it.
type TweenRecord struct {
	Card     *Card
	To       engine.Point
	Duration time.Duration
	Delay    time.Duration
	Ease     engine.Ease
	At       time.Duration
}

func (e *Engine) NewCard(at engine.Placement, c golf.Card) engine.CardHandle {
	e.z++
	card := &Card{eng: e, id: e.created, pos: at.Point, rotation: at.Rotation, card: c, z: e.z, alive: true}
	e.created++
	e.cards = append(e.cards, card)
	return card
}

func (e *Engine) NewLabel(spec engine.LabelSpec) engine.Label {
	l := &Label{Spec: spec, text: spec.Text, color: spec.Color, alive: true}
	e.labels = append(e.labels, l)
	return l
}

func (e *Engine) NewButton(spec engine.ButtonSpec) engine.Button {
	b := &Button{Spec: spec, alive: true}
	e.buttons = append(e.buttons, b)
	return b
}

func (e *Engine) Celebrate() { e.celebrations++ }

// Now is the virtual clock.
func (e *Engine) Now() time.Duration { return e.now }

// Advance moves the clock forward by dt and steps every running tween.
// Tweens created by completion callbacks start on the next call.
func (e *Engine) Advance(dt time.Duration) {
	e.now += dt
	for _, tw := range append([]*tween(nil), e.tweens...) {
		tw.step(dt)
	}
	e.prune()
}

// Idle reports whether no tween is scheduled.
func (e *Engine) Idle() bool {
	e.prune()
	return len(e.tweens) == 0
}

// RunUntilIdle advances in frame-sized steps until every tween finished or
// limit elapsed. It returns false if tweens are still pending.
func (e *Engine) RunUntilIdle(frame, limit time.Duration) bool {
	for spent := time.Duration(0); spent < limit; spent += frame {
		if e.Idle() {
			return true
		}
		e.Advance(frame)
	}
	return e.Idle()
}

func (e *Engine) prune() {
	live := e.tweens[:0]
	for _, tw := range e.tweens {
		if !tw.Done() {
			live = append(live, tw)
		}
	}
	clear(e.tweens[len(live):])
	e.tweens = live
}

// Cards returns every card that has not been destroyed, in creation order.
func (e *Engine) Cards() []*Card {
	var out []*Card
	for _, c := range e.cards {
		if c.alive {
			out = append(out, c)
		}
	}
	return out
}

// Created counts every card ever made, destroyed or not.
func (e *Engine) Created() int { return e.created }

// Tweens is the MoveTo log in call order.
func (e *Engine) Tweens() []TweenRecord { return e.log }

// ResetLog forgets previously recorded tweens.
func (e *Engine) ResetLog() { e.log = nil }

// Labels returns live labels.
func (e *Engine) Labels() []*Label {
	var out []*Label
	for _, l := range e.labels {
		if l.alive {
			out = append(out, l)
		}
	}
	return out
}

// Buttons returns live buttons.
func (e *Engine) Buttons() []*Button {
	var out []*Button
	for _, b := range e.buttons {
		if b.alive {
			out = append(out, b)
		}
	}
	return out
}

// Celebrations counts Celebrate calls.
func (e *Engine) Celebrations() int { return e.celebrations }

// Click simulates a pointer press on h. It reports whether a handler ran.
func (e *Engine) Click(h engine.CardHandle) bool {
	c, ok := h.(*Card)
	if !ok || !c.alive || c.onClick == nil {
		return false
	}
	c.onClick()
	return true
}

// ClickButton presses the most recent live button.
func (e *Engine) ClickButton() bool {
	bs := e.Buttons()
	if len(bs) == 0 {
		return false
	}
	b := bs[len(bs)-1]
	if b.Spec.OnClick == nil {
		return false
	}
	b.Spec.OnClick()
	return true
}

// Card is a headless card sprite.
type Card struct {
	eng      *Engine
	id       int
	pos      engine.Point
	rotation float64
	card     golf.Card
	tint     engine.Tint
	onClick  func()
	z        int
	alive    bool
}

var _ engine.CardHandle = (*Card)(nil)

func (c *Card) ID() int                    { return c.id }
func (c *Card) Position() engine.Point     { return c.pos }
func (c *Card) SetPosition(p engine.Point) { c.pos = p }
func (c *Card) Card() golf.Card            { return c.card }
func (c *Card) SetCard(v golf.Card)        { c.card = v }
func (c *Card) Tint() engine.Tint          { return c.tint }
func (c *Card) SetTint(t engine.Tint)      { c.tint = t }
func (c *Card) Interactive() bool          { return c.onClick != nil }
func (c *Card) Alive() bool                { return c.alive }
func (c *Card) Z() int                     { return c.z }

func (c *Card) SetInteractive(onClick func()) { c.onClick = onClick }

func (c *Card) BringToTop() {
	c.eng.z++
	c.z = c.eng.z
}

// Destroy removes the card. Its tweens stop without calling back.
func (c *Card) Destroy() {
	if !c.alive {
		return
	}
	c.alive = false
	c.onClick = nil
	for _, tw := range c.eng.tweens {
		if tw.card == c {
			tw.Stop()
		}
	}
}

func (c *Card) MoveTo(spec engine.MoveSpec) engine.Tween {
	tw := &tween{card: c, to: spec.To, duration: spec.Duration, delay: spec.Delay, ease: spec.Ease,
		paused: spec.Paused, onComplete: spec.OnComplete, move: true}
	if !c.alive {
		tw.state = stopped
		return tw
	}
	c.eng.log = append(c.eng.log, TweenRecord{Card: c, To: spec.To, Duration: spec.Duration,
		Delay: spec.Delay, Ease: spec.Ease, At: c.eng.now})
	c.eng.tweens = append(c.eng.tweens, tw)
	return tw
}

// Wiggle rocks the card back and forth; a yoyo wiggle with repeat r lasts
// 2*(r+1) times the duration.
func (c *Card) Wiggle(spec engine.WiggleSpec) engine.Tween {
	tw := &tween{card: c, duration: 2 * time.Duration(spec.Repeat+1) * spec.Duration,
		onComplete: spec.OnComplete}
	if !c.alive {
		tw.state = stopped
		return tw
	}
	c.eng.tweens = append(c.eng.tweens, tw)
	return tw
}

type tweenState int

const (
	pending tweenState = iota
	running
	finished
	stopped
)

type tween struct {
	card       *Card
	move       bool
	from, to   engine.Point
	duration   time.Duration
	delay      time.Duration
	ease       engine.Ease
	elapsed    time.Duration
	paused     bool
	state      tweenState
	onComplete func()
}

func (t *tween) Resume() { t.paused = false }

func (t *tween) Done() bool { return t.state == finished || t.state == stopped }

func (t *tween) Stop() {
	if !t.Done() {
		t.state = stopped
	}
}

func (t *tween) Complete() {
	if t.Done() {
		return
	}
	t.state = finished
	if t.move {
		t.card.pos = t.to
	}
	if t.onComplete != nil {
		t.onComplete()
	}
}

func (t *tween) step(dt time.Duration) {
	if t.paused || t.Done() {
		return
	}
	t.elapsed += dt
	if t.elapsed < t.delay {
		return
	}
	if t.state == pending {
		t.state = running
		t.from = t.card.pos
	}
	run := t.elapsed - t.delay
	if run >= t.duration {
		t.Complete()
		return
	}
	if t.move {
		p := t.ease.Apply(float64(run) / float64(t.duration))
		t.card.pos = engine.Lerp(t.from, t.to, p)
	}
}

// Label is a headless text element.
type Label struct {
	Spec  engine.LabelSpec
	text  string
	color string
	alive bool
}

func (l *Label) SetText(text string)   { l.text = text }
func (l *Label) SetColor(color string) { l.color = color }
func (l *Label) Destroy()              { l.alive = false }
func (l *Label) Text() string          { return l.text }
func (l *Label) Color() string         { return l.color }
func (l *Label) Alive() bool           { return l.alive }

// Button is a headless button.
type Button struct {
	Spec  engine.ButtonSpec
	alive bool
}

func (b *Button) Destroy()    { b.alive = false }
func (b *Button) Alive() bool { return b.alive }
