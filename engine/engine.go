// Package engine declares what the view needs from a rendering engine.
// Implementations own sprites, text, tweens and pointer input; the view only
// talks to them through these interfaces.
package engine

import (
	"time"

	"golf-client/golf"
)

// Point is a position in logical viewport pixels.
type Point struct {
	X, Y float64
}

// Placement is a point plus a rotation in degrees.
type Placement struct {
	Point
	Rotation float64
}

// Tint is the visual affordance applied to a card.
type Tint int

const (
	TintNone     Tint = iota
	TintPlayable      // cyan, 0x00ffff
	TintPressed       // pink, 0xffaaff; a click is in flight
)

// MoveSpec describes one positional tween.
type MoveSpec struct {
	To       Point
	Duration time.Duration
	Delay    time.Duration
	Ease     Ease
	// Paused tweens wait for Resume.
	Paused bool
	// OnComplete runs once when the tween reaches To, unless it was stopped.
	OnComplete func()
}

// WiggleSpec describes a short back-and-forth rotation.
type WiggleSpec struct {
	Duration   time.Duration
	Repeat     int
	OnComplete func()
}

// Tween is a scheduled transition owned by the engine.
type Tween interface {
	Resume()
	// Complete jumps to the end state and fires OnComplete.
	Complete()
	// Stop cancels the tween where it is; OnComplete never fires.
	Stop()
	Done() bool
}

// CardHandle is the on-screen card bound to one logical slot.
type CardHandle interface {
	Position() Point
	SetPosition(p Point)
	MoveTo(spec MoveSpec) Tween
	Wiggle(spec WiggleSpec) Tween
	Card() golf.Card
	SetCard(c golf.Card)
	SetTint(t Tint)
	// SetInteractive registers onClick as the only click handler; nil
	// disables interaction.
	SetInteractive(onClick func())
	Interactive() bool
	BringToTop()
	Destroy()
}

// LabelStyle selects a text style.
type LabelStyle int

const (
	LabelScore LabelStyle = iota
	LabelBanner
)

// Origin is the anchor of a label, 0..1 on each axis.
type Origin struct {
	X, Y float64
}

// LabelSpec describes a new text label.
type LabelSpec struct {
	At     Point
	Origin Origin
	Text   string
	Color  string
	Style  LabelStyle
}

// Label is an on-screen text element.
type Label interface {
	SetText(text string)
	SetColor(color string)
	Destroy()
}

// ButtonSpec describes a clickable button.
type ButtonSpec struct {
	At      Point
	Text    string
	OnClick func()
}

// Button is an on-screen button.
type Button interface {
	Destroy()
}

// Renderer creates on-screen objects.
type Renderer interface {
	NewCard(at Placement, c golf.Card) CardHandle
	NewLabel(spec LabelSpec) Label
	NewButton(spec ButtonSpec) Button
	// Celebrate plays the end-of-round effect.
	Celebrate()
}
