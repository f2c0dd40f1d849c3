// Package layout maps seats, hand slots and piles to screen coordinates.
// Every function is pure: the same viewport always yields the same points.
package layout

import (
	"fmt"

	"golf-client/engine"
	"golf-client/golf"
	"golf-client/viewerrors"
)

const (
	cardImgWidth  = 225.0
	cardImgHeight = 315.0
	cardScale     = 0.5

	// CardWidth and CardHeight are the on-screen card size.
	CardWidth  = cardImgWidth * cardScale
	CardHeight = cardImgHeight * cardScale

	DefaultWidth    = 950
	DefaultHeight   = 1200
	DefaultHandSize = 6

	dealButtonHeight = 100.0
	dealButtonOffset = 150.0
)

// Viewport is the logical screen plus the number of hand slots per player.
type Viewport struct {
	Width    float64
	Height   float64
	HandSize int
}

// Default is the 950x1200 six-card layout.
func Default() Viewport {
	return Viewport{Width: DefaultWidth, Height: DefaultHeight, HandSize: DefaultHandSize}
}

func (v Viewport) xPad() float64       { return v.Width / 60 }
func (v Viewport) yPad() float64       { return v.Height / 16 }
func (v Viewport) deckOffset() float64 { return v.Width / 120 }

// Columns is the number of slots per hand row.
func (v Viewport) Columns() int {
	return (v.HandSize + 1) / 2
}

// Deck is the draw pile. It sits centred before the first deal and shifts
// left once a round is under way.
func (v Viewport) Deck(phase golf.Phase) engine.Point {
	x := v.Width / 2
	if phase != golf.NoRound {
		x = v.Width/2 - CardWidth/2 - v.deckOffset()
	}
	return engine.Point{X: x, Y: v.Height / 2}
}

// Table is the discard pile, to the right of the deck.
func (v Viewport) Table() engine.Point {
	return engine.Point{X: v.Width/2 + CardWidth/2 + v.deckOffset(), Y: v.Height / 2}
}

// HandSlot returns where slot index of seat's hand is drawn. Slots fill
// two rows, the row nearest the table first. Top and right are mirrored so
// that index 0 is always the owner's top-left.
func (v Viewport) HandSlot(seat golf.Seat, index int) (engine.Placement, error) {
	if index < 0 || index >= v.HandSize {
		return engine.Placement{}, fmt.Errorf("%w: %d", viewerrors.ErrHandIndexOutOfRange, index)
	}
	cols := v.Columns()
	row, col := index/cols, index%cols
	// offset from the centre column, in slot units
	off := float64(col) - float64(cols-1)/2
	xPad, yPad := v.xPad(), v.yPad()
	hStep := CardWidth + xPad
	vStep := CardHeight + xPad + 2

	var p engine.Point
	switch seat {
	case golf.Bottom:
		p.X = v.Width/2 + off*hStep
		if row == 0 {
			p.Y = v.Height - CardHeight*1.5 - yPad*1.3 - 30
		} else {
			p.Y = v.Height - CardHeight/2 - yPad - 30
		}
	case golf.Top:
		p.X = v.Width/2 - off*hStep
		if row == 0 {
			p.Y = CardHeight*1.5 + yPad*1.3 + 30
		} else {
			p.Y = CardHeight/2 + yPad + 30
		}
	case golf.Left:
		p.Y = v.Height/2 + off*vStep
		if row == 0 {
			p.X = CardWidth*1.5 + xPad*2
		} else {
			p.X = CardWidth/2 + xPad
		}
	case golf.Right:
		p.Y = v.Height/2 - off*vStep
		if row == 0 {
			p.X = v.Width - CardWidth*1.5 - xPad*2
		} else {
			p.X = v.Width - CardWidth/2 - xPad
		}
	default:
		return engine.Placement{}, fmt.Errorf("%w: %q", viewerrors.ErrUnknownSeat, seat)
	}
	return engine.Placement{Point: p}, nil
}

// Held is where a seat's drawn card waits before it is swapped or discarded.
func (v Viewport) Held(seat golf.Seat) (engine.Placement, error) {
	xPad, yPad := v.xPad(), v.yPad()
	var p engine.Point
	switch seat {
	case golf.Bottom:
		p = engine.Point{X: v.Width/2 + CardWidth*2 + xPad*2.5, Y: v.Height - CardHeight - yPad*1.3 - 18}
	case golf.Top:
		p = engine.Point{X: v.Width/2 - CardWidth*1.5 - xPad, Y: CardHeight + yPad*1.5}
	case golf.Left:
		p = engine.Point{X: CardWidth + xPad + 4, Y: v.Height/2 + CardHeight*1.5 + xPad + 2}
	case golf.Right:
		p = engine.Point{X: v.Width - CardWidth - xPad - 4, Y: v.Height/2 + CardHeight*1.5 + xPad}
	default:
		return engine.Placement{}, fmt.Errorf("%w: %q", viewerrors.ErrUnknownSeat, seat)
	}
	return engine.Placement{Point: p}, nil
}

// LabelPlacement is an anchor point plus the label origin.
type LabelPlacement struct {
	engine.Point
	Origin engine.Origin
}

// ScoreLabel is where a seat's name and score are written.
func (v Viewport) ScoreLabel(seat golf.Seat) (LabelPlacement, error) {
	xPad := v.xPad()
	sideY := v.Height/2 - CardHeight*2 - xPad
	switch seat {
	case golf.Bottom:
		return LabelPlacement{engine.Point{X: v.Width / 2, Y: v.Height - 20}, engine.Origin{X: 0.5, Y: 1}}, nil
	case golf.Top:
		return LabelPlacement{engine.Point{X: v.Width / 2, Y: 20}, engine.Origin{X: 0.5, Y: 0}}, nil
	case golf.Left:
		return LabelPlacement{engine.Point{X: xPad, Y: sideY}, engine.Origin{X: 0, Y: 0}}, nil
	case golf.Right:
		return LabelPlacement{engine.Point{X: v.Width, Y: sideY}, engine.Origin{X: 1, Y: 0}}, nil
	default:
		return LabelPlacement{}, fmt.Errorf("%w: %q", viewerrors.ErrUnknownSeat, seat)
	}
}

// Banner is the centre of the end-of-round message.
func (v Viewport) Banner() engine.Point {
	return engine.Point{X: v.Width / 2, Y: v.Height / 2}
}

// DealButton is the centre of the host's deal button.
func (v Viewport) DealButton() engine.Point {
	top := v.Height - dealButtonOffset - CardHeight/2 - 4
	return engine.Point{X: v.Width / 2, Y: top + dealButtonHeight/2}
}
