package view

import (
	"log/slog"

	"golf-client/anim"
	"golf-client/engine"
	"golf-client/golf"
	"golf-client/viewerrors"
)

// OnGameEvent animates e and then brings every handle in line with s.
func (v *View) OnGameEvent(s golf.Snapshot, e golf.Event) error {
	if v.last == nil {
		return logReject(viewerrors.Protocol("game_event", viewerrors.ErrNotLoaded, "action %q", e.Action))
	}
	if err := s.Validate(v.vp.HandSize); err != nil {
		return logReject(err)
	}
	actor, err := e.Resolve(&s, v.vp.HandSize)
	if err != nil {
		return logReject(err)
	}
	if v.state == RoundOver || v.state == GameOver {
		slog.Warn("game event after the round ended", "tag", "view", "state", v.state, "action", e.Action)
	}

	// finish the previous animation so handles sit where the layout says
	v.seq.Settle()
	prev := v.last.Phase
	v.last = &s

	switch e.Action {
	case golf.Flip:
		v.animateFlip(actor, *e.HandIndex)
	case golf.TakeFromDeck:
		v.animateTake(actor, v.deck.Position())
	case golf.TakeFromTable:
		from := v.vp.Table()
		if len(v.table) > 0 {
			from = v.table[0].Position()
			v.destroy(v.table[0])
			v.table = v.table[1:]
		}
		v.animateTake(actor, from)
	case golf.Discard:
		v.animateDiscard(actor)
	case golf.Swap:
		v.animateSwap(actor, *e.HandIndex)
	}

	v.reconcile()
	v.presentTerminal(prev)
	v.accept(&s)
	slog.Debug("game event applied", "tag", "view", "action", e.Action, "player", actor.ID, "phase", s.Phase)
	return nil
}

func (v *View) animateFlip(p *golf.Player, i int) {
	hand := v.hands[p.Seat]
	if i >= len(hand) {
		return
	}
	h := hand[i]
	h.SetCard(p.Hand[i].Card)
	v.seq.Wiggle(h, engine.WiggleSpec{Duration: v.tm.wiggle, Repeat: wiggleRepeat})
}

// animateTake flies a new held card from a pile to p's held slot.
func (v *View) animateTake(p *golf.Player, from engine.Point) {
	if old, ok := v.held[p.Seat]; ok {
		v.destroy(old)
	}
	h := v.newCard(from, v.heldIdentity(p))
	v.held[p.Seat] = h
	v.fly(h, v.heldAt(p.Seat))
}

// animateDiscard moves p's held card onto the table pile.
func (v *View) animateDiscard(p *golf.Player) {
	from := v.heldAt(p.Seat)
	if h, ok := v.held[p.Seat]; ok {
		from = h.Position()
		v.destroy(h)
		delete(v.held, p.Seat)
	}
	v.pushTable(from)
}

// animateSwap sends the old hand card to the table while the held card
// travels into the hand slot.
func (v *View) animateSwap(p *golf.Player, i int) {
	heldPos := v.heldAt(p.Seat)
	if h, ok := v.held[p.Seat]; ok {
		heldPos = h.Position()
		v.destroy(h)
		delete(v.held, p.Seat)
	}
	hand := v.hands[p.Seat]
	if i >= len(hand) {
		return
	}
	h := hand[i]
	top := v.pushTable(h.Position())

	h.SetCard(v.last.Visible(p.Hand[i]))
	if top != nil {
		top.BringToTop()
	}
	h.BringToTop()
	v.seq.Run(anim.Transition{
		Target:   h,
		From:     &heldPos,
		To:       v.slot(p.Seat, i),
		Duration: v.tm.flight,
		Ease:     engine.QuadInOut,
	})
}

// pushTable adds the snapshot's top table card at from and flies it onto
// the pile. It returns nil when the snapshot has an empty pile.
func (v *View) pushTable(from engine.Point) engine.CardHandle {
	if len(v.last.TableCards) == 0 {
		return nil
	}
	h := v.newCard(from, v.last.TableCards[0])
	if len(v.table) > 0 {
		v.res.Revoke(v.table[0])
	}
	v.table = append([]engine.CardHandle{h}, v.table...)
	v.fly(h, v.vp.Table())
	return h
}

func (v *View) fly(h engine.CardHandle, to engine.Point) {
	v.seq.Run(anim.Transition{Target: h, To: to, Duration: v.tm.flight, Ease: engine.QuadInOut})
}
