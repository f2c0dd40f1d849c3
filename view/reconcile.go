package view

import (
	"fmt"
	"log/slog"

	"golf-client/engine"
	"golf-client/golf"
)

const (
	colorCanAct  = "#00ff00"
	colorWaiting = "#ff77ff"
)

// reconcile re-derives every handle from the last snapshot. Animations set
// up before it keep running; only counts, identities, labels and
// playability are corrected.
func (v *View) reconcile() {
	s := v.last
	if v.deck == nil {
		v.deck = v.newCard(v.vp.Deck(s.Phase), golf.DownCard)
	}
	v.reconcileTable()

	seated := make(map[golf.Seat]bool, len(s.Players))
	for i := range s.Players {
		p := &s.Players[i]
		seated[p.Seat] = true
		v.reconcileHand(p)
		v.reconcileHeld(p)
	}
	for _, seat := range golf.Seats {
		if seated[seat] {
			continue
		}
		for _, h := range v.hands[seat] {
			v.destroy(h)
		}
		delete(v.hands, seat)
		if h, ok := v.held[seat]; ok {
			v.destroy(h)
			delete(v.held, seat)
		}
	}
	v.reconcileLabels()
	v.syncPlayability()
}

// reconcileTable matches the pile to TableCards, most recent on top.
func (v *View) reconcileTable() {
	want := v.last.TableCards
	for len(v.table) > len(want) {
		last := len(v.table) - 1
		v.destroy(v.table[last])
		v.table = v.table[:last]
	}
	if missing := len(want) - len(v.table); missing > 0 {
		at := v.vp.Table()
		for range missing {
			v.table = append(v.table, v.newCard(at, golf.DownCard))
		}
		// new cards belong underneath; restack from the bottom up
		for i := len(v.table) - 1; i >= 0; i-- {
			v.table[i].BringToTop()
		}
	}
	for i, h := range v.table {
		h.SetCard(want[i])
	}
}

func (v *View) reconcileHand(p *golf.Player) {
	hand := v.hands[p.Seat]
	for len(hand) > len(p.Hand) {
		last := len(hand) - 1
		v.destroy(hand[last])
		hand = hand[:last]
	}
	for i := len(hand); i < len(p.Hand); i++ {
		hand = append(hand, v.newCard(v.slot(p.Seat, i), golf.DownCard))
	}
	for i, h := range hand {
		h.SetCard(v.last.Visible(p.Hand[i]))
	}
	if len(hand) == 0 {
		delete(v.hands, p.Seat)
		return
	}
	v.hands[p.Seat] = hand
}

func (v *View) reconcileHeld(p *golf.Player) {
	h, ok := v.held[p.Seat]
	if p.Held == nil {
		if ok {
			v.destroy(h)
			delete(v.held, p.Seat)
		}
		return
	}
	if !ok {
		h = v.newCard(v.heldAt(p.Seat), golf.DownCard)
		v.held[p.Seat] = h
	}
	h.SetCard(v.heldIdentity(p))
}

// heldIdentity shows a drawn card only to the player holding it.
func (v *View) heldIdentity(p *golf.Player) golf.Card {
	if p.Held == nil || p.ID != v.last.LocalPlayerID {
		return golf.DownCard
	}
	return *p.Held
}

func (v *View) reconcileLabels() {
	seated := make(map[golf.Seat]bool, len(v.last.Players))
	for i := range v.last.Players {
		p := &v.last.Players[i]
		seated[p.Seat] = true
		text, color := labelText(p), labelColor(p)
		if l, ok := v.labels[p.Seat]; ok {
			l.SetText(text)
			l.SetColor(color)
			continue
		}
		at, err := v.vp.ScoreLabel(p.Seat)
		if err != nil {
			panic(err)
		}
		v.labels[p.Seat] = v.r.NewLabel(engine.LabelSpec{
			At:     at.Point,
			Origin: at.Origin,
			Text:   text,
			Color:  color,
			Style:  engine.LabelScore,
		})
	}
	for seat, l := range v.labels {
		if !seated[seat] {
			l.Destroy()
			delete(v.labels, seat)
		}
	}
}

func labelText(p *golf.Player) string {
	unit := "pts"
	if p.Score == 1 || p.Score == -1 {
		unit = "pt"
	}
	return fmt.Sprintf("%s\n(%d%s)", p.Name, p.Score, unit)
}

func labelColor(p *golf.Player) string {
	if p.CanAct {
		return colorCanAct
	}
	return colorWaiting
}

// syncPlayability grants exactly the zones the snapshot lists. Hand and held
// tokens only ever refer to the local player's cards.
func (v *View) syncPlayability() {
	s := v.last
	v.res.Sync(v.deck, s, golf.ZoneDeck, v.clickFor(golf.ZoneDeck))
	for i, h := range v.table {
		if i == 0 {
			v.res.Sync(h, s, golf.ZoneTable, v.clickFor(golf.ZoneTable))
			continue
		}
		v.res.Revoke(h)
	}
	local, hasLocal := v.localSeat()
	for seat, hand := range v.hands {
		for i, h := range hand {
			if hasLocal && seat == local {
				z := golf.HandZone(i)
				v.res.Sync(h, s, z, v.clickFor(z))
				continue
			}
			v.res.Revoke(h)
		}
	}
	for seat, h := range v.held {
		if hasLocal && seat == local {
			v.res.Sync(h, s, golf.ZoneHeld, v.clickFor(golf.ZoneHeld))
			continue
		}
		v.res.Revoke(h)
	}
}

// clickFor builds the click callback for zone. The callback re-checks the
// zone against the current snapshot so a stale handler is harmless.
func (v *View) clickFor(zone golf.Zone) func() {
	return func() {
		if v.last == nil || !v.last.IsPlayable(zone) {
			slog.Debug("click on unplayable zone dropped", "tag", "view", "zone", zone)
			return
		}
		h, ok := v.Handle(zone)
		if !ok {
			return
		}
		if !v.gate.TryClose() {
			slog.Debug("click dropped, waiting on server", "tag", "view", "zone", zone)
			return
		}
		h.SetTint(engine.TintPressed)
		place, idx, _ := zone.Place()
		v.out.Send(golf.CardClick{PlayerID: v.last.LocalPlayerID, Place: place, HandIndex: idx})
		slog.Debug("card click sent", "tag", "view", "zone", zone)
	}
}
