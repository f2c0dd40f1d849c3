package view

import (
	"log/slog"
	"time"

	"golf-client/anim"
	"golf-client/engine"
	"golf-client/golf"
	"golf-client/viewerrors"
)

// OnRoundStarted clears the previous round and deals s: cards fly from the
// deck seat by seat starting with the first player, then the deck slides
// aside and the first table card is turned over.
func (v *View) OnRoundStarted(s golf.Snapshot) error {
	if err := s.Validate(v.vp.HandSize); err != nil {
		return logReject(err)
	}
	order, err := s.TurnOrder()
	if err != nil {
		return logReject(viewerrors.Protocol("round_started", err, "turn order"))
	}

	v.seq.CancelAll()
	v.clearRound()
	v.last = &s

	start := v.vp.Deck(golf.NoRound)
	if v.deck == nil {
		v.deck = v.newCard(start, golf.DownCard)
	}
	v.deck.SetPosition(start)

	deal := v.seq.Prepare()
	// later seats are created first so the first player's cards end on top
	for turn := len(order) - 1; turn >= 0; turn-- {
		p := order[turn]
		hand := make([]engine.CardHandle, len(p.Hand))
		for j, hc := range p.Hand {
			hand[j] = v.newCard(start, s.Visible(hc))
			deal.Add(anim.Transition{
				Target:   hand[j],
				To:       v.slot(p.Seat, j),
				Duration: v.tm.dealCard,
				Delay:    time.Duration(len(p.Hand)-1-j)*v.tm.cardStagger + time.Duration(turn)*v.tm.seatStagger,
				Ease:     engine.QuadInOut,
			})
		}
		if len(hand) > 0 {
			v.hands[p.Seat] = hand
		}
	}
	for i := range s.Players {
		v.reconcileHeld(&s.Players[i])
	}
	v.reconcileLabels()
	v.syncPlayability()

	deal.Then(v.slideDeck)
	deal.Release()

	v.accept(&s)
	slog.Info("round started", "tag", "view", "first_player", s.FirstPlayerID, "cards", deal.Len())
	return nil
}

func (v *View) slideDeck() {
	v.seq.Run(anim.Transition{
		Target:   v.deck,
		To:       v.vp.Deck(golf.InRound),
		Duration: v.tm.deckSlide,
		Ease:     engine.QuadOut,
	}).Then(v.revealTable)
}

// revealTable lays the table pile and flies its top card out of the deck.
func (v *View) revealTable() {
	v.reconcileTable()
	if len(v.table) > 0 {
		from := v.deck.Position()
		v.table[0].BringToTop()
		v.seq.Run(anim.Transition{
			Target:   v.table[0],
			From:     &from,
			To:       v.vp.Table(),
			Duration: v.tm.tableReveal,
			Ease:     engine.QuadOut,
		})
	}
	v.syncPlayability()
}
