package view

import (
	"log/slog"

	"golf-client/golf"
)

// OnSnapshotLoaded rebuilds the whole scene from s with no animation.
func (v *View) OnSnapshotLoaded(s golf.Snapshot) error {
	if err := s.Validate(v.vp.HandSize); err != nil {
		return logReject(err)
	}

	v.seq.CancelAll()
	v.clearRound()
	if v.deck != nil {
		v.destroy(v.deck)
	}
	v.last = &s

	v.deck = v.newCard(v.vp.Deck(s.Phase), golf.DownCard)
	if s.Phase != golf.NoRound {
		v.reconcileTable()
		for i := range s.Players {
			v.reconcileHand(&s.Players[i])
			v.reconcileHeld(&s.Players[i])
		}
	}
	v.reconcileLabels()
	v.syncPlayability()

	switch s.Phase {
	case golf.NoRound:
		v.showDealButton()
	case golf.RoundOver:
		v.showWinner()
		v.showDealButton()
	case golf.GameOver:
		v.showWinner()
	}

	v.accept(&s)
	slog.Info("snapshot loaded", "tag", "view", "phase", s.Phase, "players", len(s.Players))
	return nil
}
