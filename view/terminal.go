package view

import (
	"log/slog"

	"golf-client/engine"
	"golf-client/golf"
)

const (
	dealButtonText = "DEAL CARDS"
	bannerColor    = "#ffffff"
)

// presentTerminal celebrates when the phase just moved into round_over or
// game_over.
func (v *View) presentTerminal(prev golf.Phase) {
	switch v.last.Phase {
	case golf.RoundOver:
		if prev == golf.RoundOver {
			return
		}
		v.r.Celebrate()
		v.showWinner()
		v.showDealButton()
	case golf.GameOver:
		if prev == golf.GameOver {
			return
		}
		v.r.Celebrate()
		v.showWinner()
		if v.button != nil {
			v.button.Destroy()
			v.button = nil
		}
	}
}

func (v *View) showWinner() {
	w, ok := v.last.Winner()
	if !ok {
		return
	}
	if v.banner != nil {
		v.banner.Destroy()
	}
	v.banner = v.r.NewLabel(engine.LabelSpec{
		At:     v.vp.Banner(),
		Origin: engine.Origin{X: 0.5, Y: 0.5},
		Text:   w.Name + " won!",
		Color:  bannerColor,
		Style:  engine.LabelBanner,
	})
	slog.Info("winner", "tag", "view", "player", w.ID, "name", w.Name, "phase", v.last.Phase)
}

// showDealButton offers the host the next deal.
func (v *View) showDealButton() {
	if !v.last.IsHost || v.button != nil {
		return
	}
	v.button = v.r.NewButton(engine.ButtonSpec{
		At:      v.vp.DealButton(),
		Text:    dealButtonText,
		OnClick: v.startRound,
	})
}

func (v *View) startRound() {
	if v.last == nil || !v.last.IsHost {
		return
	}
	if !v.gate.TryClose() {
		slog.Debug("deal dropped, waiting on server", "tag", "view")
		return
	}
	v.out.Send(golf.StartRound{})
	slog.Debug("start round sent", "tag", "view")
}
