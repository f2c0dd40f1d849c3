package console

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"golf-client/config"
	"golf-client/engine/headless"
	"golf-client/golf"
	"golf-client/view"
)

// inline runs closures immediately, standing in for a session.
type inline struct{ v *view.View }

func (r inline) Do(_ context.Context, fn func(v *view.View)) error {
	fn(r.v)
	return nil
}

type sink struct{ intents []golf.Intent }

func (s *sink) Send(i golf.Intent) { s.intents = append(s.intents, i) }

func loaded(t *testing.T, s golf.Snapshot) (*Console, *sink, *bytes.Buffer) {
	t.Helper()
	eng := headless.New()
	out := &sink{}
	v := view.New(config.Defaults(), eng, out)
	if err := v.Apply(golf.SnapshotLoaded{Snapshot: s}); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	return New(inline{v}, eng, &buf), out, &buf
}

func game(phase golf.Phase, playable ...golf.Zone) golf.Snapshot {
	s := golf.Snapshot{
		Phase: phase,
		Players: []golf.Player{
			{ID: 1, Name: "alice", Seat: golf.Bottom, CanAct: true},
			{ID: 2, Name: "bob", Seat: golf.Top},
		},
		LocalPlayerID: 1,
		FirstPlayerID: 1,
		IsHost:        true,
		Playable:      playable,
	}
	if phase != golf.NoRound {
		for i := range s.Players {
			for _, r := range "A23456" {
				s.Players[i].Hand = append(s.Players[i].Hand, golf.HandCard{Card: golf.Card(string(r) + "S")})
			}
		}
		s.TableCards = []golf.Card{"KD"}
	}
	return s
}

func TestParse(t *testing.T) {
	cases := map[string]Command{
		"click deck":    {Verb: "click", Zone: golf.ZoneDeck},
		"  CLICK Table": {Verb: "click", Zone: golf.ZoneTable},
		"click held":    {Verb: "click", Zone: golf.ZoneHeld},
		"click hand 3":  {Verb: "click", Zone: golf.HandZone(3)},
		"deal":          {Verb: "deal"},
		"status":        {Verb: "status"},
		"":              {},
	}
	for in, want := range cases {
		got, err := Parse(in)
		if err != nil || got != want {
			t.Errorf("Parse(%q) = %+v, %v; want %+v", in, got, err, want)
		}
	}
	for _, bad := range []string{"jump", "click", "click hand", "click hand -1", "click hand x", "click deck now", "deal 2"} {
		if _, err := Parse(bad); !errors.Is(err, ErrUnknownCommand) {
			t.Errorf("Parse(%q) should fail with ErrUnknownCommand, got %v", bad, err)
		}
	}
}

func TestExec_ClickPlayableZone(t *testing.T) {
	c, out, _ := loaded(t, game(golf.InRound, golf.ZoneDeck, golf.HandZone(2)))

	if err := c.Exec(context.Background(), "click hand 2"); err != nil {
		t.Fatal(err)
	}
	if len(out.intents) != 1 {
		t.Fatalf("expected one intent, got %d", len(out.intents))
	}
	click, ok := out.intents[0].(golf.CardClick)
	if !ok || click.Place != golf.PlaceHand || click.HandIndex == nil || *click.HandIndex != 2 {
		t.Errorf("unexpected intent %+v", out.intents[0])
	}
}

func TestExec_ClickNotPlayable(t *testing.T) {
	c, out, _ := loaded(t, game(golf.InRound, golf.ZoneDeck))

	if err := c.Exec(context.Background(), "click table"); !errors.Is(err, ErrNotPlayable) {
		t.Errorf("expected ErrNotPlayable, got %v", err)
	}
	if err := c.Exec(context.Background(), "click held"); !errors.Is(err, ErrNotPlayable) {
		t.Errorf("missing held card should not be clickable, got %v", err)
	}
	if len(out.intents) != 0 {
		t.Errorf("expected no intents, got %v", out.intents)
	}
}

func TestExec_Deal(t *testing.T) {
	c, out, _ := loaded(t, game(golf.NoRound))

	if err := c.Exec(context.Background(), "deal"); err != nil {
		t.Fatal(err)
	}
	if len(out.intents) != 1 {
		t.Fatalf("expected StartRound, got %v", out.intents)
	}
	if _, ok := out.intents[0].(golf.StartRound); !ok {
		t.Errorf("expected StartRound, got %T", out.intents[0])
	}
}

func TestExec_Status(t *testing.T) {
	c, _, buf := loaded(t, game(golf.InRound, golf.ZoneDeck))

	if err := c.Exec(context.Background(), "status"); err != nil {
		t.Fatal(err)
	}
	var s map[string]any
	if err := json.Unmarshal(buf.Bytes(), &s); err != nil {
		t.Fatalf("status is not JSON: %v\n%s", err, buf.String())
	}
	if s["state"] != "round_active" {
		t.Errorf("unexpected status %s", buf.String())
	}
}

func TestRun_ReportsBadCommandsAndStopsAtQuit(t *testing.T) {
	c, out, buf := loaded(t, game(golf.InRound, golf.ZoneDeck))

	input := "dance\nclick table\nclick deck\nquit\nclick deck\n"
	if err := c.Run(context.Background(), strings.NewReader(input)); err != nil {
		t.Fatal(err)
	}
	text := buf.String()
	if !strings.Contains(text, "unknown command") || !strings.Contains(text, "nothing to click there") {
		t.Errorf("expected both errors reported, got %q", text)
	}
	if len(out.intents) != 1 {
		t.Errorf("commands after quit must not run; intents %v", out.intents)
	}
}

func TestRun_EOF(t *testing.T) {
	c, _, _ := loaded(t, game(golf.NoRound))
	if err := c.Run(context.Background(), strings.NewReader("")); err != nil {
		t.Errorf("EOF should end Run cleanly, got %v", err)
	}
}
