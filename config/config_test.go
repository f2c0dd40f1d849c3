package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.ViewportWidth != 950 || cfg.ViewportHeight != 1200 {
		t.Errorf("expected 950x1200 viewport, got %dx%d", cfg.ViewportWidth, cfg.ViewportHeight)
	}
	if cfg.HandSize != 6 {
		t.Errorf("expected HandSize=6, got %d", cfg.HandSize)
	}
	if cfg.Tweens.DealCardMS != 500 {
		t.Errorf("expected DealCardMS=500, got %d", cfg.Tweens.DealCardMS)
	}
	if cfg.Tweens.FlightMS != 750 {
		t.Errorf("expected FlightMS=750, got %d", cfg.Tweens.FlightMS)
	}
	if cfg.Tweens.WiggleMS != 75 {
		t.Errorf("expected WiggleMS=75, got %d", cfg.Tweens.WiggleMS)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GOLF_HAND_SIZE", "4")
	t.Setenv("GOLF_SERVER_URL", "ws://example.test/ws")
	t.Setenv("GOLF_TWEENS_FLIGHT_MS", "300")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HandSize != 4 {
		t.Errorf("expected HandSize=4 after env override, got %d", cfg.HandSize)
	}
	if cfg.ServerURL != "ws://example.test/ws" {
		t.Errorf("expected ServerURL override, got %q", cfg.ServerURL)
	}
	if cfg.Tweens.FlightMS != 300 {
		t.Errorf("expected FlightMS=300 after env override, got %d", cfg.Tweens.FlightMS)
	}
	if cfg.Tweens.WiggleMS != 75 {
		t.Errorf("expected WiggleMS default to survive, got %d", cfg.Tweens.WiggleMS)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "golf.json")
	body := `{"viewport_width": 800, "log_format": "pretty", "tweens": {"deck_slide_ms": 50}}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ViewportWidth != 800 {
		t.Errorf("expected ViewportWidth=800, got %d", cfg.ViewportWidth)
	}
	if cfg.LogFormat != "pretty" {
		t.Errorf("expected LogFormat=pretty, got %q", cfg.LogFormat)
	}
	if cfg.Tweens.DeckSlideMS != 50 {
		t.Errorf("expected DeckSlideMS=50, got %d", cfg.Tweens.DeckSlideMS)
	}
	if cfg.ViewportHeight != 1200 {
		t.Errorf("expected ViewportHeight default, got %d", cfg.ViewportHeight)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected an error for a missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	cfg.HandSize = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for hand_size=0")
	}

	cfg = Defaults()
	cfg.Tweens.FlightMS = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative flight_ms")
	}

	cfg = Defaults()
	cfg.LogFormat = "xml"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown log_format")
	}
}

func TestDerivedValues(t *testing.T) {
	cfg := Defaults()

	if got := cfg.FrameInterval(); got != time.Second/60 {
		t.Errorf("expected 1/60s frame, got %v", got)
	}
	vp := cfg.Viewport()
	if vp.Width != 950 || vp.Height != 1200 || vp.HandSize != 6 {
		t.Errorf("unexpected viewport %+v", vp)
	}
	if MS(150) != 150*time.Millisecond {
		t.Errorf("MS(150) = %v", MS(150))
	}
}
