package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"golf-client/layout"
)

// EnvPrefix is prepended to every environment override, e.g. GOLF_HAND_SIZE
// or GOLF_TWEENS_FLIGHT_MS.
const EnvPrefix = "GOLF"

// TweenConfig holds animation timings in milliseconds.
type TweenConfig struct {
	DealCardMS        int `mapstructure:"deal_card_ms"`
	DealCardStaggerMS int `mapstructure:"deal_card_stagger_ms"`
	DealSeatStaggerMS int `mapstructure:"deal_seat_stagger_ms"`
	DeckSlideMS       int `mapstructure:"deck_slide_ms"`
	TableRevealMS     int `mapstructure:"table_reveal_ms"`
	FlightMS          int `mapstructure:"flight_ms"`
	WiggleMS          int `mapstructure:"wiggle_ms"`
}

// Config holds all client settings.
type Config struct {
	ServerURL string `mapstructure:"server_url"`
	AuthToken string `mapstructure:"auth_token"`

	ViewportWidth  int `mapstructure:"viewport_width"`
	ViewportHeight int `mapstructure:"viewport_height"`
	HandSize       int `mapstructure:"hand_size"`
	FrameRateHz    int `mapstructure:"frame_rate_hz"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // compact or pretty

	// DebugAddr enables the view inspection endpoint when non-empty.
	DebugAddr string `mapstructure:"debug_addr"`

	Tweens TweenConfig `mapstructure:"tweens"`
}

// Defaults returns a Config with every default value.
func Defaults() *Config {
	return &Config{
		ServerURL:      "ws://localhost:4000/golf/ws",
		ViewportWidth:  layout.DefaultWidth,
		ViewportHeight: layout.DefaultHeight,
		HandSize:       layout.DefaultHandSize,
		FrameRateHz:    60,
		LogLevel:       "info",
		LogFormat:      "compact",
		Tweens: TweenConfig{
			DealCardMS:        500,
			DealCardStaggerMS: 150,
			DealSeatStaggerMS: 1000,
			DeckSlideMS:       200,
			TableRevealMS:     400,
			FlightMS:          750,
			WiggleMS:          75,
		},
	}
}

// Load reads an optional JSON config file, then applies GOLF_* environment
// overrides. With an empty path ./config.json is used when present. Fields
// set in neither source keep their defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Defaults())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("json")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config.json: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server_url", d.ServerURL)
	v.SetDefault("auth_token", d.AuthToken)
	v.SetDefault("viewport_width", d.ViewportWidth)
	v.SetDefault("viewport_height", d.ViewportHeight)
	v.SetDefault("hand_size", d.HandSize)
	v.SetDefault("frame_rate_hz", d.FrameRateHz)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("debug_addr", d.DebugAddr)
	v.SetDefault("tweens.deal_card_ms", d.Tweens.DealCardMS)
	v.SetDefault("tweens.deal_card_stagger_ms", d.Tweens.DealCardStaggerMS)
	v.SetDefault("tweens.deal_seat_stagger_ms", d.Tweens.DealSeatStaggerMS)
	v.SetDefault("tweens.deck_slide_ms", d.Tweens.DeckSlideMS)
	v.SetDefault("tweens.table_reveal_ms", d.Tweens.TableRevealMS)
	v.SetDefault("tweens.flight_ms", d.Tweens.FlightMS)
	v.SetDefault("tweens.wiggle_ms", d.Tweens.WiggleMS)
}

// Validate rejects values the view cannot work with.
func (c *Config) Validate() error {
	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", c.ViewportWidth, c.ViewportHeight)
	}
	if c.HandSize <= 0 {
		return fmt.Errorf("hand_size must be positive, got %d", c.HandSize)
	}
	if c.FrameRateHz <= 0 {
		return fmt.Errorf("frame_rate_hz must be positive, got %d", c.FrameRateHz)
	}
	switch c.LogFormat {
	case "compact", "pretty":
	default:
		return fmt.Errorf("log_format must be compact or pretty, got %q", c.LogFormat)
	}
	t := c.Tweens
	for name, ms := range map[string]int{
		"deal_card_ms":         t.DealCardMS,
		"deal_card_stagger_ms": t.DealCardStaggerMS,
		"deal_seat_stagger_ms": t.DealSeatStaggerMS,
		"deck_slide_ms":        t.DeckSlideMS,
		"table_reveal_ms":      t.TableRevealMS,
		"flight_ms":            t.FlightMS,
		"wiggle_ms":            t.WiggleMS,
	} {
		if ms <= 0 {
			return fmt.Errorf("tweens.%s must be positive, got %d", name, ms)
		}
	}
	return nil
}

// Viewport is the layout the view draws into.
func (c *Config) Viewport() layout.Viewport {
	return layout.Viewport{
		Width:    float64(c.ViewportWidth),
		Height:   float64(c.ViewportHeight),
		HandSize: c.HandSize,
	}
}

// FrameInterval is the time between engine frames.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FrameRateHz)
}

// MS converts a millisecond setting to a duration.
func MS(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
