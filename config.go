package oilshape

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

// Config holds the runtime settings read from OILSHAPE_* environment
// variables.
type Config struct {
	Width       int           `envconfig:"WIDTH" default:"1280"`
	Height      int           `envconfig:"HEIGHT" default:"720"`
	TPS         int           `envconfig:"TPS" default:"60"`
	Seed        int64         `envconfig:"SEED" default:"12345"`
	Layers      int           `envconfig:"LAYERS" default:"3"`
	LegDuration time.Duration `envconfig:"LEG_DURATION" default:"8s"`
	MorphMode   MorphMode     `envconfig:"MORPH_MODE" default:"tween"`
	LoopMode    LoopMode      `envconfig:"LOOP_MODE" default:"loop"`
	PresetDir   string        `envconfig:"PRESET_DIR" default:""`
	PaletteFile string        `envconfig:"PALETTE_FILE" default:""`
	ScriptFile  string        `envconfig:"SCRIPT_FILE" default:""`
	Overscan    float64       `envconfig:"OVERSCAN" default:"0.1"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`
	ShowStats   bool          `envconfig:"SHOW_STATS" default:"false"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("oilshape", &cfg); err != nil {
		return nil, fmt.Errorf("oilshape: load config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("oilshape: load config: invalid size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.TPS <= 0 {
		cfg.TPS = defaultTPS
	}
	if cfg.Layers < 1 {
		cfg.Layers = 1
	}
	return &cfg, nil
}

// MorphConfig returns the morph settings carried by the config.
func (c *Config) MorphConfig() MorphConfig {
	return MorphConfig{Mode: c.MorphMode, Loop: c.LoopMode, LegDuration: c.LegDuration}
}

// Logger returns a console logger at the configured level writing to w.
// A nil w writes to stderr.
func (c *Config) Logger(w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(ParseLogLevel(c.LogLevel)).
		With().Timestamp().Str("component", "oilshape").Logger()
}

// ParseLogLevel maps trace, debug, info, warn and error (any case) to a
// zerolog level. Anything else is info.
func ParseLogLevel(s string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
