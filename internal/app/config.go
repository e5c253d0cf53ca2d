package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

const (
	DefaultRows     = 18
	DefaultCols     = 25
	DefaultRepeatMS = 100
	EnvPrefix       = "TAYLOR_"
)

// Config controls runtime behavior for the editor session.
type Config struct {
	Rows         int    `env:"ROWS"`
	Cols         int    `env:"COLS"`
	DataDir      string `env:"DATA_DIR"`
	PacksDir     string `env:"PACKS_DIR"`
	LogPath      string `env:"LOG_PATH"`
	LogLevel     string `env:"LOG_LEVEL"`
	SnapshotPath string `env:"SNAPSHOT_PATH"`
	ExportPath   string `env:"EXPORT_PATH"`
	TutorialMode bool   `env:"TUTORIAL_MODE"`
	Tutorial     string `env:"TUTORIAL"`
	Theme        string `env:"THEME"`
	Editing      EditingConfig
}

type EditingConfig struct {
	AutoShift   bool `env:"AUTO_SHIFT"`
	SmartDelete bool `env:"SMART_DELETE"`
	FastMove    bool `env:"FAST_MOVE"`
	RepeatMS    int  `env:"REPEAT_MS"`
}

func DefaultConfig() Config {
	return Config{
		Rows:     DefaultRows,
		Cols:     DefaultCols,
		PacksDir: "packs",
		LogLevel: "info",
		Theme:    "modern_arcade",
		Editing: EditingConfig{
			RepeatMS: DefaultRepeatMS,
		},
	}
}

// LoadConfig overlays TAYLOR_* environment variables on base.
func LoadConfig(base Config) (Config, error) {
	cfg := base
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Rows < 1 || c.Cols < 1 {
		return fmt.Errorf("invalid grid size %dx%d", c.Rows, c.Cols)
	}
	switch strings.ToLower(c.LogLevel) {
	case "":
		c.LogLevel = "info"
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	switch c.Theme {
	case "":
		c.Theme = "modern_arcade"
	case "modern_arcade", "high_contrast", "retro_terminal":
	default:
		return fmt.Errorf("invalid theme %q", c.Theme)
	}
	if c.Editing.RepeatMS <= 0 {
		c.Editing.RepeatMS = DefaultRepeatMS
	}
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.New("cannot resolve user home directory")
		}
		c.DataDir = filepath.Join(home, ".local", "share", "taylorframe")
	}
	if c.SnapshotPath == "" {
		c.SnapshotPath = filepath.Join(c.DataDir, "frame.json")
	}
	if c.ExportPath == "" {
		c.ExportPath = filepath.Join(c.DataDir, "frame.txt")
	}
	return nil
}

func (c Config) StatePath() string {
	return filepath.Join(c.DataDir, "state.db")
}
