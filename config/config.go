// Package config loads the game settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

type Config struct {
	SaveDir  string   `yaml:"save_dir"`
	Baseline Baseline `yaml:"baseline"`
	Cards    Cards    `yaml:"cards"`
	Log      Log      `yaml:"log"`
}

// Baseline is the starting stats for levels that do not set their own.
// Pointers tell an explicit zero apart from a missing value.
type Baseline struct {
	Attack *float64 `yaml:"attack"`
	Armor  *float64 `yaml:"armor"`
	Health *float64 `yaml:"health"`
}

// Cards holds how much each resource card adds and how hands are dealt.
// A zero ShuffleSeed deals cards in the order the level lists them.
type Cards struct {
	ArmorBonus  float64 `yaml:"armor_bonus"`
	HealthBonus float64 `yaml:"health_bonus"`
	ShuffleSeed int64   `yaml:"shuffle_seed"`
}

type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func float(v float64) *float64 { return &v }

func (b *Baseline) ApplyDefaults() {
	if b.Attack == nil {
		b.Attack = float(1)
	}
	if b.Armor == nil {
		b.Armor = float(0)
	}
	if b.Health == nil {
		b.Health = float(1)
	}
}

func (c *Cards) ApplyDefaults() {
	if c.ArmorBonus == 0 {
		c.ArmorBonus = 1
	}
	if c.HealthBonus == 0 {
		c.HealthBonus = 1
	}
}

func (c *Config) ApplyDefaults() {
	if c.SaveDir == "" {
		c.SaveDir = "saves"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	c.Baseline.ApplyDefaults()
	c.Cards.ApplyDefaults()
}

// Default returns a config with every default applied.
func Default() *Config {
	var c Config
	c.ApplyDefaults()
	return &c
}

// Load reads path and applies defaults. A missing file is not an error:
// the defaults are returned. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	var r Config
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(b, &r); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}
	applyEnv(&r)
	r.ApplyDefaults()
	if _, err := zapcore.ParseLevel(r.Log.Level); err != nil {
		return nil, fmt.Errorf("config %s: log.level: %w", path, err)
	}
	return &r, nil
}

// applyEnv overrides file values with NORDICGRID_* variables when set.
func applyEnv(c *Config) {
	if v := os.Getenv("NORDICGRID_SAVE_DIR"); v != "" {
		c.SaveDir = v
	}
	if v := os.Getenv("NORDICGRID_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("NORDICGRID_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := getEnvFloat("NORDICGRID_ARMOR_BONUS"); v > 0 {
		c.Cards.ArmorBonus = v
	}
	if v := getEnvFloat("NORDICGRID_HEALTH_BONUS"); v > 0 {
		c.Cards.HealthBonus = v
	}
}

func getEnvFloat(key string) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return 0
	}
	return v
}

// NewLogger builds the logger described by the log section. Without a file
// it returns a no-op logger, because the terminal belongs to the game.
func (c *Config) NewLogger() (*zap.Logger, error) {
	if c.Log.File == "" {
		return zap.NewNop(), nil
	}
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{c.Log.File}
	zc.ErrorOutputPaths = []string{c.Log.File}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.DisableStacktrace = true
	log, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("opening log %s: %w", c.Log.File, err)
	}
	return log, nil
}
