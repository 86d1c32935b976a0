package config

import (
	"fmt"
	"os"
	"othello/meta"
	"othello/simulator"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the command line tools. Keys missing
// from a YAML file keep the defaults.
type Config struct {
	LogLevel     string  `yaml:"log_level"`
	Goroutines   int     `yaml:"goroutines"`
	Seed         uint64  `yaml:"seed"`
	Seeded       bool    `yaml:"seeded"`
	DrawPolicy   string  `yaml:"draw_policy"`
	Playouts     int     `yaml:"playouts"`
	MovePlayouts int     `yaml:"move_playouts"`
	Games        int     `yaml:"games"`
	Temperature  float64 `yaml:"temperature"`
	OutDir       string  `yaml:"out_dir"`
}

func Default() Config {
	return Config{
		LogLevel:     "info",
		Goroutines:   meta.GO_ROUTINES,
		DrawPolicy:   "half",
		Playouts:     meta.PLAYOUTS,
		MovePlayouts: meta.MOVE_PLAYOUTS,
		Games:        meta.GAMES,
	}
}

// Load reads a YAML file over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	if c.DrawPolicy != "half" && c.DrawPolicy != "none" {
		return fmt.Errorf("invalid draw_policy %q: want half or none", c.DrawPolicy)
	}
	if c.Goroutines < 0 {
		return fmt.Errorf("invalid goroutines %d", c.Goroutines)
	}
	if c.Playouts <= 0 || c.MovePlayouts <= 0 {
		return fmt.Errorf("playouts must be positive")
	}
	if c.Games <= 0 {
		return fmt.Errorf("games must be positive")
	}
	if c.Temperature < 0 {
		return fmt.Errorf("invalid temperature %v", c.Temperature)
	}
	return nil
}

// FillSeed draws a fresh Seed when none was configured, so agents seeded from
// it play different games on every run. Seeded stays false and simulations
// remain unseeded.
func (c *Config) FillSeed() {
	if !c.Seeded {
		c.Seed = simulator.NewSeed()
	}
}

// Level returns the parsed log level. Call Validate first.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
