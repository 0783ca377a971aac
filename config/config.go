// Package config loads the YAML settings for the pong server and terminal client.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	TickRate   int    `yaml:"tick_rate"`
	// AIDifficulty sets how well the single player opponent plays, from 0 to 1.
	AIDifficulty   float64        `yaml:"ai_difficulty"`
	PaddleHitGuard bool           `yaml:"paddle_hit_guard"`
	LogLevel       string         `yaml:"log_level"`
	LogFile        string         `yaml:"log_file"`
	InputRate      float64        `yaml:"input_rate"`
	InputBurst     int            `yaml:"input_burst"`
	Sounds         bool           `yaml:"sounds"`
	Terminal       TerminalConfig `yaml:"terminal"`
}

type TerminalConfig struct {
	// KeyHoldMS is how long a key counts as held after a press, since terminals
	// report no key releases.
	KeyHoldMS int `yaml:"key_hold_ms"`
}

func Default() Config {
	return Config{
		ListenAddr:   ":8080",
		TickRate:     60,
		AIDifficulty: 0.5,
		LogLevel:     "info",
		InputRate:    120,
		InputBurst:   240,
		Sounds:       true,
		Terminal: TerminalConfig{
			KeyHoldMS: 150,
		},
	}
}

// Load reads the file at path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		cfg := Default()
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.ListenAddr == "":
		return fmt.Errorf("%w: listen_addr must be set", ErrInvalid)
	case c.TickRate <= 0 || c.TickRate > 1000:
		return fmt.Errorf("%w: tick_rate %d out of range (1-1000)", ErrInvalid, c.TickRate)
	case c.AIDifficulty < 0 || c.AIDifficulty > 1:
		return fmt.Errorf("%w: ai_difficulty %v out of range (0-1)", ErrInvalid, c.AIDifficulty)
	case c.InputRate <= 0:
		return fmt.Errorf("%w: input_rate must be positive", ErrInvalid)
	case c.InputBurst <= 0:
		return fmt.Errorf("%w: input_burst must be positive", ErrInvalid)
	case c.Terminal.KeyHoldMS <= 0:
		return fmt.Errorf("%w: terminal.key_hold_ms must be positive", ErrInvalid)
	}
	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error", "critical", "off":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalid, c.LogLevel)
	}
	return nil
}

// FrameInterval is the time between simulation steps.
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

func (c Config) KeyHold() time.Duration {
	return time.Duration(c.Terminal.KeyHoldMS) * time.Millisecond
}
