package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/TheBurgerCoder/verlet/internal/engine"
)

const (
	DefaultDt      = 1.0
	DefaultGravity = 0.5
	DefaultSteps   = 600
)

// Config drives a CLI run. Dt is in frame units and gravity in pixels
// per frame squared; the simulation space is pixel-based throughout.
type Config struct {
	Width   float64      `yaml:"width"`
	Height  float64      `yaml:"height"`
	Dt      float64      `yaml:"dt"`
	Gravity float64      `yaml:"gravity"`
	Steps   int          `yaml:"steps"`
	Scene   string       `yaml:"scene"`      // preset name
	File    string       `yaml:"scene_file"` // JSON scene path, overrides Scene
	Tuning  TuningConfig `yaml:"tuning"`
}

type TuningConfig struct {
	Damping     float64 `yaml:"damping"`
	MaxVelocity float64 `yaml:"max_velocity"`
	Iterations  int     `yaml:"iterations"`
	Margin      float64 `yaml:"margin"`
	Bounce      float64 `yaml:"bounce"`
}

func DefaultConfig() *Config {
	t := engine.DefaultTuning()
	return &Config{
		Width:   engine.DefaultWidth,
		Height:  engine.DefaultHeight,
		Dt:      DefaultDt,
		Gravity: DefaultGravity,
		Steps:   DefaultSteps,
		Scene:   "rope",
		Tuning: TuningConfig{
			Damping:     t.Damping,
			MaxVelocity: t.MaxVelocity,
			Iterations:  t.Iterations,
			Margin:      t.Margin,
			Bounce:      t.Bounce,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Engine builds an engine for the configured bounds and tuning.
func (c *Config) Engine() *engine.Engine {
	e := engine.New(c.Width, c.Height)
	e.Tuning = engine.Tuning{
		Damping:     c.Tuning.Damping,
		MaxVelocity: c.Tuning.MaxVelocity,
		Iterations:  c.Tuning.Iterations,
		Margin:      c.Tuning.Margin,
		Bounce:      c.Tuning.Bounce,
	}
	return e
}
