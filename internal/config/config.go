// Package config loads skirmish settings from YAML.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Skirmish/internal/game"
)

// Config is the on-disk shape of a skirmish configuration. Fields missing
// from the file keep their Default values.
type Config struct {
	Field     FieldConfig   `yaml:"field"`
	Fade      FadeConfig    `yaml:"fade"`
	Collect   CollectConfig `yaml:"collect"`
	Spawn     SpawnConfig   `yaml:"spawn"`
	HUD       HUDConfig     `yaml:"hud"`
	SpriteDir string        `yaml:"sprite_dir"` // empty: draw shapes
	Units     UnitsConfig   `yaml:"units"`
}

type FieldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type FadeConfig struct {
	Step     float64       `yaml:"step"`
	Interval time.Duration `yaml:"interval"`
}

type CollectConfig struct {
	Radius   int `yaml:"radius"`
	Quantity int `yaml:"quantity"`
}

type SpawnConfig struct {
	Padding int `yaml:"padding"` // kept clear of the right and bottom edges
}

type HUDConfig struct {
	StatusPoll time.Duration `yaml:"status_poll"`
	FeedSize   int           `yaml:"feed_size"`
}

type UnitsConfig struct {
	Villager UnitConfig `yaml:"villager"`
	Archer   UnitConfig `yaml:"archer"`
	Knight   UnitConfig `yaml:"knight"`
}

// UnitConfig overrides the balance values of one unit kind.
type UnitConfig struct {
	Health       int      `yaml:"health"`
	Attack       int      `yaml:"attack"`
	Speed        int      `yaml:"speed"`
	MountedSpeed int      `yaml:"mounted_speed,omitempty"`
	Range        int      `yaml:"range"`
	Aura         [4]uint8 `yaml:"aura,flow"` // r, g, b, a
	SpriteSize   int      `yaml:"sprite_size"`
}

// Default returns the stock configuration.
func Default() Config {
	s := game.DefaultSettings()
	tt := game.DefaultTraits()
	return Config{
		Field:   FieldConfig{Width: s.FieldW, Height: s.FieldH},
		Fade:    FadeConfig{Step: s.FadeStep, Interval: game.DefaultFadeInterval},
		Collect: CollectConfig{Radius: s.CollectRadius, Quantity: s.ResourceQuantity},
		Spawn:   SpawnConfig{Padding: 50},
		HUD:     HUDConfig{StatusPoll: 100 * time.Millisecond, FeedSize: 8},
		Units: UnitsConfig{
			Villager: fromTraits(tt.Of(game.Villager)),
			Archer:   fromTraits(tt.Of(game.Archer)),
			Knight:   fromTraits(tt.Of(game.Knight)),
		},
	}
}

func fromTraits(t game.Traits) UnitConfig {
	return UnitConfig{
		Health:       t.Health,
		Attack:       t.Attack,
		Speed:        t.Speed,
		MountedSpeed: t.MountedSpeed,
		Range:        t.Range,
		Aura:         [4]uint8{t.Aura.R, t.Aura.G, t.Aura.B, t.Aura.A},
		SpriteSize:   t.SpriteW,
	}
}

// Load reads path and decodes it over Default. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Write encodes cfg as YAML.
func (c Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

// Validate reports every out-of-range value at once.
func (c Config) Validate() error {
	var errs []error
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		errs = append(errs, fmt.Errorf("field: size %dx%d must be positive", c.Field.Width, c.Field.Height))
	}
	if c.Fade.Step <= 0 || c.Fade.Step > 1 {
		errs = append(errs, fmt.Errorf("fade: step %.3f must be in (0,1]", c.Fade.Step))
	}
	if c.Fade.Interval <= 0 {
		errs = append(errs, fmt.Errorf("fade: interval %s must be positive", c.Fade.Interval))
	}
	if c.Collect.Radius < 0 {
		errs = append(errs, fmt.Errorf("collect: radius %d is negative", c.Collect.Radius))
	}
	if c.Collect.Quantity <= 0 {
		errs = append(errs, fmt.Errorf("collect: quantity %d must be positive", c.Collect.Quantity))
	}
	if c.Spawn.Padding < 0 {
		errs = append(errs, fmt.Errorf("spawn: padding %d is negative", c.Spawn.Padding))
	}
	if c.HUD.StatusPoll <= 0 {
		errs = append(errs, fmt.Errorf("hud: status_poll %s must be positive", c.HUD.StatusPoll))
	}
	for _, k := range game.AllKinds {
		u := c.Units.of(k)
		if u.Health <= 0 {
			errs = append(errs, fmt.Errorf("units.%s: health %d must be positive", k, u.Health))
		}
		if u.Attack < 0 || u.Speed < 0 || u.MountedSpeed < 0 || u.Range < 0 {
			errs = append(errs, fmt.Errorf("units.%s: attack, speed and range must not be negative", k))
		}
		if u.SpriteSize <= 0 {
			errs = append(errs, fmt.Errorf("units.%s: sprite_size %d must be positive", k, u.SpriteSize))
		}
	}
	return errors.Join(errs...)
}

func (u UnitsConfig) of(k game.UnitKind) UnitConfig {
	switch k {
	case game.Archer:
		return u.Archer
	case game.Knight:
		return u.Knight
	default:
		return u.Villager
	}
}

// Settings converts the field-wide values for game.WithSettings.
func (c Config) Settings() game.Settings {
	return game.Settings{
		FieldW:           c.Field.Width,
		FieldH:           c.Field.Height,
		FadeStep:         c.Fade.Step,
		CollectRadius:    c.Collect.Radius,
		ResourceQuantity: c.Collect.Quantity,
	}
}

// Traits overlays the configured balance values on the default trait table.
// Capabilities (who attacks, who mounts) are fixed per kind.
func (c Config) Traits() game.TraitTable {
	tt := game.DefaultTraits()
	for _, k := range game.AllKinds {
		u := c.Units.of(k)
		t := tt[k]
		t.Health = u.Health
		t.Attack = u.Attack
		t.Speed = u.Speed
		if t.Mountable {
			t.MountedSpeed = u.MountedSpeed
		}
		t.Range = u.Range
		t.Aura = color.RGBA{R: u.Aura[0], G: u.Aura[1], B: u.Aura[2], A: u.Aura[3]}
		t.SpriteW = u.SpriteSize
		t.SpriteH = u.SpriteSize
		tt[k] = t
	}
	return tt
}
