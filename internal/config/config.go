package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Spawn   SpawnConfig   `toml:"spawn"`
	Trickle TrickleConfig `toml:"trickle"`
	Item    ItemConfig    `toml:"item"`
	Timing  TimingConfig  `toml:"timing"`
	Display DisplayConfig `toml:"display"`
	Player  PlayerConfig  `toml:"player"`
	Logging LoggingConfig `toml:"logging"`
	Audio   AudioConfig   `toml:"audio"`
	Paths   PathsConfig   `toml:"paths"`
}

// SpawnConfig is the initial burst volume: x and z in ±Radius, y in the
// height band.
type SpawnConfig struct {
	InitialCount int     `toml:"initial_count"`
	Radius       float64 `toml:"radius"`
	HeightMin    float64 `toml:"height_min"`
	HeightMax    float64 `toml:"height_max"`
	ScaleMin     float64 `toml:"scale_min"`
	ScaleMax     float64 `toml:"scale_max"`
}

// TrickleConfig is the steady-state spawn loop. Its volume is independent of
// the burst volume: x and z in [RangeMin, RangeMax].
type TrickleConfig struct {
	MaxPopulation int           `toml:"max_population"`
	Interval      time.Duration `toml:"interval"`
	RangeMin      float64       `toml:"range_min"`
	RangeMax      float64       `toml:"range_max"`
	HeightMin     float64       `toml:"height_min"`
	HeightMax     float64       `toml:"height_max"`
}

type ItemConfig struct {
	RotationSpeed     float64 `toml:"rotation_speed"` // deg/s when spin_jitter is off
	SpinJitter        bool    `toml:"spin_jitter"`
	LightCastDistance float64 `toml:"light_cast_distance"`
	LightCastRadius   float64 `toml:"light_cast_radius"`
	ColliderRadius    float64 `toml:"collider_radius"` // at scale 1
}

type TimingConfig struct {
	StartDelay time.Duration `toml:"start_delay"`
	TickRate   time.Duration `toml:"tick_rate"`
}

type DisplayConfig struct {
	MaxItems     int           `toml:"max_items"`
	ResetRelease time.Duration `toml:"reset_release"` // reset key counts as held this long after its last event
}

type PlayerConfig struct {
	Speed  float64    `toml:"speed"` // units per second
	Radius float64    `toml:"radius"`
	Start  [3]float64 `toml:"start"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // empty = stderr; the terminal UI owns stdout
}

type AudioConfig struct {
	Enabled bool `toml:"enabled"`
}

type PathsConfig struct {
	Lights  string `toml:"lights"`
	Scripts string `toml:"scripts"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with. A max population
// below the initial count is allowed; see CapacityWarning.
func (c *Config) Validate() error {
	var errs []error
	if c.Spawn.InitialCount < 0 {
		errs = append(errs, errors.New("spawn.initial_count must be >= 0"))
	}
	if c.Spawn.Radius < 0 {
		errs = append(errs, errors.New("spawn.radius must be >= 0"))
	}
	if c.Spawn.HeightMin > c.Spawn.HeightMax {
		errs = append(errs, errors.New("spawn.height_min must be <= spawn.height_max"))
	}
	if c.Spawn.ScaleMin <= 0 || c.Spawn.ScaleMin > c.Spawn.ScaleMax {
		errs = append(errs, errors.New("spawn scale band must satisfy 0 < scale_min <= scale_max"))
	}
	if c.Trickle.MaxPopulation < 0 {
		errs = append(errs, errors.New("trickle.max_population must be >= 0"))
	}
	if c.Trickle.Interval <= 0 {
		errs = append(errs, errors.New("trickle.interval must be > 0"))
	}
	if c.Trickle.RangeMin > c.Trickle.RangeMax {
		errs = append(errs, errors.New("trickle.range_min must be <= trickle.range_max"))
	}
	if c.Trickle.HeightMin > c.Trickle.HeightMax {
		errs = append(errs, errors.New("trickle.height_min must be <= trickle.height_max"))
	}
	if c.Item.LightCastDistance < 0 || c.Item.LightCastRadius < 0 {
		errs = append(errs, errors.New("item light cast distance and radius must be >= 0"))
	}
	if c.Item.ColliderRadius <= 0 {
		errs = append(errs, errors.New("item.collider_radius must be > 0"))
	}
	if c.Timing.StartDelay < 0 {
		errs = append(errs, errors.New("timing.start_delay must be >= 0"))
	}
	if c.Timing.TickRate <= 0 {
		errs = append(errs, errors.New("timing.tick_rate must be > 0"))
	}
	if c.Display.ResetRelease <= 0 {
		errs = append(errs, errors.New("display.reset_release must be > 0"))
	}
	if c.Player.Radius <= 0 {
		errs = append(errs, errors.New("player.radius must be > 0"))
	}
	return errors.Join(errs...)
}

// CapacityWarning describes a latent misconfiguration that leaves the
// trickle loop permanently idle, or returns "" when there is none.
func (c *Config) CapacityWarning() string {
	if c.Trickle.MaxPopulation < c.Spawn.InitialCount {
		return fmt.Sprintf("trickle.max_population (%d) < spawn.initial_count (%d): trickle spawning will never run",
			c.Trickle.MaxPopulation, c.Spawn.InitialCount)
	}
	return ""
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Spawn: SpawnConfig{
			InitialCount: 50,
			Radius:       25,
			HeightMin:    2,
			HeightMax:    5,
			ScaleMin:     0.2,
			ScaleMax:     1.7,
		},
		Trickle: TrickleConfig{
			MaxPopulation: 100,
			Interval:      300 * time.Millisecond,
			RangeMin:      -10,
			RangeMax:      10,
			HeightMin:     2,
			HeightMax:     7,
		},
		Item: ItemConfig{
			RotationSpeed:     180,
			SpinJitter:        true,
			LightCastDistance: 5,
			LightCastRadius:   1,
			ColliderRadius:    0.5,
		},
		Timing: TimingConfig{
			StartDelay: 500 * time.Millisecond,
			TickRate:   16 * time.Millisecond,
		},
		Display: DisplayConfig{
			MaxItems:     50,
			ResetRelease: 600 * time.Millisecond,
		},
		Player: PlayerConfig{
			Speed:  5,
			Radius: 0.5,
			Start:  [3]float64{0, 1, 0},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "litcollect.log",
		},
		Audio: AudioConfig{
			Enabled: true,
		},
		Paths: PathsConfig{
			Lights:  "data/yaml/lights.yaml",
			Scripts: "scripts",
		},
	}
}
