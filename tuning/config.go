// Package tuning holds the game's tunable numbers and loads them from YAML.
package tuning

import (
	"fmt"
	"os"

	"github.com/milk9111/zombieslice/blood"
	"github.com/milk9111/zombieslice/ecs/system"
	"github.com/milk9111/zombieslice/slicer"
	"gopkg.in/yaml.v3"
)

// WorldConfig places the scene planes. Z grows toward the viewer.
type WorldConfig struct {
	FloorY  float64 `yaml:"floor_y"`
	WallZ   float64 `yaml:"wall_z"`
	SpawnZ  float64 `yaml:"spawn_z"`
	NearZ   float64 `yaml:"near_z"`
	Gravity float64 `yaml:"gravity"`
	// FOV is the vertical field of view in radians.
	FOV float64 `yaml:"fov"`
}

type RoundConfig struct {
	Lives int `yaml:"lives"`
	// GameOverDelay is how long the overlay waits before accepting a restart.
	GameOverDelay float64 `yaml:"game_over_delay"`
}

type GestureConfig struct {
	// MinMotion is the NDC distance between samples below which a hand
	// sample is ignored.
	MinMotion float64 `yaml:"min_motion"`
}

// ZombieConfig holds the fallback spawn plan used when the director script
// cannot run.
type ZombieConfig struct {
	Width    float64   `yaml:"width"`
	Height   float64   `yaml:"height"`
	Interval float64   `yaml:"interval"`
	Speed    float64   `yaml:"speed"`
	Scale    float64   `yaml:"scale"`
	MaxAlive int       `yaml:"max_alive"`
	Lanes    []float64 `yaml:"lanes"`
	Script   string    `yaml:"script"`
}

type Config struct {
	World   WorldConfig         `yaml:"world"`
	Round   RoundConfig         `yaml:"round"`
	Gesture GestureConfig       `yaml:"gesture"`
	Zombie  ZombieConfig        `yaml:"zombie"`
	Slice   slicer.Params       `yaml:"slice"`
	Settle  system.SettleParams `yaml:"settle"`
	Blood   blood.Params        `yaml:"blood"`
}

func Default() Config {
	cfg := Config{
		World: WorldConfig{
			FloorY:  -1.6,
			WallZ:   -18,
			SpawnZ:  -16,
			NearZ:   -3,
			Gravity: 0.004,
			FOV:     0.9,
		},
		Round: RoundConfig{
			Lives:         3,
			GameOverDelay: 1,
		},
		Gesture: GestureConfig{MinMotion: 0.02},
		Zombie: ZombieConfig{
			Width:    1.2,
			Height:   2.4,
			Interval: 2.5,
			Speed:    1.5,
			Scale:    1,
			MaxAlive: 6,
			Lanes:    []float64{-2.4, 0, 2.4},
			Script:   "director.tengo",
		},
		Slice:  slicer.DefaultParams(),
		Settle: system.DefaultSettleParams(),
		Blood:  blood.DefaultParams(),
	}
	cfg.sync()
	return cfg
}

// Parse decodes YAML over the defaults, so a file only needs the keys it
// changes. World-level values are then pushed into the sections that share
// them.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("tuning: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	cfg.sync()
	return cfg, nil
}

// Load reads a named tuning file through Read.
func Load(name string) (Config, error) {
	data, err := Read(name)
	if err != nil {
		return Config{}, fmt.Errorf("tuning: load %s: %w", name, err)
	}
	return Parse(data)
}

// LoadFile reads a tuning file from an explicit path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("tuning: load %s: %w", path, err)
	}
	return Parse(data)
}

func (c Config) Validate() error {
	switch {
	case c.Round.Lives <= 0:
		return fmt.Errorf("tuning: round.lives must be positive, got %d", c.Round.Lives)
	case c.World.NearZ <= c.World.SpawnZ:
		return fmt.Errorf("tuning: world.near_z (%v) must be in front of spawn_z (%v)", c.World.NearZ, c.World.SpawnZ)
	case c.World.WallZ > c.World.SpawnZ:
		return fmt.Errorf("tuning: world.wall_z (%v) must be behind spawn_z (%v)", c.World.WallZ, c.World.SpawnZ)
	case c.Blood.PoolSize <= 0:
		return fmt.Errorf("tuning: blood.pool_size must be positive, got %d", c.Blood.PoolSize)
	case c.Slice.Cooldown < 0:
		return fmt.Errorf("tuning: slice.cooldown must not be negative")
	case len(c.Zombie.Lanes) == 0:
		return fmt.Errorf("tuning: zombie.lanes is empty")
	}
	return nil
}

func (c *Config) sync() {
	c.Settle.FloorY = c.World.FloorY
	c.Settle.Gravity = c.World.Gravity
	c.Blood.FloorY = c.World.FloorY
	c.Blood.Gravity = c.World.Gravity
	c.Blood.WallZ = c.World.WallZ
}
