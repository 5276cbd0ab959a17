package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/OCharnyshevich/voxel-core/internal/engine/player"
	"github.com/OCharnyshevich/voxel-core/internal/engine/world/block"
	"github.com/OCharnyshevich/voxel-core/internal/engine/world/gen"
)

// Config holds the engine configuration.
type Config struct {
	Seed          int64   `json:"seed" toml:"seed"`
	GeneratorType string  `json:"generator_type" toml:"generator_type"` // "default" or "flat"
	FlatHeight    int     `json:"flat_height" toml:"flat_height"`
	WorldRadius   int     `json:"world_radius" toml:"world_radius"` // world boundary in chunks
	PlaceMaterial string  `json:"place_material" toml:"place_material"`
	RayStep       float64 `json:"ray_step" toml:"ray_step"`
	RayDistance   float64 `json:"ray_distance" toml:"ray_distance"`
	RayMode       string  `json:"ray_mode" toml:"ray_mode"` // "march" or "dda"
	Workers       int     `json:"workers" toml:"workers"`   // 0 = one per CPU
	FrameRate     int     `json:"frame_rate" toml:"frame_rate"`
	LogLevel      string  `json:"log_level" toml:"log_level"`

	Terrain Terrain `json:"terrain" toml:"terrain"`
}

// Terrain shapes the default generator's height field.
type Terrain struct {
	Scale       float64 `json:"scale" toml:"scale"`
	Amplitude   float64 `json:"amplitude" toml:"amplitude"`
	Base        float64 `json:"base" toml:"base"`
	Octaves     int     `json:"octaves" toml:"octaves"`
	Persistence float64 `json:"persistence" toml:"persistence"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	d := gen.DefaultTerrain
	return &Config{
		GeneratorType: "default",
		FlatHeight:    64,
		WorldRadius:   5,
		PlaceMaterial: "stone",
		RayStep:       float64(player.DefaultCaster.Step),
		RayDistance:   float64(player.DefaultCaster.MaxDistance),
		RayMode:       "march",
		FrameRate:     60,
		LogLevel:      "info",
		Terrain: Terrain{
			Scale:       d.Scale,
			Amplitude:   d.Amplitude,
			Base:        d.Base,
			Octaves:     d.Octaves,
			Persistence: d.Persistence,
		},
	}
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["generator"] {
		cfg.GeneratorType = fromFile.GeneratorType
	}
	if !explicitFlags["flat-height"] {
		cfg.FlatHeight = fromFile.FlatHeight
	}
	if !explicitFlags["world-radius"] {
		cfg.WorldRadius = fromFile.WorldRadius
	}
	if !explicitFlags["place-material"] {
		cfg.PlaceMaterial = fromFile.PlaceMaterial
	}
	if !explicitFlags["ray-step"] {
		cfg.RayStep = fromFile.RayStep
	}
	if !explicitFlags["ray-distance"] {
		cfg.RayDistance = fromFile.RayDistance
	}
	if !explicitFlags["ray-mode"] {
		cfg.RayMode = fromFile.RayMode
	}
	if !explicitFlags["workers"] {
		cfg.Workers = fromFile.Workers
	}
	if !explicitFlags["frame-rate"] {
		cfg.FrameRate = fromFile.FrameRate
	}
	if !explicitFlags["log-level"] {
		cfg.LogLevel = fromFile.LogLevel
	}
	cfg.Terrain = fromFile.Terrain
}

// Validate reports every invalid field of cfg.
func (c *Config) Validate() error {
	var errs []error
	switch c.GeneratorType {
	case "default", "flat":
	default:
		errs = append(errs, fmt.Errorf("generator_type %q: want default or flat", c.GeneratorType))
	}
	if c.FlatHeight < 0 || c.FlatHeight > gen.MaxHeight {
		errs = append(errs, fmt.Errorf("flat_height %d: out of range [0, %d]", c.FlatHeight, gen.MaxHeight))
	}
	if c.WorldRadius < 1 {
		errs = append(errs, fmt.Errorf("world_radius %d: must be at least 1", c.WorldRadius))
	}
	if m, err := block.ParseMaterial(c.PlaceMaterial); err != nil {
		errs = append(errs, fmt.Errorf("place_material: %w", err))
	} else if m == block.Air {
		errs = append(errs, errors.New("place_material: cannot place air"))
	}
	if c.RayStep <= 0 {
		errs = append(errs, fmt.Errorf("ray_step %v: must be positive", c.RayStep))
	}
	if c.RayDistance <= 0 {
		errs = append(errs, fmt.Errorf("ray_distance %v: must be positive", c.RayDistance))
	}
	if _, err := player.ParseMode(c.RayMode); err != nil {
		errs = append(errs, fmt.Errorf("ray_mode: %w", err))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers %d: must not be negative", c.Workers))
	}
	if c.FrameRate < 1 {
		errs = append(errs, fmt.Errorf("frame_rate %d: must be at least 1", c.FrameRate))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.Terrain.Scale <= 0 {
		errs = append(errs, fmt.Errorf("terrain.scale %v: must be positive", c.Terrain.Scale))
	}
	if c.Terrain.Octaves < 1 {
		errs = append(errs, fmt.Errorf("terrain.octaves %d: must be at least 1", c.Terrain.Octaves))
	}
	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(c.LogLevel))
	return l, err
}

// Material parses PlaceMaterial.
func (c *Config) Material() (block.Material, error) {
	return block.ParseMaterial(c.PlaceMaterial)
}

// Caster builds the ray caster described by the ray settings.
func (c *Config) Caster() (player.Caster, error) {
	mode, err := player.ParseMode(c.RayMode)
	if err != nil {
		return player.Caster{}, err
	}
	return player.Caster{
		Step:        float32(c.RayStep),
		MaxDistance: float32(c.RayDistance),
		Mode:        mode,
	}, nil
}

// Heights builds the ground height function for the configured generator.
func (c *Config) Heights() gen.HeightFunc {
	if c.GeneratorType == "flat" {
		return gen.Flat(c.FlatHeight)
	}
	return gen.NewTerrain(c.Seed, gen.TerrainParams{
		Scale:       c.Terrain.Scale,
		Amplitude:   c.Terrain.Amplitude,
		Base:        c.Terrain.Base,
		Octaves:     c.Terrain.Octaves,
		Persistence: c.Terrain.Persistence,
	}).Height
}
