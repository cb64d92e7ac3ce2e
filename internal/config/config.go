// Package config provides YAML-based configuration loading for the cavern
// sandbox: collision tuning, cave generation, the walker and world building.
package config

import (
	"fmt"

	"github.com/vovakirdan/cavern/internal/cave"
	"github.com/vovakirdan/cavern/internal/collision"
	"github.com/vovakirdan/cavern/internal/walker"
	"github.com/vovakirdan/cavern/internal/world"
)

// Config is the full sandbox configuration.
type Config struct {
	Controller ControllerConfig `yaml:"controller"`
	Cave       CaveConfig       `yaml:"cave"`
	Walker     WalkerConfig     `yaml:"walker"`
	World      WorldConfig      `yaml:"world"`
}

// ControllerConfig tunes the collision resolver.
type ControllerConfig struct {
	Mask               uint    `yaml:"mask"`              // 0 selects every layer
	MaxClimbAngle      float64 `yaml:"max_climb_angle"`   // Degrees
	MaxDescendAngle    float64 `yaml:"max_descend_angle"` // Degrees
	SkinWidth          float64 `yaml:"skin_width"`
	HorizontalRayCount int     `yaml:"horizontal_ray_count"`
	VerticalRayCount   int     `yaml:"vertical_ray_count"`
}

// CaveConfig controls cave generation.
type CaveConfig struct {
	Width        int `yaml:"width"`
	Height       int `yaml:"height"`
	FillPercent  int `yaml:"fill_percent"`
	SmoothPasses int `yaml:"smooth_passes"`
}

// WalkerConfig defines the player body and movement.
type WalkerConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	MoveSpeed    float64 `yaml:"move_speed"`
	JumpHeight   float64 `yaml:"jump_height"`
	TimeToApex   float64 `yaml:"time_to_apex"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
}

// WorldConfig controls how caves become geometry.
type WorldConfig struct {
	TileSize float64 `yaml:"tile_size"`
	Ramps    bool    `yaml:"ramps"`
}

// Collision converts the section to a resolver configuration.
func (c ControllerConfig) Collision() collision.Config {
	mask := collision.LayerMask(c.Mask)
	if mask == 0 {
		mask = collision.MaskAll
	}
	return collision.Config{
		Mask:               mask,
		MaxClimbAngle:      c.MaxClimbAngle,
		MaxDescendAngle:    c.MaxDescendAngle,
		SkinWidth:          c.SkinWidth,
		HorizontalRayCount: c.HorizontalRayCount,
		VerticalRayCount:   c.VerticalRayCount,
	}
}

// Options converts the section to generator options for the given seed.
func (c CaveConfig) Options(seed int64) cave.Options {
	return cave.Options{
		Width:        c.Width,
		Height:       c.Height,
		FillPercent:  c.FillPercent,
		SmoothPasses: c.SmoothPasses,
		Seed:         seed,
	}
}

// WalkerConfig combines the walker section with the controller section.
func (c Config) WalkerConfig() walker.Config {
	return walker.Config{
		Width:        c.Walker.Width,
		Height:       c.Walker.Height,
		MoveSpeed:    c.Walker.MoveSpeed,
		JumpHeight:   c.Walker.JumpHeight,
		TimeToApex:   c.Walker.TimeToApex,
		MaxFallSpeed: c.Walker.MaxFallSpeed,
		Collision:    c.Controller.Collision(),
	}
}

// Options converts the section to world build options.
func (c WorldConfig) Options() world.Options {
	return world.Options{TileSize: c.TileSize, Ramps: c.Ramps}
}

// Validate checks every section with the owning package's rules.
func (c Config) Validate() error {
	if err := c.Controller.Collision().Validate(); err != nil {
		return fmt.Errorf("controller: %w", err)
	}
	if err := c.Cave.Options(1).Validate(); err != nil {
		return fmt.Errorf("cave: %w", err)
	}
	if err := c.WalkerConfig().Validate(); err != nil {
		return fmt.Errorf("walker: %w", err)
	}
	if !(c.World.TileSize > 0) {
		return fmt.Errorf("world: tile size %v must be positive", c.World.TileSize)
	}
	return nil
}
