package collision

import (
	"errors"
	"fmt"
	"math"
)

// LayerMask selects which environment layers a probe ray can hit.
// Each set bit is one layer; a ray hits a shape when the shape's layer bits
// intersect the mask.
type LayerMask uint

// MaskAll hits every layer.
const MaskAll = ^LayerMask(0)

// Default tuning values for a player-sized body.
const (
	DefaultMaxClimbAngle      = 75.0
	DefaultMaxDescendAngle    = 75.0
	DefaultSkinWidth          = 0.02
	DefaultHorizontalRayCount = 4
	DefaultVerticalRayCount   = 6
)

// ErrInvalidConfig is wrapped by every construction-time validation failure.
var ErrInvalidConfig = errors.New("invalid collision config")

// Config is the per-body resolver configuration. It is fixed once the
// Controller is built.
type Config struct {
	Mask               LayerMask // Layers the probes collide with
	MaxClimbAngle      float64   // Steepest climbable slope in degrees, [0, 90]
	MaxDescendAngle    float64   // Steepest slope followed downwards in degrees, [0, 90]
	SkinWidth          float64   // Inset of probe origins inside the bounds
	HorizontalRayCount int       // Probes cast along X, at least 2
	VerticalRayCount   int       // Probes cast along Y, at least 2
}

// DefaultConfig returns the stock controller tuning.
func DefaultConfig() Config {
	return Config{
		Mask:               MaskAll,
		MaxClimbAngle:      DefaultMaxClimbAngle,
		MaxDescendAngle:    DefaultMaxDescendAngle,
		SkinWidth:          DefaultSkinWidth,
		HorizontalRayCount: DefaultHorizontalRayCount,
		VerticalRayCount:   DefaultVerticalRayCount,
	}
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	if c.HorizontalRayCount < 2 {
		return fmt.Errorf("collision: %w: horizontal ray count %d, need at least 2", ErrInvalidConfig, c.HorizontalRayCount)
	}
	if c.VerticalRayCount < 2 {
		return fmt.Errorf("collision: %w: vertical ray count %d, need at least 2", ErrInvalidConfig, c.VerticalRayCount)
	}
	if !inDegreeRange(c.MaxClimbAngle) {
		return fmt.Errorf("collision: %w: max climb angle %v outside [0, 90]", ErrInvalidConfig, c.MaxClimbAngle)
	}
	if !inDegreeRange(c.MaxDescendAngle) {
		return fmt.Errorf("collision: %w: max descend angle %v outside [0, 90]", ErrInvalidConfig, c.MaxDescendAngle)
	}
	if !(c.SkinWidth > 0) || math.IsInf(c.SkinWidth, 1) {
		return fmt.Errorf("collision: %w: skin width %v must be a small positive distance", ErrInvalidConfig, c.SkinWidth)
	}
	return nil
}

// MaxRaysPerResolve is the hard upper bound on ray casts a single Resolve
// call performs: every horizontal and vertical probe plus the descent probe
// and the climb re-validation probe.
func (c Config) MaxRaysPerResolve() int {
	return c.HorizontalRayCount + c.VerticalRayCount + 2
}

func inDegreeRange(v float64) bool {
	return v >= 0 && v <= 90
}
