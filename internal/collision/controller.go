// Package collision resolves the per-tick movement of an axis-aligned body
// against solid geometry by casting probe rays. It climbs and descends
// slopes up to configured angles and reports contact flags for the tick.
//
// The package has no knowledge of how the environment is stored: ray queries
// and body bounds are supplied through the RayCaster and BoundsProvider
// interfaces, which keeps the resolver deterministic under mock geometry.
package collision

import (
	"fmt"
	"reflect"

	"github.com/go-gl/mathgl/mgl64"
)

// Controller resolves displacements for a single body. It is not safe for
// concurrent use; each body owns its own Controller.
type Controller struct {
	cfg    Config
	caster RayCaster
	bounds BoundsProvider

	horizontalSpacing float64
	verticalSpacing   float64

	origins RayOrigins
	state   State
	probes  []Probe
}

// New validates the configuration and builds a controller. Ray spacing is
// computed once from the body's current bounds, so the body must keep its
// size for the controller's lifetime.
func New(cfg Config, caster RayCaster, bounds BoundsProvider) (*Controller, error) {
	if isNil(caster) {
		return nil, fmt.Errorf("collision: %w: missing ray caster", ErrInvalidConfig)
	}
	if isNil(bounds) {
		return nil, fmt.Errorf("collision: %w: missing bounds provider", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := bounds.Bounds()
	inset := b.Expand(-2 * cfg.SkinWidth).Size()
	if !(inset.X() > 0) || !(inset.Y() > 0) {
		size := b.Size()
		return nil, fmt.Errorf("collision: %w: bounds %.4gx%.4g too small for skin width %v",
			ErrInvalidConfig, size.X(), size.Y(), cfg.SkinWidth)
	}

	c := &Controller{
		cfg:    cfg,
		caster: caster,
		bounds: bounds,
		probes: make([]Probe, 0, cfg.MaxRaysPerResolve()),
	}
	c.horizontalSpacing, c.verticalSpacing = raySpacing(b, cfg)
	return c, nil
}

// Resolve clips the desired displacement against the environment and returns
// the displacement the body can actually make this tick. Call it at most once
// per tick: it replaces the contact state of the previous call.
func (c *Controller) Resolve(displacement mgl64.Vec2) mgl64.Vec2 {
	c.origins = computeOrigins(c.bounds.Bounds(), c.cfg.SkinWidth)
	c.probes = c.probes[:0]

	st := c.state
	st.Reset()

	v := displacement
	if v.X() != 0 {
		v = c.horizontalCollisions(v, &st)
	}
	if v.Y() != 0 {
		v = c.verticalCollisions(v, &st)
	}

	c.state = st
	return v
}

// Grounded reports whether the last Resolve found ground below the body.
func (c *Controller) Grounded() bool {
	return c.state.Below
}

// TouchingCeiling reports whether the last Resolve hit something above.
func (c *Controller) TouchingCeiling() bool {
	return c.state.Above
}

// State returns a copy of the contact state from the last Resolve.
func (c *Controller) State() State {
	return c.state
}

// Config returns the configuration the controller was built with.
func (c *Controller) Config() Config {
	return c.cfg
}

// Origins returns the probe corners used by the last Resolve.
func (c *Controller) Origins() RayOrigins {
	return c.origins
}

// Probes returns the rays cast by the last Resolve. The slice is reused by
// the next call; copy it to keep it.
func (c *Controller) Probes() []Probe {
	return c.probes
}

// cast forwards a ray query to the environment and records it.
func (c *Controller) cast(origin, direction mgl64.Vec2, length float64) (Hit, bool) {
	hit, ok := c.caster.CastRay(origin, direction, length, c.cfg.Mask)
	c.probes = append(c.probes, Probe{
		Origin:    origin,
		Direction: direction,
		Length:    length,
		Hit:       ok,
		Distance:  hit.Distance,
	})
	return hit, ok
}

// isNil also catches interfaces holding a nil pointer, map, slice, func or
// channel.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
