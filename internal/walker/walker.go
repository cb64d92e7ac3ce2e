// Package walker implements a kinematic platformer character on top of the
// collision resolver: it turns input into a desired displacement each tick
// and applies whatever the resolver allows.
package walker

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/cavern/internal/collision"
)

// ErrInvalidConfig is wrapped by walker configuration errors.
var ErrInvalidConfig = errors.New("invalid walker config")

// Config describes the body and its movement tuning. Jump tuning is given
// as height and time to apex; gravity and jump velocity are derived.
type Config struct {
	Width        float64
	Height       float64
	MoveSpeed    float64 // Units per second
	JumpHeight   float64 // Units
	TimeToApex   float64 // Seconds
	MaxFallSpeed float64 // Units per second, 0 for no cap

	Collision collision.Config
}

// DefaultConfig returns a body a little under one tile wide and two tall.
func DefaultConfig() Config {
	return Config{
		Width:        0.8,
		Height:       1.6,
		MoveSpeed:    8,
		JumpHeight:   3.2,
		TimeToApex:   0.4,
		MaxFallSpeed: 30,
		Collision:    collision.DefaultConfig(),
	}
}

// Validate checks the movement tuning. Collision settings are checked by
// the resolver itself.
func (c Config) Validate() error {
	switch {
	case !(c.Width > 0) || !(c.Height > 0):
		return fmt.Errorf("walker: %w: size %vx%v", ErrInvalidConfig, c.Width, c.Height)
	case c.MoveSpeed < 0:
		return fmt.Errorf("walker: %w: move speed %v", ErrInvalidConfig, c.MoveSpeed)
	case c.JumpHeight < 0:
		return fmt.Errorf("walker: %w: jump height %v", ErrInvalidConfig, c.JumpHeight)
	case !(c.TimeToApex > 0):
		return fmt.Errorf("walker: %w: time to apex %v", ErrInvalidConfig, c.TimeToApex)
	case c.MaxFallSpeed < 0:
		return fmt.Errorf("walker: %w: max fall speed %v", ErrInvalidConfig, c.MaxFallSpeed)
	}
	return nil
}

// Gravity returns the downward acceleration implied by the jump tuning.
func (c Config) Gravity() float64 {
	return -2 * c.JumpHeight / (c.TimeToApex * c.TimeToApex)
}

// JumpVelocity returns the take-off speed that reaches JumpHeight.
func (c Config) JumpVelocity() float64 {
	return math.Abs(c.Gravity()) * c.TimeToApex
}

// Input is the player's intent for one tick.
type Input struct {
	Move float64 // -1 left, 0 idle, 1 right
	Jump bool
}

// Walker is a single kinematic body. Position is the bottom-centre of the
// body.
type Walker struct {
	cfg      Config
	pos      mgl64.Vec2
	velocity mgl64.Vec2
	ctrl     *collision.Controller
}

// New places a walker at pos in env.
func New(cfg Config, pos mgl64.Vec2, env collision.RayCaster) (*Walker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &Walker{cfg: cfg, pos: pos}

	ctrl, err := collision.New(cfg.Collision, env, w)
	if err != nil {
		return nil, fmt.Errorf("walker: %w", err)
	}
	w.ctrl = ctrl
	return w, nil
}

// Bounds implements collision.BoundsProvider.
func (w *Walker) Bounds() collision.AABB {
	return collision.NewAABB(w.pos.X()-w.cfg.Width/2, w.pos.Y(), w.cfg.Width, w.cfg.Height)
}

// Position returns the bottom-centre of the body.
func (w *Walker) Position() mgl64.Vec2 {
	return w.pos
}

// Velocity returns the velocity used for the last step.
func (w *Walker) Velocity() mgl64.Vec2 {
	return w.velocity
}

// Controller exposes the resolver, mainly for its probe rays.
func (w *Walker) Controller() *collision.Controller {
	return w.ctrl
}

// Teleport moves the body without collision and clears its velocity.
func (w *Walker) Teleport(pos mgl64.Vec2) {
	w.pos = pos
	w.velocity = mgl64.Vec2{}
}

// Step advances the walker by dt seconds and returns the contact state the
// resolver reported for the move.
func (w *Walker) Step(in Input, dt float64) collision.State {
	// Contacts from the previous tick stop vertical motion.
	if w.ctrl.Grounded() || w.ctrl.TouchingCeiling() {
		w.velocity[1] = 0
	}

	w.velocity[0] = mgl64.Clamp(in.Move, -1, 1) * w.cfg.MoveSpeed
	if in.Jump && w.ctrl.Grounded() {
		w.velocity[1] = w.cfg.JumpVelocity()
	}

	w.velocity[1] += w.cfg.Gravity() * dt
	if w.cfg.MaxFallSpeed > 0 && w.velocity[1] < -w.cfg.MaxFallSpeed {
		w.velocity[1] = -w.cfg.MaxFallSpeed
	}

	moved := w.ctrl.Resolve(w.velocity.Mul(dt))
	w.pos = w.pos.Add(moved)
	return w.ctrl.State()
}
