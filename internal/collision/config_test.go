package collision

import (
	"errors"
	"math"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"minimum ray counts", func(c *Config) { c.HorizontalRayCount, c.VerticalRayCount = 2, 2 }, false},
		{"horizontal ray count too low", func(c *Config) { c.HorizontalRayCount = 1 }, true},
		{"vertical ray count too low", func(c *Config) { c.VerticalRayCount = 0 }, true},
		{"climb angle negative", func(c *Config) { c.MaxClimbAngle = -1 }, true},
		{"climb angle above 90", func(c *Config) { c.MaxClimbAngle = 91 }, true},
		{"climb angle 90", func(c *Config) { c.MaxClimbAngle = 90 }, false},
		{"descend angle NaN", func(c *Config) { c.MaxDescendAngle = math.NaN() }, true},
		{"descend angle 0", func(c *Config) { c.MaxDescendAngle = 0 }, false},
		{"zero skin", func(c *Config) { c.SkinWidth = 0 }, true},
		{"negative skin", func(c *Config) { c.SkinWidth = -0.1 }, true},
		{"infinite skin", func(c *Config) { c.SkinWidth = math.Inf(1) }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestNewRejectsBadCollaborators(t *testing.T) {
	world := &mockWorld{}
	body := unitBody(0, 0)

	tests := []struct {
		name   string
		cfg    Config
		caster RayCaster
		bounds BoundsProvider
	}{
		{"missing caster", DefaultConfig(), nil, body},
		{"missing bounds", DefaultConfig(), world, nil},
		{"nil pointer caster", DefaultConfig(), (*mockWorld)(nil), body},
		{"nil pointer bounds", DefaultConfig(), world, (*movingBounds)(nil)},
		{"bad config", Config{SkinWidth: 0.02, HorizontalRayCount: 1, VerticalRayCount: 6}, world, body},
		{"bounds smaller than skin", DefaultConfig(), world, fixedBounds(NewAABB(0, 0, 0.03, 1))},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := New(tc.cfg, tc.caster, tc.bounds)
			if err == nil {
				t.Fatal("New() should fail")
			}
			if c != nil {
				t.Error("New() should not return a controller on error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("New() error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestMaxRaysPerResolve(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.MaxRaysPerResolve(); got != 12 {
		t.Errorf("MaxRaysPerResolve() = %d, expected 12", got)
	}
}
