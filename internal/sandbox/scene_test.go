package sandbox

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/cavern/internal/collision"
	"github.com/vovakirdan/cavern/internal/config"
	"github.com/vovakirdan/cavern/internal/core"
	"github.com/vovakirdan/cavern/internal/registry"
)

func newScene(t *testing.T, kind Kind, seed int64) *Scene {
	t.Helper()
	s := New(kind)
	s.UseConfig(config.Default())
	rc := core.DefaultConfig()
	rc.Seed = seed
	if err := s.Reset(rc); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	return s
}

func press(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestScenesRegistered(t *testing.T) {
	tests := []struct {
		id    string
		title string
	}{
		{"cave", "Cave"},
		{"ramps", "Slope Course"},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			s, err := registry.Create(tc.id)
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if s.ID() != tc.id || s.Title() != tc.title {
				t.Errorf("scene = %q/%q, expected %q/%q", s.ID(), s.Title(), tc.id, tc.title)
			}
		})
	}
}

func TestResetCaveDeterministic(t *testing.T) {
	a := newScene(t, KindCave, 42)
	b := newScene(t, KindCave, 42)

	if a.State().Seed != 42 {
		t.Errorf("Seed = %d, expected 42", a.State().Seed)
	}
	if a.World().Shapes() != b.World().Shapes() {
		t.Errorf("Shapes() = %d and %d, expected equal", a.World().Shapes(), b.World().Shapes())
	}
	if a.World().SpawnPoint() != b.World().SpawnPoint() {
		t.Errorf("SpawnPoint() = %v and %v, expected equal", a.World().SpawnPoint(), b.World().SpawnPoint())
	}
	if a.Walker().Position() != a.World().SpawnPoint() {
		t.Error("walker should start at the spawn point")
	}
}

func TestResetPicksSeed(t *testing.T) {
	s := newScene(t, KindCave, 0)
	if s.State().Seed == 0 {
		t.Error("a zero seed should be replaced by a generated one")
	}
}

func TestResetInvalidConfigKeepsLevel(t *testing.T) {
	s := newScene(t, KindRamps, 1)
	before := s.World()

	bad := config.Default()
	bad.Walker.Width = -1
	s.UseConfig(bad)

	err := s.Reset(core.DefaultConfig())
	if err == nil {
		t.Fatal("Reset() should fail for an invalid walker")
	}
	if !strings.HasPrefix(err.Error(), "sandbox:") {
		t.Errorf("error %q should carry the package prefix", err)
	}
	if s.World() != before {
		t.Error("a failed Reset should keep the previous level")
	}
}

func TestResetLoadError(t *testing.T) {
	s := New(KindRamps)
	loadErr := errors.New("boom")
	s.load = func() (config.Config, error) { return config.Config{}, loadErr }

	if err := s.Reset(core.DefaultConfig()); !errors.Is(err, loadErr) {
		t.Errorf("Reset() error = %v, expected to wrap %v", err, loadErr)
	}
}

func TestStepBeforeReset(t *testing.T) {
	s := New(KindCave)
	res := s.Step(press(core.ActionRight))
	if res.State.Tick != 0 {
		t.Errorf("Tick = %d, expected 0", res.State.Tick)
	}
	screen := core.NewScreen(20, 5)
	s.Render(screen)
	if !strings.Contains(screen.String(), "no level loaded") {
		t.Error("unbuilt scene should say so when rendered")
	}
}

func TestPauseStopsSimulation(t *testing.T) {
	s := newScene(t, KindRamps, 1)
	s.Step(press())

	res := s.Step(press(core.ActionPause, core.ActionRight))
	if !res.State.Paused {
		t.Fatal("Pause should pause the scene")
	}
	pos := s.Walker().Position()
	tick := res.State.Tick
	for i := 0; i < 10; i++ {
		s.Step(press(core.ActionRight))
	}
	if s.Walker().Position() != pos || s.State().Tick != tick {
		t.Error("a paused scene should not move")
	}

	if s.Step(press(core.ActionPause)).State.Paused {
		t.Error("second Pause should resume")
	}
}

func TestDebugToggle(t *testing.T) {
	s := newScene(t, KindRamps, 1)
	if !s.Step(press(core.ActionDebug)).State.Debug {
		t.Error("Debug should enable the overlay")
	}
	if s.Step(press(core.ActionDebug)).State.Debug {
		t.Error("second Debug should disable the overlay")
	}
}

func TestRespawn(t *testing.T) {
	s := newScene(t, KindRamps, 1)
	for i := 0; i < 30; i++ {
		s.Step(press(core.ActionRight))
	}
	if s.Walker().Position() == s.World().SpawnPoint() {
		t.Fatal("walker should have moved")
	}

	s.Step(press(core.ActionRestart))
	pos := s.Walker().Position()
	spawn := s.World().SpawnPoint()
	if math.Abs(pos.X()-spawn.X()) > 1e-9 || math.Abs(pos.Y()-spawn.Y()) > 0.01 {
		t.Errorf("Position() = %v after respawn, expected near %v", pos, spawn)
	}
}

func TestRegenerate(t *testing.T) {
	s := newScene(t, KindCave, 7)
	res := s.Step(press(core.ActionRegenerate))
	if res.State.Seed != 8 {
		t.Errorf("Seed = %d after regenerate, expected 8", res.State.Seed)
	}
	if res.State.Tick != 1 {
		t.Errorf("Tick = %d, expected 1 after a fresh level", res.State.Tick)
	}

	course := newScene(t, KindRamps, 7)
	if seed := course.Step(press(core.ActionRegenerate)).State.Seed; seed != 7 {
		t.Errorf("course Seed = %d, expected unchanged 7", seed)
	}
}

func TestReloadSwitchesConfig(t *testing.T) {
	s := newScene(t, KindCave, 5)
	world := s.World()

	cfg := config.Default()
	cfg.Walker.Width = 0.5
	if err := Reload(cfg)(s); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if got := s.Walker().Bounds().Size().X(); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("walker width = %v, expected 0.5", got)
	}
	if s.State().Seed != 5 {
		t.Errorf("Seed = %d, reload should keep the level seed", s.State().Seed)
	}
	if s.World() == world {
		t.Error("reload should rebuild the world")
	}
}

func TestReloadFailureReported(t *testing.T) {
	s := newScene(t, KindRamps, 1)
	bad := config.Default()
	bad.World.TileSize = 0

	if err := Reload(bad)(s); err == nil {
		t.Fatal("Reload() should fail for an invalid config")
	}
	if s.Err() == nil {
		t.Error("Err() should keep the reload failure")
	}

	screen := core.NewScreen(80, 10)
	s.Render(screen)
	if !strings.Contains(screen.Row(0), "tile size") {
		t.Errorf("HUD = %q, expected the error", screen.Row(0))
	}
}

type otherScene struct{ registry.Scene }

func TestReloadIgnoresOtherScenes(t *testing.T) {
	if err := Reload(config.Default())(otherScene{}); err != nil {
		t.Errorf("Reload() error = %v, expected nil", err)
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name     string
		state    collision.State
		expected string
	}{
		{"airborne", collision.State{}, "air"},
		{"standing", collision.State{Below: true}, "ground"},
		{"wedged", collision.State{Above: true, Left: true}, "ceiling left"},
		{"climbing", collision.State{Below: true, Right: true, ClimbingSlope: true, SlopeAngle: 30}, "ground right climb 30.0°"},
		{"descending", collision.State{Below: true, DescendingSlope: true, SlopeAngle: 45}, "ground descend 45.0°"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Describe(tc.state); got != tc.expected {
				t.Errorf("Describe() = %q, expected %q", got, tc.expected)
			}
		})
	}
}
