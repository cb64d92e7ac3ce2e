// Package sandbox implements the playable scenes: a world, a walker moving
// through it with the slope-aware collision controller, a camera and a HUD.
package sandbox

import (
	"fmt"
	"strings"
	"sync"

	"github.com/vovakirdan/cavern/internal/cave"
	"github.com/vovakirdan/cavern/internal/collision"
	"github.com/vovakirdan/cavern/internal/config"
	"github.com/vovakirdan/cavern/internal/core"
	"github.com/vovakirdan/cavern/internal/registry"
	"github.com/vovakirdan/cavern/internal/walker"
	"github.com/vovakirdan/cavern/internal/world"
)

// Kind selects how a scene builds its level.
type Kind int

const (
	KindCave  Kind = iota // Generated cave, rebuilt with a new seed on demand
	KindRamps             // Hand-made slope course
)

// fallMargin is how far below the world a body may drop before respawning.
const fallMargin = 8.0

var (
	configPath string
	configMu   sync.RWMutex
)

// SetConfigPath sets the config file scenes load on Reset. An empty path
// uses the default search order.
func SetConfigPath(path string) {
	configMu.Lock()
	defer configMu.Unlock()
	configPath = path
}

func loadConfig() (config.Config, error) {
	configMu.RLock()
	path := configPath
	configMu.RUnlock()
	return config.Load(path)
}

// Scene is a level plus the walker exploring it.
type Scene struct {
	kind  Kind
	load  func() (config.Config, error)
	rc    core.RuntimeConfig
	cfg   config.Config
	world *world.World
	body  *walker.Walker
	seed  int64

	last   collision.State
	tick   int
	paused bool
	debug  bool
	err    error
}

// New creates an unbuilt scene of the given kind. Call Reset before use.
func New(kind Kind) *Scene {
	return &Scene{kind: kind, load: loadConfig}
}

// UseConfig makes the scene build from cfg instead of loading a file.
// Takes effect on the next Reset or Reload.
func (s *Scene) UseConfig(cfg config.Config) {
	s.load = func() (config.Config, error) { return cfg, nil }
}

// ID returns the scene's registry identifier.
func (s *Scene) ID() string {
	if s.kind == KindRamps {
		return "ramps"
	}
	return "cave"
}

// Title returns the scene's display name.
func (s *Scene) Title() string {
	if s.kind == KindRamps {
		return "Slope Course"
	}
	return "Cave"
}

// Reset builds the level and places the walker at its spawn point.
func (s *Scene) Reset(rc core.RuntimeConfig) error {
	cfg, err := s.load()
	if err != nil {
		return fmt.Errorf("sandbox: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("sandbox: %w", err)
	}

	w, seed, err := s.build(cfg, rc.Seed)
	if err != nil {
		return fmt.Errorf("sandbox: %w", err)
	}
	body, err := walker.New(cfg.WalkerConfig(), w.SpawnPoint(), w)
	if err != nil {
		return fmt.Errorf("sandbox: %w", err)
	}

	s.rc = rc
	s.cfg = cfg
	s.world = w
	s.body = body
	s.seed = seed
	s.last = collision.State{}
	s.tick = 0
	s.paused = false
	s.err = nil
	return nil
}

// Reload rebuilds the same level with a freshly loaded config.
func (s *Scene) Reload() error {
	rc := s.rc
	rc.Seed = s.seed
	if err := s.Reset(rc); err != nil {
		s.err = err
		return err
	}
	return nil
}

func (s *Scene) build(cfg config.Config, seed int64) (*world.World, int64, error) {
	if s.kind == KindRamps {
		return world.Course(), seed, nil
	}
	grid, err := cave.Generate(cfg.Cave.Options(seed))
	if err != nil {
		return nil, 0, err
	}
	return world.FromCave(grid, cfg.World.Options()), grid.Seed, nil
}

// Step advances the simulation by one tick.
func (s *Scene) Step(in core.InputFrame) core.StepResult {
	if s.body == nil {
		return core.StepResult{State: s.State()}
	}

	if in.Has(core.ActionPause) {
		s.paused = !s.paused
	}
	if in.Has(core.ActionDebug) {
		s.debug = !s.debug
	}
	if in.Has(core.ActionRestart) {
		s.respawn()
	}
	if in.Has(core.ActionRegenerate) {
		s.regenerate()
	}

	if !s.paused {
		s.last = s.body.Step(walker.Input{
			Move: in.Axis(),
			Jump: in.Has(core.ActionJump),
		}, s.rc.DeltaTime())
		s.tick++

		if s.body.Position().Y() < s.world.Bounds().Min.Y()-fallMargin {
			s.respawn()
		}
	}

	return core.StepResult{State: s.State()}
}

func (s *Scene) respawn() {
	s.body.Teleport(s.world.SpawnPoint())
}

// regenerate builds a new cave from the next seed. The course scene only
// reloads its config.
func (s *Scene) regenerate() {
	rc := s.rc
	rc.Seed = s.seed
	if s.kind == KindCave {
		rc.Seed = s.seed + 1
	}
	if err := s.Reset(rc); err != nil {
		s.err = err
	}
}

// State returns the current scene state.
func (s *Scene) State() core.SceneState {
	return core.SceneState{
		Tick:   s.tick,
		Seed:   s.seed,
		Paused: s.paused,
		Debug:  s.debug,
		Status: Describe(s.last),
	}
}

// World returns the level, nil before the first Reset.
func (s *Scene) World() *world.World {
	return s.world
}

// Walker returns the player body, nil before the first Reset.
func (s *Scene) Walker() *walker.Walker {
	return s.body
}

// Err returns the last rebuild failure, cleared by a successful Reset.
func (s *Scene) Err() error {
	return s.err
}

// Describe summarises a contact state in a few words, e.g.
// "ground climb 30.0°".
func Describe(st collision.State) string {
	var parts []string
	if st.Below {
		parts = append(parts, "ground")
	}
	if st.Above {
		parts = append(parts, "ceiling")
	}
	if st.Left {
		parts = append(parts, "left")
	}
	if st.Right {
		parts = append(parts, "right")
	}
	if st.ClimbingSlope {
		parts = append(parts, fmt.Sprintf("climb %.1f°", st.SlopeAngle))
	}
	if st.DescendingSlope {
		parts = append(parts, fmt.Sprintf("descend %.1f°", st.SlopeAngle))
	}
	if len(parts) == 0 {
		return "air"
	}
	return strings.Join(parts, " ")
}

// Reload returns a function that switches a sandbox scene to cfg and
// rebuilds it. Other scenes are left alone.
func Reload(cfg config.Config) func(registry.Scene) error {
	return func(rs registry.Scene) error {
		s, ok := rs.(*Scene)
		if !ok {
			return nil
		}
		s.UseConfig(cfg)
		return s.Reload()
	}
}

func init() {
	registry.Register("cave", func() registry.Scene { return New(KindCave) })
	registry.Register("ramps", func() registry.Scene { return New(KindRamps) })
}
