package core

// RuntimeConfig contains configuration passed to scenes at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // Level seed, 0 picks one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}

// DeltaTime returns the simulation step in seconds.
func (c RuntimeConfig) DeltaTime() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1 / float64(c.TickRate)
}

// SceneState is the status a scene reports to the platform after a tick.
type SceneState struct {
	Tick   int    // Ticks simulated since the last reset
	Seed   int64  // Seed the current level was built from
	Paused bool   // Whether the simulation is paused
	Debug  bool   // Whether the ray overlay is shown
	Status string // One-line summary of the body's contacts
}

// StepResult is returned by Scene.Step() after each simulation tick.
type StepResult struct {
	State SceneState
}
