// cavern is a terminal platformer sandbox for a slope-aware raycast
// collision controller.
//
// Usage:
//
//	cavern list              - List available scenes
//	cavern play <scene>      - Run a scene
//	cavern menu              - Pick scenes interactively
//	cavern serve             - Start SSH server for remote play
//	cavern gen               - Print a generated cave
//	cavern trace <scene>     - Run a scene headless with scripted input
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set level seed for reproducible caves
//	--config <path>  - Use a specific config file
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cavern/internal/config"
	"github.com/vovakirdan/cavern/internal/core"
	"github.com/vovakirdan/cavern/internal/sandbox"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagConfig string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "cavern",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cavern",
	Short: "Cavern - walk, climb and slide through caves in your terminal",
	Long: `Cavern is a terminal sandbox for a kinematic raycast collision
controller: a small body walks, jumps, climbs and descends slopes through
generated caves and a hand-made slope course.

Available commands:
  list     - Show all available scenes
  play     - Run a specific scene directly
  menu     - Interactive scene picker
  serve    - Start SSH server for remote play
  gen      - Print a generated cave as text
  trace    - Run a scene headless with scripted input

Examples:
  cavern list
  cavern play ramps
  cavern play cave --seed 42 --watch
  cavern serve --ssh :2222
  cavern gen --seed 7
  cavern trace ramps --input "R*90,RJ,R*60"`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		sandbox.SetConfigPath(flagConfig)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (simulation steps per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Level seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML (default: search ~/.cavern, ./configs)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(traceCmd)
}

// runtimeConfig builds the runtime config from the global flags and the
// terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// loadConfig loads the config named by --config or found on the search path.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
