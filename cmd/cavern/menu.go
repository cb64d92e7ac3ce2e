package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cavern/internal/platform/tui"
	"github.com/vovakirdan/cavern/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the sandbox with a scene picker menu",
	Long: `Start the sandbox in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a scene.
Quitting a scene returns to the menu; quit the menu to exit.`,
	Run: runMenu,
}

func runMenu(cmd *cobra.Command, args []string) {
	cfg := runtimeConfig()

	for {
		result, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running menu: %v\n", err)
			os.Exit(1)
		}
		if result.Quit {
			return
		}
		cfg = result.Config

		scene, err := registry.Create(result.SceneID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := tui.Run(scene, cfg, nil); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scene: %v\n", err)
			os.Exit(1)
		}
	}
}
