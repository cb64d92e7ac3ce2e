package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cavern/internal/config"
	"github.com/vovakirdan/cavern/internal/platform/tui"
	"github.com/vovakirdan/cavern/internal/registry"
	"github.com/vovakirdan/cavern/internal/sandbox"
)

var flagWatch bool

var playCmd = &cobra.Command{
	Use:   "play <scene>",
	Short: "Run a scene",
	Long: `Run the specified scene.

Controls:
  Left/Right, h/l   - Walk
  Space/Up, w/k     - Jump
  D                 - Toggle the ray overlay
  N                 - New level (next seed in the cave)
  R                 - Respawn
  P                 - Pause
  Ctrl+S            - Save a text screenshot to ~/.cavern/screenshots
  Q/Ctrl+C          - Quit

With --watch the config file is reloaded whenever it changes and the level
is rebuilt with the same seed.

Examples:
  cavern play cave
  cavern play cave --seed 42
  cavern play ramps --config ./configs/cavern.yaml --watch`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the config file when it changes")
}

func runPlay(cmd *cobra.Command, args []string) {
	sceneID := args[0]

	if !registry.Exists(sceneID) {
		fmt.Fprintf(os.Stderr, "Error: unknown scene %q\n", sceneID)
		fmt.Fprintln(os.Stderr, "Run 'cavern list' to see available scenes.")
		os.Exit(1)
	}

	scene, err := registry.Create(sceneID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var attach func(*tea.Program)
	if flagWatch {
		watcher := startWatcher()
		if watcher != nil {
			defer watcher.Close()
			attach = func(p *tea.Program) { go forwardReloads(watcher, p) }
		}
	}

	if err := tui.Run(scene, runtimeConfig(), attach); err != nil {
		fmt.Fprintf(os.Stderr, "Error running scene: %v\n", err)
		os.Exit(1)
	}
}

// startWatcher watches the active config file. Returns nil, after logging
// why, when there is nothing to watch.
func startWatcher() *config.Watcher {
	path := config.Locate(flagConfig)
	if path == "" {
		logger.Warn("no config file to watch, using embedded defaults",
			"user", "~/.cavern/config.yaml", "local", config.LocalPath)
		return nil
	}

	watcher, err := config.Watch(path)
	if err != nil {
		logger.Warn("config watch disabled", "error", err)
		return nil
	}
	logger.Info("watching config", "path", watcher.Path())
	return watcher
}

// forwardReloads turns watcher updates into reload messages until the
// watcher is closed.
func forwardReloads(w *config.Watcher, p *tea.Program) {
	for u := range w.Updates() {
		if u.Err != nil {
			err := u.Err
			p.Send(tui.ReloadMsg{Apply: func(registry.Scene) error { return err }})
			continue
		}
		p.Send(tui.ReloadMsg{Apply: sandbox.Reload(u.Config)})
	}
}
