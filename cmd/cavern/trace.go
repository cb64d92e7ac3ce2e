package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cavern/internal/core"
	"github.com/vovakirdan/cavern/internal/platform/tui"
	"github.com/vovakirdan/cavern/internal/registry"
	"github.com/vovakirdan/cavern/internal/sandbox"
)

var (
	flagTraceInput string
	flagTraceTicks int
	flagTraceView  bool
)

var traceCmd = &cobra.Command{
	Use:   "trace <scene>",
	Short: "Run a scene headless with scripted input",
	Long: `Run a scene without a terminal UI, feeding it scripted input, and
print the position, resolved displacement, velocity and contacts of the body
for every tick.

The input script is a comma separated list of steps. Each step is a set of
keys held for one tick, optionally repeated with *N:
  L  walk left
  R  walk right
  J  jump
  -  nothing

Examples:
  cavern trace ramps --input "R*90"
  cavern trace ramps --input "R*40,RJ,R*40,-*30" --view
  cavern trace cave --seed 42 --input "L*60" --ticks 120`,
	Args: cobra.ExactArgs(1),
	Run:  runTrace,
}

func init() {
	traceCmd.Flags().StringVar(&flagTraceInput, "input", "R*90", "Input script")
	traceCmd.Flags().IntVar(&flagTraceTicks, "ticks", 0, "Ticks to run (0 = script length)")
	traceCmd.Flags().BoolVar(&flagTraceView, "view", false, "Browse the trace interactively")
}

func runTrace(cmd *cobra.Command, args []string) {
	sceneID := args[0]

	script, err := sandbox.ParseScript(flagTraceInput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	scene, err := registry.Create(sceneID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'cavern list' to see available scenes.")
		os.Exit(1)
	}
	sb, ok := scene.(*sandbox.Scene)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: scene %q cannot be traced\n", sceneID)
		os.Exit(1)
	}

	rc := core.DefaultConfig()
	rc.TickRate = flagFPS
	rc.Seed = flagSeed
	if err := sb.Reset(rc); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rows := sandbox.Trace(sb, script, flagTraceTicks)
	title := fmt.Sprintf("%s (seed %d)", sb.Title(), sb.State().Seed)

	if flagTraceView {
		size := runtimeConfig()
		if err := tui.RunTrace(title, rows, size.ScreenW, size.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error running trace viewer: %v\n", err)
			os.Exit(1)
		}
		return
	}

	printTrace(title, rows)
}

func printTrace(title string, rows []sandbox.TraceRow) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(sandbox.TraceColumns...)
	for _, r := range rows {
		t.Row(r.Cells()...)
	}

	sum := sandbox.Summarize(rows)
	fmt.Println(title)
	fmt.Println(t.Render())
	fmt.Printf("ticks %d  grounded %d  climbing %d  descending %d  walls %d  ceiling %d\n",
		sum.Ticks, sum.GroundedTicks, sum.ClimbTicks, sum.DescendTicks, sum.WallTicks, sum.CeilingTicks)
	fmt.Printf("max slope %.1f°  distance %.3f  from %.3f,%.3f to %.3f,%.3f\n",
		sum.MaxSlopeAngle, sum.Distance, sum.Start.X(), sum.Start.Y(), sum.End.X(), sum.End.Y())
}
