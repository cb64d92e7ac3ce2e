package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cavern/internal/cave"
)

var (
	flagGenWidth   int
	flagGenHeight  int
	flagGenFill    int
	flagGenPasses  int
	flagGenRegions bool
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Print a generated cave",
	Long: `Generate a cave with cellular automata and print it as text,
'#' for rock and '.' for open space.

Size, fill and smoothing default to the active config's cave section.

Examples:
  cavern gen
  cavern gen --seed 7
  cavern gen --width 60 --height 30 --fill 48 --regions`,
	Run: runGen,
}

func init() {
	genCmd.Flags().IntVar(&flagGenWidth, "width", 0, "Cells across (0 = from config)")
	genCmd.Flags().IntVar(&flagGenHeight, "height", 0, "Cells tall (0 = from config)")
	genCmd.Flags().IntVar(&flagGenFill, "fill", -1, "Initial fill percent (-1 = from config)")
	genCmd.Flags().IntVar(&flagGenPasses, "passes", -1, "Smoothing passes (-1 = from config)")
	genCmd.Flags().BoolVar(&flagGenRegions, "regions", false, "Also list open regions by size")
}

func runGen(cmd *cobra.Command, args []string) {
	opts := loadConfig().Cave.Options(flagSeed)
	if flagGenWidth > 0 {
		opts.Width = flagGenWidth
	}
	if flagGenHeight > 0 {
		opts.Height = flagGenHeight
	}
	if flagGenFill >= 0 {
		opts.FillPercent = flagGenFill
	}
	if flagGenPasses >= 0 {
		opts.SmoothPasses = flagGenPasses
	}

	grid, err := cave.Generate(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(grid.String())
	fmt.Printf("\nseed %d  %dx%d  open %d\n", grid.Seed, grid.W, grid.H, grid.OpenCells())

	if flagGenRegions {
		regions := grid.Regions()
		fmt.Printf("%d open regions\n", len(regions))
		for i, r := range regions {
			fmt.Printf("  %2d. %d cells, first at %d,%d\n", i+1, len(r), r[0].X, r[0].Y)
		}
	}
}
