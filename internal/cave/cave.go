// Package cave generates cave maps with a cellular automaton: a random fill
// followed by neighbour-count smoothing passes.
package cave

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// DefaultSmoothPasses is the number of smoothing sweeps applied when
// Options.SmoothPasses is left at zero.
const DefaultSmoothPasses = 5

// ErrInvalidOptions is wrapped by every Options validation error.
var ErrInvalidOptions = errors.New("invalid cave options")

// Options controls map generation.
type Options struct {
	Width        int   // Cells across, including the solid border
	Height       int   // Cells tall, including the solid border
	FillPercent  int   // Chance in percent that an inner cell starts solid
	SmoothPasses int   // Smoothing sweeps; 0 means DefaultSmoothPasses
	Seed         int64 // 0 picks a time-based seed
}

// DefaultOptions returns a map size that fits an 80x24 terminal at two
// columns per cell.
func DefaultOptions() Options {
	return Options{
		Width:        40,
		Height:       22,
		FillPercent:  45,
		SmoothPasses: DefaultSmoothPasses,
	}
}

// Validate checks the options without generating anything.
func (o Options) Validate() error {
	if o.Width < 3 || o.Height < 3 {
		return fmt.Errorf("cave: %w: size %dx%d, need at least 3x3", ErrInvalidOptions, o.Width, o.Height)
	}
	if o.FillPercent < 0 || o.FillPercent > 100 {
		return fmt.Errorf("cave: %w: fill percent %d outside [0,100]", ErrInvalidOptions, o.FillPercent)
	}
	if o.SmoothPasses < 0 {
		return fmt.Errorf("cave: %w: negative smooth passes %d", ErrInvalidOptions, o.SmoothPasses)
	}
	return nil
}

// Generate builds a map. The same options with the same non-zero seed always
// produce the same grid.
func Generate(opts Options) (*Grid, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.SmoothPasses == 0 {
		opts.SmoothPasses = DefaultSmoothPasses
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	g := NewGrid(opts.Width, opts.Height)
	g.Seed = opts.Seed
	g.randomFill(rand.New(rand.NewSource(opts.Seed)), opts.FillPercent)
	for i := 0; i < opts.SmoothPasses; i++ {
		g.smooth()
	}
	return g, nil
}

func (g *Grid) randomFill(rng *rand.Rand, fillPercent int) {
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			if g.onBorder(x, y) {
				g.Set(x, y, true)
				continue
			}
			g.Set(x, y, rng.Intn(100) < fillPercent)
		}
	}
}

// smooth runs one sweep in place, so later cells see the updated values of
// earlier ones. A cell with exactly four solid neighbours keeps its value.
func (g *Grid) smooth() {
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			switch n := g.solidNeighbours(x, y); {
			case n > 4:
				g.Set(x, y, true)
			case n < 4:
				g.Set(x, y, false)
			}
		}
	}
}

// solidNeighbours counts the solid cells among the eight around (x, y).
// Cells off the map count as solid.
func (g *Grid) solidNeighbours(x, y int) int {
	count := 0
	for nx := x - 1; nx <= x+1; nx++ {
		for ny := y - 1; ny <= y+1; ny++ {
			if nx == x && ny == y {
				continue
			}
			if g.Solid(nx, ny) {
				count++
			}
		}
	}
	return count
}

func (g *Grid) onBorder(x, y int) bool {
	return x == 0 || x == g.W-1 || y == 0 || y == g.H-1
}

// Parse reads a grid drawn with '#' for solid and '.' for open cells, top
// row first. Blank lines are skipped; all rows must have the same width.
func Parse(s string) (*Grid, error) {
	var rows []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("cave: parse: empty map")
	}

	w := len(rows[0])
	g := NewGrid(w, len(rows))
	for i, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("cave: parse: row %d has width %d, expected %d", i, len(row), w)
		}
		y := g.H - 1 - i
		for x, ch := range row {
			switch ch {
			case '#':
				g.Set(x, y, true)
			case '.':
			default:
				return nil, fmt.Errorf("cave: parse: row %d: unexpected %q", i, ch)
			}
		}
	}
	return g, nil
}
