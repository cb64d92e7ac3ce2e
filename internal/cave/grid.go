package cave

import (
	"sort"
	"strings"
)

// Grid is a cave map stored row-major. Row 0 is the bottom of the map so
// grid coordinates match world coordinates with Y up.
type Grid struct {
	W    int
	H    int
	Seed int64 // Seed the map was generated from, 0 for parsed maps

	cells []bool
}

// Cell addresses one grid cell.
type Cell struct {
	X, Y int
}

// NewGrid returns an all-open grid.
func NewGrid(w, h int) *Grid {
	return &Grid{W: w, H: h, cells: make([]bool, w*h)}
}

// InBounds reports whether (x, y) lies on the map.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Solid reports whether the cell is a wall. Cells off the map are solid.
func (g *Grid) Solid(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.cells[y*g.W+x]
}

// Set marks a cell solid or open. Out of range writes are ignored.
func (g *Grid) Set(x, y int, solid bool) {
	if g.InBounds(x, y) {
		g.cells[y*g.W+x] = solid
	}
}

// OpenCells counts the open cells.
func (g *Grid) OpenCells() int {
	n := 0
	for _, solid := range g.cells {
		if !solid {
			n++
		}
	}
	return n
}

// Regions returns the 4-connected open areas of the map, largest first.
// Cells inside a region are ordered bottom row first, then left to right.
func (g *Grid) Regions() [][]Cell {
	seen := make([]bool, len(g.cells))
	var regions [][]Cell

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			idx := y*g.W + x
			if seen[idx] || g.cells[idx] {
				continue
			}
			regions = append(regions, g.flood(x, y, seen))
		}
	}

	sort.SliceStable(regions, func(i, j int) bool {
		return len(regions[i]) > len(regions[j])
	})
	return regions
}

func (g *Grid) flood(x, y int, seen []bool) []Cell {
	var region []Cell
	queue := []Cell{{x, y}}
	seen[y*g.W+x] = true

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		region = append(region, c)

		for _, d := range [4]Cell{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := c.X+d.X, c.Y+d.Y
			if !g.InBounds(nx, ny) {
				continue
			}
			idx := ny*g.W + nx
			if seen[idx] || g.cells[idx] {
				continue
			}
			seen[idx] = true
			queue = append(queue, Cell{nx, ny})
		}
	}

	sort.Slice(region, func(i, j int) bool {
		if region[i].Y != region[j].Y {
			return region[i].Y < region[j].Y
		}
		return region[i].X < region[j].X
	})
	return region
}

// String draws the map with '#' for walls and '.' for open cells, top row
// first.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.W + 1) * g.H)
	for y := g.H - 1; y >= 0; y-- {
		for x := 0; x < g.W; x++ {
			if g.Solid(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
