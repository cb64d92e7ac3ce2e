package world

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/cavern/internal/cave"
	"github.com/vovakirdan/cavern/internal/collision"
)

// Options controls how a cave grid is turned into geometry.
type Options struct {
	TileSize float64 // World units per grid cell
	Ramps    bool    // Fill single-step ledges with 45 degree ramps
}

// DefaultOptions returns one world unit per cell with ramps enabled.
func DefaultOptions() Options {
	return Options{TileSize: 1, Ramps: true}
}

// FromCave builds a world from a cave grid. Runs of solid cells are merged
// into as few boxes as possible before being added to the space.
func FromCave(g *cave.Grid, opts Options) *World {
	if opts.TileSize <= 0 {
		opts.TileSize = 1
	}
	s := opts.TileSize
	w := New()

	kinds := make([]Tile, g.W*g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.Solid(x, y) {
				kinds[y*g.W+x] = TileSolid
			}
		}
	}
	if opts.Ramps {
		placeRamps(g, kinds)
	}

	cellBox := func(x, y, cw, ch int) collision.AABB {
		return collision.NewAABB(float64(x)*s, float64(y)*s, float64(cw)*s, float64(ch)*s)
	}

	processed := make([]bool, len(kinds))
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			idx := y*g.W + x
			if processed[idx] {
				continue
			}
			processed[idx] = true

			switch kinds[idx] {
			case TileEmpty:
				continue
			case TileRampUp, TileRampDown:
				w.AddRamp(cellBox(x, y, 1, 1), kinds[idx] == TileRampUp, LayerSolid)
				continue
			}

			bw := 1
			for x+bw < g.W {
				i := y*g.W + x + bw
				if processed[i] || kinds[i] != TileSolid {
					break
				}
				bw++
			}

			bh := 1
		heightLoop:
			for y+bh < g.H {
				for xi := x; xi < x+bw; xi++ {
					i := (y+bh)*g.W + xi
					if processed[i] || kinds[i] != TileSolid {
						break heightLoop
					}
				}
				bh++
			}

			for yy := y; yy < y+bh; yy++ {
				for xx := x; xx < x+bw; xx++ {
					processed[yy*g.W+xx] = true
				}
			}
			w.AddBox(cellBox(x, y, bw, bh), LayerSolid)
		}
	}

	if spawn, ok := findSpawn(g, kinds); ok {
		w.SetSpawnPoint(mgl64.Vec2{(float64(spawn.X) + 0.5) * s, float64(spawn.Y) * s})
	} else {
		w.SetSpawnPoint(w.Bounds().Center())
	}
	return w
}

// placeRamps marks open cells that sit on the floor in front of a one-cell
// step as ramps, so the step can be walked up instead of jumped.
func placeRamps(g *cave.Grid, kinds []Tile) {
	open := func(x, y int) bool {
		return g.InBounds(x, y) && kinds[y*g.W+x] == TileEmpty
	}
	solid := func(x, y int) bool {
		return !g.InBounds(x, y) || kinds[y*g.W+x] == TileSolid
	}

	for y := 1; y < g.H-1; y++ {
		for x := 1; x < g.W-1; x++ {
			if !open(x, y) || !open(x, y+1) || !solid(x, y-1) {
				continue
			}
			// Step up to the right, approached over flat floor from the left.
			if solid(x+1, y) && open(x+1, y+1) && open(x-1, y) && solid(x-1, y-1) {
				kinds[y*g.W+x] = TileRampUp
				continue
			}
			if solid(x-1, y) && open(x-1, y+1) && open(x+1, y) && solid(x+1, y-1) {
				kinds[y*g.W+x] = TileRampDown
			}
		}
	}
}

// findSpawn picks the lowest standing spot in the largest open region: an
// open cell with open space above and solid floor below.
func findSpawn(g *cave.Grid, kinds []Tile) (cave.Cell, bool) {
	for _, region := range g.Regions() {
		for _, c := range region {
			if kinds[c.Y*g.W+c.X] != TileEmpty {
				continue
			}
			if c.Y+1 < g.H && kinds[(c.Y+1)*g.W+c.X] == TileEmpty && g.Solid(c.X, c.Y-1) {
				return c, true
			}
		}
	}
	return cave.Cell{}, false
}
