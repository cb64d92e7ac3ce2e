package world

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/cavern/internal/cave"
	"github.com/vovakirdan/cavern/internal/collision"
)

const eps = 1e-9

func floorWorld() *World {
	w := New()
	w.AddBox(collision.NewAABB(0, 0, 10, 1), LayerSolid)
	return w
}

func TestCastRay(t *testing.T) {
	down := mgl64.Vec2{0, -1}
	tests := []struct {
		name     string
		origin   mgl64.Vec2
		dir      mgl64.Vec2
		max      float64
		mask     collision.LayerMask
		wantHit  bool
		wantDist float64
	}{
		{"hits floor", mgl64.Vec2{5, 3}, down, 5, collision.MaskAll, true, 2},
		{"exact reach", mgl64.Vec2{5, 3}, down, 2.5, collision.MaskAll, true, 2},
		{"too short", mgl64.Vec2{5, 3}, down, 1.5, collision.MaskAll, false, 0},
		{"unbounded", mgl64.Vec2{5, 3}, down, math.Inf(1), collision.MaskAll, true, 2},
		{"pointing away", mgl64.Vec2{5, 3}, mgl64.Vec2{0, 1}, 5, collision.MaskAll, false, 0},
		{"filtered out", mgl64.Vec2{5, 3}, down, 5, 1 << 4, false, 0},
		{"side face", mgl64.Vec2{-2, 0.5}, mgl64.Vec2{1, 0}, 5, collision.MaskAll, true, 2},
		{"from inside", mgl64.Vec2{5, 0.5}, mgl64.Vec2{0, 1}, 5, collision.MaskAll, false, 0},
	}

	w := floorWorld()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hit, ok := w.CastRay(tc.origin, tc.dir, tc.max, tc.mask)
			if ok != tc.wantHit {
				t.Fatalf("CastRay() hit = %v, expected %v", ok, tc.wantHit)
			}
			if ok && math.Abs(hit.Distance-tc.wantDist) > eps {
				t.Errorf("CastRay() distance = %v, expected %v", hit.Distance, tc.wantDist)
			}
		})
	}
}

func TestCastRayNormals(t *testing.T) {
	w := floorWorld()

	hit, ok := w.CastRay(mgl64.Vec2{5, 3}, mgl64.Vec2{0, -1}, 5, collision.MaskAll)
	if !ok {
		t.Fatal("expected a hit on the floor top")
	}
	if !hit.Normal.ApproxEqual(mgl64.Vec2{0, 1}) {
		t.Errorf("floor normal = %v, expected (0, 1)", hit.Normal)
	}

	hit, ok = w.CastRay(mgl64.Vec2{12, 0.5}, mgl64.Vec2{-1, 0}, 5, collision.MaskAll)
	if !ok {
		t.Fatal("expected a hit on the floor side")
	}
	if !hit.Normal.ApproxEqual(mgl64.Vec2{1, 0}) {
		t.Errorf("side normal = %v, expected (1, 0)", hit.Normal)
	}
}

func TestCastRayRamp(t *testing.T) {
	tests := []struct {
		name   string
		up     bool
		origin mgl64.Vec2
		dir    mgl64.Vec2
		dist   float64
		normal mgl64.Vec2
	}{
		{"rising", true, mgl64.Vec2{0.5, 1.5}, mgl64.Vec2{1, 0}, 1, mgl64.Vec2{-math.Sqrt2 / 2, math.Sqrt2 / 2}},
		{"falling", false, mgl64.Vec2{1.5, 1.5}, mgl64.Vec2{-1, 0}, 1, mgl64.Vec2{math.Sqrt2 / 2, math.Sqrt2 / 2}},
		{"from above", true, mgl64.Vec2{1.5, 3}, mgl64.Vec2{0, -1}, 1.5, mgl64.Vec2{-math.Sqrt2 / 2, math.Sqrt2 / 2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := New()
			w.AddRamp(collision.NewAABB(0, 0, 2, 2), tc.up, LayerSolid)

			hit, ok := w.CastRay(tc.origin, tc.dir, 5, collision.MaskAll)
			if !ok {
				t.Fatal("expected a hit on the ramp")
			}
			if math.Abs(hit.Distance-tc.dist) > eps {
				t.Errorf("distance = %v, expected %v", hit.Distance, tc.dist)
			}
			if !hit.Normal.ApproxEqual(tc.normal) {
				t.Errorf("normal = %v, expected %v", hit.Normal, tc.normal)
			}
			if angle := collision.SurfaceAngle(hit.Normal); math.Abs(angle-45) > 1e-6 {
				t.Errorf("SurfaceAngle() = %v, expected 45", angle)
			}
		})
	}
}

func TestEmptyWorldNeverHits(t *testing.T) {
	w := New()
	if _, ok := w.CastRay(mgl64.Vec2{0, 0}, mgl64.Vec2{0, -1}, math.Inf(1), collision.MaskAll); ok {
		t.Error("empty world reported a hit")
	}
}

func TestTileAt(t *testing.T) {
	w := New()
	w.AddBox(collision.NewAABB(0, 0, 2, 1), LayerSolid)
	w.AddRamp(collision.NewAABB(2, 0, 1, 1), true, LayerSolid)
	w.AddRamp(collision.NewAABB(3, 0, 1, 1), false, LayerSolid)

	tests := []struct {
		x, y float64
		want Tile
	}{
		{1, 0.5, TileSolid},
		{2.8, 0.2, TileRampUp},
		{2.2, 0.8, TileEmpty},
		{3.2, 0.2, TileRampDown},
		{3.8, 0.8, TileEmpty},
		{5, 5, TileEmpty},
	}
	for _, tc := range tests {
		if got := w.TileAt(tc.x, tc.y); got != tc.want {
			t.Errorf("TileAt(%v, %v) = %v, expected %v", tc.x, tc.y, got, tc.want)
		}
	}
	if !w.Solid(1, 0.5) || w.Solid(5, 5) {
		t.Error("Solid() disagrees with TileAt()")
	}
}

func TestBoundsGrow(t *testing.T) {
	w := New()
	w.AddBox(collision.NewAABB(0, 0, 2, 1), LayerSolid)
	w.AddSegment(mgl64.Vec2{-3, 4}, mgl64.Vec2{1, 6}, LayerSolid)

	want := collision.AABB{Min: mgl64.Vec2{-3, 0}, Max: mgl64.Vec2{2, 6}}
	if got := w.Bounds(); got != want {
		t.Errorf("Bounds() = %v, expected %v", got, want)
	}
	if w.Shapes() != 2 {
		t.Errorf("Shapes() = %d, expected 2", w.Shapes())
	}
}

const stepCave = `
######
#....#
#....#
#..#.#
######
`

func TestFromCave(t *testing.T) {
	g, err := cave.Parse(stepCave)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	w := FromCave(g, DefaultOptions())

	// Five merged boxes plus one ramp in front of the step.
	if w.Shapes() != 6 {
		t.Errorf("Shapes() = %d, expected 6", w.Shapes())
	}
	if got := w.TileAt(2.7, 1.2); got != TileRampUp {
		t.Errorf("TileAt(step approach) = %v, expected TileRampUp", got)
	}
	if got := w.TileAt(3.5, 1.5); got != TileSolid {
		t.Errorf("TileAt(step) = %v, expected TileSolid", got)
	}
	if got := w.TileAt(1.5, 2.5); got != TileEmpty {
		t.Errorf("TileAt(open) = %v, expected TileEmpty", got)
	}

	if want := (mgl64.Vec2{1.5, 1}); !w.SpawnPoint().ApproxEqual(want) {
		t.Errorf("SpawnPoint() = %v, expected %v", w.SpawnPoint(), want)
	}
	if want := (collision.AABB{Max: mgl64.Vec2{6, 5}}); w.Bounds() != want {
		t.Errorf("Bounds() = %v, expected %v", w.Bounds(), want)
	}

	hit, ok := w.CastRay(mgl64.Vec2{1.5, 1.2}, mgl64.Vec2{1, 0}, 5, collision.MaskAll)
	if !ok {
		t.Fatal("expected to hit the ramp")
	}
	if math.Abs(hit.Distance-0.7) > eps {
		t.Errorf("distance to ramp = %v, expected 0.7", hit.Distance)
	}
}

func TestFromCaveWithoutRamps(t *testing.T) {
	g, err := cave.Parse(stepCave)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	opts := DefaultOptions()
	opts.Ramps = false
	opts.TileSize = 2
	w := FromCave(g, opts)

	if w.Shapes() != 5 {
		t.Errorf("Shapes() = %d, expected 5", w.Shapes())
	}
	if got := w.TileAt(5.4, 2.4); got != TileEmpty {
		t.Errorf("TileAt() = %v, expected TileEmpty without ramps", got)
	}
	if want := (mgl64.Vec2{3, 2}); !w.SpawnPoint().ApproxEqual(want) {
		t.Errorf("SpawnPoint() = %v, expected %v", w.SpawnPoint(), want)
	}
}

func TestCourse(t *testing.T) {
	w := Course()

	spawn := w.SpawnPoint()
	if w.Solid(spawn.X(), spawn.Y()+0.5) {
		t.Error("spawn point is inside geometry")
	}
	hit, ok := w.CastRay(spawn.Add(mgl64.Vec2{0, 0.5}), mgl64.Vec2{0, -1}, 1, collision.MaskAll)
	if !ok || math.Abs(hit.Distance-0.5) > eps {
		t.Errorf("ground under spawn: hit=%v distance=%v, expected 0.5", ok, hit.Distance)
	}
}
