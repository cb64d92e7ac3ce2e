package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/cavern/internal/collision"
)

// ramp returns the box for a slope of the given angle and rise starting at x
// on the course floor.
func ramp(x, floor, angle, rise float64) collision.AABB {
	run := rise / math.Tan(mgl64.DegToRad(angle))
	return collision.NewAABB(x, floor, run, rise)
}

// Course builds the hand-made slope course: a long floor with ramps of
// increasing steepness, one too steep to climb and a low tunnel.
func Course() *World {
	const (
		length = 120.0
		height = 24.0
		floor  = 1.0
	)
	w := New()

	w.AddBox(collision.NewAABB(0, 0, length, floor), LayerSolid)
	w.AddBox(collision.NewAABB(-1, 0, 1, height), LayerSolid)
	w.AddBox(collision.NewAABB(length, 0, 1, height), LayerSolid)
	w.AddSegment(mgl64.Vec2{-1, height}, mgl64.Vec2{length + 1, height}, LayerSolid)

	// 30 degrees up, plateau, 30 degrees down.
	up := ramp(8, floor, 30, 4)
	w.AddRamp(up, true, LayerSolid)
	w.AddBox(collision.NewAABB(up.Max.X(), floor, 6, 4), LayerSolid)
	down := ramp(up.Max.X()+6, floor, 30, 4)
	w.AddRamp(down, false, LayerSolid)

	// 45 degrees up, plateau, 60 degrees down.
	up = ramp(down.Max.X()+6, floor, 45, 4)
	w.AddRamp(up, true, LayerSolid)
	w.AddBox(collision.NewAABB(up.Max.X(), floor, 5, 4), LayerSolid)
	down = ramp(up.Max.X()+5, floor, 60, 4)
	w.AddRamp(down, false, LayerSolid)

	// 80 degrees: too steep to walk, low enough to jump.
	wall := ramp(down.Max.X()+8, floor, 80, 2)
	w.AddRamp(wall, true, LayerSolid)
	w.AddBox(collision.NewAABB(wall.Max.X(), floor, 6, 2), LayerSolid)

	// Low tunnel with a shallow ramp in the middle.
	tunnel := wall.Max.X() + 14
	w.AddBox(collision.NewAABB(tunnel, floor+2.5, 18, height-floor-2.5), LayerSolid)
	bump := ramp(tunnel+6, floor, 15, 0.5)
	w.AddRamp(bump, true, LayerSolid)
	w.AddBox(collision.NewAABB(bump.Max.X(), floor, 3, 0.5), LayerSolid)

	w.SetSpawnPoint(mgl64.Vec2{3, floor})
	return w
}
