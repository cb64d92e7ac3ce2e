// Package world holds the static collidable environment the walker moves
// through. Geometry lives in a Chipmunk space used only for queries: there
// are no dynamic bodies and the space is never stepped.
package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/cavern/internal/collision"
)

// LayerSolid is the layer bit for terrain built by this package.
const LayerSolid collision.LayerMask = 1

// Tile classifies what occupies a point of the world, for rendering.
type Tile int

const (
	TileEmpty Tile = iota
	TileSolid
	TileRampUp   // Rises towards +X
	TileRampDown // Falls towards +X
)

// World is a static Chipmunk space with the bookkeeping needed to render it.
type World struct {
	space  *cp.Space
	bounds collision.AABB
	empty  bool
	spawn  mgl64.Vec2
	shapes int
}

// New creates an empty world.
func New() *World {
	return &World{
		space: cp.NewSpace(),
		empty: true,
	}
}

// Bounds returns the box enclosing all geometry added so far.
func (w *World) Bounds() collision.AABB {
	return w.bounds
}

// SpawnPoint returns the bottom-centre position a body should start at.
func (w *World) SpawnPoint() mgl64.Vec2 {
	return w.spawn
}

// SetSpawnPoint overrides the spawn position.
func (w *World) SetSpawnPoint(p mgl64.Vec2) {
	w.spawn = p
}

// Shapes returns the number of collision shapes in the world.
func (w *World) Shapes() int {
	return w.shapes
}

// AddBox adds a solid axis-aligned box on the given layers.
func (w *World) AddBox(b collision.AABB, layer collision.LayerMask) {
	bb := cp.BB{L: b.Min.X(), B: b.Min.Y(), R: b.Max.X(), T: b.Max.Y()}
	w.addShape(cp.NewBox2(w.space.StaticBody, bb, 0), layer, TileSolid, b)
}

// AddRamp fills the lower triangle of b with a slope. With up set the ramp
// rises towards +X, otherwise it falls.
func (w *World) AddRamp(b collision.AABB, up bool, layer collision.LayerMask) {
	l, bot, r, t := b.Min.X(), b.Min.Y(), b.Max.X(), b.Max.Y()

	// Chipmunk expects counter-clockwise winding.
	verts := []cp.Vector{{X: l, Y: bot}, {X: r, Y: bot}, {X: r, Y: t}}
	tile := TileRampUp
	if !up {
		verts[2] = cp.Vector{X: l, Y: t}
		tile = TileRampDown
	}
	w.addShape(cp.NewPolyShapeRaw(w.space.StaticBody, 3, verts, 0), layer, tile, b)
}

// AddSegment adds a zero-thickness solid line between a and b. Segments are
// two-sided and render as solid.
func (w *World) AddSegment(a, b mgl64.Vec2, layer collision.LayerMask) {
	shape := cp.NewSegment(w.space.StaticBody, cp.Vector{X: a.X(), Y: a.Y()}, cp.Vector{X: b.X(), Y: b.Y()}, 0)
	box := collision.AABB{
		Min: mgl64.Vec2{math.Min(a.X(), b.X()), math.Min(a.Y(), b.Y())},
		Max: mgl64.Vec2{math.Max(a.X(), b.X()), math.Max(a.Y(), b.Y())},
	}
	w.addShape(shape, layer, TileSolid, box)
}

func (w *World) addShape(shape *cp.Shape, layer collision.LayerMask, tile Tile, box collision.AABB) {
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(layer), cp.ALL_CATEGORIES))
	shape.SetFriction(0)
	shape.UserData = tile
	w.space.AddShape(shape)
	w.shapes++
	w.grow(box)
}

func (w *World) grow(b collision.AABB) {
	if w.empty {
		w.bounds = b
		w.empty = false
		return
	}
	w.bounds.Min = mgl64.Vec2{math.Min(w.bounds.Min.X(), b.Min.X()), math.Min(w.bounds.Min.Y(), b.Min.Y())}
	w.bounds.Max = mgl64.Vec2{math.Max(w.bounds.Max.X(), b.Max.X()), math.Max(w.bounds.Max.Y(), b.Max.Y())}
}

// CastRay implements collision.RayCaster with a Chipmunk segment query.
// Unbounded rays are clipped to the world diagonal, which no ray starting
// inside the world can outrun.
func (w *World) CastRay(origin, direction mgl64.Vec2, maxDistance float64, mask collision.LayerMask) (collision.Hit, bool) {
	if limit := w.reach(origin); math.IsInf(maxDistance, 1) || maxDistance > limit {
		maxDistance = limit
	}
	if maxDistance <= 0 {
		return collision.Hit{}, false
	}

	end := origin.Add(direction.Mul(maxDistance))
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(mask))
	info := w.space.SegmentQueryFirst(
		cp.Vector{X: origin.X(), Y: origin.Y()},
		cp.Vector{X: end.X(), Y: end.Y()},
		0, filter,
	)
	if info.Shape == nil {
		return collision.Hit{}, false
	}

	return collision.Hit{
		Distance: info.Alpha * maxDistance,
		Normal:   mgl64.Vec2{info.Normal.X, info.Normal.Y},
	}, true
}

// reach is the longest distance a ray from origin could travel and still
// meet geometry.
func (w *World) reach(origin mgl64.Vec2) float64 {
	if w.empty {
		return 0
	}
	far := mgl64.Vec2{
		math.Max(math.Abs(origin.X()-w.bounds.Min.X()), math.Abs(origin.X()-w.bounds.Max.X())),
		math.Max(math.Abs(origin.Y()-w.bounds.Min.Y()), math.Abs(origin.Y()-w.bounds.Max.Y())),
	}
	return far.Len() + 1
}

// TileAt reports what occupies the point (x, y).
func (w *World) TileAt(x, y float64) Tile {
	info := w.space.PointQueryNearest(cp.Vector{X: x, Y: y}, 0, cp.SHAPE_FILTER_ALL)
	if info.Shape == nil {
		return TileEmpty
	}
	if tile, ok := info.Shape.UserData.(Tile); ok {
		return tile
	}
	return TileSolid
}

// Solid reports whether the point (x, y) is inside any geometry.
func (w *World) Solid(x, y float64) bool {
	return w.TileAt(x, y) != TileEmpty
}
