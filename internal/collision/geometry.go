package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// angleEpsilon is the tolerance, in degrees, for treating two slope angles
// as the same surface.
const angleEpsilon = 1e-4

var up = mgl64.Vec2{0, 1}

// AABB is an axis-aligned box in world units, Y pointing up.
type AABB struct {
	Min mgl64.Vec2
	Max mgl64.Vec2
}

// NewAABB builds a box from its bottom-left corner and size.
func NewAABB(x, y, w, h float64) AABB {
	return AABB{Min: mgl64.Vec2{x, y}, Max: mgl64.Vec2{x + w, y + h}}
}

// Size returns the box extents.
func (b AABB) Size() mgl64.Vec2 {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b AABB) Center() mgl64.Vec2 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Expand grows the total size by amount on each axis, half on every side.
// A negative amount shrinks the box.
func (b AABB) Expand(amount float64) AABB {
	half := amount / 2
	return AABB{
		Min: mgl64.Vec2{b.Min.X() - half, b.Min.Y() - half},
		Max: mgl64.Vec2{b.Max.X() + half, b.Max.Y() + half},
	}
}

// Translate returns the box moved by d.
func (b AABB) Translate(d mgl64.Vec2) AABB {
	return AABB{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// Hit describes the first surface a probe ray reached.
type Hit struct {
	Distance float64    // Distance from the ray origin to the hit point
	Normal   mgl64.Vec2 // Unit surface normal at the hit point
}

// RayCaster answers ray queries against the collidable environment.
// A miss is reported with ok == false and is not an error.
// maxDistance may be +Inf for an unbounded probe.
type RayCaster interface {
	CastRay(origin, direction mgl64.Vec2, maxDistance float64, mask LayerMask) (hit Hit, ok bool)
}

// BoundsProvider reports the current bounds of the body being moved.
type BoundsProvider interface {
	Bounds() AABB
}

// Probe records one ray cast during the last Resolve call, for debug overlays.
type Probe struct {
	Origin    mgl64.Vec2
	Direction mgl64.Vec2
	Length    float64 // +Inf for the unbounded descent probe
	Hit       bool
	Distance  float64 // Only meaningful when Hit is set
}

// End returns the point where the probe stopped: the hit point on a hit,
// otherwise origin + direction*Length, with unbounded probes clipped to limit.
func (p Probe) End(limit float64) mgl64.Vec2 {
	length := p.Length
	if p.Hit {
		length = p.Distance
	}
	if math.IsInf(length, 1) || length > limit {
		length = limit
	}
	return p.Origin.Add(p.Direction.Mul(length))
}

// SurfaceAngle returns the angle in degrees between a surface normal and up:
// 0 for flat ground, 90 for a vertical wall.
func SurfaceAngle(normal mgl64.Vec2) float64 {
	l := normal.Len()
	if l == 0 {
		return 0
	}
	cos := mgl64.Clamp(normal.Dot(up)/l, -1, 1)
	return mgl64.RadToDeg(math.Acos(cos))
}

// approxEqual compares two angles in degrees within angleEpsilon.
func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= angleEpsilon
}

// withinLimit reports whether angle does not exceed limit, allowing for the
// same tolerance as approxEqual so an angle measured at the limit counts.
func withinLimit(angle, limit float64) bool {
	return angle <= limit+angleEpsilon
}

// sign returns -1 for negative values and 1 otherwise, zero included.
func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
