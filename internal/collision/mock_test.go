package collision

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// surface is a one-sided line segment. Its normal points to the left of the
// A->B direction, so a floor runs left to right and a wall facing -X runs
// bottom to top.
type surface struct {
	a, b  mgl64.Vec2
	layer LayerMask
}

func (s surface) normal() mgl64.Vec2 {
	d := s.b.Sub(s.a)
	return mgl64.Vec2{-d.Y(), d.X()}.Normalize()
}

// mockWorld answers ray queries analytically against a set of surfaces.
type mockWorld struct {
	surfaces []surface
	casts    int
}

func (w *mockWorld) add(a, b mgl64.Vec2) *mockWorld {
	w.surfaces = append(w.surfaces, surface{a: a, b: b, layer: 1})
	return w
}

// wallFacingLeft is a vertical wall at x blocking movement towards +X.
func (w *mockWorld) wallFacingLeft(x float64) *mockWorld {
	return w.add(mgl64.Vec2{x, -100}, mgl64.Vec2{x, 100})
}

// wallFacingRight is a vertical wall at x blocking movement towards -X.
func (w *mockWorld) wallFacingRight(x float64) *mockWorld {
	return w.add(mgl64.Vec2{x, 100}, mgl64.Vec2{x, -100})
}

// floor is a horizontal surface at y facing up.
func (w *mockWorld) floor(y float64) *mockWorld {
	return w.add(mgl64.Vec2{-100, y}, mgl64.Vec2{100, y})
}

// ceiling is a horizontal surface at y facing down.
func (w *mockWorld) ceiling(y float64) *mockWorld {
	return w.add(mgl64.Vec2{100, y}, mgl64.Vec2{-100, y})
}

// rampUp is a slope rising towards +X at angle degrees, starting at foot.
func (w *mockWorld) rampUp(foot mgl64.Vec2, angle, length float64) *mockWorld {
	rad := mgl64.DegToRad(angle)
	return w.add(foot, foot.Add(mgl64.Vec2{math.Cos(rad), math.Sin(rad)}.Mul(length)))
}

func (w *mockWorld) CastRay(origin, direction mgl64.Vec2, maxDistance float64, mask LayerMask) (Hit, bool) {
	w.casts++
	best := Hit{Distance: math.Inf(1)}
	found := false
	for _, s := range w.surfaces {
		if s.layer&mask == 0 {
			continue
		}
		n := s.normal()
		if direction.Dot(n) >= 0 {
			continue
		}
		seg := s.b.Sub(s.a)
		denom := cross(direction, seg)
		if denom == 0 {
			continue
		}
		qp := s.a.Sub(origin)
		t := cross(qp, seg) / denom
		u := cross(qp, direction) / denom
		if t < 0 || t > maxDistance || u < 0 || u > 1 {
			continue
		}
		if t < best.Distance {
			best = Hit{Distance: t, Normal: n}
			found = true
		}
	}
	return best, found
}

func cross(a, b mgl64.Vec2) float64 {
	return a.X()*b.Y() - a.Y()*b.X()
}

type fixedBounds AABB

func (b fixedBounds) Bounds() AABB {
	return AABB(b)
}

// unitBody is a 1x1 body with its bottom-left corner at (x, y).
func unitBody(x, y float64) fixedBounds {
	return fixedBounds(NewAABB(x, y, 1, 1))
}

func newTestController(t *testing.T, world *mockWorld, body BoundsProvider) *Controller {
	t.Helper()
	c, err := New(DefaultConfig(), world, body)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func approxEqualT(t *testing.T, got, want float64, field string) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %.10f, want %.10f", field, got, want)
	}
}
