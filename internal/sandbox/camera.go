package sandbox

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/cavern/internal/collision"
)

// colsPerUnit is how many terminal columns one world unit spans. Rows map
// one to one, which keeps square tiles roughly square on screen.
const colsPerUnit = 2

// Camera maps world space (Y up) to a viewport of screen cells (Y down).
type Camera struct {
	Center mgl64.Vec2 // World point shown at the middle of the viewport
	W, H   int        // Viewport size in cells
	Top    int        // Screen row of the viewport's first line
}

// Follow centres the camera on target, keeping the view inside bounds when
// the world is larger than the viewport.
func (c *Camera) Follow(target mgl64.Vec2, bounds collision.AABB) {
	halfW := float64(c.W) / 2 / colsPerUnit
	halfH := float64(c.H) / 2
	c.Center = mgl64.Vec2{
		follow(target.X(), bounds.Min.X(), bounds.Max.X(), halfW),
		follow(target.Y(), bounds.Min.Y(), bounds.Max.Y(), halfH),
	}
}

func follow(target, lo, hi, half float64) float64 {
	if hi-lo <= 2*half {
		return (lo + hi) / 2
	}
	return mgl64.Clamp(target, lo+half, hi-half)
}

// ToScreen returns the cell containing world point p.
func (c Camera) ToScreen(p mgl64.Vec2) (int, int) {
	sx := math.Floor((p.X()-c.Center.X())*colsPerUnit + float64(c.W)/2)
	sy := math.Floor(float64(c.H)/2 - (p.Y() - c.Center.Y()))
	return int(sx), c.Top + int(sy)
}

// ToWorld returns the world point at the centre of cell (sx, sy).
func (c Camera) ToWorld(sx, sy int) mgl64.Vec2 {
	return mgl64.Vec2{
		c.Center.X() + (float64(sx)+0.5-float64(c.W)/2)/colsPerUnit,
		c.Center.Y() + float64(c.H)/2 - (float64(sy-c.Top) + 0.5),
	}
}
