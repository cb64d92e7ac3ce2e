package collision

import "github.com/go-gl/mathgl/mgl64"

// RayOrigins holds the four corners probes are cast from, inset from the
// body's bounds by the skin width on every side.
type RayOrigins struct {
	TopLeft     mgl64.Vec2
	TopRight    mgl64.Vec2
	BottomLeft  mgl64.Vec2
	BottomRight mgl64.Vec2
}

// computeOrigins derives the inset corners for the current bounds.
// Called at the start of every Resolve; origins from a previous tick are stale.
func computeOrigins(bounds AABB, skinWidth float64) RayOrigins {
	b := bounds.Expand(-2 * skinWidth)
	return RayOrigins{
		TopLeft:     mgl64.Vec2{b.Min.X(), b.Max.Y()},
		TopRight:    mgl64.Vec2{b.Max.X(), b.Max.Y()},
		BottomLeft:  mgl64.Vec2{b.Min.X(), b.Min.Y()},
		BottomRight: mgl64.Vec2{b.Max.X(), b.Min.Y()},
	}
}

// raySpacing spreads the horizontal probes over the inset height and the
// vertical probes over the inset width, edge to edge.
func raySpacing(bounds AABB, cfg Config) (horizontal, vertical float64) {
	size := bounds.Expand(-2 * cfg.SkinWidth).Size()
	horizontal = size.Y() / float64(cfg.HorizontalRayCount-1)
	vertical = size.X() / float64(cfg.VerticalRayCount-1)
	return horizontal, vertical
}
