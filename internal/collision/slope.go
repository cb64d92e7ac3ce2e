package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// climbSlope bends the horizontal move along the recorded slope. A body that
// is already rising faster than the climb would lift it (a jump) keeps its
// vertical velocity and is not marked as climbing.
func (c *Controller) climbSlope(v mgl64.Vec2, st *State) mgl64.Vec2 {
	moveDistance := math.Abs(v[0])
	rad := mgl64.DegToRad(st.SlopeAngle)
	climbVelocityY := math.Sin(rad) * moveDistance

	if v[1] <= climbVelocityY {
		v[1] = climbVelocityY
		v[0] = math.Cos(rad) * moveDistance * sign(v[0])
		st.Below = true
		st.ClimbingSlope = true
	}
	return v
}

// descendSlope keeps a body glued to a downhill slope instead of letting it
// walk off into the air. It probes straight down from the bottom corner on
// the uphill side, which is the corner resting on the slope.
func (c *Controller) descendSlope(v mgl64.Vec2, st *State) mgl64.Vec2 {
	directionX := sign(v[0])
	origin := c.origins.BottomLeft
	if directionX < 0 {
		origin = c.origins.BottomRight
	}

	hit, ok := c.cast(origin, mgl64.Vec2{0, -1}, math.Inf(1))
	if !ok {
		return v
	}

	slopeAngle := SurfaceAngle(hit.Normal)
	if approxEqual(slopeAngle, 0) || !withinLimit(slopeAngle, c.cfg.MaxDescendAngle) {
		return v
	}
	// The slope must fall away in the direction of travel.
	if sign(hit.Normal.X()) != directionX {
		return v
	}

	moveDistance := math.Abs(v[0])
	rad := mgl64.DegToRad(slopeAngle)
	if hit.Distance-c.cfg.SkinWidth > math.Tan(rad)*moveDistance {
		return v
	}

	v[0] = math.Cos(rad) * moveDistance * directionX
	v[1] -= math.Sin(rad) * moveDistance

	st.SlopeAngle = slopeAngle
	st.DescendingSlope = true
	st.Below = true
	return v
}
