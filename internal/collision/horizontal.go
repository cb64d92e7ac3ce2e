package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// horizontalCollisions casts the stacked X probes from the bottom corner on
// the side of travel. The bottom probe may start a slope climb; any other hit
// that is not a climbable slope clips dx to the obstruction.
func (c *Controller) horizontalCollisions(v mgl64.Vec2, st *State) mgl64.Vec2 {
	skin := c.cfg.SkinWidth
	directionX := sign(v[0])
	rayLength := math.Abs(v[0]) + skin
	direction := mgl64.Vec2{directionX, 0}

	origin := c.origins.BottomLeft
	if directionX > 0 {
		origin = c.origins.BottomRight
	}
	step := mgl64.Vec2{0, c.horizontalSpacing}

	for i := 0; i < c.cfg.HorizontalRayCount; i++ {
		hit, ok := c.cast(origin, direction, rayLength)
		origin = origin.Add(step)
		if !ok {
			continue
		}

		slopeAngle := SurfaceAngle(hit.Normal)

		climbable := withinLimit(slopeAngle, c.cfg.MaxClimbAngle)

		if i == 0 && climbable {
			st.SlopeAngle = slopeAngle

			// On the first tick of a new slope only the part of the move
			// past the slope foot is bent along the slope.
			distanceToSlopeStart := 0.0
			if st.StartingNewSlope() {
				distanceToSlopeStart = hit.Distance - skin
				v[0] -= distanceToSlopeStart * directionX
			}
			v = c.climbSlope(v, st)
			v[0] += distanceToSlopeStart * directionX
		}

		if !st.ClimbingSlope || !climbable {
			v[0] = (hit.Distance - skin) * directionX
			rayLength = hit.Distance

			if st.ClimbingSlope {
				v[1] = math.Tan(mgl64.DegToRad(st.SlopeAngle)) * math.Abs(v[0])
			}

			// A body already inside the skin is pushed back out, against
			// the direction of travel.
			contact := directionX
			if v[0] != 0 {
				contact = sign(v[0])
			}
			st.Right = contact > 0
			st.Left = contact < 0
		}
	}
	return v
}
