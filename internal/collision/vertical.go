package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// verticalCollisions casts the Y probes along the bottom edge when falling or
// the top edge when rising. Probes are shifted by the already resolved dx so
// they test where the body will be, not where it is.
func (c *Controller) verticalCollisions(v mgl64.Vec2, st *State) mgl64.Vec2 {
	if v[1] < 0 {
		v = c.descendSlope(v, st)
	}

	skin := c.cfg.SkinWidth
	directionY := sign(v[1])
	rayLength := math.Abs(v[1]) + skin
	direction := mgl64.Vec2{0, directionY}

	corner := c.origins.TopLeft
	if directionY < 0 {
		corner = c.origins.BottomLeft
	}

	for i := 0; i < c.cfg.VerticalRayCount; i++ {
		origin := corner.Add(mgl64.Vec2{c.verticalSpacing*float64(i) + v[0], 0})
		hit, ok := c.cast(origin, direction, rayLength)
		if !ok {
			continue
		}

		v[1] = (hit.Distance - skin) * directionY
		rayLength = hit.Distance

		if st.ClimbingSlope {
			if t := math.Tan(mgl64.DegToRad(st.SlopeAngle)); t != 0 {
				v[0] = v[1] / t * sign(v[0])
			}
		}

		st.Below = directionY < 0
		st.Above = directionY > 0
	}

	if st.ClimbingSlope {
		v = c.revalidateSlope(v, st)
	}
	return v
}

// revalidateSlope probes ahead from the vertically adjusted foot position to
// catch a change of steepness partway through a climb.
func (c *Controller) revalidateSlope(v mgl64.Vec2, st *State) mgl64.Vec2 {
	skin := c.cfg.SkinWidth
	directionX := sign(v[0])
	rayLength := math.Abs(v[0]) + skin

	origin := c.origins.BottomRight
	if directionX < 0 {
		origin = c.origins.BottomLeft
	}
	origin = origin.Add(mgl64.Vec2{0, v[1]})

	hit, ok := c.cast(origin, mgl64.Vec2{directionX, 0}, rayLength)
	if !ok {
		return v
	}

	slopeAngle := SurfaceAngle(hit.Normal)
	if !approxEqual(slopeAngle, st.SlopeAngle) {
		v[0] = (hit.Distance - skin) * directionX
		st.SlopeAngle = slopeAngle
	}
	return v
}
