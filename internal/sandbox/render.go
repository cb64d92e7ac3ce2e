package sandbox

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/cavern/internal/core"
	"github.com/vovakirdan/cavern/internal/world"
)

// probeLimit caps how far unbounded probes are drawn, in world units.
const probeLimit = 12.0

// hudRows is the number of screen rows reserved above the viewport.
const hudRows = 1

// Camera returns the camera used to render a screen of the given size.
func (s *Scene) Camera(width, height int) Camera {
	cam := Camera{W: width, H: height - hudRows, Top: hudRows}
	if s.body != nil {
		cam.Follow(s.body.Bounds().Center(), s.world.Bounds())
	}
	return cam
}

// Render draws the level, the walker, the ray overlay when enabled and the
// HUD line.
func (s *Scene) Render(dst *core.Screen) {
	if s.body == nil {
		dst.DrawTextCentered(dst.Height()/2, "no level loaded")
		return
	}
	cam := s.Camera(dst.Width(), dst.Height())

	s.drawTiles(dst, cam)
	s.drawMarker(dst, cam, s.world.SpawnPoint(), '+', core.ColorSpawn)
	if s.debug {
		s.drawProbes(dst, cam)
	}
	s.drawBody(dst, cam)
	s.drawHUD(dst)
}

func (s *Scene) drawTiles(dst *core.Screen, cam Camera) {
	bounds := s.world.Bounds()
	for sy := cam.Top; sy < cam.Top+cam.H; sy++ {
		for sx := 0; sx < cam.W; sx++ {
			p := cam.ToWorld(sx, sy)
			if p.X() < bounds.Min.X() || p.X() > bounds.Max.X() || p.Y() < bounds.Min.Y() || p.Y() > bounds.Max.Y() {
				continue
			}
			switch s.world.TileAt(p.X(), p.Y()) {
			case world.TileSolid:
				dst.SetColored(sx, sy, '█', core.ColorRock)
			case world.TileRampUp:
				dst.SetColored(sx, sy, '◢', core.ColorRamp)
			case world.TileRampDown:
				dst.SetColored(sx, sy, '◣', core.ColorRamp)
			}
		}
	}
}

func (s *Scene) drawMarker(dst *core.Screen, cam Camera, p mgl64.Vec2, r rune, c core.Color) {
	// Nudge up so bottom-centre points land in the open cell above the floor.
	x, y := cam.ToScreen(p.Add(mgl64.Vec2{0, 0.5}))
	if dst.Get(x, y) == ' ' {
		dst.SetColored(x, y, r, c)
	}
}

func (s *Scene) drawProbes(dst *core.Screen, cam Camera) {
	for _, p := range s.body.Controller().Probes() {
		x0, y0 := cam.ToScreen(p.Origin)
		x1, y1 := cam.ToScreen(p.End(probeLimit))
		if p.Hit {
			dst.DrawLine(x0, y0, x1, y1, '·', core.ColorRayHit)
			dst.SetColored(x1, y1, '×', core.ColorRayHit)
		} else {
			dst.DrawLine(x0, y0, x1, y1, '·', core.ColorRayMiss)
		}
	}
}

func (s *Scene) drawBody(dst *core.Screen, cam Camera) {
	color := core.ColorBody
	if s.last.ClimbingSlope || s.last.DescendingSlope {
		color = core.ColorBrightGreen
	}
	dst.DrawRect(s.bodyCells(cam), '▓', color)
}

// bodyCells returns the screen rectangle the walker occupies. The box is
// shrunk by a hair so an edge lying exactly on a cell border does not claim
// the neighbouring cell.
func (s *Scene) bodyCells(cam Camera) core.Rect {
	b := s.body.Bounds().Expand(-1e-6)
	x0, y0 := cam.ToScreen(mgl64.Vec2{b.Min.X(), b.Max.Y()})
	x1, y1 := cam.ToScreen(mgl64.Vec2{b.Max.X(), b.Min.Y()})
	return core.NewRect(x0, y0, x1-x0+1, y1-y0+1)
}

func (s *Scene) drawHUD(dst *core.Screen) {
	if s.err != nil {
		dst.DrawTextColored(0, 0, " "+s.err.Error(), core.ColorWarn)
		return
	}

	pos := s.body.Position()
	vel := s.body.Velocity()
	hud := fmt.Sprintf(" %s  seed %d  pos %6.2f,%6.2f  vel %6.2f,%6.2f  %s",
		s.Title(), s.seed, pos.X(), pos.Y(), vel.X(), vel.Y(), Describe(s.last))
	dst.DrawTextColored(0, 0, hud, core.ColorHUD)

	flag := ""
	switch {
	case s.paused:
		flag = "PAUSED"
	case s.debug:
		flag = "RAYS"
	}
	if flag != "" {
		dst.DrawTextColored(dst.Width()-len(flag)-1, 0, flag, core.ColorWarn)
	}
}
