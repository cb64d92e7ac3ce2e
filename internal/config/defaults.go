package config

import (
	_ "embed"

	"github.com/vovakirdan/cavern/internal/cave"
	"github.com/vovakirdan/cavern/internal/collision"
	"github.com/vovakirdan/cavern/internal/walker"
	"github.com/vovakirdan/cavern/internal/world"
)

//go:embed defaults/cavern.yaml
var defaultYAML []byte

// Default returns the built-in configuration, assembled from each package's
// own defaults.
func Default() Config {
	cc := collision.DefaultConfig()
	co := cave.DefaultOptions()
	wc := walker.DefaultConfig()
	wo := world.DefaultOptions()

	return Config{
		Controller: ControllerConfig{
			MaxClimbAngle:      cc.MaxClimbAngle,
			MaxDescendAngle:    cc.MaxDescendAngle,
			SkinWidth:          cc.SkinWidth,
			HorizontalRayCount: cc.HorizontalRayCount,
			VerticalRayCount:   cc.VerticalRayCount,
		},
		Cave: CaveConfig{
			Width:        co.Width,
			Height:       co.Height,
			FillPercent:  co.FillPercent,
			SmoothPasses: co.SmoothPasses,
		},
		Walker: WalkerConfig{
			Width:        wc.Width,
			Height:       wc.Height,
			MoveSpeed:    wc.MoveSpeed,
			JumpHeight:   wc.JumpHeight,
			TimeToApex:   wc.TimeToApex,
			MaxFallSpeed: wc.MaxFallSpeed,
		},
		World: WorldConfig{
			TileSize: wo.TileSize,
			Ramps:    wo.Ramps,
		},
	}
}
