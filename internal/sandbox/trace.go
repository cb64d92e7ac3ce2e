package sandbox

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/cavern/internal/collision"
)

// TraceRow is the outcome of one scripted tick.
type TraceRow struct {
	Tick     int
	Position mgl64.Vec2 // Bottom-centre after the move
	Moved    mgl64.Vec2 // Displacement the resolver allowed
	Velocity mgl64.Vec2
	State    collision.State
}

// Trace drives a reset scene with script for the given number of ticks, or
// the script's length when ticks is not positive, and records every tick.
func Trace(s *Scene, script Script, ticks int) []TraceRow {
	if ticks <= 0 {
		ticks = script.Len()
	}
	if s.body == nil {
		return nil
	}

	rows := make([]TraceRow, 0, ticks)
	for tick := 0; tick < ticks; tick++ {
		before := s.body.Position()
		s.Step(script.Frame(tick))
		after := s.body.Position()
		rows = append(rows, TraceRow{
			Tick:     tick + 1,
			Position: after,
			Moved:    after.Sub(before),
			Velocity: s.body.Velocity(),
			State:    s.last,
		})
	}
	return rows
}

// TraceColumns names the fields returned by TraceRow.Cells.
var TraceColumns = []string{"Tick", "X", "Y", "dX", "dY", "vX", "vY", "Contacts"}

// Cells formats the row for tabular output.
func (r TraceRow) Cells() []string {
	return []string{
		fmt.Sprintf("%d", r.Tick),
		fmt.Sprintf("%.4f", r.Position.X()),
		fmt.Sprintf("%.4f", r.Position.Y()),
		fmt.Sprintf("%+.4f", r.Moved.X()),
		fmt.Sprintf("%+.4f", r.Moved.Y()),
		fmt.Sprintf("%+.3f", r.Velocity.X()),
		fmt.Sprintf("%+.3f", r.Velocity.Y()),
		Describe(r.State),
	}
}

// TraceSummary counts what happened over a trace.
type TraceSummary struct {
	Ticks         int
	GroundedTicks int
	ClimbTicks    int
	DescendTicks  int
	WallTicks     int
	CeilingTicks  int
	MaxSlopeAngle float64
	Distance      float64 // Total path length travelled
	Start, End    mgl64.Vec2
}

// Summarize folds trace rows into counts.
func Summarize(rows []TraceRow) TraceSummary {
	var sum TraceSummary
	sum.Ticks = len(rows)
	for i, r := range rows {
		if i == 0 {
			sum.Start = r.Position.Sub(r.Moved)
		}
		sum.End = r.Position
		sum.Distance += r.Moved.Len()

		st := r.State
		if st.Below {
			sum.GroundedTicks++
		}
		if st.Above {
			sum.CeilingTicks++
		}
		if st.Left || st.Right {
			sum.WallTicks++
		}
		if st.ClimbingSlope {
			sum.ClimbTicks++
		}
		if st.DescendingSlope {
			sum.DescendTicks++
		}
		if st.SlopeAngle > sum.MaxSlopeAngle {
			sum.MaxSlopeAngle = st.SlopeAngle
		}
	}
	return sum
}
