package collision

// State is the contact record produced by one Resolve call.
type State struct {
	Above bool
	Below bool
	Left  bool
	Right bool

	ClimbingSlope   bool
	DescendingSlope bool

	SlopeAngle     float64 // Ground angle detected this tick, degrees
	PrevSlopeAngle float64 // SlopeAngle of the previous tick
}

// Reset clears the per-tick fields and carries the slope angle over into
// PrevSlopeAngle.
func (s *State) Reset() {
	*s = State{PrevSlopeAngle: s.SlopeAngle}
}

// StartingNewSlope reports whether the slope recorded this tick differs from
// the previous tick's.
func (s State) StartingNewSlope() bool {
	return !approxEqual(s.SlopeAngle, s.PrevSlopeAngle)
}
