package drift

// EventKind distinguishes the two scheduling instructions a ramp plan can
// emit against a parameter.
type EventKind int

const (
	// SetValue sets the parameter instantaneously at Time.
	SetValue EventKind = iota
	// LinearRamp ramps linearly from the previous scheduled point to Value
	// at Time.
	LinearRamp
)

// AutomationEvent is one scheduling instruction over the detune parameter,
// in cents relative to the voice's start frequency. Time is in seconds
// relative to note-on.
type AutomationEvent struct {
	Kind  EventKind
	Value float64
	Time  float64
}
