package drift

// Param is a schedulable audio parameter with sample-accurate automation,
// as exposed by the rendering collaborator.
type Param interface {
	// SetValueAtTime sets the parameter instantaneously at the given time.
	SetValueAtTime(value, at float64)
	// LinearRampToValueAtTime ramps linearly from the previous scheduled
	// point to value at the given time.
	LinearRampToValueAtTime(value, at float64)
	// ExponentialRampToValueAtTime ramps exponentially; the target must be
	// non-zero.
	ExponentialRampToValueAtTime(value, at float64)
	// CancelScheduledValues drops all automation scheduled at or after the
	// given time.
	CancelScheduledValues(at float64)
	// Value returns the current instantaneous value.
	Value() float64
}

// Oscillator is one voice's tone source. Detune is in cents relative to the
// scheduled frequency.
type Oscillator interface {
	Frequency() Param
	Detune() Param
	Start(at float64)
	Stop(at float64)
}

// Filter is the per-voice lowpass stage.
type Filter interface {
	Cutoff() Param
	Resonance() Param
}

// Gain is the per-voice amplitude stage.
type Gain interface {
	Level() Param
}

// Sink is the audio-rendering collaborator the engine schedules against. It
// owns sample-accurate playback of everything scheduled here, independently
// of the engine's further activity. Passed explicitly so the engine stays
// testable with injected fakes.
type Sink interface {
	// Now is the current output-session time in seconds.
	Now() float64
	// SampleRate is the session sample rate in Hz.
	SampleRate() float64

	NewOscillator(shape WaveShape) Oscillator
	NewLowpassFilter() Filter
	NewGain() Gain
	// Connect wires oscillator -> filter -> gain -> master output.
	Connect(o Oscillator, f Filter, g Gain)
}
