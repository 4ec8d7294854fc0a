package drift

// Voice is the processing chain owned by the engine for one sounding key,
// from PlayNote until StopNote (or an external sweep of all keys).
type Voice struct {
	Key       string
	StartedAt float64

	osc    Oscillator
	filter Filter
	gain   Gain
}
