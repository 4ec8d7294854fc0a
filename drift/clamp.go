package drift

// Bounds is the device-safe instantaneous frequency range for an output
// session. Recomputed per note, since the sample rate is a property of the
// active session.
type Bounds struct {
	MinHz float64
	MaxHz float64
}

// BoundsForSampleRate derives safe frequency bounds from the output sample
// rate: a fixed 1 Hz floor and a ceiling with headroom below Nyquist.
func BoundsForSampleRate(sampleRateHz float64) Bounds {
	const floorHz = 1.0
	maxHz := sampleRateHz * 0.45
	if maxHz < floorHz {
		maxHz = floorHz
	}
	return Bounds{MinHz: floorHz, MaxHz: maxHz}
}

// ClampFrequency forces freq into the safe range. Non-finite input collapses
// to the floor rather than propagating.
func ClampFrequency(freq float64, b Bounds) float64 {
	if !isFinite(freq) {
		return b.MinHz
	}
	if freq < b.MinHz {
		return b.MinHz
	}
	if freq > b.MaxHz {
		return b.MaxHz
	}
	return freq
}

// PlanRamp converts a requested long-duration drift into detune scheduling
// instructions that keep the instantaneous frequency inside b. The planned
// rate is preserved until the bound would be crossed, then the trajectory
// holds at the bound. With applySafeguard false the requested ramp is
// emitted unmodified; the safeguard currently covers only one waveform
// shape, to leave the audible behavior of the others untouched.
//
// Deterministic: no randomness, no I/O.
func PlanRamp(startHz, rateCentsPerSecond, durationSeconds float64, b Bounds, applySafeguard bool) []AutomationEvent {
	targetDetune := rateCentsPerSecond * durationSeconds
	unclamped := []AutomationEvent{
		{Kind: LinearRamp, Value: targetDetune, Time: durationSeconds},
	}
	if !applySafeguard {
		return unclamped
	}

	safeStart := ClampFrequency(startHz, b)
	minDetune := ratioToCents(b.MinHz / safeStart)
	maxDetune := ratioToCents(b.MaxHz / safeStart)
	if !isFinite(minDetune) || !isFinite(maxDetune) || rateCentsPerSecond == 0 {
		return unclamped
	}
	if targetDetune >= minDetune && targetDetune <= maxDetune {
		return unclamped
	}

	limit := minDetune
	if rateCentsPerSecond > 0 {
		limit = maxDetune
	}
	timeToLimit := limit / rateCentsPerSecond
	switch {
	case timeToLimit <= 0:
		// Rate already points past the boundary; pin immediately.
		return []AutomationEvent{
			{Kind: SetValue, Value: limit, Time: 0},
			{Kind: SetValue, Value: limit, Time: durationSeconds},
		}
	case timeToLimit >= durationSeconds:
		// Never reaches the limit inside the simulated window.
		return unclamped
	default:
		return []AutomationEvent{
			{Kind: LinearRamp, Value: limit, Time: timeToLimit},
			{Kind: SetValue, Value: limit, Time: durationSeconds},
		}
	}
}
