package drift

import "fmt"

// WaveShape selects the oscillator waveform for a voice.
type WaveShape int

const (
	WaveSine WaveShape = iota
	WaveSquare
	WaveSawtooth
	WaveTriangle
)

func (w WaveShape) String() string {
	switch w {
	case WaveSine:
		return "sine"
	case WaveSquare:
		return "square"
	case WaveSawtooth:
		return "sawtooth"
	case WaveTriangle:
		return "triangle"
	}
	return fmt.Sprintf("WaveShape(%d)", int(w))
}

// ParseWaveShape parses a waveform name as used in preset files.
func ParseWaveShape(s string) (WaveShape, error) {
	switch s {
	case "sine":
		return WaveSine, nil
	case "square":
		return WaveSquare, nil
	case "sawtooth":
		return WaveSawtooth, nil
	case "triangle":
		return WaveTriangle, nil
	}
	return WaveSine, fmt.Errorf("unknown wave shape %q", s)
}

// Mode selects how the drift speed is drawn.
type Mode int

const (
	// ModeGaussian interprets the two drift parameters as {mean, spread}.
	ModeGaussian Mode = iota
	// ModeUniform interprets them as {min, max}, auto-swapped if inverted.
	ModeUniform
)

func (m Mode) String() string {
	switch m {
	case ModeGaussian:
		return "gaussian"
	case ModeUniform:
		return "uniform"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses a drift mode name as used in preset files.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "gaussian":
		return ModeGaussian, nil
	case "uniform":
		return ModeUniform, nil
	}
	return ModeGaussian, fmt.Errorf("unknown drift mode %q", s)
}

// Settings is the per-note configuration snapshot passed to PlayNote. The
// engine holds no persistent settings; each call receives a fresh copy from
// its caller.
type Settings struct {
	VarianceCents  float64
	Wave           WaveShape
	FilterCutoffHz float64
	OctaveShift    int

	// Drift configuration. DirectionProbabilityPercent is the chance in
	// [0,100] that the note drifts upward. Param1/Param2 are {mean, spread}
	// under ModeGaussian and {min, max} under ModeUniform.
	DriftDirectionProbabilityPercent float64
	DriftMode                        Mode
	DriftParam1                      float64
	DriftParam2                      float64
}

// NewDefaultSettings returns the engine defaults: a sine voice with mild
// pitch randomization and no drift.
func NewDefaultSettings() Settings {
	return Settings{
		VarianceCents:                    25.0,
		Wave:                             WaveSine,
		FilterCutoffHz:                   8000.0,
		OctaveShift:                      0,
		DriftDirectionProbabilityPercent: 50.0,
		DriftMode:                        ModeGaussian,
		DriftParam1:                      0.0,
		DriftParam2:                      0.0,
	}
}
