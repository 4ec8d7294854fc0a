package drift

import (
	"math"
	"sort"
)

// Envelope and drift timing constants. The release ramp is exponential and
// cannot target exactly zero, hence the small floor; the oscillator stops
// just after the release completes.
const (
	attackSeconds     = 0.02
	sustainLevel      = 0.25
	releaseSeconds    = 0.15
	stopOffsetSeconds = 0.16
	gainFloor         = 1e-4
	filterResonance   = 0.707

	// DriftHorizonSeconds is the scheduling window emulating indefinite
	// drift on a held note: 24 hours.
	DriftHorizonSeconds = 86400.0
)

// safeguardShape is the single waveform whose frequency and detune
// trajectories are safety-clamped; the other shapes keep their historical
// audible behavior.
const safeguardShape = WaveSine

// Engine orchestrates pitch sampling, drift planning and safety clamping per
// note event, and owns the per-key active-voice table. At most one voice
// exists per key at any time.
//
// Single-threaded, event-driven: operations never block and issue
// time-stamped instructions to the sink, which performs playback on its own.
// The voice table must not be mutated concurrently from outside.
type Engine struct {
	sink    Sink
	sampler *PitchSampler
	planner *Planner
	voices  map[string]*Voice
}

// NewEngine creates an engine scheduling against sink and drawing
// randomness from rnd.
func NewEngine(sink Sink, rnd NoiseSource) *Engine {
	return &Engine{
		sink:    sink,
		sampler: NewPitchSampler(rnd),
		planner: NewPlanner(rnd),
		voices:  make(map[string]*Voice),
	}
}

// PlayNote starts a voice for key at a randomized pitch around baseHz. A
// second call for an already-sounding key is a no-op. Within one call the
// initial frequency set, the detune reset and the drift ramp instructions
// are scheduled in that order at non-decreasing timestamps.
//
// Drift is only planned when at least one shaping parameter is positive
// (Active); a zero-mean Gaussian with positive spread therefore drifts,
// while {0, 0} does not.
//
// Malformed numeric settings (non-finite cutoff and the like) are the
// caller's responsibility; only frequency safety is clamped here.
func (e *Engine) PlayNote(baseHz float64, key string, s Settings) {
	if _, ok := e.voices[key]; ok {
		return
	}

	now := e.sink.Now()
	bounds := BoundsForSampleRate(e.sink.SampleRate())
	safeguard := s.Wave == safeguardShape

	shiftedHz := baseHz * math.Exp2(float64(s.OctaveShift))
	startHz := e.sampler.Sample(shiftedHz, s.VarianceCents)
	if safeguard {
		startHz = ClampFrequency(startHz, bounds)
	}

	osc := e.sink.NewOscillator(s.Wave)
	osc.Frequency().SetValueAtTime(startHz, now)
	// Reset detune so a reused key never inherits a prior note's drift
	// offset.
	osc.Detune().SetValueAtTime(0, now)

	if Active(s.DriftParam1, s.DriftParam2) {
		plan := e.planner.Plan(s.DriftDirectionProbabilityPercent, s.DriftMode, s.DriftParam1, s.DriftParam2)
		events := PlanRamp(startHz, plan.RateCentsPerSecond, DriftHorizonSeconds, bounds, safeguard)
		detune := osc.Detune()
		for _, ev := range events {
			switch ev.Kind {
			case SetValue:
				detune.SetValueAtTime(ev.Value, now+ev.Time)
			case LinearRamp:
				detune.LinearRampToValueAtTime(ev.Value, now+ev.Time)
			}
		}
	}

	filter := e.sink.NewLowpassFilter()
	filter.Cutoff().SetValueAtTime(s.FilterCutoffHz, now)
	filter.Resonance().SetValueAtTime(filterResonance, now)

	gain := e.sink.NewGain()
	gain.Level().SetValueAtTime(0, now)
	gain.Level().LinearRampToValueAtTime(sustainLevel, now+attackSeconds)

	e.sink.Connect(osc, filter, gain)
	osc.Start(now)

	e.voices[key] = &Voice{
		Key:       key,
		StartedAt: now,
		osc:       osc,
		filter:    filter,
		gain:      gain,
	}
}

// StopNote releases the voice for key, if any. The pending gain automation
// is cancelled and held at its current value first, so interrupting the
// attack cannot click, then the level ramps exponentially down to the floor
// and the oscillator stops just after. The voice entry is removed
// immediately; the sink owns the release tail. Calling again for the same
// key is a no-op.
func (e *Engine) StopNote(key string) {
	v, ok := e.voices[key]
	if !ok {
		return
	}
	now := e.sink.Now()

	level := v.gain.Level()
	level.CancelScheduledValues(now)
	level.SetValueAtTime(level.Value(), now)
	level.ExponentialRampToValueAtTime(gainFloor, now+releaseSeconds)
	v.osc.Stop(now + stopOffsetSeconds)

	delete(e.voices, key)
}

// UpdateFilterCutoff applies a new cutoff to all currently sounding voices
// immediately. Future notes are unaffected; they read their own settings
// snapshot at PlayNote time.
func (e *Engine) UpdateFilterCutoff(cutoffHz float64) {
	now := e.sink.Now()
	for _, v := range e.voices {
		v.filter.Cutoff().SetValueAtTime(cutoffHz, now)
	}
}

// ActiveKeys returns the sounding keys in sorted order. External callers use
// it to sweep StopNote over everything; the engine itself has no global
// stop.
func (e *Engine) ActiveKeys() []string {
	keys := make([]string, 0, len(e.voices))
	for k := range e.voices {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
