// Package render is an offline implementation of the drift engine's audio
// sink: per-voice oscillator, lowpass filter and gain stages driven by
// sample-accurate automation timelines, mixed block by block into a master
// output. It doubles as the simulated clock for replaying scheduled drift
// trajectories in tests and fitting.
package render

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-approx"
	dspcore "github.com/cwbudde/algo-dsp/dsp/core"

	"github.com/cwbudde/algo-driftsynth/drift"
	"github.com/cwbudde/algo-driftsynth/dsp"
)

// Context implements drift.Sink. Time advances only through Process; Now is
// the rendered frame count divided by the sample rate.
type Context struct {
	sampleRate float64
	frame      int64
	chains     []*chain
}

// NewContext creates an offline render context at the given sample rate.
func NewContext(sampleRateHz float64) (*Context, error) {
	if sampleRateHz <= 0 || math.IsNaN(sampleRateHz) || math.IsInf(sampleRateHz, 0) {
		return nil, fmt.Errorf("invalid sample rate %v", sampleRateHz)
	}
	return &Context{sampleRate: sampleRateHz}, nil
}

// Now returns the current render time in seconds.
func (c *Context) Now() float64 {
	return float64(c.frame) / c.sampleRate
}

// SampleRate returns the render sample rate in Hz.
func (c *Context) SampleRate() float64 {
	return c.sampleRate
}

// NewOscillator creates an unconnected oscillator node.
func (c *Context) NewOscillator(shape drift.WaveShape) drift.Oscillator {
	return &oscNode{
		ctx:       c,
		shape:     shape,
		freq:      newTimeline(c, 440),
		detune:    newTimeline(c, 0),
		startTime: math.Inf(1),
		stopTime:  math.Inf(1),
	}
}

// NewLowpassFilter creates an unconnected lowpass filter node.
func (c *Context) NewLowpassFilter() drift.Filter {
	return &filterNode{
		ctx:       c,
		cutoff:    newTimeline(c, 20000),
		resonance: newTimeline(c, 0.707),
	}
}

// NewGain creates an unconnected gain node.
func (c *Context) NewGain() drift.Gain {
	return &gainNode{level: newTimeline(c, 1)}
}

// Connect wires oscillator -> filter -> gain into the master mix. Nodes
// created by a different sink implementation are ignored.
func (c *Context) Connect(o drift.Oscillator, f drift.Filter, g drift.Gain) {
	osc, ok1 := o.(*oscNode)
	filter, ok2 := f.(*filterNode)
	gain, ok3 := g.(*gainNode)
	if !ok1 || !ok2 || !ok3 {
		return
	}
	c.chains = append(c.chains, &chain{osc: osc, filter: filter, gain: gain})
}

// Process renders the next numFrames mono samples and advances the clock.
func (c *Context) Process(numFrames int) []float32 {
	out := make([]float32, numFrames)
	dt := 1.0 / c.sampleRate
	var t float64
	for i := range out {
		t = float64(c.frame) / c.sampleRate
		var mix float64
		for _, ch := range c.chains {
			mix += ch.process(t, dt)
		}
		out[i] = float32(dspcore.FlushDenormals(mix))
		c.frame++
	}

	// Drop chains whose oscillator has fully stopped.
	live := c.chains[:0]
	for _, ch := range c.chains {
		if t < ch.osc.stopTime {
			live = append(live, ch)
		}
	}
	c.chains = live

	return out
}

// ActiveChains returns the number of voice chains still in the mix.
func (c *Context) ActiveChains() int {
	return len(c.chains)
}

type chain struct {
	osc    *oscNode
	filter *filterNode
	gain   *gainNode
}

func (ch *chain) process(t, dt float64) float64 {
	if t < ch.osc.startTime || t >= ch.osc.stopTime {
		return 0
	}
	s := ch.osc.sample(t, dt)
	s = ch.filter.process(s, t)
	return s * ch.gain.level.ValueAt(t)
}

type oscNode struct {
	ctx       *Context
	shape     drift.WaveShape
	freq      *timeline
	detune    *timeline
	phase     float64
	startTime float64
	stopTime  float64
}

func (o *oscNode) Frequency() drift.Param { return o.freq }
func (o *oscNode) Detune() drift.Param    { return o.detune }

func (o *oscNode) Start(at float64) {
	if math.IsInf(o.startTime, 1) {
		o.startTime = at
	}
}

func (o *oscNode) Stop(at float64) {
	o.stopTime = at
}

func (o *oscNode) sample(t, dt float64) float64 {
	hz := o.freq.ValueAt(t) * centsRatio(o.detune.ValueAt(t))
	o.phase += hz * dt
	o.phase -= math.Floor(o.phase)

	switch o.shape {
	case drift.WaveSquare:
		if o.phase < 0.5 {
			return 1
		}
		return -1
	case drift.WaveSawtooth:
		return 2*o.phase - 1
	case drift.WaveTriangle:
		return 1 - 4*math.Abs(o.phase-0.5)
	default:
		return math.Sin(2 * math.Pi * o.phase)
	}
}

type filterNode struct {
	ctx        *Context
	cutoff     *timeline
	resonance  *timeline
	biquad     *dsp.Biquad
	lastCutoff float64
	lastQ      float64
}

func (f *filterNode) Cutoff() drift.Param    { return f.cutoff }
func (f *filterNode) Resonance() drift.Param { return f.resonance }

func (f *filterNode) process(x, t float64) float64 {
	c := f.cutoff.ValueAt(t)
	q := f.resonance.ValueAt(t)
	if f.biquad == nil {
		f.biquad = dsp.NewLowpass(c, f.ctx.sampleRate, q)
		f.lastCutoff, f.lastQ = c, q
	} else if c != f.lastCutoff || q != f.lastQ {
		f.biquad.SetLowpass(c, f.ctx.sampleRate, q)
		f.lastCutoff, f.lastQ = c, q
	}
	return f.biquad.Process(x)
}

type gainNode struct {
	level *timeline
}

func (g *gainNode) Level() drift.Param { return g.level }

const lnTwoOver1200 = 0.69314718055994530942 / 1200.0

// centsRatio is the per-sample detune conversion; FastExp keeps it cheap in
// the render loop.
func centsRatio(cents float64) float64 {
	return float64(approx.FastExp(float32(cents * lnTwoOver1200)))
}
