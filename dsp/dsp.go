// Package dsp holds the small filter primitives used by the offline
// renderer.
package dsp

import "math"

// Biquad implements a second-order IIR filter (Direct Form I, no heap
// allocations in Process).
type Biquad struct {
	b0, b1, b2 float64
	a1, a2     float64

	x1, x2 float64
	y1, y2 float64
}

// NewLowpass creates a lowpass biquad at the given cutoff and Q.
func NewLowpass(cutoffHz, sampleRateHz, q float64) *Biquad {
	b := &Biquad{}
	b.SetLowpass(cutoffHz, sampleRateHz, q)
	return b
}

// SetLowpass retunes the filter in place, keeping its state. Used when a
// scheduled cutoff change lands mid-stream. The cutoff is pinned below
// Nyquist so the coefficients stay stable.
func (b *Biquad) SetLowpass(cutoffHz, sampleRateHz, q float64) {
	nyquist := sampleRateHz * 0.5
	if cutoffHz > nyquist*0.99 {
		cutoffHz = nyquist * 0.99
	}
	if cutoffHz < 1 {
		cutoffHz = 1
	}
	if q <= 0 {
		q = 0.707
	}

	w0 := 2.0 * math.Pi * cutoffHz / sampleRateHz
	alpha := math.Sin(w0) / (2.0 * q)
	cosw0 := math.Cos(w0)

	a0 := 1.0 + alpha
	b.b0 = (1.0 - cosw0) / 2.0 / a0
	b.b1 = (1.0 - cosw0) / a0
	b.b2 = (1.0 - cosw0) / 2.0 / a0
	b.a1 = -2.0 * cosw0 / a0
	b.a2 = (1.0 - alpha) / a0
}

// Process filters one sample.
func (b *Biquad) Process(input float64) float64 {
	output := b.b0*input + b.b1*b.x1 + b.b2*b.x2 - b.a1*b.y1 - b.a2*b.y2

	b.x2 = b.x1
	b.x1 = input
	b.y2 = b.y1
	b.y1 = output

	return output
}

// Reset clears the filter state.
func (b *Biquad) Reset() {
	b.x1, b.x2 = 0, 0
	b.y1, b.y2 = 0, 0
}
