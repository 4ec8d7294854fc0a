package dsp

import (
	"math"
	"testing"
)

// rmsResponse feeds a sine through the filter and measures the steady-state
// output RMS relative to the input RMS.
func rmsResponse(b *Biquad, freqHz, sampleRateHz float64) float64 {
	const settle = 2000
	const measure = 8000

	var inSq, outSq float64
	for i := 0; i < settle+measure; i++ {
		x := math.Sin(2 * math.Pi * freqHz * float64(i) / sampleRateHz)
		y := b.Process(x)
		if i >= settle {
			inSq += x * x
			outSq += y * y
		}
	}
	return math.Sqrt(outSq / inSq)
}

func TestLowpassPassesBandAndAttenuatesAbove(t *testing.T) {
	const sr = 48000.0

	low := rmsResponse(NewLowpass(1000, sr, 0.707), 100, sr)
	if low < 0.95 || low > 1.05 {
		t.Fatalf("passband gain = %.3f, want ~1", low)
	}

	high := rmsResponse(NewLowpass(1000, sr, 0.707), 8000, sr)
	if high > 0.1 {
		t.Fatalf("stopband gain = %.3f, want well below passband", high)
	}
}

func TestSetLowpassPinsCutoffBelowNyquist(t *testing.T) {
	const sr = 48000.0
	b := NewLowpass(100000, sr, 0.707)

	for i := 0; i < 10000; i++ {
		y := b.Process(math.Sin(float64(i) * 0.1))
		if math.IsNaN(y) || math.IsInf(y, 0) {
			t.Fatalf("unstable output at sample %d: %v", i, y)
		}
	}
}

func TestRetuneKeepsState(t *testing.T) {
	const sr = 48000.0
	b := NewLowpass(2000, sr, 0.707)

	for i := 0; i < 100; i++ {
		b.Process(1.0)
	}
	before := b.Process(1.0)
	b.SetLowpass(500, sr, 0.707)
	after := b.Process(1.0)

	// Retuning must not reset the running state, so the output continues
	// near the previous level instead of jumping back toward zero.
	if math.Abs(after-before) > 0.5 {
		t.Fatalf("retune discontinuity: before=%.4f after=%.4f", before, after)
	}
}

func TestResetClearsState(t *testing.T) {
	const sr = 48000.0
	b := NewLowpass(1000, sr, 0.707)
	for i := 0; i < 50; i++ {
		b.Process(1.0)
	}
	b.Reset()
	if y := b.Process(0); y != 0 {
		t.Fatalf("output after reset with zero input = %v, want 0", y)
	}
}
