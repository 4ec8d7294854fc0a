package drift

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-driftsynth/randdev"
)

// stubNoise replays scripted draws. Uniform consumes from uniforms as the
// raw [0,1) fraction; StandardNormal consumes from normals.
type stubNoise struct {
	uniforms []float64
	normals  []float64
	uPos     int
	nPos     int
}

func (s *stubNoise) Uniform(min, max float64) float64 {
	if max < min {
		min, max = max, min
	}
	r := 0.0
	if s.uPos < len(s.uniforms) {
		r = s.uniforms[s.uPos]
		s.uPos++
	}
	return min + r*(max-min)
}

func (s *stubNoise) StandardNormal() float64 {
	if s.nPos < len(s.normals) {
		z := s.normals[s.nPos]
		s.nPos++
		return z
	}
	return 0
}

func TestSampleZeroVarianceIsExact(t *testing.T) {
	ps := NewPitchSampler(randdev.NewSeeded(1))
	for _, f := range []float64{1.0, 27.5, 261.63, 440.0, 8372.02} {
		if got := ps.Sample(f, 0); got != f {
			t.Fatalf("variance 0 must return the base frequency exactly: got %v want %v", got, f)
		}
	}
}

func TestSampleMeanConvergesToBase(t *testing.T) {
	ps := NewPitchSampler(randdev.NewSeeded(42))

	const base = 440.0
	const trials = 10000
	var sum float64
	seen := make(map[float64]bool)
	for i := 0; i < trials; i++ {
		f := ps.Sample(base, 100.0)
		if f <= 0 {
			t.Fatalf("sampled frequency must stay strictly positive, got %v", f)
		}
		sum += f
		seen[f] = true
	}

	mean := sum / trials
	if rel := math.Abs(mean-base) / base; rel > 0.05 {
		t.Fatalf("sample mean %f deviates %.1f%% from base", mean, rel*100)
	}
	if len(seen) < 2 {
		t.Fatalf("expected more than one distinct sample, got %d", len(seen))
	}
}

func TestSampleAppliesDeviationInCents(t *testing.T) {
	// z pinned at +1 with variance 1200 cents shifts exactly one octave up.
	ps := NewPitchSampler(&stubNoise{normals: []float64{1}})
	got := ps.Sample(220.0, 1200.0)
	if math.Abs(got-440.0) > 1e-9 {
		t.Fatalf("expected one octave up (440 Hz), got %v", got)
	}
}
