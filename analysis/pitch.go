// Package analysis measures pitch trajectories of rendered audio, for
// verifying and fitting drift behavior.
package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/cwbudde/algo-fft"
)

// PitchPoint is one pitch estimate on a trajectory.
type PitchPoint struct {
	TimeSeconds float64 `json:"time_seconds"`
	FrequencyHz float64 `json:"frequency_hz"`
}

// TrackPitch estimates the dominant pitch over time using a Hann-windowed
// STFT with parabolic peak interpolation. Frames below the silence floor are
// skipped, so release tails do not pollute the trajectory.
func TrackPitch(samples []float32, sampleRate, fftSize, hop int) ([]PitchPoint, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}
	if fftSize <= 0 {
		fftSize = 4096
	}
	if hop <= 0 {
		hop = fftSize / 2
	}

	plan, err := algofft.NewPlanReal64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("fft plan: %w", err)
	}

	hann := make([]float64, fftSize)
	for i := range hann {
		hann[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(fftSize-1))
	}

	spec := make([]complex128, fftSize/2+1)
	buf := make([]float64, fftSize)
	binHz := float64(sampleRate) / float64(fftSize)
	nBins := fftSize / 2

	const silenceRMS = 1e-5

	var points []PitchPoint
	for pos := 0; pos+fftSize <= len(samples); pos += hop {
		var energy float64
		for i := 0; i < fftSize; i++ {
			x := float64(samples[pos+i])
			buf[i] = x * hann[i]
			energy += x * x
		}
		if math.Sqrt(energy/float64(fftSize)) < silenceRMS {
			continue
		}

		plan.Forward(spec, buf)

		peak := 1
		peakMag := 0.0
		for k := 1; k < nBins; k++ {
			if mag := cmplx.Abs(spec[k]); mag > peakMag {
				peakMag = mag
				peak = k
			}
		}
		if peakMag == 0 {
			continue
		}

		points = append(points, PitchPoint{
			TimeSeconds: (float64(pos) + float64(fftSize)/2) / float64(sampleRate),
			FrequencyHz: (float64(peak) + peakOffset(spec, peak, nBins)) * binHz,
		})
	}
	return points, nil
}

// peakOffset refines a spectral peak to sub-bin accuracy by fitting a
// parabola through the log magnitudes of the peak and its neighbors.
func peakOffset(spec []complex128, k, nBins int) float64 {
	if k <= 1 || k >= nBins-1 {
		return 0
	}
	const floor = 1e-12
	a := math.Log(cmplx.Abs(spec[k-1]) + floor)
	b := math.Log(cmplx.Abs(spec[k]) + floor)
	c := math.Log(cmplx.Abs(spec[k+1]) + floor)
	denom := a - 2*b + c
	if denom == 0 {
		return 0
	}
	delta := 0.5 * (a - c) / denom
	if delta < -0.5 || delta > 0.5 {
		return 0
	}
	return delta
}
