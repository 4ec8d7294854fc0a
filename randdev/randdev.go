// Package randdev provides the random deviates used by the drift engine:
// uniform draws in a range and standard-normal samples via the Box-Muller
// transform, on top of an injectable uniform source.
package randdev

import (
	"math"
	"math/rand"
	"time"
)

// Source supplies uniform random values in [0,1).
type Source interface {
	Float64() float64
}

// Deviate draws uniform and standard-normal samples from a Source.
type Deviate struct {
	src Source
}

// New creates a Deviate backed by the given source.
func New(src Source) *Deviate {
	return &Deviate{src: src}
}

// NewSeeded creates a Deviate backed by a math/rand source with the given
// seed, for reproducible renders.
func NewSeeded(seed int64) *Deviate {
	return New(rand.New(rand.NewSource(seed)))
}

// NewTimeSeeded creates a Deviate seeded from the wall clock.
func NewTimeSeeded() *Deviate {
	return NewSeeded(time.Now().UnixNano())
}

// StandardNormal returns a sample approximating the standard normal
// distribution using the Box-Muller transform. The two uniform inputs are
// re-drawn if exactly zero, since log(0) is undefined.
func (d *Deviate) StandardNormal() float64 {
	u := d.src.Float64()
	for u == 0 {
		u = d.src.Float64()
	}
	v := d.src.Float64()
	for v == 0 {
		v = d.src.Float64()
	}
	return math.Sqrt(-2.0*math.Log(u)) * math.Cos(2.0*math.Pi*v)
}

// Uniform returns a uniform sample in [min, max). Swapped arguments are
// reordered first so min <= max always holds.
func (d *Deviate) Uniform(min, max float64) float64 {
	if max < min {
		min, max = max, min
	}
	return min + d.src.Float64()*(max-min)
}
