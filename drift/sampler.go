package drift

// NoiseSource supplies the random draws the engine consumes. randdev.Deviate
// satisfies it; tests pin draws with stubs.
type NoiseSource interface {
	// StandardNormal returns a standard-normal sample.
	StandardNormal() float64
	// Uniform returns a uniform sample in [min, max), swapping inverted
	// bounds first.
	Uniform(min, max float64) float64
}

// PitchSampler produces a one-shot randomized frequency from a base
// frequency and a variance in cents.
type PitchSampler struct {
	rnd NoiseSource
}

// NewPitchSampler creates a sampler drawing from rnd.
func NewPitchSampler(rnd NoiseSource) *PitchSampler {
	return &PitchSampler{rnd: rnd}
}

// Sample returns baseHz scaled by a normally distributed offset of
// varianceCents standard deviation in log-pitch space. Variance zero returns
// baseHz unchanged, exactly; the randomized path still yields a strictly
// positive frequency for any finite positive input.
func (s *PitchSampler) Sample(baseHz, varianceCents float64) float64 {
	if varianceCents == 0 {
		return baseHz
	}
	deviationCents := s.rnd.StandardNormal() * varianceCents
	return baseHz * centsToRatio(deviationCents)
}
