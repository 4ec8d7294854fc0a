package analysis

import "math"

// Metrics describes how closely a candidate pitch trajectory matches a
// reference. Score is in [0,1], lower is better; Similarity is its
// complement.
type Metrics struct {
	ReferencePoints int `json:"reference_points"`
	CandidatePoints int `json:"candidate_points"`
	AlignedPoints   int `json:"aligned_points"`

	RMSECents   float64 `json:"rmse_cents"`
	MaxAbsCents float64 `json:"max_abs_cents"`
	BiasCents   float64 `json:"bias_cents"`

	Score      float64 `json:"score"`
	Similarity float64 `json:"similarity"`
}

// CompareTrajectories aligns two trajectories point-by-point and scores
// their divergence in cents. Empty input yields the worst score rather than
// an error.
func CompareTrajectories(reference, candidate []PitchPoint) Metrics {
	m := Metrics{
		ReferencePoints: len(reference),
		CandidatePoints: len(candidate),
	}

	n := len(reference)
	if len(candidate) < n {
		n = len(candidate)
	}
	if n == 0 {
		m.Score = 1.0
		return m
	}
	m.AlignedPoints = n

	var sumSq, sum float64
	for i := 0; i < n; i++ {
		ref := reference[i].FrequencyHz
		cand := candidate[i].FrequencyHz
		if ref <= 0 || cand <= 0 {
			continue
		}
		cents := 1200 * math.Log2(cand/ref)
		sum += cents
		sumSq += cents * cents
		if abs := math.Abs(cents); abs > m.MaxAbsCents {
			m.MaxAbsCents = abs
		}
	}
	m.BiasCents = sum / float64(n)
	m.RMSECents = math.Sqrt(sumSq / float64(n))

	// Squash the RMSE into [0,1): 200 cents off scores ~0.63.
	m.Score = 1 - math.Exp(-m.RMSECents/200.0)
	m.Similarity = 1 - m.Score
	return m
}
