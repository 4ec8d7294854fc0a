package drift

// Plan is the drift trajectory chosen for one note: the drawn direction
// sign and the signed rate in cents per second that callers schedule.
type Plan struct {
	Direction          int // +1 or -1
	RateCentsPerSecond float64
}

// Planner draws a drift direction and speed per note.
type Planner struct {
	rnd NoiseSource
}

// NewPlanner creates a planner drawing from rnd.
func NewPlanner(rnd NoiseSource) *Planner {
	return &Planner{rnd: rnd}
}

// Active reports whether a drift plan should be computed at all. A plan is
// only made when at least one shaping parameter is positive; callers skip
// the planner otherwise. A zero-mean Gaussian with positive spread does
// activate.
func Active(param1, param2 float64) bool {
	return param1 > 0 || param2 > 0
}

// Plan chooses the drift for one note. directionProbabilityPercent is the
// chance in [0,100] of upward drift: a half-open uniform draw r yields +1
// when r < pct/100, so 0 always drifts down and 100 always up.
//
// Under ModeGaussian the speed is mean + z*spread and may come out negative;
// the direction sign is applied multiplicatively regardless, so direction
// and speed sign compound. Callers that want a guaranteed direction must
// keep the speed distribution non-negative.
func (p *Planner) Plan(directionProbabilityPercent float64, mode Mode, param1, param2 float64) Plan {
	direction := -1
	if p.rnd.Uniform(0, 1) < directionProbabilityPercent/100.0 {
		direction = 1
	}

	var speed float64
	switch mode {
	case ModeUniform:
		min, max := param1, param2
		if max < min {
			min, max = max, min
		}
		speed = p.rnd.Uniform(min, max)
	default:
		speed = param1 + p.rnd.StandardNormal()*param2
	}

	return Plan{
		Direction:          direction,
		RateCentsPerSecond: float64(direction) * speed,
	}
}
