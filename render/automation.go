package render

import (
	"math"
	"sort"
)

type eventKind int

const (
	evSet eventKind = iota
	evLinear
	evExp
)

type event struct {
	kind  eventKind
	value float64
	time  float64
}

// timeline is the automation schedule of one parameter. It implements
// drift.Param with set/ramp/cancel semantics: a ramp interpolates from the
// previous scheduled point, a set holds until its timestamp. Events are kept
// ordered by time, insertion order preserved for ties.
type timeline struct {
	ctx     *Context
	initial float64
	events  []event
}

func newTimeline(ctx *Context, initial float64) *timeline {
	return &timeline{ctx: ctx, initial: initial}
}

func (tl *timeline) insert(ev event) {
	i := sort.Search(len(tl.events), func(i int) bool {
		return tl.events[i].time > ev.time
	})
	tl.events = append(tl.events, event{})
	copy(tl.events[i+1:], tl.events[i:])
	tl.events[i] = ev
}

func (tl *timeline) SetValueAtTime(value, at float64) {
	tl.insert(event{kind: evSet, value: value, time: at})
}

func (tl *timeline) LinearRampToValueAtTime(value, at float64) {
	tl.insert(event{kind: evLinear, value: value, time: at})
}

func (tl *timeline) ExponentialRampToValueAtTime(value, at float64) {
	tl.insert(event{kind: evExp, value: value, time: at})
}

func (tl *timeline) CancelScheduledValues(at float64) {
	i := sort.Search(len(tl.events), func(i int) bool {
		return tl.events[i].time >= at
	})
	tl.events = tl.events[:i]
}

func (tl *timeline) Value() float64 {
	return tl.ValueAt(tl.ctx.Now())
}

// ValueAt evaluates the schedule at time t.
func (tl *timeline) ValueAt(t float64) float64 {
	v0, t0 := tl.initial, 0.0
	for _, ev := range tl.events {
		if ev.time <= t {
			v0, t0 = ev.value, ev.time
			continue
		}
		switch ev.kind {
		case evLinear:
			if ev.time == t0 {
				return ev.value
			}
			frac := (t - t0) / (ev.time - t0)
			if frac < 0 {
				frac = 0
			}
			return v0 + (ev.value-v0)*frac
		case evExp:
			// Exponential ramps require same-signed non-zero endpoints;
			// degrade to linear otherwise.
			if v0 == 0 || ev.value*v0 <= 0 || ev.time == t0 {
				if ev.time == t0 {
					return ev.value
				}
				frac := (t - t0) / (ev.time - t0)
				return v0 + (ev.value-v0)*frac
			}
			frac := (t - t0) / (ev.time - t0)
			return v0 * math.Pow(ev.value/v0, frac)
		default:
			return v0
		}
	}
	return v0
}
