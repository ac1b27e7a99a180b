// Package health derives the composite wellness score and the recommendation
// set. Both are hand-specified and independent of the classifier, so the
// displayed score stays explainable without the opaque model.
package health

import (
	"chronopulse/feature"
)

// Score weights. The four components sum to 100 before clipping.
const (
	qualityWeight  = 30.0 // quality of sleep, 1-10 scale
	durationWeight = 30.0 // proximity to the recommended 7-9h band
	stressWeight   = 25.0 // inverse stress, 1-10 scale
	activityWeight = 15.0 // minutes of physical activity, full credit at 60

	durationLow     = 7.0
	durationHigh    = 9.0
	durationPenalty = 10.0 // points lost per hour outside the band

	activityTarget = 60.0
)

// Score computes the 0-100 wellness score from raw inputs. Monotonic in sleep
// quality and activity, inverse-monotonic in stress; both under- and
// over-sleeping are penalized.
func Score(in feature.RawInput) float64 {
	quality := clamp(in.QualityOfSleep, 1, 10) / 10 * qualityWeight

	duration := durationWeight
	if in.SleepDuration < durationLow {
		duration -= (durationLow - in.SleepDuration) * durationPenalty
	} else if in.SleepDuration > durationHigh {
		duration -= (in.SleepDuration - durationHigh) * durationPenalty
	}
	if duration < 0 {
		duration = 0
	}

	stress := (10 - clamp(in.StressLevel, 1, 10)) / 9 * stressWeight

	activity := clamp(in.PhysicalActivityLevel, 0, activityTarget) / activityTarget * activityWeight

	total := quality + duration + stress + activity
	return clamp(total, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
