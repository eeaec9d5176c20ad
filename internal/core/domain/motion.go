package domain

import (
	"strconv"
	"time"
)

// ActivityKind identifies a physical activity class.
type ActivityKind string

// Activity kinds reported by activity recognition.
const (
	ActivityInVehicle ActivityKind = "in_vehicle"
	ActivityOnBicycle ActivityKind = "on_bicycle"
	ActivityOnFoot    ActivityKind = "on_foot"
	ActivityRunning   ActivityKind = "running"
	ActivityStill     ActivityKind = "still"
	ActivityTilting   ActivityKind = "tilting"
	ActivityWalking   ActivityKind = "walking"
	ActivityUnknown   ActivityKind = "unknown"
)

// String returns the string representation.
func (k ActivityKind) String() string {
	return string(k)
}

// DetectedActivity is a single (kind, confidence) pair.
type DetectedActivity struct {
	Kind ActivityKind

	// Confidence is in the range [0, 1].
	Confidence float64
}

// String renders the activity as "walking 70%".
func (a DetectedActivity) String() string {
	pct := int(a.Confidence*100 + 0.5)
	return string(a.Kind) + " " + strconv.Itoa(pct) + "%"
}

// MotionClassification is one activity recognition result.
type MotionClassification struct {
	// Activities in the order the recognizer reported them.
	Activities []DetectedActivity

	// Time is when the classification was produced.
	Time time.Time
}

// MostProbable returns the activity with the highest confidence.
// Ties go to the earliest entry. An empty classification yields
// ActivityUnknown with zero confidence.
func (c MotionClassification) MostProbable() DetectedActivity {
	if len(c.Activities) == 0 {
		return DetectedActivity{Kind: ActivityUnknown}
	}
	best := c.Activities[0]
	for _, a := range c.Activities[1:] {
		if a.Confidence > best.Confidence {
			best = a
		}
	}
	return best
}
