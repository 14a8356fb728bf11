package domain

import "time"

// TimeOfDay buckets measurements into the four daily periods the congestion
// patterns are defined over.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)

// TimesOfDay lists the buckets in chronological order.
func TimesOfDay() []TimeOfDay {
	return []TimeOfDay{Morning, Afternoon, Evening, Night}
}

// BucketHour is the representative hour used when synthesizing timestamps
// for a bucket.
func (t TimeOfDay) BucketHour() int {
	switch t {
	case Morning:
		return 8
	case Afternoon:
		return 14
	case Evening:
		return 20
	default:
		return 2
	}
}

// TimeOfDayFor buckets an instant by its local hour: 05-11 morning,
// 12-16 afternoon, 17-21 evening, night otherwise.
func TimeOfDayFor(ts time.Time) TimeOfDay {
	switch hour := ts.Hour(); {
	case hour >= 5 && hour < 12:
		return Morning
	case hour >= 12 && hour < 17:
		return Afternoon
	case hour >= 17 && hour < 22:
		return Evening
	default:
		return Night
	}
}
