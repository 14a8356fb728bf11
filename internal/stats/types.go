package stats

import "campusnet-service/internal/domain"

// Level grades average signal quality into the four reporting tiers.
type Level string

const (
	LevelExcellent Level = "Excellent"
	LevelGood      Level = "Good"
	LevelFair      Level = "Fair"
	LevelPoor      Level = "Poor"
	LevelNoData    Level = "No Data"
)

// LevelFor grades an average signal quality percentage.
func LevelFor(quality float64) Level {
	switch {
	case quality > 80:
		return LevelExcellent
	case quality > 60:
		return LevelGood
	case quality > 40:
		return LevelFair
	default:
		return LevelPoor
	}
}

// ReliabilityThreshold is the signal quality above which a sample counts as
// reliable service.
const ReliabilityThreshold = 70.0

// CarrierSummary aggregates one carrier across the whole dataset.
type CarrierSummary struct {
	Carrier           domain.Carrier
	Samples           int
	AvgSignalStrength float64 // dBm
	AvgSignalQuality  float64 // percent
	AvgDataSpeed      float64 // Mbps
	AvgSINR           float64 // dB
	ReliabilityScore  float64 // percent of samples above the threshold
}

// Overview combines all carrier summaries with the overall winner and loser,
// ranked by (avg quality + avg speed)/2.
type Overview struct {
	Summaries    []CarrierSummary
	BestCarrier  domain.Carrier
	WorstCarrier domain.Carrier
}

// CarrierCell is one carrier's aggregate at a single location.
type CarrierCell struct {
	Carrier          domain.Carrier
	Samples          int
	AvgSignalQuality float64
	AvgDataSpeed     float64
	Level            Level
}

// LocationReport aggregates every carrier at one campus location.
type LocationReport struct {
	Location    domain.Location
	BestCarrier domain.Carrier
	Cells       []CarrierCell
}

// ReliabilityBreakdown scores a carrier's dependability. Consistency and
// speed stability penalize variance, coverage rewards samples above the
// reliability threshold; the weights are 0.3/0.4/0.3.
type ReliabilityBreakdown struct {
	Carrier        domain.Carrier
	Consistency    float64
	Coverage       float64
	SpeedStability float64
	Total          float64
}

// TimeOfDayPoint is one carrier's average performance in a daily bucket.
type TimeOfDayPoint struct {
	TimeOfDay        domain.TimeOfDay
	Carrier          domain.Carrier
	Samples          int
	AvgDataSpeed     float64
	AvgSignalQuality float64
}

// CostReport relates a carrier's plan prices to its measured throughput.
type CostReport struct {
	Carrier    domain.Carrier
	PlanPrices map[string]int // naira per bundle
	ValueScore float64        // Mbps per naira, scaled by 100
}

// ExperienceRating expresses a carrier's measured performance as 1-5 star
// scores.
type ExperienceRating struct {
	Carrier     domain.Carrier
	CallQuality float64
	DataSpeed   float64
	Reliability float64
	Overall     float64
}

// MapPoint is one location's aggregate, positioned for map rendering.
type MapPoint struct {
	Location          domain.Location
	Samples           int
	AvgSignalQuality  float64
	AvgDataSpeed      float64
	AvgSignalStrength float64
	BestCarrier       domain.Carrier
	Level             Level
}
