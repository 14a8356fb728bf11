// Package stats turns stored measurements into the carrier and location
// aggregates served by the transports.
package stats

import (
	"context"
	"fmt"
	"math"

	"campusnet-service/internal/domain"
)

// Service orchestrates access to measurement statistics.
type Service struct {
	repo domain.MeasurementReader
}

// New creates a new stats service instance.
func New(repo domain.MeasurementReader) *Service {
	return &Service{repo: repo}
}

// Overview returns every carrier summary plus the overall best and worst
// carrier, ranked by (avg quality + avg speed)/2.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	all, err := s.list(ctx, domain.Filter{})
	if err != nil {
		return Overview{}, err
	}

	overview := Overview{Summaries: make([]CarrierSummary, 0, 4)}
	bestScore, worstScore := math.Inf(-1), math.Inf(1)
	for _, carrier := range domain.Carriers() {
		summary := summarize(carrier, filterMeasurements(all, domain.Filter{Carrier: carrier}))
		overview.Summaries = append(overview.Summaries, summary)

		if summary.Samples == 0 {
			continue
		}
		score := (summary.AvgSignalQuality + summary.AvgDataSpeed) / 2
		if score > bestScore {
			bestScore, overview.BestCarrier = score, carrier
		}
		if score < worstScore {
			worstScore, overview.WorstCarrier = score, carrier
		}
	}

	return overview, nil
}

// CarrierSummary aggregates a single carrier across all locations.
func (s *Service) CarrierSummary(ctx context.Context, carrier domain.Carrier) (CarrierSummary, error) {
	if _, err := domain.ParseCarrier(string(carrier)); err != nil {
		return CarrierSummary{}, err
	}

	ms, err := s.list(ctx, domain.Filter{Carrier: carrier})
	if err != nil {
		return CarrierSummary{}, err
	}
	return summarize(carrier, ms), nil
}

// LocationReport aggregates every carrier at one campus location.
func (s *Service) LocationReport(ctx context.Context, name string) (LocationReport, error) {
	location, err := domain.LookupLocation(name)
	if err != nil {
		return LocationReport{}, err
	}

	ms, err := s.list(ctx, domain.Filter{Location: name})
	if err != nil {
		return LocationReport{}, err
	}

	report := LocationReport{Location: location, Cells: make([]CarrierCell, 0, 4)}
	bestScore := math.Inf(-1)
	for _, carrier := range domain.Carriers() {
		sub := filterMeasurements(ms, domain.Filter{Carrier: carrier})
		cell := CarrierCell{Carrier: carrier, Samples: len(sub), Level: LevelNoData}
		if len(sub) > 0 {
			cell.AvgSignalQuality = meanOf(sub, quality)
			cell.AvgDataSpeed = meanOf(sub, speed)
			cell.Level = LevelFor(cell.AvgSignalQuality)

			if score := compositeScore(sub); score > bestScore {
				bestScore, report.BestCarrier = score, carrier
			}
		}
		report.Cells = append(report.Cells, cell)
	}

	return report, nil
}

// BestCarriers returns the best-scoring carrier for each location that has
// data, keyed by location name.
func (s *Service) BestCarriers(ctx context.Context) (map[string]domain.Carrier, error) {
	all, err := s.list(ctx, domain.Filter{})
	if err != nil {
		return nil, err
	}
	return bestByLocation(all), nil
}

// Reliability scores each carrier's dependability from quality variance,
// threshold coverage and speed variance.
func (s *Service) Reliability(ctx context.Context) ([]ReliabilityBreakdown, error) {
	all, err := s.list(ctx, domain.Filter{})
	if err != nil {
		return nil, err
	}

	out := make([]ReliabilityBreakdown, 0, 4)
	for _, carrier := range domain.Carriers() {
		sub := filterMeasurements(all, domain.Filter{Carrier: carrier})
		if len(sub) == 0 {
			out = append(out, ReliabilityBreakdown{Carrier: carrier})
			continue
		}

		breakdown := ReliabilityBreakdown{
			Carrier:        carrier,
			Consistency:    (100 - stddevOf(sub, quality)) * 0.3,
			Coverage:       reliableShare(sub) * 100 * 0.4,
			SpeedStability: (100 - stddevOf(sub, speed)) * 0.3,
		}
		breakdown.Total = breakdown.Consistency + breakdown.Coverage + breakdown.SpeedStability
		out = append(out, breakdown)
	}
	return out, nil
}

// TimeOfDayProfile returns average speed and quality per (bucket, carrier).
func (s *Service) TimeOfDayProfile(ctx context.Context) ([]TimeOfDayPoint, error) {
	all, err := s.list(ctx, domain.Filter{})
	if err != nil {
		return nil, err
	}

	out := make([]TimeOfDayPoint, 0, 16)
	for _, tod := range domain.TimesOfDay() {
		for _, carrier := range domain.Carriers() {
			sub := filterMeasurements(all, domain.Filter{Carrier: carrier, TimeOfDay: tod})
			point := TimeOfDayPoint{TimeOfDay: tod, Carrier: carrier, Samples: len(sub)}
			if len(sub) > 0 {
				point.AvgDataSpeed = meanOf(sub, speed)
				point.AvgSignalQuality = meanOf(sub, quality)
			}
			out = append(out, point)
		}
	}
	return out, nil
}

// Costs relates plan prices to measured throughput per carrier.
func (s *Service) Costs(ctx context.Context) ([]CostReport, error) {
	all, err := s.list(ctx, domain.Filter{})
	if err != nil {
		return nil, err
	}

	out := make([]CostReport, 0, 4)
	for _, carrier := range domain.Carriers() {
		report := CostReport{Carrier: carrier, PlanPrices: PlanPrices(carrier)}
		sub := filterMeasurements(all, domain.Filter{Carrier: carrier})
		if len(sub) > 0 {
			price := report.PlanPrices[referencePlan]
			report.ValueScore = meanOf(sub, speed) / float64(price) * 100
		}
		out = append(out, report)
	}
	return out, nil
}

// Ratings converts each carrier's aggregates into 1-5 star scores.
func (s *Service) Ratings(ctx context.Context) ([]ExperienceRating, error) {
	all, err := s.list(ctx, domain.Filter{})
	if err != nil {
		return nil, err
	}

	out := make([]ExperienceRating, 0, 4)
	for _, carrier := range domain.Carriers() {
		sub := filterMeasurements(all, domain.Filter{Carrier: carrier})
		if len(sub) == 0 {
			out = append(out, ExperienceRating{Carrier: carrier})
			continue
		}

		rating := ExperienceRating{
			Carrier:     carrier,
			CallQuality: clampStars(meanOf(sub, quality) / 100 * 5),
			DataSpeed:   clampStars(meanOf(sub, speed) / 50 * 5),
			Reliability: clampStars(5 - stddevOf(sub, quality)/20*5),
		}
		rating.Overall = clampStars((rating.CallQuality + rating.DataSpeed + rating.Reliability) / 3)
		out = append(out, rating)
	}
	return out, nil
}

// MapPoints returns per-location aggregates with coordinates for rendering.
func (s *Service) MapPoints(ctx context.Context) ([]MapPoint, error) {
	all, err := s.list(ctx, domain.Filter{})
	if err != nil {
		return nil, err
	}

	best := bestByLocation(all)
	out := make([]MapPoint, 0, 30)
	for _, location := range domain.CampusLocations() {
		sub := filterMeasurements(all, domain.Filter{Location: location.Name})
		point := MapPoint{Location: location, Samples: len(sub), Level: LevelNoData}
		if len(sub) > 0 {
			point.AvgSignalQuality = meanOf(sub, quality)
			point.AvgDataSpeed = meanOf(sub, speed)
			point.AvgSignalStrength = meanOf(sub, strength)
			point.BestCarrier = best[location.Name]
			point.Level = LevelFor(point.AvgSignalQuality)
		}
		out = append(out, point)
	}
	return out, nil
}

// Coverage counts, per carrier, the locations where it scores best.
func (s *Service) Coverage(ctx context.Context) (map[domain.Carrier]int, error) {
	best, err := s.BestCarriers(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.Carrier]int, 4)
	for _, carrier := range best {
		counts[carrier]++
	}
	return counts, nil
}

// list wraps the repository and maps an empty dataset to ErrNoData.
func (s *Service) list(ctx context.Context, filter domain.Filter) ([]domain.Measurement, error) {
	ms, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("stats: list measurements: %w", err)
	}
	if len(ms) == 0 {
		return nil, domain.ErrNoData
	}
	return ms, nil
}

func summarize(carrier domain.Carrier, ms []domain.Measurement) CarrierSummary {
	summary := CarrierSummary{Carrier: carrier, Samples: len(ms)}
	if len(ms) == 0 {
		return summary
	}
	summary.AvgSignalStrength = meanOf(ms, strength)
	summary.AvgSignalQuality = meanOf(ms, quality)
	summary.AvgDataSpeed = meanOf(ms, speed)
	summary.AvgSINR = meanOf(ms, sinr)
	summary.ReliabilityScore = reliableShare(ms) * 100
	return summary
}

// compositeScore weighs quality, proximity of strength to -80 dBm and speed.
func compositeScore(ms []domain.Measurement) float64 {
	return meanOf(ms, quality)*0.3 +
		(100-math.Abs(meanOf(ms, strength)+80))*0.3 +
		meanOf(ms, speed)*0.4
}

func bestByLocation(all []domain.Measurement) map[string]domain.Carrier {
	best := make(map[string]domain.Carrier)
	for _, name := range domain.LocationNames() {
		atLocation := filterMeasurements(all, domain.Filter{Location: name})
		if len(atLocation) == 0 {
			continue
		}
		bestScore := math.Inf(-1)
		for _, carrier := range domain.Carriers() {
			sub := filterMeasurements(atLocation, domain.Filter{Carrier: carrier})
			if len(sub) == 0 {
				continue
			}
			if score := compositeScore(sub); score > bestScore {
				bestScore, best[name] = score, carrier
			}
		}
	}
	return best
}

func filterMeasurements(ms []domain.Measurement, filter domain.Filter) []domain.Measurement {
	out := make([]domain.Measurement, 0, len(ms))
	for _, m := range ms {
		if filter.Matches(m) {
			out = append(out, m)
		}
	}
	return out
}

func reliableShare(ms []domain.Measurement) float64 {
	if len(ms) == 0 {
		return 0
	}
	reliable := 0
	for _, m := range ms {
		if m.SignalQuality > ReliabilityThreshold {
			reliable++
		}
	}
	return float64(reliable) / float64(len(ms))
}

func strength(m domain.Measurement) float64 { return m.SignalStrength }
func quality(m domain.Measurement) float64  { return m.SignalQuality }
func speed(m domain.Measurement) float64    { return m.DataSpeed }
func sinr(m domain.Measurement) float64     { return m.SINR }

func meanOf(ms []domain.Measurement, metric func(domain.Measurement) float64) float64 {
	if len(ms) == 0 {
		return 0
	}
	sum := 0.0
	for _, m := range ms {
		sum += metric(m)
	}
	return sum / float64(len(ms))
}

// stddevOf is the sample standard deviation; zero for fewer than two samples.
func stddevOf(ms []domain.Measurement, metric func(domain.Measurement) float64) float64 {
	if len(ms) < 2 {
		return 0
	}
	mean := meanOf(ms, metric)
	sum := 0.0
	for _, m := range ms {
		d := metric(m) - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(ms)-1))
}

func clampStars(v float64) float64 {
	return math.Max(1, math.Min(5, v))
}
