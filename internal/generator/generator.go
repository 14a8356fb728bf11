package generator

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"campusnet-service/internal/domain"
	"campusnet-service/internal/logging"
	"campusnet-service/internal/metrics"
)

const (
	datasetSpreadHours   = 168 // timestamps spread across the trailing week
	timeOfDaySpreadDays  = 7
	samplesPerTimeOfDay  = 5
	defaultSampleSpacing = time.Second
)

// Config describes the runtime characteristics of the live sampler loop.
type Config struct {
	Interval   time.Duration
	BatchSize  int
	RandSource rand.Source
}

// Generator synthesizes campus measurements from the carrier, location and
// time-of-day profiles.
type Generator struct {
	cfg    Config
	logger *logging.Logger
	rnd    *rand.Rand
}

// New creates a configured generator instance.
func New(cfg Config, logger *logging.Logger) *Generator {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultSampleSpacing
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 1
	}

	source := cfg.RandSource
	if source == nil {
		source = rand.NewSource(time.Now().UnixNano())
	}

	return &Generator{
		cfg:    cfg,
		logger: logger,
		rnd:    rand.New(source),
	}
}

// Sample synthesizes one measurement for a carrier at a location, conditioned
// on the time-of-day bucket of the timestamp.
func (g *Generator) Sample(carrier domain.Carrier, location string, ts time.Time) domain.Measurement {
	tod := domain.TimeOfDayFor(ts)
	strength := g.signalStrength(carrier, location, tod)
	return domain.Measurement{
		Location:       location,
		Carrier:        carrier,
		Timestamp:      ts,
		SignalStrength: round1(strength),
		SignalQuality:  round1(g.signalQuality(carrier, location, strength, tod)),
		SINR:           round1(g.sinr(carrier, location, tod)),
		DataSpeed:      round1(g.dataSpeed(carrier, location, strength, tod)),
	}
}

// Dataset produces the full cartesian dataset: every location and carrier,
// samplesPerLocation samples each, timestamps spread over the trailing week.
func (g *Generator) Dataset(samplesPerLocation int) []domain.Measurement {
	if samplesPerLocation <= 0 {
		samplesPerLocation = 1
	}

	now := time.Now().UTC()
	locations := domain.LocationNames()
	out := make([]domain.Measurement, 0, len(locations)*4*samplesPerLocation)

	for _, location := range locations {
		for _, carrier := range domain.Carriers() {
			for i := 0; i < samplesPerLocation; i++ {
				ts := now.Add(-time.Duration(g.rnd.Intn(datasetSpreadHours)) * time.Hour)
				out = append(out, g.Sample(carrier, location, ts))
			}
		}
	}

	return out
}

// TimeOfDayDataset produces samples anchored at each daily bucket's
// representative hour, spread over the trailing week.
func (g *Generator) TimeOfDayDataset() []domain.Measurement {
	now := time.Now().UTC()
	locations := domain.LocationNames()
	out := make([]domain.Measurement, 0, len(locations)*4*4*samplesPerTimeOfDay)

	for _, location := range locations {
		for _, carrier := range domain.Carriers() {
			for _, tod := range domain.TimesOfDay() {
				for i := 0; i < samplesPerTimeOfDay; i++ {
					anchor := time.Date(now.Year(), now.Month(), now.Day(), tod.BucketHour(), 0, 0, 0, time.UTC)
					ts := anchor.AddDate(0, 0, -g.rnd.Intn(timeOfDaySpreadDays))
					out = append(out, g.Sample(carrier, location, ts))
				}
			}
		}
	}

	return out
}

// Run produces measurement batches until the context is cancelled. The output
// channel is closed once sampling stops.
func (g *Generator) Run(ctx context.Context, out chan<- domain.Batch) {
	defer close(out)

	ticker := time.NewTicker(g.cfg.Interval)
	defer ticker.Stop()

	locations := domain.LocationNames()
	carriers := domain.Carriers()

	for {
		select {
		case <-ctx.Done():
			g.log("sampler stopped", "reason", ctx.Err())
			return
		case <-ticker.C:
		}

		now := time.Now().UTC()
		measurements := make([]domain.Measurement, g.cfg.BatchSize)
		for i := range measurements {
			location := locations[g.rnd.Intn(len(locations))]
			carrier := carriers[g.rnd.Intn(len(carriers))]
			measurements[i] = g.Sample(carrier, location, now)
		}

		batch := domain.Batch{ID: uuid.NewString(), Measurements: measurements}
		metrics.BatchesSampledTotal.Inc()

		select {
		case <-ctx.Done():
			g.log("sampler stopped before delivering batch", "reason", ctx.Err())
			return
		case out <- batch:
		}
	}
}

func (g *Generator) signalStrength(carrier domain.Carrier, location string, tod domain.TimeOfDay) float64 {
	profile := carrierProfiles[carrier]
	site := locationProfiles[location]
	pattern := timePatterns[tod]

	strength := profile.BaseStrength + site.Modifier + g.rnd.NormFloat64()*3
	strength *= pattern.Performance

	return clamp(strength, domain.MinSignalStrength, domain.MaxSignalStrength)
}

func (g *Generator) signalQuality(carrier domain.Carrier, location string, strength float64, tod domain.TimeOfDay) float64 {
	profile := carrierProfiles[carrier]
	congestion := totalCongestion(location, tod)

	// Quality collapses with weak signal and high combined load.
	signalFactor := math.Max(0, (strength+120)/70)
	quality := profile.Reliability * 100 * signalFactor * (1 - congestion*0.3)
	quality += g.rnd.NormFloat64() * 5

	return clamp(quality, domain.MinSignalQuality, domain.MaxSignalQuality)
}

func (g *Generator) sinr(carrier domain.Carrier, location string, tod domain.TimeOfDay) float64 {
	profile := carrierProfiles[carrier]
	congestion := totalCongestion(location, tod)

	sinr := profile.BaseSINR - congestion*8 + g.rnd.NormFloat64()*2

	return clamp(sinr, domain.MinSINR, domain.MaxSINR)
}

func (g *Generator) dataSpeed(carrier domain.Carrier, location string, strength float64, tod domain.TimeOfDay) float64 {
	profile := carrierProfiles[carrier]
	pattern := timePatterns[tod]
	congestion := totalCongestion(location, tod)

	signalFactor := math.Max(0, (strength+100)/50)
	speed := profile.BaseSpeed * signalFactor * (1 - congestion*0.4) * pattern.Performance
	speed += g.rnd.NormFloat64() * 3

	return clamp(speed, domain.MinDataSpeed, domain.MaxDataSpeed)
}

func totalCongestion(location string, tod domain.TimeOfDay) float64 {
	site := locationProfiles[location]
	pattern := timePatterns[tod]
	return math.Min(0.95, site.Congestion+pattern.Congestion*0.5)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func (g *Generator) log(msg string, args ...any) {
	if g.logger == nil {
		return
	}
	g.logger.Debug(msg, args...)
}

var _ domain.BatchSampler = (*Generator)(nil)
