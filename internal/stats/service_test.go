package stats_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusnet-service/internal/domain"
	"campusnet-service/internal/repository/memory"
	"campusnet-service/internal/stats"
)

func at(hour int) time.Time {
	return time.Date(2025, time.March, 10, hour, 0, 0, 0, time.UTC)
}

// fixture gives MTN strong, consistent numbers and Glo weak, erratic ones so
// every ranking operation has a known winner.
func fixture() []domain.Measurement {
	return []domain.Measurement{
		{Location: "Library", Carrier: domain.CarrierMTN, Timestamp: at(8), SignalStrength: -70, SignalQuality: 90, SINR: 20, DataSpeed: 50},
		{Location: "Library", Carrier: domain.CarrierMTN, Timestamp: at(14), SignalStrength: -74, SignalQuality: 86, SINR: 18, DataSpeed: 46},
		{Location: "Hostel A", Carrier: domain.CarrierMTN, Timestamp: at(20), SignalStrength: -78, SignalQuality: 82, SINR: 16, DataSpeed: 42},
		{Location: "Library", Carrier: domain.CarrierGlo, Timestamp: at(8), SignalStrength: -90, SignalQuality: 60, SINR: 10, DataSpeed: 20},
		{Location: "Library", Carrier: domain.CarrierGlo, Timestamp: at(14), SignalStrength: -95, SignalQuality: 30, SINR: 6, DataSpeed: 8},
		{Location: "Hostel A", Carrier: domain.CarrierGlo, Timestamp: at(20), SignalStrength: -92, SignalQuality: 45, SINR: 8, DataSpeed: 14},
	}
}

func newService(t *testing.T, ms []domain.Measurement) *stats.Service {
	t.Helper()
	repo := memory.New()
	repo.Seed(ms)
	return stats.New(repo)
}

func TestOverview(t *testing.T) {
	t.Parallel()

	svc := newService(t, fixture())
	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)

	require.Len(t, overview.Summaries, 4)
	assert.Equal(t, domain.CarrierMTN, overview.BestCarrier)
	assert.Equal(t, domain.CarrierGlo, overview.WorstCarrier)

	mtn := overview.Summaries[0]
	require.Equal(t, domain.CarrierMTN, mtn.Carrier)
	assert.Equal(t, 3, mtn.Samples)
	assert.InDelta(t, 86.0, mtn.AvgSignalQuality, 1e-9)
	assert.InDelta(t, 46.0, mtn.AvgDataSpeed, 1e-9)
	assert.InDelta(t, -74.0, mtn.AvgSignalStrength, 1e-9)
	assert.InDelta(t, 18.0, mtn.AvgSINR, 1e-9)
	// All three MTN samples clear the 70% reliability threshold.
	assert.InDelta(t, 100.0, mtn.ReliabilityScore, 1e-9)

	glo := overview.Summaries[2]
	require.Equal(t, domain.CarrierGlo, glo.Carrier)
	// No Glo sample clears the threshold.
	assert.Zero(t, glo.ReliabilityScore)

	// Carriers with no samples report zero aggregates, not errors.
	airtel := overview.Summaries[1]
	assert.Equal(t, domain.CarrierAirtel, airtel.Carrier)
	assert.Zero(t, airtel.Samples)
}

func TestCarrierSummaryValidation(t *testing.T) {
	t.Parallel()

	svc := newService(t, fixture())
	_, err := svc.CarrierSummary(context.Background(), "Verizon")
	assert.ErrorIs(t, err, domain.ErrUnknownCarrier)
}

func TestLocationReport(t *testing.T) {
	t.Parallel()

	svc := newService(t, fixture())
	report, err := svc.LocationReport(context.Background(), "Library")
	require.NoError(t, err)

	assert.Equal(t, domain.AreaAcademic, report.Location.Area)
	assert.Equal(t, domain.CarrierMTN, report.BestCarrier)
	require.Len(t, report.Cells, 4)

	mtn := report.Cells[0]
	assert.Equal(t, 2, mtn.Samples)
	assert.InDelta(t, 88.0, mtn.AvgSignalQuality, 1e-9)
	assert.Equal(t, stats.LevelExcellent, mtn.Level)

	glo := report.Cells[2]
	assert.InDelta(t, 45.0, glo.AvgSignalQuality, 1e-9)
	assert.Equal(t, stats.LevelFair, glo.Level)

	airtel := report.Cells[1]
	assert.Equal(t, stats.LevelNoData, airtel.Level)

	_, err = svc.LocationReport(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, domain.ErrUnknownLocation)
}

func TestBestCarriersAndCoverage(t *testing.T) {
	t.Parallel()

	svc := newService(t, fixture())
	best, err := svc.BestCarriers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.CarrierMTN, best["Library"])
	assert.Equal(t, domain.CarrierMTN, best["Hostel A"])
	assert.NotContains(t, best, "ICT")

	coverage, err := svc.Coverage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, coverage[domain.CarrierMTN])
	assert.Zero(t, coverage[domain.CarrierGlo])
}

func TestReliability(t *testing.T) {
	t.Parallel()

	svc := newService(t, fixture())
	breakdowns, err := svc.Reliability(context.Background())
	require.NoError(t, err)
	require.Len(t, breakdowns, 4)

	mtn := breakdowns[0]
	glo := breakdowns[2]
	assert.Greater(t, mtn.Total, glo.Total)
	// MTN's quality samples {90,86,82} have stddev 4, so consistency is
	// (100-4)*0.3 and coverage is the full 40 points.
	assert.InDelta(t, 28.8, mtn.Consistency, 1e-9)
	assert.InDelta(t, 40.0, mtn.Coverage, 1e-9)
	assert.InDelta(t, mtn.Consistency+mtn.Coverage+mtn.SpeedStability, mtn.Total, 1e-9)
}

func TestTimeOfDayProfile(t *testing.T) {
	t.Parallel()

	svc := newService(t, fixture())
	points, err := svc.TimeOfDayProfile(context.Background())
	require.NoError(t, err)
	require.Len(t, points, 16)

	byKey := make(map[string]stats.TimeOfDayPoint, len(points))
	for _, p := range points {
		byKey[string(p.TimeOfDay)+"/"+string(p.Carrier)] = p
	}

	morning := byKey["morning/MTN"]
	assert.Equal(t, 1, morning.Samples)
	assert.InDelta(t, 50.0, morning.AvgDataSpeed, 1e-9)

	night := byKey["night/MTN"]
	assert.Zero(t, night.Samples)
}

func TestCosts(t *testing.T) {
	t.Parallel()

	svc := newService(t, fixture())
	reports, err := svc.Costs(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 4)

	mtn := reports[0]
	assert.Equal(t, 300, mtn.PlanPrices["1GB"])
	// 46 Mbps average over a 300 naira bundle.
	assert.InDelta(t, 46.0/300*100, mtn.ValueScore, 1e-9)

	airtel := reports[1]
	assert.Zero(t, airtel.ValueScore)
	assert.Equal(t, 280, airtel.PlanPrices["1GB"])
}

func TestRatings(t *testing.T) {
	t.Parallel()

	svc := newService(t, fixture())
	ratings, err := svc.Ratings(context.Background())
	require.NoError(t, err)
	require.Len(t, ratings, 4)

	mtn := ratings[0]
	assert.InDelta(t, 4.3, mtn.CallQuality, 1e-9)
	assert.InDelta(t, 4.6, mtn.DataSpeed, 1e-9)
	assert.InDelta(t, 4.0, mtn.Reliability, 1e-9)
	assert.InDelta(t, (4.3+4.6+4.0)/3, mtn.Overall, 1e-9)

	// Star scores never leave the 1..5 band even for dismal carriers.
	glo := ratings[2]
	assert.GreaterOrEqual(t, glo.Reliability, 1.0)
	assert.LessOrEqual(t, glo.Overall, 5.0)
}

func TestMapPoints(t *testing.T) {
	t.Parallel()

	svc := newService(t, fixture())
	points, err := svc.MapPoints(context.Background())
	require.NoError(t, err)
	require.Len(t, points, 30)

	byName := make(map[string]stats.MapPoint, len(points))
	for _, p := range points {
		byName[p.Location.Name] = p
	}

	library := byName["Library"]
	assert.Equal(t, 4, library.Samples)
	assert.Equal(t, domain.CarrierMTN, library.BestCarrier)
	assert.NotZero(t, library.Location.Lat)

	ict := byName["ICT"]
	assert.Equal(t, stats.LevelNoData, ict.Level)
	assert.Zero(t, ict.Samples)
}

func TestEmptyDatasetReturnsErrNoData(t *testing.T) {
	t.Parallel()

	svc := newService(t, nil)
	ctx := context.Background()

	_, err := svc.Overview(ctx)
	assert.ErrorIs(t, err, domain.ErrNoData)
	_, err = svc.Reliability(ctx)
	assert.ErrorIs(t, err, domain.ErrNoData)
	_, err = svc.MapPoints(ctx)
	assert.ErrorIs(t, err, domain.ErrNoData)
}

func TestLevelFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, stats.LevelExcellent, stats.LevelFor(81))
	assert.Equal(t, stats.LevelGood, stats.LevelFor(80))
	assert.Equal(t, stats.LevelGood, stats.LevelFor(61))
	assert.Equal(t, stats.LevelFair, stats.LevelFor(60))
	assert.Equal(t, stats.LevelFair, stats.LevelFor(41))
	assert.Equal(t, stats.LevelPoor, stats.LevelFor(40))
}
