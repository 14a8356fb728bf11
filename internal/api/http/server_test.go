package httpapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpapi "campusnet-service/internal/api/http"
	"campusnet-service/internal/domain"
	"campusnet-service/internal/metrics"
	"campusnet-service/internal/repository/memory"
	"campusnet-service/internal/stats"
	"campusnet-service/internal/timeline"
)

func seededServer(t *testing.T) (*httpapi.Server, []domain.Measurement) {
	t.Helper()

	base := time.Date(2024, 3, 12, 14, 0, 0, 0, time.UTC)
	measurements := []domain.Measurement{
		{Location: "Library", Carrier: domain.CarrierMTN, Timestamp: base, SignalStrength: -72, SignalQuality: 88, SINR: 18, DataSpeed: 34},
		{Location: "Library", Carrier: domain.CarrierMTN, Timestamp: base.Add(time.Minute), SignalStrength: -74, SignalQuality: 84, SINR: 17, DataSpeed: 30},
		{Location: "Library", Carrier: domain.CarrierGlo, Timestamp: base, SignalStrength: -85, SignalQuality: 55, SINR: 9, DataSpeed: 10},
		{Location: "Front Gate", Carrier: domain.CarrierMTN, Timestamp: base.Add(2 * time.Minute), SignalStrength: -76, SignalQuality: 80, SINR: 16, DataSpeed: 28},
		{Location: "Front Gate", Carrier: domain.CarrierGlo, Timestamp: base.Add(2 * time.Minute), SignalStrength: -88, SignalQuality: 48, SINR: 7, DataSpeed: 8},
	}

	repo := memory.New()
	repo.Seed(measurements)

	tl, err := timeline.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = tl.Close() })
	require.NoError(t, tl.Record(measurements))

	return httpapi.NewServer(stats.New(repo), tl, repo), measurements
}

func doGet(t *testing.T, srv http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), target))
}

func TestServerHealth(t *testing.T) {
	t.Parallel()

	srv, measurements := seededServer(t)

	rec := doGet(t, srv, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status  string `json:"status"`
		Samples int    `json:"samples"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, len(measurements), body.Samples)
}

func TestServerOverview(t *testing.T) {
	t.Parallel()

	srv, _ := seededServer(t)

	rec := doGet(t, srv, "/api/v1/overview")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Summaries []struct {
			Carrier string `json:"carrier"`
			Samples int    `json:"samples"`
		} `json:"summaries"`
		BestCarrier string `json:"best_carrier"`
	}
	decodeBody(t, rec, &body)
	require.Len(t, body.Summaries, len(domain.Carriers()))
	assert.Equal(t, "MTN", body.BestCarrier)
}

func TestServerCarrierSummary(t *testing.T) {
	t.Parallel()

	srv, _ := seededServer(t)

	t.Run("known carrier", func(t *testing.T) {
		t.Parallel()

		rec := doGet(t, srv, "/api/v1/carriers/MTN")
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Carrier string `json:"carrier"`
			Samples int    `json:"samples"`
		}
		decodeBody(t, rec, &body)
		assert.Equal(t, "MTN", body.Carrier)
		assert.Equal(t, 3, body.Samples)
	})

	t.Run("unknown carrier", func(t *testing.T) {
		t.Parallel()

		rec := doGet(t, srv, "/api/v1/carriers/Verizon")
		require.Equal(t, http.StatusNotFound, rec.Code)

		var body struct {
			Error string `json:"error"`
			Code  int    `json:"code"`
		}
		decodeBody(t, rec, &body)
		assert.Equal(t, http.StatusNotFound, body.Code)
		assert.Equal(t, "unknown carrier", body.Error)
	})

	t.Run("known carrier without data", func(t *testing.T) {
		t.Parallel()

		rec := doGet(t, srv, "/api/v1/carriers/Airtel")
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServerLocations(t *testing.T) {
	t.Parallel()

	srv, _ := seededServer(t)

	rec := doGet(t, srv, "/api/v1/locations")
	require.Equal(t, http.StatusOK, rec.Code)

	var body []struct {
		Name string  `json:"name"`
		Lat  float64 `json:"lat"`
		Area string  `json:"area"`
	}
	decodeBody(t, rec, &body)
	assert.Len(t, body, len(domain.CampusLocations()))
}

func TestServerLocationReport(t *testing.T) {
	t.Parallel()

	srv, _ := seededServer(t)

	t.Run("name with spaces", func(t *testing.T) {
		t.Parallel()

		rec := doGet(t, srv, "/api/v1/locations/"+url.PathEscape("Front Gate"))
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Location struct {
				Name string `json:"name"`
			} `json:"location"`
			BestCarrier string `json:"best_carrier"`
			Carriers    []struct {
				Carrier string `json:"carrier"`
				Level   string `json:"level"`
			} `json:"carriers"`
		}
		decodeBody(t, rec, &body)
		assert.Equal(t, "Front Gate", body.Location.Name)
		assert.Equal(t, "MTN", body.BestCarrier)
		assert.Len(t, body.Carriers, len(domain.Carriers()))
	})

	t.Run("unknown location", func(t *testing.T) {
		t.Parallel()

		rec := doGet(t, srv, "/api/v1/locations/Nowhere")
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServerBestCarriers(t *testing.T) {
	t.Parallel()

	srv, _ := seededServer(t)

	rec := doGet(t, srv, "/api/v1/best")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		BestByLocation map[string]string `json:"best_by_location"`
		Coverage       map[string]int    `json:"locations_won"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, "MTN", body.BestByLocation["Library"])
	assert.Equal(t, 2, body.Coverage["MTN"])
}

func TestServerAggregateRoutes(t *testing.T) {
	t.Parallel()

	srv, _ := seededServer(t)

	for _, path := range []string{
		"/api/v1/reliability",
		"/api/v1/timeofday",
		"/api/v1/costs",
		"/api/v1/ratings",
		"/api/v1/map",
	} {
		rec := doGet(t, srv, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestServerSeries(t *testing.T) {
	t.Parallel()

	srv, _ := seededServer(t)

	t.Run("returns recorded points", func(t *testing.T) {
		t.Parallel()

		params := url.Values{}
		params.Set("metric", "data_speed")
		params.Set("carrier", "MTN")
		params.Set("location", "Library")
		params.Set("from", "2024-03-12T13:00:00Z")
		params.Set("to", "2024-03-12T15:00:00Z")

		rec := doGet(t, srv, "/api/v1/series?"+params.Encode())
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Metric string `json:"metric"`
			Points []struct {
				Timestamp string  `json:"timestamp"`
				Value     float64 `json:"value"`
			} `json:"points"`
		}
		decodeBody(t, rec, &body)
		assert.Equal(t, "data_speed", body.Metric)
		require.Len(t, body.Points, 2)
		assert.Equal(t, 34.0, body.Points[0].Value)
	})

	t.Run("unknown metric", func(t *testing.T) {
		t.Parallel()

		rec := doGet(t, srv, "/api/v1/series?metric=latency&carrier=MTN&location=Library")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("window with no data", func(t *testing.T) {
		t.Parallel()

		params := url.Values{}
		params.Set("metric", "sinr")
		params.Set("carrier", "MTN")
		params.Set("location", "Library")
		params.Set("from", "2020-01-01T00:00:00Z")
		params.Set("to", "2020-01-02T00:00:00Z")

		rec := doGet(t, srv, "/api/v1/series?"+params.Encode())
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("inverted window", func(t *testing.T) {
		t.Parallel()

		params := url.Values{}
		params.Set("metric", "sinr")
		params.Set("carrier", "MTN")
		params.Set("location", "Library")
		params.Set("from", "2024-03-12T15:00:00Z")
		params.Set("to", "2024-03-12T13:00:00Z")

		rec := doGet(t, srv, "/api/v1/series?"+params.Encode())
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRequestCounterUsesRoutePattern(t *testing.T) {
	// Not parallel: reads package-level counters, so it must not overlap
	// the other server tests.
	srv, _ := seededServer(t)

	byPattern := metrics.HTTPRequestsTotal.WithLabelValues("/api/v1/carriers/{carrier}")
	byRawPath := metrics.HTTPRequestsTotal.WithLabelValues("/api/v1/carriers/MTN")
	before := testutil.ToFloat64(byPattern)

	doGet(t, srv, "/api/v1/carriers/MTN")
	doGet(t, srv, "/api/v1/carriers/Glo")

	assert.Equal(t, before+2, testutil.ToFloat64(byPattern))
	assert.Zero(t, testutil.ToFloat64(byRawPath))

	unmatched := metrics.HTTPRequestsTotal.WithLabelValues("unmatched")
	beforeUnmatched := testutil.ToFloat64(unmatched)

	rec := doGet(t, srv, "/definitely/not/a/route")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, beforeUnmatched+1, testutil.ToFloat64(unmatched))
}

func TestServerEmptyRepository(t *testing.T) {
	t.Parallel()

	srv := httpapi.NewServer(stats.New(memory.New()), nil, memory.New())

	rec := doGet(t, srv, "/api/v1/overview")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, "no measurements match the query", body.Error)
}
