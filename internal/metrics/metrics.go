package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "campusnet_http_requests_total",
		Help: "Total number of HTTP API requests",
	}, []string{"route"})
	HTTPRequestErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "campusnet_http_request_errors_total",
		Help: "Total number of HTTP API requests answered with an error status",
	})

	// Dataset metrics
	DatasetRowsLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "campusnet_dataset_rows_loaded",
		Help: "Number of measurement rows loaded at bootstrap",
	})
	DatasetRowsSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "campusnet_dataset_rows_skipped_total",
		Help: "Total number of malformed dataset rows skipped by the loader",
	})

	// Sampling pipeline metrics
	BatchesSampledTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "campusnet_batches_sampled_total",
		Help: "Total number of measurement batches produced by the sampler",
	})
	MeasurementsStoredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "campusnet_measurements_stored_total",
		Help: "Total number of measurements stored by the worker pool",
	})
	MeasurementStoreErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "campusnet_measurement_store_errors_total",
		Help: "Total number of repository write failures in the worker pool",
	})
	WorkerPoolActiveGoroutines = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "campusnet_worker_pool_active_goroutines",
		Help: "Number of active worker pool goroutines",
	})
)

var registerOnce sync.Once

// Register installs all collectors on the default registry. Safe to call
// more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestErrorsTotal,
			DatasetRowsLoaded,
			DatasetRowsSkipped,
			BatchesSampledTotal,
			MeasurementsStoredTotal,
			MeasurementStoreErrorsTotal,
			WorkerPoolActiveGoroutines,
		)
	})
}

// Handler exposes the default registry over HTTP.
func Handler() http.Handler {
	Register()
	return promhttp.Handler()
}
