package config

import "time"

const (
	EnvHTTPPort           = "HTTP_PORT"
	EnvGRPCPort           = "GRPC_PORT"
	EnvLogLevel           = "LOG_LEVEL"
	EnvDbDriver           = "DB_DRIVER"
	EnvDbDsn              = "DB_DSN"
	EnvDatasetPath        = "DATASET_PATH"
	EnvTimelinePath       = "TIMELINE_PATH"
	EnvSamplesPerLocation = "SAMPLES_PER_LOCATION"
	EnvSampleInterval     = "SAMPLE_INTERVAL"
	EnvBatchSize          = "BATCH_SIZE"
	EnvWorkerPoolSize     = "WORKER_POOL_SIZE"
	EnvBatchBuffer        = "BATCH_BUFFER"

	DefaultHTTPPort           = 8080
	DefaultGRPCPort           = 50051
	DefaultLogLevel           = "info"
	DefaultDbDriver           = "memory"
	DefaultDatasetPath        = "futo_network_data.csv"
	DefaultSamplesPerLocation = 15
	DefaultSampleInterval     = 30 * time.Second
	DefaultBatchSize          = 8
	DefaultWorkerPoolSize     = 4
	DefaultBatchBuffer        = 100

	// DriverMemory keeps measurements in process memory, DriverPostgres
	// persists them through lib/pq.
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)
