package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Sampler contains configuration for the live measurement sampler.
type Sampler struct {
	Interval  time.Duration
	BatchSize int
}

// Config holds the runtime configuration, loaded from environment variables.
type Config struct {
	HTTPPort           int
	GRPCPort           int
	LogLevel           string
	DbDriver           string
	DbDsn              string
	DatasetPath        string
	TimelinePath       string
	SamplesPerLocation int
	Sampler            Sampler
	WorkerPoolSize     int
	BatchBuffer        int
}

// Load reads configuration values from the environment, applying defaults
// where variables are unset.
func Load() (*Config, error) {
	httpPort, err := getEnvInt(EnvHTTPPort, DefaultHTTPPort)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", EnvHTTPPort, err)
	}

	grpcPort, err := getEnvInt(EnvGRPCPort, DefaultGRPCPort)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", EnvGRPCPort, err)
	}

	samplesPerLocation, err := getEnvInt(EnvSamplesPerLocation, DefaultSamplesPerLocation)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", EnvSamplesPerLocation, err)
	}

	sampleInterval, err := getEnvDuration(EnvSampleInterval, DefaultSampleInterval)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", EnvSampleInterval, err)
	}

	batchSize, err := getEnvInt(EnvBatchSize, DefaultBatchSize)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", EnvBatchSize, err)
	}

	workerPoolSize, err := getEnvInt(EnvWorkerPoolSize, DefaultWorkerPoolSize)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", EnvWorkerPoolSize, err)
	}

	batchBuffer, err := getEnvInt(EnvBatchBuffer, DefaultBatchBuffer)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", EnvBatchBuffer, err)
	}

	cfg := &Config{
		HTTPPort:           httpPort,
		GRPCPort:           grpcPort,
		LogLevel:           normalizeLogLevel(getEnvString(EnvLogLevel, DefaultLogLevel)),
		DbDriver:           getEnvString(EnvDbDriver, DefaultDbDriver),
		DbDsn:              os.Getenv(EnvDbDsn),
		DatasetPath:        getEnvString(EnvDatasetPath, DefaultDatasetPath),
		TimelinePath:       os.Getenv(EnvTimelinePath),
		SamplesPerLocation: samplesPerLocation,
		Sampler: Sampler{
			Interval:  sampleInterval,
			BatchSize: batchSize,
		},
		WorkerPoolSize: workerPoolSize,
		BatchBuffer:    batchBuffer,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid %s: %d", EnvHTTPPort, c.HTTPPort)
	}
	if c.GRPCPort <= 0 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid %s: %d", EnvGRPCPort, c.GRPCPort)
	}
	switch c.DbDriver {
	case DriverMemory:
	case DriverPostgres:
		if c.DbDsn == "" {
			return fmt.Errorf("%s is required when %s=%s", EnvDbDsn, EnvDbDriver, DriverPostgres)
		}
	default:
		return fmt.Errorf("unsupported %s: %q", EnvDbDriver, c.DbDriver)
	}
	if c.SamplesPerLocation <= 0 {
		return fmt.Errorf("%s must be positive", EnvSamplesPerLocation)
	}
	if c.Sampler.Interval <= 0 {
		return fmt.Errorf("%s must be positive", EnvSampleInterval)
	}
	if c.Sampler.BatchSize <= 0 {
		return fmt.Errorf("%s must be positive", EnvBatchSize)
	}
	if c.WorkerPoolSize <= 0 {
		return fmt.Errorf("%s must be positive", EnvWorkerPoolSize)
	}
	return nil
}

func getEnvString(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(value)
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	return time.ParseDuration(value)
}

func normalizeLogLevel(level string) string {
	switch level {
	case "debug", "info", "warn", "error":
		return level
	case "warning":
		return "warn"
	default:
		return DefaultLogLevel
	}
}
