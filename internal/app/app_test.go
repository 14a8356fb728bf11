package app

import (
	"context"
	"math/rand"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusnet-service/internal/config"
	"campusnet-service/internal/generator"
	"campusnet-service/internal/logging"
	"campusnet-service/internal/repository/memory"
	"campusnet-service/internal/stats"
	"campusnet-service/internal/timeline"
	"campusnet-service/internal/worker"
)

func testApp(t *testing.T, datasetPath string) (*App, *memory.Repository) {
	t.Helper()

	logger := logging.MustNew("error")
	repo := memory.New()

	tl, err := timeline.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = tl.Close() })

	gen := generator.New(generator.Config{
		Interval:   time.Second,
		BatchSize:  4,
		RandSource: rand.NewSource(7),
	}, logger)

	cfg := &config.Config{
		HTTPPort:           0,
		GRPCPort:           0,
		LogLevel:           "error",
		DbDriver:           config.DriverMemory,
		DatasetPath:        datasetPath,
		SamplesPerLocation: 2,
		Sampler:            config.Sampler{Interval: time.Second, BatchSize: 4},
		WorkerPoolSize:     2,
		BatchBuffer:        8,
	}

	sm := NewShutdownManager(time.Second, logger, WithSignalChannel(make(chan os.Signal)))
	t.Cleanup(sm.Close)

	application := New(cfg, logger, sm, repo, tl, stats.New(repo), gen, worker.New(2, repo, tl, logger))
	return application, repo
}

func TestRunServesUntilCancelled(t *testing.T) {
	t.Parallel()

	application, repo := testApp(t, filepath.Join(t.TempDir(), "campus.csv"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- application.Run(ctx)
	}()

	time.Sleep(300 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("run did not stop after context cancellation")
	}

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Positive(t, count)
}

func TestRunReportsTransportFailure(t *testing.T) {
	t.Parallel()

	// Occupy a port so the HTTP listener cannot bind.
	blocker, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer blocker.Close()

	application, _ := testApp(t, filepath.Join(t.TempDir(), "campus.csv"))
	application.config.HTTPPort = blocker.Addr().(*net.TCPAddr).Port

	done := make(chan error, 1)
	go func() {
		done <- application.Run(context.Background())
	}()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "http server")
	case <-time.After(10 * time.Second):
		t.Fatal("run did not surface the transport failure")
	}
}

func TestBootstrapGeneratesAndPersistsDataset(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "campus.csv")
	application, repo := testApp(t, path)

	require.NoError(t, application.bootstrap(context.Background()))

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Positive(t, count)

	_, err = os.Stat(path)
	require.NoError(t, err, "generated dataset should be persisted")
}

func TestBootstrapLoadsExistingDataset(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "campus.csv")

	seeder, _ := testApp(t, path)
	require.NoError(t, seeder.bootstrap(context.Background()))

	application, repo := testApp(t, path)
	require.NoError(t, application.bootstrap(context.Background()))

	seeded, err := repo.Count(context.Background())
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
	assert.Positive(t, seeded)
}
