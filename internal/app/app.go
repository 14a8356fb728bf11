package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"sync"
	"time"

	grpcapi "campusnet-service/internal/api/grpc"
	httpapi "campusnet-service/internal/api/http"
	"campusnet-service/internal/config"
	"campusnet-service/internal/dataset"
	"campusnet-service/internal/domain"
	"campusnet-service/internal/generator"
	"campusnet-service/internal/logging"
	"campusnet-service/internal/metrics"
	"campusnet-service/internal/stats"
	"campusnet-service/internal/timeline"
	"campusnet-service/internal/worker"
)

const (
	httpReadHeaderTimeout = 5 * time.Second
	httpReadTimeout       = 10 * time.Second
	httpWriteTimeout      = 10 * time.Second
	httpIdleTimeout       = 60 * time.Second
)

// App wires the sampler pipeline, the repositories and both API transports
// into one runnable unit.
type App struct {
	config          *config.Config
	logger          *logging.Logger
	shutdownManager *ShutdownManager
	repository      domain.MeasurementRepository
	timeline        *timeline.Store
	service         *stats.Service
	generator       *generator.Generator
	workerPool      *worker.Pool
}

// New assembles an App from its already-constructed parts.
func New(
	cfg *config.Config,
	logger *logging.Logger,
	shutdownManager *ShutdownManager,
	repository domain.MeasurementRepository,
	tl *timeline.Store,
	service *stats.Service,
	gen *generator.Generator,
	pool *worker.Pool,
) *App {
	return &App{
		config:          cfg,
		logger:          logger,
		shutdownManager: shutdownManager,
		repository:      repository,
		timeline:        tl,
		service:         service,
		generator:       gen,
		workerPool:      pool,
	}
}

// Run bootstraps the dataset, starts the sampler pipeline and serves both
// APIs until the context is cancelled or a transport fails.
func (a *App) Run(ctx context.Context) error {
	metrics.Register()

	runCtx, cancel := a.shutdownManager.WithContext(ctx)
	defer cancel()
	defer a.shutdownManager.Close()

	a.logger.Info("starting campusnet service",
		"httpPort", a.config.HTTPPort,
		"grpcPort", a.config.GRPCPort,
		"dbDriver", a.config.DbDriver,
		"workerPoolSize", a.config.WorkerPoolSize,
	)

	if err := a.bootstrap(runCtx); err != nil {
		return fmt.Errorf("bootstrap dataset: %w", err)
	}

	batches := make(chan domain.Batch, a.config.BatchBuffer)

	var pipeline sync.WaitGroup
	pipeline.Add(2)
	go func() {
		defer pipeline.Done()
		a.generator.Run(runCtx, batches)
	}()
	go func() {
		defer pipeline.Done()
		a.workerPool.Run(runCtx, batches)
	}()

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.config.HTTPPort),
		Handler:           httpapi.NewServer(a.service, a.timeline, a.repository),
		ReadHeaderTimeout: httpReadHeaderTimeout,
		ReadTimeout:       httpReadTimeout,
		WriteTimeout:      httpWriteTimeout,
		IdleTimeout:       httpIdleTimeout,
	}

	grpcServer, err := grpcapi.NewServer(a.logger, grpcapi.NewHandler(a.service), grpcapi.Options{
		Address:         fmt.Sprintf(":%d", a.config.GRPCPort),
		ShutdownTimeout: a.shutdownManager.timeout,
	})
	if err != nil {
		return fmt.Errorf("create gRPC server: %w", err)
	}

	serveErrs := make(chan error, 2)
	go func() {
		a.logger.Info("HTTP server started", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrs <- fmt.Errorf("http server: %w", err)
			return
		}
		serveErrs <- nil
	}()
	go func() {
		if err := grpcServer.Serve(runCtx); err != nil {
			serveErrs <- fmt.Errorf("grpc server: %w", err)
			return
		}
		serveErrs <- nil
	}()

	pending := cap(serveErrs)
	var runErr error
	select {
	case <-runCtx.Done():
	case runErr = <-serveErrs:
		pending--
		cancel()
	}

	a.logger.Info("shutdown initiated")

	cleanupCtx, cleanupCancel := a.shutdownManager.CleanupContext()
	defer cleanupCancel()

	if err := httpServer.Shutdown(cleanupCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("http shutdown: %w", err)
	}

	for ; pending > 0; pending-- {
		if err := <-serveErrs; err != nil && runErr == nil {
			runErr = err
		}
	}
	pipeline.Wait()

	if runErr != nil {
		a.logger.Error("service stopped", "error", runErr.Error())
		return runErr
	}

	a.logger.Info("shutdown completed")
	return nil
}

// bootstrap seeds the repository and the timeline store from the on-disk
// dataset, generating and persisting a fresh one when the file is missing.
func (a *App) bootstrap(ctx context.Context) error {
	path := a.config.DatasetPath

	measurements, skipped, err := dataset.Load(path)
	switch {
	case err == nil:
		a.logger.Info("dataset loaded", "path", path, "rows", len(measurements), "skipped", skipped)
	case errors.Is(err, fs.ErrNotExist):
		a.logger.Info("dataset missing, generating", "path", path,
			"samplesPerLocation", a.config.SamplesPerLocation)

		measurements = a.generator.Dataset(a.config.SamplesPerLocation)
		measurements = append(measurements, a.generator.TimeOfDayDataset()...)

		if err := dataset.Save(path, measurements); err != nil {
			return fmt.Errorf("save generated dataset: %w", err)
		}
	default:
		return fmt.Errorf("load dataset %s: %w", path, err)
	}

	metrics.DatasetRowsLoaded.Set(float64(len(measurements)))

	if err := a.repository.AddBatch(ctx, measurements); err != nil {
		return fmt.Errorf("seed repository: %w", err)
	}
	if a.timeline != nil {
		if err := a.timeline.Record(measurements); err != nil {
			a.logger.Warn("timeline seed failed", "error", err.Error())
		}
	}

	a.logger.Info("dataset seeded", "rows", len(measurements))
	return nil
}
