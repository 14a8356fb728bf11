package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"campusnet-service/internal/logging"
)

// ShutdownManager translates OS signals into context cancellation and hands
// out bounded cleanup contexts.
type ShutdownManager struct {
	timeout time.Duration
	logger  *logging.Logger
	signals <-chan os.Signal
	once    sync.Once
	cleanup func()
}

type ShutdownOption func(*ShutdownManager)

// WithSignalChannel overrides the signal source, used in tests.
func WithSignalChannel(ch <-chan os.Signal) ShutdownOption {
	return func(sm *ShutdownManager) {
		sm.signals = ch
	}
}

func NewShutdownManager(timeout time.Duration, logger *logging.Logger, opts ...ShutdownOption) *ShutdownManager {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	sm := &ShutdownManager{
		timeout: timeout,
		logger:  logger,
	}

	for _, opt := range opts {
		opt(sm)
	}

	if sm.signals == nil {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sm.signals = sigCh
		sm.cleanup = func() { signal.Stop(sigCh) }
	}

	return sm
}

// WithContext returns a child context that is cancelled when the parent ends
// or a shutdown signal arrives.
func (sm *ShutdownManager) WithContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	go func() {
		select {
		case <-parent.Done():
			cancel()
		case sig := <-sm.signals:
			if sm.logger != nil {
				sm.logger.Info("shutdown signal received", "signal", sig.String())
			}
			cancel()
		}
	}()

	return ctx, cancel
}

// CleanupContext returns a context bounded by the configured shutdown timeout.
func (sm *ShutdownManager) CleanupContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), sm.timeout)
}

// Close stops signal delivery. Safe to call more than once.
func (sm *ShutdownManager) Close() {
	sm.once.Do(func() {
		if sm.cleanup != nil {
			sm.cleanup()
		}
	})
}
