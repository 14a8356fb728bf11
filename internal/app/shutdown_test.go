package app

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusnet-service/internal/logging"
)

func TestShutdownManagerSignalCancelsContext(t *testing.T) {
	t.Parallel()

	signals := make(chan os.Signal, 1)
	sm := NewShutdownManager(time.Second, logging.MustNew("error"), WithSignalChannel(signals))
	defer sm.Close()

	ctx, cancel := sm.WithContext(context.Background())
	defer cancel()

	signals <- syscall.SIGTERM

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context was not cancelled after signal")
	}
}

func TestShutdownManagerParentCancellation(t *testing.T) {
	t.Parallel()

	signals := make(chan os.Signal)
	sm := NewShutdownManager(time.Second, nil, WithSignalChannel(signals))
	defer sm.Close()

	parent, parentCancel := context.WithCancel(context.Background())
	ctx, cancel := sm.WithContext(parent)
	defer cancel()

	parentCancel()

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context did not follow parent cancellation")
	}
}

func TestShutdownManagerCleanupContextDeadline(t *testing.T) {
	t.Parallel()

	sm := NewShutdownManager(100*time.Millisecond, nil, WithSignalChannel(make(chan os.Signal)))
	defer sm.Close()

	ctx, cancel := sm.CleanupContext()
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(100*time.Millisecond), deadline, 50*time.Millisecond)
}
