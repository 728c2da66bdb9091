package events

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewWorkerPool(t *testing.T) {
	logger := setupTestLogger()

	pool := NewWorkerPool(WorkerPoolConfig{WorkerCount: 5, QueueSize: 10}, logger)
	assert.Equal(t, 5, pool.workerCount)
	assert.Equal(t, 10, cap(pool.jobs))
	require.NoError(t, pool.Stop(context.Background()))

	// Invalid worker count falls back to one worker and a matching queue
	pool = NewWorkerPool(WorkerPoolConfig{WorkerCount: -5}, logger)
	assert.Equal(t, 1, pool.workerCount)
	assert.Equal(t, 1, cap(pool.jobs))
	require.NoError(t, pool.Stop(context.Background()))
}

func TestWorkerPool_StopDrainsQueuedJobs(t *testing.T) {
	pool := NewWorkerPool(WorkerPoolConfig{WorkerCount: 2, QueueSize: 50}, setupTestLogger())

	var ran atomic.Int32
	for i := 0; i < 20; i++ {
		pool.Submit(func() {
			time.Sleep(time.Millisecond)
			ran.Add(1)
		})
	}

	require.NoError(t, pool.Stop(context.Background()))
	assert.Equal(t, int32(20), ran.Load())
}

func TestWorkerPool_OverflowRunsOnOwnGoroutine(t *testing.T) {
	pool := NewWorkerPool(WorkerPoolConfig{WorkerCount: 1, QueueSize: 1}, setupTestLogger())

	block := make(chan struct{})
	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		pool.Submit(func() {
			<-block
			ran.Add(1)
		})
	}
	close(block)

	require.NoError(t, pool.Stop(context.Background()))
	assert.Equal(t, int32(5), ran.Load())
}

func TestWorkerPool_PanicDoesNotKillWorker(t *testing.T) {
	pool := NewWorkerPool(WorkerPoolConfig{WorkerCount: 1, QueueSize: 4}, setupTestLogger())

	var ran atomic.Bool
	pool.Submit(func() { panic("boom") })
	pool.Submit(func() { ran.Store(true) })

	require.NoError(t, pool.Stop(context.Background()))
	assert.True(t, ran.Load())
}

func TestWorkerPool_StopHonoursContext(t *testing.T) {
	pool := NewWorkerPool(WorkerPoolConfig{WorkerCount: 1}, setupTestLogger())

	block := make(chan struct{})
	defer close(block)
	pool.Submit(func() { <-block })

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, pool.Stop(ctx), context.DeadlineExceeded)
}
