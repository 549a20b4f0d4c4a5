package ingest

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPoolRunsEveryLineJob(t *testing.T) {
	p := NewWorkerPool(4, 16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	var annotated int32
	lines := 100
	for i := 0; i < lines; i++ {
		err := p.Submit(ctx, func(ctx context.Context) error {
			atomic.AddInt32(&annotated, 1)
			return nil
		})
		if err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}
	p.Close()

	if got := atomic.LoadInt32(&annotated); int(got) != lines {
		t.Fatalf("expected %d lines annotated, got %d", lines, got)
	}
}

func TestWorkerPoolRejectsSubmitAfterClose(t *testing.T) {
	p := NewWorkerPool(1, 2)
	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	p.Close()
	cancel()
	if err := p.Submit(context.Background(), func(ctx context.Context) error { return nil }); err == nil {
		t.Fatal("expected error submitting to a closed pool")
	}
}

// TestWorkerPoolCloseUnblocksPendingSubmit fills the queue to capacity
// without starting any workers, so a second Submit blocks on the full
// channel, then closes the pool from under it; Close must unstick the
// blocked Submit with ErrPoolClosed rather than deadlocking.
func TestWorkerPoolCloseUnblocksPendingSubmit(t *testing.T) {
	p := NewWorkerPool(1, 1)
	bg := context.Background()
	if err := p.Submit(bg, func(ctx context.Context) error { return nil }); err != nil {
		t.Fatalf("setup submit failed: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- p.Submit(bg, func(ctx context.Context) error { return nil })
	}()

	time.Sleep(10 * time.Millisecond)
	p.Close()

	err := <-done
	if err != ErrPoolClosed {
		t.Fatalf("expected ErrPoolClosed for the blocked submit, got %v", err)
	}
}

// TestWorkerPoolCloseRunsQueuedJobBeforeClosedWins exercises the race
// drainBuffered exists for: a job already sitting in the queue when
// Close fires must still run, not be dropped because a worker's select
// happened to pick the closed signal first.
func TestWorkerPoolCloseRunsQueuedJobBeforeClosedWins(t *testing.T) {
	p := NewWorkerPool(1, 4)
	bg := context.Background()
	ctx, cancel := context.WithCancel(bg)
	defer cancel()
	p.Start(ctx)

	var ran int32
	for i := 0; i < 3; i++ {
		if err := p.Submit(bg, func(ctx context.Context) error {
			atomic.AddInt32(&ran, 1)
			return nil
		}); err != nil {
			t.Fatalf("submit %d failed: %v", i, err)
		}
	}

	p.Close()
	if got := atomic.LoadInt32(&ran); got != 3 {
		t.Fatalf("expected all 3 queued jobs to run, got %d", got)
	}
}

func TestWorkerPoolCloseReturnsPromptlyAfterContextCancel(t *testing.T) {
	p := NewWorkerPool(2, 16)
	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)

	cancel()
	done := make(chan struct{}, 1)
	go func() {
		p.Close()
		done <- struct{}{}
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Close blocked after context cancellation")
	}
}
