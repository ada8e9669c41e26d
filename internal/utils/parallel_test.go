package utils

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunParallelKeepsResultOrder(t *testing.T) {
	boom := errors.New("boom")

	errs := RunParallel(context.Background(),
		func(context.Context) error {
			time.Sleep(20 * time.Millisecond)
			return nil
		},
		func(context.Context) error { return boom },
		func(context.Context) error { return nil },
	)

	if len(errs) != 3 {
		t.Fatalf("got %d results want 3", len(errs))
	}
	if errs[0] != nil || errs[2] != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if !errors.Is(errs[1], boom) {
		t.Fatalf("errs[1]: got %v want boom", errs[1])
	}
}

func TestRunParallelRunsConcurrently(t *testing.T) {
	var running, peak int32
	task := func(context.Context) error {
		n := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(30 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return nil
	}

	RunParallel(context.Background(), task, task, task)

	if atomic.LoadInt32(&peak) < 2 {
		t.Fatalf("expected tasks to overlap, peak concurrency %d", peak)
	}
}

func TestRunParallelNoTasks(t *testing.T) {
	if errs := RunParallel(context.Background()); len(errs) != 0 {
		t.Fatalf("expected no results, got %v", errs)
	}
}
