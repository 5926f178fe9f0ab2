package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestIntervalSchedulerRunsImmediately(t *testing.T) {
	t.Parallel()

	s := NewIntervalScheduler(time.Hour)
	fired := make(chan time.Time, 1)

	err := s.Start(context.Background(), func(at time.Time) {
		select {
		case fired <- at:
		default:
		}
	})
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	defer s.Stop(context.Background())

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatalf("job did not fire on start")
	}
}

func TestIntervalSchedulerStartTwice(t *testing.T) {
	t.Parallel()

	s := NewIntervalScheduler(5 * time.Millisecond)

	var mu sync.Mutex
	calls := 0
	job := func(time.Time) {
		mu.Lock()
		calls++
		mu.Unlock()
	}

	ctx := context.Background()
	if err := s.Start(ctx, job); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	if err := s.Start(ctx, job); err != nil {
		t.Fatalf("second Start must be a no-op: %v", err)
	}
	defer s.Stop(ctx)

	deadline := time.After(time.Second)
	for {
		mu.Lock()
		n := calls
		mu.Unlock()
		if n >= 2 {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("expected periodic ticks, saw %d calls", n)
		case <-time.After(time.Millisecond):
		}
	}
}

func TestIntervalSchedulerConcurrentStop(t *testing.T) {
	t.Parallel()

	s := NewIntervalScheduler(time.Hour)
	ctx := context.Background()

	if err := s.Start(ctx, func(time.Time) {}); err != nil {
		t.Fatalf("Start error: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Stop(ctx); err != nil {
				t.Errorf("Stop error: %v", err)
			}
		}()
	}
	wg.Wait()

	// A stopped scheduler can be started again.
	if err := s.Start(ctx, func(time.Time) {}); err != nil {
		t.Fatalf("restart error: %v", err)
	}
	s.Stop(ctx)
}
