package usecase

import (
	"context"
	"testing"
	"time"

	"NewsPulse/internal/ports"
)

func TestRunnerRetriesUntilSuccess(t *testing.T) {
	t.Parallel()

	// Total failure on the first two attempts, then a clean run.
	source := &fakeSource{name: "Guardian", failures: 2}
	ingestor := NewIngestor([]ports.NewsSource{source}, NewGateway(newFakeStore(), nil), testOpts(), nil)
	runner := NewRunner(ingestor, RunnerOptions{MaxAttempts: 3, BaseBackoff: time.Millisecond}, nil)

	summary, err := runner.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("expected eventual success: %v", err)
	}
	if got := summary.Results["Guardian"]; got.Err != "" {
		t.Fatalf("final attempt should have succeeded: %+v", got)
	}
	if source.fetchCalls != 3 {
		t.Fatalf("expected 3 fetch attempts, got %d", source.fetchCalls)
	}
}

func TestRunnerExhaustsAttempts(t *testing.T) {
	t.Parallel()

	source := &fakeSource{name: "Guardian", failures: 10}
	ingestor := NewIngestor([]ports.NewsSource{source}, NewGateway(newFakeStore(), nil), testOpts(), nil)
	runner := NewRunner(ingestor, RunnerOptions{MaxAttempts: 3, BaseBackoff: time.Millisecond}, nil)

	if _, err := runner.RunOnce(context.Background()); err == nil {
		t.Fatalf("exhausted retries must surface an error")
	}
	if source.fetchCalls != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", source.fetchCalls)
	}
}
