package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"NewsPulse/internal/domain"
)

// RunnerOptions bound the retry behavior around ingestion runs.
type RunnerOptions struct {
	MaxAttempts int
	BaseBackoff time.Duration
}

// Runner re-invokes ingestion on total failure with exponential backoff,
// implementing the retry contract the surrounding job system expects.
// Re-running is safe because persistence is dedup-protected.
type Runner struct {
	ingestor *Ingestor
	opts     RunnerOptions
	logger   *slog.Logger
}

// NewRunner wraps an ingestor with bounded retries.
func NewRunner(ingestor *Ingestor, opts RunnerOptions, logger *slog.Logger) *Runner {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.BaseBackoff <= 0 {
		opts.BaseBackoff = time.Minute
	}
	return &Runner{ingestor: ingestor, opts: opts, logger: logger}
}

// RunOnce performs one scheduled ingestion, retrying total failures with a
// doubling delay. Exhausting every attempt surfaces the last error.
func (r *Runner) RunOnce(ctx context.Context) (domain.RunSummary, error) {
	var lastErr error
	backoff := r.opts.BaseBackoff

	for attempt := 1; attempt <= r.opts.MaxAttempts; attempt++ {
		summary, err := r.ingestor.Run(ctx)
		if err == nil {
			return summary, nil
		}

		lastErr = err
		r.warn("ingestion attempt failed", "attempt", attempt, "max_attempts", r.opts.MaxAttempts, "error", err)

		if ctx.Err() != nil {
			break
		}
		if attempt < r.opts.MaxAttempts {
			pause(ctx, backoff)
			backoff *= 2
		}
	}

	r.error("ingestion retries exhausted", "attempts", r.opts.MaxAttempts, "error", lastErr)
	return domain.RunSummary{}, fmt.Errorf("ingestion failed after %d attempts: %w", r.opts.MaxAttempts, lastErr)
}

func (r *Runner) warn(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}

func (r *Runner) error(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Error(msg, args...)
	}
}
