package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"NewsPulse/internal/domain"
	"NewsPulse/internal/ports"
)

// IngestorOptions tune one ingestion pass.
type IngestorOptions struct {
	// FetchWindow is how far back the shared from-date cutoff reaches.
	FetchWindow time.Duration
	// PageSize is the requested batch size; adapters cap it to their own ceiling.
	PageSize int
	// FetchTimeout bounds every outbound provider call.
	FetchTimeout time.Duration
}

// Ingestor drives the fetch -> enrich -> persist flow across all configured
// providers, sequentially, with per-provider failure isolation and rate
// limit pauses.
type Ingestor struct {
	sources []ports.NewsSource
	gateway *Gateway
	opts    IngestorOptions
	logger  *slog.Logger
}

// NewIngestor constructs the orchestration component.
func NewIngestor(sources []ports.NewsSource, gateway *Gateway, opts IngestorOptions, logger *slog.Logger) *Ingestor {
	if opts.FetchWindow <= 0 {
		opts.FetchWindow = 24 * time.Hour
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 30 * time.Second
	}
	return &Ingestor{sources: sources, gateway: gateway, opts: opts, logger: logger}
}

// Run executes one ingestion pass and reports per-provider outcomes. A
// provider's failure is recorded in its summary entry and never aborts the
// rest of the run; the returned error is non-nil only when the run as a
// whole failed (context canceled, or every provider errored).
func (i *Ingestor) Run(ctx context.Context) (domain.RunSummary, error) {
	summary := domain.RunSummary{
		Results:   map[string]domain.ProviderResult{},
		StartedAt: time.Now().UTC(),
	}

	if len(i.sources) == 0 {
		summary.Note = "no sources configured"
		summary.FinishedAt = time.Now().UTC()
		i.log(slog.LevelWarn, "run skipped, no sources configured")
		return summary, nil
	}

	// One cutoff for the whole run so every provider sees the same window.
	from := time.Now().UTC().Add(-i.opts.FetchWindow)

	i.log(slog.LevelInfo, "run started", "sources", len(i.sources), "from", from.Format(time.RFC3339))

	failed := 0
	for _, source := range i.sources {
		if ctx.Err() != nil {
			summary.FinishedAt = time.Now().UTC()
			return summary, ctx.Err()
		}

		name := source.Name()
		result := i.ingestSource(ctx, source, from)
		summary.Results[name] = result

		if result.Err != "" {
			failed++
		} else {
			i.log(slog.LevelInfo, "provider done", "provider", name,
				"saved", result.Saved, "duplicates", result.Duplicates, "skipped", result.Skipped)
		}

		pause(ctx, source.RateLimitDelay())
	}

	summary.FinishedAt = time.Now().UTC()

	if failed == len(i.sources) {
		return summary, fmt.Errorf("all %d providers failed", failed)
	}

	i.log(slog.LevelInfo, "run finished", "providers", len(i.sources), "failed", failed)
	return summary, nil
}

func (i *Ingestor) ingestSource(ctx context.Context, source ports.NewsSource, from time.Time) domain.ProviderResult {
	fetchCtx, cancel := context.WithTimeout(ctx, i.opts.FetchTimeout)
	articles, err := source.Fetch(fetchCtx, ports.FetchOptions{
		From:     from,
		PageSize: i.opts.PageSize,
	})
	cancel()
	if err != nil {
		i.log(slog.LevelError, "provider fetch failed", "provider", source.Name(), "error", err)
		return domain.ProviderResult{Err: err.Error()}
	}

	var result domain.ProviderResult
	for _, article := range articles {
		// Each article commits on its own, so a later provider's failure
		// cannot roll back anything saved here.
		stored, err := i.gateway.CreateIfNew(ctx, article)
		if err != nil {
			i.log(slog.LevelWarn, "persist failed", "provider", source.Name(), "url", article.URL, "error", err)
			result.Skipped++
			continue
		}
		if stored == nil {
			result.Duplicates++
			continue
		}
		result.Saved++
	}

	return result
}

func (i *Ingestor) log(level slog.Level, msg string, args ...any) {
	if i.logger != nil {
		i.logger.Log(context.Background(), level, msg, args...)
	}
}

// pause waits for the provider's rate-limit delay, giving up early when the
// context ends.
func pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
