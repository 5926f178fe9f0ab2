package app

import (
	"context"
	"testing"
	"time"

	"NewsPulse/internal/logging"
)

func TestBuildCacheUnavailableDegrades(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Port 1 refuses connections; a down cache must not be an error.
	redisCache, resultCache := buildCache(ctx, "127.0.0.1:1", logging.New("error"))

	if redisCache != nil {
		t.Fatalf("expected no cache client for an unreachable backend")
	}
	// The interface must be untyped nil so downstream nil guards hold.
	if resultCache != nil {
		t.Fatalf("expected untyped nil result cache, got %T", resultCache)
	}
}
