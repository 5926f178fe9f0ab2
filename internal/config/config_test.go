package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Redis.CacheTTL() != 5*time.Minute {
		t.Fatalf("unexpected default cache ttl: %v", cfg.Redis.CacheTTL())
	}
	if cfg.Providers.FetchWindow() != 24*time.Hour {
		t.Fatalf("unexpected default fetch window: %v", cfg.Providers.FetchWindow())
	}
	if cfg.Scheduler.Interval() != 15*time.Minute {
		t.Fatalf("unexpected default interval: %v", cfg.Scheduler.Interval())
	}
	if cfg.Search.DefaultPageSize != 20 || cfg.Search.MaxPageSize != 100 {
		t.Fatalf("unexpected default page sizes: %+v", cfg.Search)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("unexpected default log level: %q", cfg.Logging.Level)
	}
}

func TestLoadFileMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte(`
redis:
  cacheTtlSeconds: 60
scheduler:
  intervalMinutes: 5
logging:
  level: debug
`)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configPathEnv, path)

	cfg := Load()

	if cfg.Redis.CacheTTL() != time.Minute {
		t.Fatalf("file ttl not applied: %v", cfg.Redis.CacheTTL())
	}
	if cfg.Scheduler.Interval() != 5*time.Minute {
		t.Fatalf("file interval not applied: %v", cfg.Scheduler.Interval())
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("file log level not applied: %q", cfg.Logging.Level)
	}
	// Untouched sections keep their defaults.
	if cfg.Providers.PageSize != 50 {
		t.Fatalf("default page size lost in merge: %d", cfg.Providers.PageSize)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(databaseDSNEnv, "postgres://override@db:5432/news")
	t.Setenv(newsAPIKeyEnv, "newsapi-secret")
	t.Setenv(guardianAPIKeyEnv, "guardian-secret")
	t.Setenv(nytimesAPIKeyEnv, "nyt-secret")
	t.Setenv(redisURLEnv, "redis://cache:6379/1")

	cfg := Load()

	if cfg.Database.DSN != "postgres://override@db:5432/news" {
		t.Fatalf("dsn override not applied: %q", cfg.Database.DSN)
	}
	if cfg.Redis.URL != "redis://cache:6379/1" {
		t.Fatalf("redis override not applied: %q", cfg.Redis.URL)
	}
	if cfg.Providers.NewsAPIKey != "newsapi-secret" ||
		cfg.Providers.GuardianAPIKey != "guardian-secret" ||
		cfg.Providers.NYTimesAPIKey != "nyt-secret" {
		t.Fatalf("provider key overrides not applied: %+v", cfg.Providers)
	}
}

func TestLoadBrokenFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\n  - not yaml"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configPathEnv, path)

	cfg := Load()
	if cfg.Scheduler.MaxAttempts != 3 {
		t.Fatalf("broken file must fall back to defaults: %+v", cfg.Scheduler)
	}
}
