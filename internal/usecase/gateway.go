package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"NewsPulse/internal/domain"
	"NewsPulse/internal/enrich"
	"NewsPulse/internal/ports"
)

// Fingerprint is the content-addressed identity of an article: the SHA-256
// hex of its URL. Two fetches of the same URL always collide here, across
// providers and across time.
func Fingerprint(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

// Gateway decides whether a fetched article is new and persists it exactly
// once, enriching it on the way in.
type Gateway struct {
	store  ports.ArticleStore
	logger *slog.Logger
}

// NewGateway wires the persistence port.
func NewGateway(store ports.ArticleStore, logger *slog.Logger) *Gateway {
	return &Gateway{store: store, logger: logger}
}

// CreateIfNew persists the article unless its URL is already known. A nil
// result with a nil error means duplicate; duplicates are routine, not
// failures. The storage uniqueness constraint settles races: losing a
// concurrent insert is reported exactly like a plain duplicate.
func (g *Gateway) CreateIfNew(ctx context.Context, article domain.Article) (*domain.StoredArticle, error) {
	hash := Fingerprint(article.URL)

	exists, err := g.store.Exists(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("check fingerprint: %w", err)
	}
	if exists {
		return nil, nil
	}

	stored := domain.StoredArticle{
		Article:         article,
		URLHash:         hash,
		ReadTimeMinutes: enrich.ReadTime(article.Description + " " + article.Body),
		Sentiment:       enrich.Sentiment(article.Title, article.Description),
	}

	id, err := g.store.Insert(ctx, stored)
	if errors.Is(err, domain.ErrDuplicate) {
		g.debug("lost duplicate race", "url", article.URL)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}

	stored.ID = id
	return &stored, nil
}

func (g *Gateway) debug(msg string, args ...any) {
	if g.logger != nil {
		g.logger.Debug(msg, args...)
	}
}
