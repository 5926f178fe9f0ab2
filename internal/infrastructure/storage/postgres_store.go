// Package storage implements the ArticleStore port on Postgres. The unique
// index on url_hash is the single synchronization point between concurrent
// ingestion runs; application code never locks.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"NewsPulse/internal/domain"
	"NewsPulse/internal/ports"
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var articleColumns = []string{
	"id", "title", "description", "body", "url", "url_hash", "provider",
	"author", "category", "published_at", "image_url", "raw_data",
	"read_time_minutes", "sentiment", "created_at", "updated_at",
}

// PostgresStore persists enriched articles.
type PostgresStore struct {
	db *sql.DB
}

var _ ports.ArticleStore = (*PostgresStore)(nil)

// NewPostgresStore wires a sql.DB implementation.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Exists reports whether an article with this URL hash is already stored.
func (s *PostgresStore) Exists(ctx context.Context, urlHash string) (bool, error) {
	query, args, err := qb.Select("1").
		From("articles").
		Where(sq.Eq{"url_hash": urlHash}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}

	var one int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query exists: %w", err)
	}

	return true, nil
}

// Insert stores the article. ON CONFLICT DO NOTHING makes the unique index
// the arbiter of duplicate races: losing the race yields ErrDuplicate, not
// a second row and not a constraint failure surfaced to the caller.
func (s *PostgresStore) Insert(ctx context.Context, article domain.StoredArticle) (int64, error) {
	query, args, err := qb.Insert("articles").
		Columns("title", "description", "body", "url", "url_hash", "provider",
			"author", "category", "published_at", "image_url", "raw_data",
			"read_time_minutes", "sentiment").
		Values(
			article.Article.Title,
			article.Article.Description,
			article.Article.Body,
			article.Article.URL,
			article.URLHash,
			article.Article.Provider,
			article.Article.Author,
			article.Article.Category,
			article.Article.PublishedAt,
			article.Article.ImageURL,
			[]byte(article.Article.Raw),
			article.ReadTimeMinutes,
			string(article.Sentiment),
		).
		Suffix("ON CONFLICT (url_hash) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert query: %w", err)
	}

	var id int64
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrDuplicate
	}
	if err != nil {
		return 0, fmt.Errorf("insert article: %w", err)
	}

	return id, nil
}

// Query returns one page of matches ordered newest-first, with the surrogate
// key as a deterministic tie-breaker.
func (s *PostgresStore) Query(ctx context.Context, filter domain.SearchFilter, offset, limit int) ([]domain.StoredArticle, error) {
	builder := qb.Select(articleColumns...).From("articles")
	if conds := filterConditions(filter); len(conds) > 0 {
		builder = builder.Where(conds)
	}

	query, args, err := builder.
		OrderBy("published_at DESC", "id DESC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	var articles []domain.StoredArticle
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return articles, nil
}

// Count returns the total number of rows matching the filter.
func (s *PostgresStore) Count(ctx context.Context, filter domain.SearchFilter) (int, error) {
	builder := qb.Select("COUNT(*)").From("articles")
	if conds := filterConditions(filter); len(conds) > 0 {
		builder = builder.Where(conds)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}

	return total, nil
}

// ByID returns a single article or domain.ErrNotFound.
func (s *PostgresStore) ByID(ctx context.Context, id int64) (*domain.StoredArticle, error) {
	query, args, err := qb.Select(articleColumns...).
		From("articles").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build by-id query: %w", err)
	}

	row := s.db.QueryRowContext(ctx, query, args...)
	article, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &article, nil
}

// filterConditions translates the optional, conjunctive filter fields into a
// WHERE clause. Category filters expand to the canonical group's synonyms so
// that e.g. "sports" matches rows stored as "Football".
func filterConditions(filter domain.SearchFilter) sq.And {
	var conds sq.And

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		conds = append(conds, sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"description": pattern},
		})
	}

	if filter.Provider != "" {
		conds = append(conds, sq.Eq{"provider": filter.Provider})
	}

	if filter.Category != "" {
		var group sq.Or
		for _, name := range domain.ExpandCategory(filter.Category) {
			group = append(group, sq.ILike{"category": name})
		}
		conds = append(conds, group)
	}

	if !filter.From.IsZero() {
		conds = append(conds, sq.GtOrEq{"published_at": filter.From})
	}

	if !filter.To.IsZero() {
		conds = append(conds, sq.LtOrEq{"published_at": filter.To})
	}

	return conds
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (domain.StoredArticle, error) {
	var (
		article   domain.StoredArticle
		raw       []byte
		updatedAt sql.NullTime
	)

	err := row.Scan(
		&article.ID,
		&article.Article.Title,
		&article.Article.Description,
		&article.Article.Body,
		&article.Article.URL,
		&article.URLHash,
		&article.Article.Provider,
		&article.Article.Author,
		&article.Article.Category,
		&article.Article.PublishedAt,
		&article.Article.ImageURL,
		&raw,
		&article.ReadTimeMinutes,
		&article.Sentiment,
		&article.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.StoredArticle{}, err
		}
		return domain.StoredArticle{}, fmt.Errorf("scan article: %w", err)
	}

	article.Article.Raw = json.RawMessage(raw)
	if updatedAt.Valid {
		article.UpdatedAt = updatedAt.Time
	}

	return article, nil
}
