package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"catalog-backend/internal/domains/author/model"
	"catalog-backend/internal/shared/storeerr"
	"catalog-backend/pkg/cache"
)

// postgresRepository implements RepositoryInterface on pgxpool, with
// cache-aside for look-ups by id.
type postgresRepository struct {
	pool     *pgxpool.Pool
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewPostgresRepository receives pool and cache from the container. Pass
// cache.Noop{} to run without a cache.
func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache, ttl time.Duration) RepositoryInterface {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &postgresRepository{
		pool:     pool,
		cache:    c,
		cacheTTL: ttl,
	}
}

// Cache key constants
const (
	authorCacheKeyPrefix = "author:"
	defaultCacheTTL      = 15 * time.Minute
)

const authorColumns = `id, first_name, family_name, date_of_birth, date_of_death, created_at, updated_at`

func scanAuthor(row pgx.Row, a *model.Author) error {
	return row.Scan(
		&a.ID,
		&a.FirstName,
		&a.FamilyName,
		&a.DateOfBirth,
		&a.DateOfDeath,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
}

// ListSorted orders by a whitelisted, quoted column with id as tie-break.
func (r *postgresRepository) ListSorted(ctx context.Context, sortBy string) ([]model.Author, error) {
	column, err := checkSort(sortBy)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
        SELECT %s
        FROM authors
        ORDER BY %s ASC, id ASC
    `, authorColumns, pq.QuoteIdentifier(column))

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, storeerr.Wrap("list authors", err)
	}
	defer rows.Close()

	authors := make([]model.Author, 0)
	for rows.Next() {
		var a model.Author
		if err := scanAuthor(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storeerr.Wrap("list authors", err)
	}

	return authors, nil
}

// GetByID retrieves author by UUID with caching
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	cacheKey := authorCacheKeyPrefix + id.String()

	var a model.Author
	hit, err := r.cache.Get(ctx, cacheKey, &a)
	if err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("[AUTHOR] Cache read failed")
	}
	if err == nil && hit {
		return &a, nil
	}

	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`

	if err := scanAuthor(r.pool.QueryRow(ctx, query, id), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, storeerr.Wrap("get author by id", err)
	}

	if err := r.cache.Set(ctx, cacheKey, a, r.cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("[AUTHOR] Cache write failed")
	}

	return &a, nil
}

// Create inserts new author; id and timestamps come from the database
func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        INSERT INTO authors (first_name, family_name, date_of_birth, date_of_death)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + authorColumns

	var created model.Author
	row := r.pool.QueryRow(ctx, query, a.FirstName, a.FamilyName, a.DateOfBirth, a.DateOfDeath)
	if err := scanAuthor(row, &created); err != nil {
		return nil, storeerr.Wrap("create author", err)
	}

	return &created, nil
}

// Update writes the fields of a at a.ID
func (r *postgresRepository) Update(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        UPDATE authors
        SET first_name = $2,
            family_name = $3,
            date_of_birth = $4,
            date_of_death = $5,
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + authorColumns

	var updated model.Author
	row := r.pool.QueryRow(ctx, query, a.ID, a.FirstName, a.FamilyName, a.DateOfBirth, a.DateOfDeath)
	if err := scanAuthor(row, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, storeerr.Wrap("update author", err)
	}

	r.invalidateAuthorCache(ctx, a.ID)

	return &updated, nil
}

// Delete removes author by ID. Zero affected rows is not an error.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return storeerr.Wrap("delete author", err)
	}

	if cmdTag.RowsAffected() == 0 {
		log.Debug().Str("author_id", id.String()).Msg("[AUTHOR] Delete matched no rows")
	}

	r.invalidateAuthorCache(ctx, id)

	return nil
}

func (r *postgresRepository) invalidateAuthorCache(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, authorCacheKeyPrefix+id.String()); err != nil {
		log.Warn().Err(err).Str("author_id", id.String()).Msg("[AUTHOR] Cache invalidation failed")
	}
}
