package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"catalog-backend/internal/domains/book/model"
	"catalog-backend/internal/shared/storeerr"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

// ListByAuthor returns every book referencing authorID.
func (r *postgresRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Book, error) {
	query := `
        SELECT id, title, summary, isbn, author_id, created_at
        FROM books
        WHERE author_id = $1
        ORDER BY title
    `

	rows, err := r.pool.Query(ctx, query, authorID)
	if err != nil {
		if isUndefinedTable(err) {
			return []model.Book{}, nil
		}
		return nil, storeerr.Wrap("list books by author", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Summary, &b.ISBN, &b.AuthorID, &b.CreatedAt); err != nil {
			return nil, storeerr.Wrap("scan book", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		if isUndefinedTable(err) {
			return []model.Book{}, nil
		}
		return nil, storeerr.Wrap("iterate books", err)
	}

	return books, nil
}

// ListSummariesByAuthor selects only the columns of the summary projection.
func (r *postgresRepository) ListSummariesByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.BookSummary, error) {
	query := `
        SELECT id, title, summary
        FROM books
        WHERE author_id = $1
        ORDER BY title
    `

	rows, err := r.pool.Query(ctx, query, authorID)
	if err != nil {
		if isUndefinedTable(err) {
			return []model.BookSummary{}, nil
		}
		return nil, storeerr.Wrap("list book summaries", err)
	}

	summaries, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.BookSummary])
	if err != nil {
		if isUndefinedTable(err) {
			return []model.BookSummary{}, nil
		}
		return nil, storeerr.Wrap("scan book summaries", err)
	}
	return summaries, nil
}

// Create inserts b; the id is generated by the database.
func (r *postgresRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	query := `
        INSERT INTO books (title, summary, isbn, author_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, title, summary, isbn, author_id, created_at
    `

	var created model.Book
	err := r.pool.QueryRow(ctx, query, b.Title, b.Summary, b.ISBN, b.AuthorID).Scan(
		&created.ID,
		&created.Title,
		&created.Summary,
		&created.ISBN,
		&created.AuthorID,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, storeerr.Wrap("create book", err)
	}

	return &created, nil
}

// isUndefinedTable reports 42P01; a catalog without a books table has no books.
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P01"
}
