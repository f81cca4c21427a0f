package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"catalog-backend/internal/domains/book/model"
	"catalog-backend/internal/infrastructure/surreal"
	"catalog-backend/internal/shared/storeerr"
)

// bookRecord is the document shape of table book. author holds the author's
// uuid as a plain string, not a record link.
type bookRecord struct {
	ID        string                 `json:"id"`
	Title     string                 `json:"title"`
	Summary   string                 `json:"summary"`
	ISBN      string                 `json:"isbn"`
	Author    string                 `json:"author"`
	CreatedAt *models.CustomDateTime `json:"created_at"`
}

func (rec bookRecord) toModel() (model.Book, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return model.Book{}, fmt.Errorf("invalid book id %q: %w", rec.ID, err)
	}
	authorID, err := uuid.Parse(rec.Author)
	if err != nil {
		return model.Book{}, fmt.Errorf("invalid author reference %q: %w", rec.Author, err)
	}

	b := model.Book{
		ID:       id,
		Title:    rec.Title,
		Summary:  rec.Summary,
		ISBN:     rec.ISBN,
		AuthorID: authorID,
	}
	if rec.CreatedAt != nil {
		b.CreatedAt = rec.CreatedAt.Time
	}
	return b, nil
}

type surrealRepository struct {
	client *surreal.Client
}

func NewSurrealRepository(client *surreal.Client) RepositoryInterface {
	return &surrealRepository{client: client}
}

const bookFields = `record::id(id) AS id, title, summary, isbn, author, created_at`

func (r *surrealRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Book, error) {
	query := `SELECT ` + bookFields + ` FROM book WHERE author = $author ORDER BY title ASC`

	recs, err := surreal.Select[bookRecord](ctx, r.client, query, map[string]interface{}{
		"author": authorID.String(),
	})
	if err != nil {
		return nil, storeerr.Wrap("list books by author", err)
	}

	books := make([]model.Book, 0, len(recs))
	for _, rec := range recs {
		b, err := rec.toModel()
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, nil
}

// summaryRecord is the projection selected for book summaries.
type summaryRecord struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

const summaryFields = `record::id(id) AS id, title, summary`

func (rec summaryRecord) toModel() (model.BookSummary, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return model.BookSummary{}, fmt.Errorf("invalid book id %q: %w", rec.ID, err)
	}
	return model.BookSummary{ID: id, Title: rec.Title, Summary: rec.Summary}, nil
}

func (r *surrealRepository) ListSummariesByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.BookSummary, error) {
	query := `SELECT ` + summaryFields + ` FROM book WHERE author = $author ORDER BY title ASC`

	recs, err := surreal.Select[summaryRecord](ctx, r.client, query, map[string]interface{}{
		"author": authorID.String(),
	})
	if err != nil {
		return nil, storeerr.Wrap("list book summaries", err)
	}

	summaries := make([]model.BookSummary, 0, len(recs))
	for _, rec := range recs {
		sum, err := rec.toModel()
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, sum)
	}
	return summaries, nil
}

func (r *surrealRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	created := *b
	created.ID = uuid.New()
	created.CreatedAt = time.Now().UTC()

	query := `CREATE type::thing('book', $id) CONTENT {
        title: $title,
        summary: $summary,
        isbn: $isbn,
        author: $author,
        created_at: $created_at
    } RETURN NONE`

	err := surreal.Exec(ctx, r.client, query, map[string]interface{}{
		"id":         created.ID.String(),
		"title":      created.Title,
		"summary":    created.Summary,
		"isbn":       created.ISBN,
		"author":     created.AuthorID.String(),
		"created_at": models.CustomDateTime{Time: created.CreatedAt},
	})
	if err != nil {
		return nil, storeerr.Wrap("create book", err)
	}

	return &created, nil
}
