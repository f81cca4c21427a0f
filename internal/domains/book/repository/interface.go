package repository

import (
	"context"

	"github.com/google/uuid"

	"catalog-backend/internal/domains/book/model"
)

// RepositoryInterface is the Book side of the Record Store. Books are only
// ever looked up by the author they reference.
type RepositoryInterface interface {
	// ListByAuthor returns full book records referencing authorID, by title.
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Book, error)

	// ListSummariesByAuthor returns the title and summary projection.
	ListSummariesByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.BookSummary, error)

	// Create stores b under a store-assigned id.
	Create(ctx context.Context, b *model.Book) (*model.Book, error)
}
