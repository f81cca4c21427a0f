package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"catalog-backend/internal/domains/author/model"
)

// RepositoryInterface is the Author side of the Record Store.
type RepositoryInterface interface {
	// ListSorted returns every author ascending by sortBy, one of SortFields.
	ListSorted(ctx context.Context, sortBy string) ([]model.Author, error)

	// GetByID returns model.ErrAuthorNotFound when no record has id.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)

	// Create stores a under a store-assigned id, ignoring a.ID.
	Create(ctx context.Context, a *model.Author) (*model.Author, error)

	// Update overwrites the fields of the record a.ID. The id itself is
	// never changed. Returns model.ErrAuthorNotFound when absent.
	Update(ctx context.Context, a *model.Author) (*model.Author, error)

	// Delete removes the record; deleting an absent id is a no-op.
	Delete(ctx context.Context, id uuid.UUID) error
}

// SortFields lists the columns an author list may be ordered by.
var SortFields = map[string]bool{
	"family_name":   true,
	"first_name":    true,
	"date_of_birth": true,
}

// DefaultSort is the order of the author list.
const DefaultSort = "family_name"

func checkSort(sortBy string) (string, error) {
	if sortBy == "" {
		return DefaultSort, nil
	}
	if !SortFields[sortBy] {
		return "", fmt.Errorf("%w: %q", model.ErrInvalidSortField, sortBy)
	}
	return sortBy, nil
}
