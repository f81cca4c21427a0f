package service

import (
	"context"

	"github.com/google/uuid"

	"catalog-backend/internal/shared/validation"
	"catalog-backend/internal/shared/view"
)

// ServiceInterface is the author lifecycle controller. Every operation
// returns a view.Outcome or an error for the generic error handler.
// Validation failures and blocked deletes are outcomes, not errors.
type ServiceInterface interface {
	List(ctx context.Context) (view.Outcome, error)
	Detail(ctx context.Context, id uuid.UUID) (view.Outcome, error)

	CreateForm() view.Outcome
	Create(ctx context.Context, form validation.FieldSource) (view.Outcome, error)

	DeleteConfirmation(ctx context.Context, id uuid.UUID) (view.Outcome, error)
	Delete(ctx context.Context, id uuid.UUID, submittedID string) (view.Outcome, error)

	UpdateForm(ctx context.Context, id uuid.UUID) (view.Outcome, error)
	Update(ctx context.Context, id uuid.UUID, form validation.FieldSource) (view.Outcome, error)
}

// View names
const (
	ViewAuthorList   = "author_list"
	ViewAuthorDetail = "author_detail"
	ViewAuthorForm   = "author_form"
	ViewAuthorDelete = "author_delete"
)

// Page titles
const (
	TitleAuthorList   = "Author List"
	TitleAuthorDetail = "Author Detail"
	TitleCreateAuthor = "Create Author"
	TitleDeleteAuthor = "Delete Author"
	TitleUpdateAuthor = "Update Author"
)

// Data bag keys
const (
	KeyTitle       = "title"
	KeyAuthorList  = "author_list"
	KeyAuthor      = "author"
	KeyAuthorBooks = "author_books"
	KeyErrors      = "errors"
)
