package model

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidTitle  = errors.New("book title is required")
	ErrMissingAuthor = errors.New("book must reference an author")
)

// Validate checks the fields required to store a book.
func (b *Book) Validate() error {
	if b.Title == "" {
		return ErrInvalidTitle
	}
	if b.AuthorID == uuid.Nil {
		return ErrMissingAuthor
	}
	return nil
}
