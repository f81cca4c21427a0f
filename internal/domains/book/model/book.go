package model

import (
	"time"

	"github.com/google/uuid"
)

// Book is a catalog book. AuthorID is a non-owning back-reference: an author
// keeps no list of its books, they are found by querying on this field.
type Book struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Summary   string    `json:"summary" db:"summary"`
	ISBN      string    `json:"isbn" db:"isbn"`
	AuthorID  uuid.UUID `json:"author_id" db:"author_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// BookSummary is the title and summary projection shown next to an author.
type BookSummary struct {
	ID      uuid.UUID `json:"id" db:"id"`
	Title   string    `json:"title" db:"title"`
	Summary string    `json:"summary" db:"summary"`
}

func (b Book) URL() string {
	return bookURL(b.ID)
}

func (b BookSummary) URL() string {
	return bookURL(b.ID)
}

func (b Book) Summarize() BookSummary {
	return BookSummary{ID: b.ID, Title: b.Title, Summary: b.Summary}
}

func bookURL(id uuid.UUID) string {
	return "/catalog/book/" + id.String()
}
