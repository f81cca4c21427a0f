package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"catalog-backend/internal/domains/book/model"
)

// MemoryRepository keeps books in a map. It backs the memory store driver
// and the tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	books map[uuid.UUID]model.Book
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{books: make(map[uuid.UUID]model.Book)}
}

func (r *MemoryRepository) ListByAuthor(_ context.Context, authorID uuid.UUID) ([]model.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	books := make([]model.Book, 0)
	for _, b := range r.books {
		if b.AuthorID == authorID {
			books = append(books, b)
		}
	}
	sort.SliceStable(books, func(i, j int) bool { return books[i].Title < books[j].Title })
	return books, nil
}

func (r *MemoryRepository) ListSummariesByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.BookSummary, error) {
	books, err := r.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.BookSummary, 0, len(books))
	for _, b := range books {
		summaries = append(summaries, b.Summarize())
	}
	return summaries, nil
}

func (r *MemoryRepository) Create(_ context.Context, b *model.Book) (*model.Book, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	created := *b
	created.ID = uuid.New()
	created.CreatedAt = time.Now().UTC()

	r.mu.Lock()
	r.books[created.ID] = created
	r.mu.Unlock()

	return &created, nil
}
