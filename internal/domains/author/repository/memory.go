package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"catalog-backend/internal/domains/author/model"
)

// MemoryRepository keeps authors in a map. It backs the memory store driver
// and the tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	authors map[uuid.UUID]model.Author
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{authors: make(map[uuid.UUID]model.Author)}
}

func (r *MemoryRepository) ListSorted(_ context.Context, sortBy string) ([]model.Author, error) {
	field, err := checkSort(sortBy)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	authors := make([]model.Author, 0, len(r.authors))
	for _, a := range r.authors {
		authors = append(authors, a)
	}
	r.mu.RUnlock()

	sort.SliceStable(authors, func(i, j int) bool {
		ki, kj := sortKey(authors[i], field), sortKey(authors[j], field)
		if ki != kj {
			return ki < kj
		}
		return authors[i].ID.String() < authors[j].ID.String()
	})
	return authors, nil
}

// sortKey orders absent dates last, like NULLS LAST on an ascending sort.
func sortKey(a model.Author, field string) string {
	switch field {
	case "first_name":
		return a.FirstName
	case "date_of_birth":
		if a.DateOfBirth == nil {
			return "~"
		}
		return a.DateOfBirth.Format("2006-01-02")
	default:
		return a.FamilyName
	}
}

func (r *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.authors[id]
	if !ok {
		return nil, model.ErrAuthorNotFound
	}
	return &a, nil
}

func (r *MemoryRepository) Create(_ context.Context, a *model.Author) (*model.Author, error) {
	created := *a
	created.ID = uuid.New()
	created.CreatedAt = time.Now().UTC()
	created.UpdatedAt = created.CreatedAt

	r.mu.Lock()
	r.authors[created.ID] = created
	r.mu.Unlock()

	return &created, nil
}

func (r *MemoryRepository) Update(_ context.Context, a *model.Author) (*model.Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.authors[a.ID]
	if !ok {
		return nil, model.ErrAuthorNotFound
	}

	current.FirstName = a.FirstName
	current.FamilyName = a.FamilyName
	current.DateOfBirth = a.DateOfBirth
	current.DateOfDeath = a.DateOfDeath
	current.UpdatedAt = time.Now().UTC()
	r.authors[a.ID] = current

	return &current, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	delete(r.authors, id)
	r.mu.Unlock()
	return nil
}

// Count returns the number of stored authors.
func (r *MemoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.authors)
}
