package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-backend/internal/domains/author/model"
)

func seed(t *testing.T, repo *MemoryRepository, authors ...model.Author) []*model.Author {
	t.Helper()
	created := make([]*model.Author, 0, len(authors))
	for _, a := range authors {
		a := a
		c, err := repo.Create(context.Background(), &a)
		require.NoError(t, err)
		created = append(created, c)
	}
	return created
}

func TestMemoryRepository_ListSorted_ByFamilyName(t *testing.T) {
	repo := NewMemoryRepository()
	seed(t, repo,
		model.Author{FirstName: "John", FamilyName: "Tolkien"},
		model.Author{FirstName: "Jane", FamilyName: "Austen"},
		model.Author{FirstName: "Anne", FamilyName: "Bronte"},
	)

	authors, err := repo.ListSorted(context.Background(), "family_name")
	require.NoError(t, err)

	names := make([]string, 0, len(authors))
	for _, a := range authors {
		names = append(names, a.FamilyName)
	}
	assert.Equal(t, []string{"Austen", "Bronte", "Tolkien"}, names)
}

func TestMemoryRepository_ListSorted_DateOfBirthPutsUnknownLast(t *testing.T) {
	repo := NewMemoryRepository()
	dob := time.Date(1775, time.December, 16, 0, 0, 0, 0, time.UTC)
	seed(t, repo,
		model.Author{FirstName: "Nobody", FamilyName: "Known"},
		model.Author{FirstName: "Jane", FamilyName: "Austen", DateOfBirth: &dob},
	)

	authors, err := repo.ListSorted(context.Background(), "date_of_birth")
	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.Equal(t, "Austen", authors[0].FamilyName)
}

func TestMemoryRepository_ListSorted_RejectsUnknownField(t *testing.T) {
	_, err := NewMemoryRepository().ListSorted(context.Background(), "id; DROP TABLE authors")

	assert.ErrorIs(t, err, model.ErrInvalidSortField)
}

func TestMemoryRepository_Create_IgnoresCallerID(t *testing.T) {
	repo := NewMemoryRepository()
	callerID := uuid.New()

	created, err := repo.Create(context.Background(), &model.Author{ID: callerID, FirstName: "Jane", FamilyName: "Austen"})
	require.NoError(t, err)

	assert.NotEqual(t, callerID, created.ID)
	assert.NotEqual(t, uuid.Nil, created.ID)
	_, err = repo.GetByID(context.Background(), callerID)
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
}

func TestMemoryRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	stored := seed(t, repo, model.Author{FirstName: "Jane", FamilyName: "Austin"})[0]

	updated, err := repo.Update(ctx, &model.Author{ID: stored.ID, FirstName: "Jane", FamilyName: "Austen"})
	require.NoError(t, err)
	assert.Equal(t, stored.ID, updated.ID)
	assert.Equal(t, "Austen", updated.FamilyName)
	assert.Equal(t, stored.CreatedAt, updated.CreatedAt)

	_, err = repo.Update(ctx, &model.Author{ID: uuid.New(), FirstName: "Ghost", FamilyName: "Writer"})
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
}

func TestMemoryRepository_Delete_AbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	stored := seed(t, repo, model.Author{FirstName: "Jane", FamilyName: "Austen"})[0]

	require.NoError(t, repo.Delete(ctx, stored.ID))
	assert.Equal(t, 0, repo.Count())

	assert.NoError(t, repo.Delete(ctx, stored.ID))
}

func TestCheckSort(t *testing.T) {
	field, err := checkSort("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSort, field)

	for f := range SortFields {
		got, err := checkSort(f)
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err = checkSort("created_at")
	assert.ErrorIs(t, err, model.ErrInvalidSortField)
}
