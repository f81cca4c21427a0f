package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-backend/internal/infrastructure/surreal"
	"catalog-backend/internal/shared/storeerr"
)

func TestSummaryFields_SelectsOnlyProjection(t *testing.T) {
	fields := strings.Split(summaryFields, ", ")

	assert.Equal(t, []string{"record::id(id) AS id", "title", "summary"}, fields)
}

func TestSummaryRecord_ToModel(t *testing.T) {
	id := uuid.New()

	sum, err := summaryRecord{ID: id.String(), Title: "Emma", Summary: "Matchmaking"}.toModel()

	require.NoError(t, err)
	assert.Equal(t, id, sum.ID)
	assert.Equal(t, "Emma", sum.Title)
	assert.Equal(t, "Matchmaking", sum.Summary)
}

func TestSummaryRecord_ToModel_InvalidID(t *testing.T) {
	_, err := summaryRecord{ID: "book:emma"}.toModel()

	assert.Error(t, err)
}

func TestSurrealRepository_Disconnected_StoreUnavailable(t *testing.T) {
	repo := NewSurrealRepository(surreal.New(surreal.Config{}))

	_, err := repo.ListSummariesByAuthor(context.Background(), uuid.New())
	assert.ErrorIs(t, err, storeerr.ErrUnavailable)

	_, err = repo.ListByAuthor(context.Background(), uuid.New())
	assert.ErrorIs(t, err, storeerr.ErrUnavailable)
}
