package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"catalog-backend/internal/domains/author/model"
	"catalog-backend/internal/infrastructure/surreal"
	"catalog-backend/internal/shared/storeerr"
)

// authorRecord is the document shape of table author. Records live at
// author:<uuid>; queries project the key part as a plain string id.
type authorRecord struct {
	ID          string                 `json:"id"`
	FirstName   string                 `json:"first_name"`
	FamilyName  string                 `json:"family_name"`
	DateOfBirth *models.CustomDateTime `json:"date_of_birth"`
	DateOfDeath *models.CustomDateTime `json:"date_of_death"`
	CreatedAt   *models.CustomDateTime `json:"created_at"`
	UpdatedAt   *models.CustomDateTime `json:"updated_at"`
}

func (rec authorRecord) toModel() (model.Author, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return model.Author{}, fmt.Errorf("invalid author id %q: %w", rec.ID, err)
	}
	return model.Author{
		ID:          id,
		FirstName:   rec.FirstName,
		FamilyName:  rec.FamilyName,
		DateOfBirth: fromSurrealDate(rec.DateOfBirth),
		DateOfDeath: fromSurrealDate(rec.DateOfDeath),
		CreatedAt:   fromSurrealTime(rec.CreatedAt),
		UpdatedAt:   fromSurrealTime(rec.UpdatedAt),
	}, nil
}

func fromSurrealDate(dt *models.CustomDateTime) *time.Time {
	if dt == nil || dt.Time.IsZero() {
		return nil
	}
	t := dt.Time.UTC()
	return &t
}

func fromSurrealTime(dt *models.CustomDateTime) time.Time {
	if dt == nil {
		return time.Time{}
	}
	return dt.Time
}

// toSurrealDate keeps NULL for unknown dates.
func toSurrealDate(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return models.CustomDateTime{Time: t.UTC()}
}

type surrealRepository struct {
	client *surreal.Client
}

func NewSurrealRepository(client *surreal.Client) RepositoryInterface {
	return &surrealRepository{client: client}
}

const authorFields = `record::id(id) AS id, first_name, family_name, date_of_birth, date_of_death, created_at, updated_at`

func (r *surrealRepository) ListSorted(ctx context.Context, sortBy string) ([]model.Author, error) {
	field, err := checkSort(sortBy)
	if err != nil {
		return nil, err
	}

	// field comes from the whitelist, never from the request
	query := `SELECT ` + authorFields + ` FROM author ORDER BY ` + field + ` ASC`

	recs, err := surreal.Select[authorRecord](ctx, r.client, query, nil)
	if err != nil {
		return nil, storeerr.Wrap("list authors", err)
	}

	authors := make([]model.Author, 0, len(recs))
	for _, rec := range recs {
		a, err := rec.toModel()
		if err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	return authors, nil
}

func (r *surrealRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	query := `SELECT ` + authorFields + ` FROM type::thing('author', $id)`

	recs, err := surreal.Select[authorRecord](ctx, r.client, query, map[string]interface{}{
		"id": id.String(),
	})
	if err != nil {
		return nil, storeerr.Wrap("get author by id", err)
	}
	if len(recs) == 0 {
		return nil, model.ErrAuthorNotFound
	}

	a, err := recs[0].toModel()
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *surrealRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	created := *a
	created.ID = uuid.New()
	created.CreatedAt = time.Now().UTC()
	created.UpdatedAt = created.CreatedAt

	query := `CREATE type::thing('author', $id) CONTENT {
        first_name: $first_name,
        family_name: $family_name,
        date_of_birth: $date_of_birth,
        date_of_death: $date_of_death,
        created_at: $now,
        updated_at: $now
    } RETURN NONE`

	err := surreal.Exec(ctx, r.client, query, map[string]interface{}{
		"id":            created.ID.String(),
		"first_name":    created.FirstName,
		"family_name":   created.FamilyName,
		"date_of_birth": toSurrealDate(created.DateOfBirth),
		"date_of_death": toSurrealDate(created.DateOfDeath),
		"now":           models.CustomDateTime{Time: created.CreatedAt},
	})
	if err != nil {
		return nil, storeerr.Wrap("create author", err)
	}

	return &created, nil
}

// Update relies on UPDATE never creating records: an empty result means the
// author is gone.
func (r *surrealRepository) Update(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `UPDATE type::thing('author', $id) MERGE {
        first_name: $first_name,
        family_name: $family_name,
        date_of_birth: $date_of_birth,
        date_of_death: $date_of_death,
        updated_at: time::now()
    } RETURN ` + authorFields

	recs, err := surreal.Select[authorRecord](ctx, r.client, query, map[string]interface{}{
		"id":            a.ID.String(),
		"first_name":    a.FirstName,
		"family_name":   a.FamilyName,
		"date_of_birth": toSurrealDate(a.DateOfBirth),
		"date_of_death": toSurrealDate(a.DateOfDeath),
	})
	if err != nil {
		return nil, storeerr.Wrap("update author", err)
	}
	if len(recs) == 0 {
		return nil, model.ErrAuthorNotFound
	}

	updated, err := recs[0].toModel()
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *surrealRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := surreal.Exec(ctx, r.client, `DELETE type::thing('author', $id)`, map[string]interface{}{
		"id": id.String(),
	})
	if err != nil {
		return storeerr.Wrap("delete author", err)
	}
	return nil
}
