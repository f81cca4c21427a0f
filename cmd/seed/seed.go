package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	authorRepo "catalog-backend/internal/domains/author/repository"
	bookRepo "catalog-backend/internal/domains/book/repository"
)

type seedStats struct {
	Authors int
	Books   int
}

// seed writes every fixture author, then its books under the id the store
// assigned. It stops at the first failure; records already written stay.
func seed(
	ctx context.Context,
	authors authorRepo.RepositoryInterface,
	books bookRepo.RepositoryInterface,
	f *fixtureFile,
) (seedStats, error) {
	var stats seedStats

	for _, af := range f.Authors {
		candidate, err := af.toAuthor()
		if err != nil {
			return stats, err
		}

		created, err := authors.Create(ctx, candidate)
		if err != nil {
			return stats, fmt.Errorf("failed to create author %s: %w", candidate.Name(), err)
		}
		stats.Authors++
		log.Debug().Str("author_id", created.ID.String()).Str("name", created.Name()).Msg("[SEED] Author created")

		for _, bf := range af.Books {
			b := bf.toBook(created)
			if err := b.Validate(); err != nil {
				return stats, fmt.Errorf("book %q: %w", bf.Title, err)
			}
			if _, err := books.Create(ctx, b); err != nil {
				return stats, fmt.Errorf("failed to create book %q: %w", bf.Title, err)
			}
			stats.Books++
		}
	}

	return stats, nil
}
