package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"catalog-backend/internal/domains/author/model"
	"catalog-backend/internal/domains/author/repository"
	bookmodel "catalog-backend/internal/domains/book/model"
	bookrepo "catalog-backend/internal/domains/book/repository"
	"catalog-backend/internal/shared/validation"
	"catalog-backend/internal/shared/view"
	"catalog-backend/pkg/logger"
)

// authorService implements ServiceInterface.
//
// The delete guard re-reads the author's books on every delete. Nothing
// stops a book from being created between that read and the delete itself;
// a conditional delete in the store would close the gap.
type authorService struct {
	authors  repository.RepositoryInterface
	books    bookrepo.RepositoryInterface
	recorder logger.EventRecorder
}

// NewAuthorService wires the controller to its stores. A nil recorder
// discards list events.
func NewAuthorService(
	authors repository.RepositoryInterface,
	books bookrepo.RepositoryInterface,
	recorder logger.EventRecorder,
) ServiceInterface {
	if recorder == nil {
		recorder = logger.NopRecorder{}
	}
	return &authorService{
		authors:  authors,
		books:    books,
		recorder: recorder,
	}
}

// ════════════════════════════════════════════════════════════════
// LOOK-UP HELPERS
// ════════════════════════════════════════════════════════════════

// notFoundPolicy decides what a read site does when the author is absent.
type notFoundPolicy int

const (
	respondNotFound notFoundPolicy = iota
	redirectToList
)

// authorLookup is the result of a by-id read: found, or not.
type authorLookup struct {
	author *model.Author
}

func (l authorLookup) found() bool { return l.author != nil }

// fetchAuthorAndBooks reads the author and its books in parallel. A missing
// author is reported through the lookup, not as an error. The first store
// failure cancels the other read and is returned.
func fetchAuthorAndBooks[B any](
	ctx context.Context,
	authors repository.RepositoryInterface,
	id uuid.UUID,
	listBooks func(context.Context, uuid.UUID) ([]B, error),
) (authorLookup, []B, error) {
	var lookup authorLookup
	var books []B

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a, err := authors.GetByID(gctx, id)
		if err != nil {
			if errors.Is(err, model.ErrAuthorNotFound) {
				return nil
			}
			return fmt.Errorf("failed to fetch author: %w", err)
		}
		lookup.author = a
		return nil
	})

	g.Go(func() error {
		bs, err := listBooks(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to fetch author books: %w", err)
		}
		books = bs
		return nil
	})

	if err := g.Wait(); err != nil {
		return authorLookup{}, nil, err
	}
	if books == nil {
		books = []B{}
	}
	return lookup, books, nil
}

func onNotFound(policy notFoundPolicy) (view.Outcome, error) {
	if policy == redirectToList {
		return view.RedirectTo(model.ListURL), nil
	}
	return view.Outcome{}, model.ErrAuthorNotFound
}

// ════════════════════════════════════════════════════════════════
// LIST
// ════════════════════════════════════════════════════════════════

func (s *authorService) List(ctx context.Context) (view.Outcome, error) {
	authors, err := s.authors.ListSorted(ctx, repository.DefaultSort)
	if err != nil {
		return view.Outcome{}, fmt.Errorf("failed to list authors: %w", err)
	}

	list := make([]model.AuthorView, 0, len(authors))
	for _, a := range authors {
		s.record(ctx, a)
		list = append(list, a.ToView())
	}

	return view.Render(ViewAuthorList, view.Data{
		KeyTitle:      TitleAuthorList,
		KeyAuthorList: list,
	}), nil
}

// record reports a listed author. A misbehaving recorder never fails the list.
func (s *authorService) record(ctx context.Context, a model.Author) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Interface("panic", r).Str("author_id", a.ID.String()).Msg("[AUTHOR] Event recorder panicked")
		}
	}()

	s.recorder.Record(ctx, "author_listed", map[string]interface{}{
		"author_id":     a.ID.String(),
		"name":          a.Name(),
		"date_of_birth": a.DateOfBirthYYYYMMDD(),
		"date_of_death": a.DateOfDeathYYYYMMDD(),
	})
}

// ════════════════════════════════════════════════════════════════
// DETAIL
// ════════════════════════════════════════════════════════════════

func (s *authorService) Detail(ctx context.Context, id uuid.UUID) (view.Outcome, error) {
	lookup, books, err := fetchAuthorAndBooks(ctx, s.authors, id, s.books.ListSummariesByAuthor)
	if err != nil {
		return view.Outcome{}, err
	}
	if !lookup.found() {
		return onNotFound(respondNotFound)
	}

	return view.Render(ViewAuthorDetail, view.Data{
		KeyTitle:       TitleAuthorDetail,
		KeyAuthor:      lookup.author.ToView(),
		KeyAuthorBooks: books,
	}), nil
}

// ════════════════════════════════════════════════════════════════
// CREATE
// ════════════════════════════════════════════════════════════════

func (s *authorService) CreateForm() view.Outcome {
	return view.Render(ViewAuthorForm, view.Data{KeyTitle: TitleCreateAuthor})
}

func (s *authorService) Create(ctx context.Context, form validation.FieldSource) (view.Outcome, error) {
	res := runRules(createRules, form)
	candidate := candidateFrom(model.NewAuthorBuilder(), res)

	if !res.Valid() {
		return view.Render(ViewAuthorForm, view.Data{
			KeyTitle:  TitleCreateAuthor,
			KeyAuthor: candidate.ToView(),
			KeyErrors: res.Errors(),
		}), nil
	}

	created, err := s.authors.Create(ctx, &candidate)
	if err != nil {
		return view.Outcome{}, fmt.Errorf("failed to create author: %w", err)
	}

	log.Info().Str("author_id", created.ID.String()).Msg("[AUTHOR] Created")
	return view.RedirectTo(created.URL()), nil
}

func candidateFrom(b *model.AuthorBuilder, res *validation.Result) model.Author {
	return b.
		WithFirstName(res.Value(FieldFirstName)).
		WithFamilyName(res.Value(FieldFamilyName)).
		WithDateOfBirth(res.Date(FieldDateOfBirth)).
		WithDateOfDeath(res.Date(FieldDateOfDeath)).
		Build()
}

// ════════════════════════════════════════════════════════════════
// DELETE
// ════════════════════════════════════════════════════════════════

func (s *authorService) DeleteConfirmation(ctx context.Context, id uuid.UUID) (view.Outcome, error) {
	lookup, books, err := fetchAuthorAndBooks(ctx, s.authors, id, s.books.ListSummariesByAuthor)
	if err != nil {
		return view.Outcome{}, err
	}
	if !lookup.found() {
		return onNotFound(redirectToList)
	}

	return deleteView(lookup, books, nil), nil
}

// Delete re-reads the author's books and deletes only when there are none.
// An author that is already gone deletes as a no-op.
func (s *authorService) Delete(ctx context.Context, id uuid.UUID, submittedID string) (view.Outcome, error) {
	lookup, books, err := fetchAuthorAndBooks(ctx, s.authors, id, s.books.ListSummariesByAuthor)
	if err != nil {
		return view.Outcome{}, err
	}

	if len(books) > 0 {
		return deleteView(lookup, books, nil), nil
	}

	if submitted, err := uuid.Parse(submittedID); err != nil || submitted != id {
		log.Warn().
			Str("author_id", id.String()).
			Str("submitted_id", submittedID).
			Msg("[AUTHOR] Delete rejected: " + model.ErrAuthorIDMismatch.Error())
		return deleteView(lookup, books, []validation.FieldError{
			{Field: FieldAuthorID, Message: MsgAuthorIDMismatch},
		}), nil
	}

	if err := s.authors.Delete(ctx, id); err != nil {
		return view.Outcome{}, fmt.Errorf("failed to delete author: %w", err)
	}

	log.Info().Str("author_id", id.String()).Bool("existed", lookup.found()).Msg("[AUTHOR] Deleted")
	return view.RedirectTo(model.ListURL), nil
}

func deleteView(lookup authorLookup, books []bookmodel.BookSummary, errs []validation.FieldError) view.Outcome {
	data := view.Data{
		KeyTitle:       TitleDeleteAuthor,
		KeyAuthor:      nil,
		KeyAuthorBooks: books,
	}
	if lookup.found() {
		data[KeyAuthor] = lookup.author.ToView()
	}
	if len(errs) > 0 {
		data[KeyErrors] = errs
	}
	return view.Render(ViewAuthorDelete, data)
}

// ════════════════════════════════════════════════════════════════
// UPDATE
// ════════════════════════════════════════════════════════════════

func (s *authorService) UpdateForm(ctx context.Context, id uuid.UUID) (view.Outcome, error) {
	lookup, books, err := fetchAuthorAndBooks(ctx, s.authors, id, s.books.ListByAuthor)
	if err != nil {
		return view.Outcome{}, err
	}
	if !lookup.found() {
		return onNotFound(respondNotFound)
	}

	return view.Render(ViewAuthorForm, view.Data{
		KeyTitle:       TitleUpdateAuthor,
		KeyAuthor:      lookup.author.ToView(),
		KeyAuthorBooks: books,
	}), nil
}

// Update keeps the path id: nothing in the form can change an author's identity.
func (s *authorService) Update(ctx context.Context, id uuid.UUID, form validation.FieldSource) (view.Outcome, error) {
	res := runRules(updateRules, form)
	candidate := candidateFrom(model.NewAuthorBuilder().WithID(id), res)

	if !res.Valid() {
		books, err := s.books.ListByAuthor(ctx, id)
		if err != nil {
			return view.Outcome{}, fmt.Errorf("failed to fetch author books: %w", err)
		}
		return view.Render(ViewAuthorForm, view.Data{
			KeyTitle:       TitleUpdateAuthor,
			KeyAuthor:      candidate.ToView(),
			KeyAuthorBooks: books,
			KeyErrors:      res.Errors(),
		}), nil
	}

	if _, err := s.authors.Update(ctx, &candidate); err != nil {
		if errors.Is(err, model.ErrAuthorNotFound) {
			return view.Outcome{}, err
		}
		return view.Outcome{}, fmt.Errorf("failed to update author: %w", err)
	}

	log.Info().Str("author_id", id.String()).Msg("[AUTHOR] Updated")
	return view.RedirectTo(candidate.URL()), nil
}
