package main

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	authorModel "catalog-backend/internal/domains/author/model"
	bookModel "catalog-backend/internal/domains/book/model"
	"catalog-backend/internal/shared/validation"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

type fixtureFile struct {
	Authors []authorFixture `yaml:"authors"`
}

type authorFixture struct {
	FirstName   string        `yaml:"first_name"`
	FamilyName  string        `yaml:"family_name"`
	DateOfBirth string        `yaml:"date_of_birth"`
	DateOfDeath string        `yaml:"date_of_death"`
	Books       []bookFixture `yaml:"books"`
}

type bookFixture struct {
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
	ISBN    string `yaml:"isbn"`
}

// loadFixtures reads path, or the embedded set when path is empty.
func loadFixtures(path string) (*fixtureFile, error) {
	data := defaultFixtures
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read fixtures: %w", err)
		}
		data = raw
	}
	return parseFixtures(data)
}

func parseFixtures(data []byte) (*fixtureFile, error) {
	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	for i, a := range f.Authors {
		if a.FirstName == "" || a.FamilyName == "" {
			return nil, fmt.Errorf("author #%d: first_name and family_name are required", i+1)
		}
	}
	return &f, nil
}

// toAuthor converts the fixture; dates use the same formats the forms accept.
func (a authorFixture) toAuthor() (*authorModel.Author, error) {
	b := authorModel.NewAuthorBuilder().
		WithFirstName(a.FirstName).
		WithFamilyName(a.FamilyName)

	if a.DateOfBirth != "" {
		d, ok := validation.ParseISODate(a.DateOfBirth)
		if !ok {
			return nil, fmt.Errorf("%s %s: invalid date_of_birth %q", a.FirstName, a.FamilyName, a.DateOfBirth)
		}
		b = b.WithDateOfBirth(&d)
	}
	if a.DateOfDeath != "" {
		d, ok := validation.ParseISODate(a.DateOfDeath)
		if !ok {
			return nil, fmt.Errorf("%s %s: invalid date_of_death %q", a.FirstName, a.FamilyName, a.DateOfDeath)
		}
		b = b.WithDateOfDeath(&d)
	}

	author := b.Build()
	return &author, nil
}

func (b bookFixture) toBook(author *authorModel.Author) *bookModel.Book {
	return &bookModel.Book{
		Title:    b.Title,
		Summary:  b.Summary,
		ISBN:     b.ISBN,
		AuthorID: author.ID,
	}
}
