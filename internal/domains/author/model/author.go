package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	// ListURL is where the catalog sends the user after a delete.
	ListURL = "/catalog/authors"

	displayDateLayout = "Jan 2, 2006"
	inputDateLayout   = "2006-01-02"
)

// Author is a catalog author. Name and URL are derived and never stored.
type Author struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	FirstName   string     `json:"first_name" db:"first_name"`
	FamilyName  string     `json:"family_name" db:"family_name"`
	DateOfBirth *time.Time `json:"date_of_birth" db:"date_of_birth"`
	DateOfDeath *time.Time `json:"date_of_death" db:"date_of_death"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Name returns "Family, First", or "" unless both parts are present.
func (a Author) Name() string {
	if a.FirstName == "" || a.FamilyName == "" {
		return ""
	}
	return a.FamilyName + ", " + a.FirstName
}

// URL is the canonical path of the author, derived from its id.
func (a Author) URL() string {
	return "/catalog/author/" + a.ID.String()
}

// Lifespan renders "1775-12-16 - 1817-07-18", leaving either side blank when
// the date is unknown.
func (a Author) Lifespan() string {
	if a.DateOfBirth == nil && a.DateOfDeath == nil {
		return ""
	}
	return formatDate(a.DateOfBirth, inputDateLayout) + " - " + formatDate(a.DateOfDeath, inputDateLayout)
}

func (a Author) DateOfBirthFormatted() string {
	return formatDate(a.DateOfBirth, displayDateLayout)
}

func (a Author) DateOfDeathFormatted() string {
	return formatDate(a.DateOfDeath, displayDateLayout)
}

// DateOfBirthYYYYMMDD pre-fills a date input.
func (a Author) DateOfBirthYYYYMMDD() string {
	return formatDate(a.DateOfBirth, inputDateLayout)
}

func (a Author) DateOfDeathYYYYMMDD() string {
	return formatDate(a.DateOfDeath, inputDateLayout)
}

func formatDate(t *time.Time, layout string) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(layout)
}

// AuthorView is the JSON shape handed to views, derived fields included.
type AuthorView struct {
	ID                   uuid.UUID  `json:"id"`
	FirstName            string     `json:"first_name"`
	FamilyName           string     `json:"family_name"`
	DateOfBirth          *time.Time `json:"date_of_birth,omitempty"`
	DateOfDeath          *time.Time `json:"date_of_death,omitempty"`
	Name                 string     `json:"name"`
	URL                  string     `json:"url"`
	Lifespan             string     `json:"lifespan"`
	DateOfBirthFormatted string     `json:"date_of_birth_formatted"`
	DateOfDeathFormatted string     `json:"date_of_death_formatted"`
	DateOfBirthYYYYMMDD  string     `json:"date_of_birth_yyyy_mm_dd"`
	DateOfDeathYYYYMMDD  string     `json:"date_of_death_yyyy_mm_dd"`
}

func (a Author) ToView() AuthorView {
	v := AuthorView{
		ID:                   a.ID,
		FirstName:            a.FirstName,
		FamilyName:           a.FamilyName,
		DateOfBirth:          a.DateOfBirth,
		DateOfDeath:          a.DateOfDeath,
		Name:                 a.Name(),
		Lifespan:             a.Lifespan(),
		DateOfBirthFormatted: a.DateOfBirthFormatted(),
		DateOfDeathFormatted: a.DateOfDeathFormatted(),
		DateOfBirthYYYYMMDD:  a.DateOfBirthYYYYMMDD(),
		DateOfDeathYYYYMMDD:  a.DateOfDeathYYYYMMDD(),
	}
	// a candidate that was never stored has no canonical URL
	if a.ID != uuid.Nil {
		v.URL = a.URL()
	}
	return v
}

// AuthorBuilder assembles a candidate Author from sanitized form values.
// The candidate exists whether or not validation passed so the form can be
// redisplayed with the user's input.
type AuthorBuilder struct {
	author Author
}

func NewAuthorBuilder() *AuthorBuilder {
	return &AuthorBuilder{}
}

// WithID pins the identity. Only updates use it; creates leave the id to
// the store.
func (b *AuthorBuilder) WithID(id uuid.UUID) *AuthorBuilder {
	b.author.ID = id
	return b
}

func (b *AuthorBuilder) WithFirstName(name string) *AuthorBuilder {
	b.author.FirstName = name
	return b
}

func (b *AuthorBuilder) WithFamilyName(name string) *AuthorBuilder {
	b.author.FamilyName = name
	return b
}

func (b *AuthorBuilder) WithDateOfBirth(d *time.Time) *AuthorBuilder {
	b.author.DateOfBirth = d
	return b
}

func (b *AuthorBuilder) WithDateOfDeath(d *time.Time) *AuthorBuilder {
	b.author.DateOfDeath = d
	return b
}

func (b *AuthorBuilder) Build() Author {
	return b.author
}
