// Package validation runs declarative per-field rule chains over submitted
// form values, producing sanitized values and an ordered list of field errors.
//
// A chain is declared once and evaluated per request:
//
//	schema := validation.NewSchema(
//		validation.Field("first_name").Trim().
//			Check(ozzo.Required, "First name must be specified.").
//			Escape(),
//		validation.Field("date_of_birth").Optional().ISODate("Invalid date of birth"),
//	)
//	res := schema.Run(form)
//
// Every step of a chain runs; a failing check records its message and the
// chain continues. Only Optional can end a chain early.
package validation

import (
	"strings"
	"time"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
)

// FieldSource supplies raw submitted values. url.Values satisfies it; use
// FormFunc to adapt lookups such as gin's Context.PostForm.
type FieldSource interface {
	Get(key string) string
}

// FormFunc adapts a lookup function to FieldSource.
type FormFunc func(key string) string

func (f FormFunc) Get(key string) string { return f(key) }

// FieldError is one failed check.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type fieldState struct {
	field  string
	value  string
	date   *time.Time
	errors []FieldError
	done   bool
}

type step func(st *fieldState)

// Chain is the ordered rule list for one field.
type Chain struct {
	field string
	steps []step
}

// Field starts a rule chain for the named form field.
func Field(name string) *Chain {
	return &Chain{field: name}
}

func (c *Chain) add(s step) *Chain {
	c.steps = append(c.steps, s)
	return c
}

// Trim strips surrounding whitespace.
func (c *Chain) Trim() *Chain {
	return c.add(func(st *fieldState) {
		st.value = strings.TrimSpace(st.value)
	})
}

// Escape replaces HTML-significant characters with entities.
func (c *Chain) Escape() *Chain {
	return c.add(func(st *fieldState) {
		st.value = htmlEscaper.Replace(st.value)
	})
}

// Optional ends the chain without error when the current value is empty.
func (c *Chain) Optional() *Chain {
	return c.add(func(st *fieldState) {
		if st.value == "" {
			st.done = true
		}
	})
}

// Check validates the current value with an ozzo-validation rule and records
// message on failure.
func (c *Chain) Check(rule ozzo.Rule, message string) *Chain {
	return c.add(func(st *fieldState) {
		if err := rule.Validate(st.value); err != nil {
			st.errors = append(st.errors, FieldError{Field: st.field, Message: message})
		}
	})
}

// ISODate requires an ISO-8601 date or date-time and converts it to a
// calendar date at UTC midnight. The string value is left as submitted.
func (c *Chain) ISODate(message string) *Chain {
	return c.add(func(st *fieldState) {
		d, ok := ParseISODate(st.value)
		if !ok {
			st.errors = append(st.errors, FieldError{Field: st.field, Message: message})
			return
		}
		st.date = &d
	})
}

func (c *Chain) run(src FieldSource) fieldState {
	st := fieldState{field: c.field, value: src.Get(c.field)}
	for _, s := range c.steps {
		if st.done {
			break
		}
		s(&st)
	}
	return st
}

// Schema is an ordered set of chains. It holds no per-request state and is
// safe to share between goroutines.
type Schema struct {
	chains []*Chain
}

func NewSchema(chains ...*Chain) *Schema {
	return &Schema{chains: chains}
}

// Run evaluates every chain in declaration order.
func (s *Schema) Run(src FieldSource) *Result {
	res := newResult()
	for _, c := range s.chains {
		st := c.run(src)
		res.values[st.field] = st.value
		if st.date != nil {
			res.dates[st.field] = st.date
		}
		res.errors = append(res.errors, st.errors...)
	}
	return res
}

// express-style escaping of & < > " ' / \ and backtick
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
	`\`, "&#x5C;",
	"`", "&#96;",
)

var isoLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"20060102",
}

// ParseISODate parses the ISO-8601 forms accepted by date fields and returns
// the calendar date they name.
func ParseISODate(value string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
