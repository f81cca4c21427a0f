package validation

import "time"

// Result holds the sanitized values and collected errors of one Run.
// Values are available whether or not validation passed.
type Result struct {
	values map[string]string
	dates  map[string]*time.Time
	errors []FieldError
}

func newResult() *Result {
	return &Result{
		values: make(map[string]string),
		dates:  make(map[string]*time.Time),
		errors: []FieldError{},
	}
}

// Value returns the sanitized value of field.
func (r *Result) Value(field string) string {
	return r.values[field]
}

// Date returns the converted date of field, or nil when the field was empty
// or failed to parse.
func (r *Result) Date(field string) *time.Time {
	return r.dates[field]
}

// Errors returns the failures in the order they were recorded.
func (r *Result) Errors() []FieldError {
	return r.errors
}

func (r *Result) Valid() bool {
	return len(r.errors) == 0
}

// ErrorFor returns the first message recorded for field.
func (r *Result) ErrorFor(field string) (string, bool) {
	for _, e := range r.errors {
		if e.Field == field {
			return e.Message, true
		}
	}
	return "", false
}

// Add records a failure found outside the chains, such as a cross-field rule.
func (r *Result) Add(field, message string) {
	r.errors = append(r.errors, FieldError{Field: field, Message: message})
}
