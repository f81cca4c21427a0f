package validation

import (
	"net/url"
	"testing"
	"time"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nameSchema() *Schema {
	return NewSchema(
		Field("first_name").Trim().
			Check(ozzo.Required, "First name must be specified.").
			Escape().
			Check(is.Alphanumeric, "First name has non-alphanumeric characters."),
		Field("date_of_birth").Optional().ISODate("Invalid date of birth"),
	)
}

func TestSchema_Run_ValidInput(t *testing.T) {
	res := nameSchema().Run(url.Values{
		"first_name":    {"  Jane  "},
		"date_of_birth": {"1775-12-16"},
	})

	require.True(t, res.Valid())
	assert.Equal(t, "Jane", res.Value("first_name"))
	require.NotNil(t, res.Date("date_of_birth"))
	assert.Equal(t, time.Date(1775, 12, 16, 0, 0, 0, 0, time.UTC), *res.Date("date_of_birth"))
}

func TestSchema_Run_MissingRequired_RecordsFieldError(t *testing.T) {
	res := nameSchema().Run(url.Values{})

	require.False(t, res.Valid())
	msg, ok := res.ErrorFor("first_name")
	require.True(t, ok)
	assert.Equal(t, "First name must be specified.", msg)

	_, ok = res.ErrorFor("date_of_birth")
	assert.False(t, ok, "empty optional field must not error")
	assert.Nil(t, res.Date("date_of_birth"))
}

func TestSchema_Run_EscapesBeforeAlphanumericCheck(t *testing.T) {
	res := nameSchema().Run(url.Values{"first_name": {"<b>Jane</b>"}})

	assert.Equal(t, "&lt;b&gt;Jane&lt;&#x2F;b&gt;", res.Value("first_name"))
	msg, ok := res.ErrorFor("first_name")
	require.True(t, ok)
	assert.Equal(t, "First name has non-alphanumeric characters.", msg)
}

func TestSchema_Run_AllChecksRunWithoutBail(t *testing.T) {
	schema := NewSchema(
		Field("code").
			Check(ozzo.Length(5, 10), "too short").
			Check(is.Digit, "not digits"),
	)

	res := schema.Run(url.Values{"code": {"ab"}})

	assert.Equal(t, []FieldError{
		{Field: "code", Message: "too short"},
		{Field: "code", Message: "not digits"},
	}, res.Errors())
}

func TestSchema_Run_ErrorsFollowDeclarationOrder(t *testing.T) {
	schema := NewSchema(
		Field("b").Check(ozzo.Required, "b required"),
		Field("a").Check(ozzo.Required, "a required"),
	)

	res := schema.Run(url.Values{})

	require.Len(t, res.Errors(), 2)
	assert.Equal(t, "b", res.Errors()[0].Field)
	assert.Equal(t, "a", res.Errors()[1].Field)
}

func TestSchema_Run_InvalidDate(t *testing.T) {
	res := nameSchema().Run(url.Values{
		"first_name":    {"Jane"},
		"date_of_birth": {"16/12/1775"},
	})

	msg, ok := res.ErrorFor("date_of_birth")
	require.True(t, ok)
	assert.Equal(t, "Invalid date of birth", msg)
	assert.Nil(t, res.Date("date_of_birth"))
	assert.Equal(t, "16/12/1775", res.Value("date_of_birth"))
}

func TestSchema_Run_FormFuncSource(t *testing.T) {
	src := FormFunc(func(key string) string {
		if key == "first_name" {
			return "Mary"
		}
		return ""
	})

	res := nameSchema().Run(src)

	assert.True(t, res.Valid())
	assert.Equal(t, "Mary", res.Value("first_name"))
}

func TestResult_Add(t *testing.T) {
	res := nameSchema().Run(url.Values{"first_name": {"Jane"}})
	require.True(t, res.Valid())

	res.Add("date_of_death", "Date of death must not be before date of birth")

	assert.False(t, res.Valid())
	msg, _ := res.ErrorFor("date_of_death")
	assert.Equal(t, "Date of death must not be before date of birth", msg)
}

func TestParseISODate(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		want time.Time
	}{
		{"1817-07-18", true, time.Date(1817, 7, 18, 0, 0, 0, 0, time.UTC)},
		{"1817-07-18T10:30:00Z", true, time.Date(1817, 7, 18, 0, 0, 0, 0, time.UTC)},
		{"1817-07-18T10:30", true, time.Date(1817, 7, 18, 0, 0, 0, 0, time.UTC)},
		{"18170718", true, time.Date(1817, 7, 18, 0, 0, 0, 0, time.UTC)},
		{"1817-13-01", false, time.Time{}},
		{"yesterday", false, time.Time{}},
		{"", false, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseISODate(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
