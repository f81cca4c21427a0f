package service

import (
	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"catalog-backend/internal/shared/validation"
)

// Form fields
const (
	FieldFirstName   = "first_name"
	FieldFamilyName  = "family_name"
	FieldDateOfBirth = "date_of_birth"
	FieldDateOfDeath = "date_of_death"
	FieldAuthorID    = "authorid"
)

const maxNameLength = 100

// Validation messages
const (
	MsgFirstNameRequired  = "First name must be specified."
	MsgFamilyNameRequired = "Family name must be specified."
	MsgFirstNameNotAlnum  = "First name has non-alphanumeric characters."
	MsgFamilyNameNotAlnum = "Family name has non-alphanumeric characters."
	MsgFirstNameTooLong   = "First name must be at most 100 characters."
	MsgFamilyNameTooLong  = "Family name must be at most 100 characters."
	MsgInvalidDateOfBirth = "Invalid date of birth"
	MsgInvalidDateOfDeath = "Invalid date of death"
	MsgDeathBeforeBirth   = "Date of death must not be before date of birth"
	MsgAuthorIDMismatch   = "Submitted author id does not match the author being deleted"
)

// nameChain bounds the escaped value: that is what gets stored, and escaping
// can grow a name up to six-fold.
func nameChain(field, required, tooLong, notAlnum string, alphanumeric bool) *validation.Chain {
	c := validation.Field(field).
		Trim().
		Check(ozzo.Required, required).
		Escape().
		Check(ozzo.RuneLength(0, maxNameLength), tooLong)
	if alphanumeric {
		c = c.Check(is.Alphanumeric, notAlnum)
	}
	return c
}

func dateChain(field, message string) *validation.Chain {
	return validation.Field(field).Optional().ISODate(message)
}

// createRules: names required and alphanumeric, dates optional.
var createRules = validation.NewSchema(
	nameChain(FieldFirstName, MsgFirstNameRequired, MsgFirstNameTooLong, MsgFirstNameNotAlnum, true),
	nameChain(FieldFamilyName, MsgFamilyNameRequired, MsgFamilyNameTooLong, MsgFamilyNameNotAlnum, true),
	dateChain(FieldDateOfBirth, MsgInvalidDateOfBirth),
	dateChain(FieldDateOfDeath, MsgInvalidDateOfDeath),
)

// updateRules drop the alphanumeric restriction on names.
var updateRules = validation.NewSchema(
	nameChain(FieldFirstName, MsgFirstNameRequired, MsgFirstNameTooLong, "", false),
	nameChain(FieldFamilyName, MsgFamilyNameRequired, MsgFamilyNameTooLong, "", false),
	dateChain(FieldDateOfBirth, MsgInvalidDateOfBirth),
	dateChain(FieldDateOfDeath, MsgInvalidDateOfDeath),
)

// checkLifespan flags a death date before the birth date.
func checkLifespan(res *validation.Result) {
	birth, death := res.Date(FieldDateOfBirth), res.Date(FieldDateOfDeath)
	if birth != nil && death != nil && death.Before(*birth) {
		res.Add(FieldDateOfDeath, MsgDeathBeforeBirth)
	}
}

func runRules(schema *validation.Schema, form validation.FieldSource) *validation.Result {
	res := schema.Run(form)
	checkLifespan(res)
	return res
}
