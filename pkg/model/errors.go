package model

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists = errors.New("object already exists")
	ErrNotFound      = errors.New("not found")
	ErrInvalidID     = errors.New("invalid feed id")
	ErrNotLoggedIn   = errors.New("not logged in")
)

// Required feed fields, in the order they are validated.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldLanguage    = "language"
	FieldEmail       = "email"
	FieldName        = "name"
	FieldCategory    = "category"
)

// InvalidFieldError reports the first empty required field of a feed
// submission. Messages are stable, user facing strings.
type InvalidFieldError struct {
	Field string
}

func (e *InvalidFieldError) Error() string {
	switch e.Field {
	case FieldTitle:
		return "No Title inputted, please try again."
	case FieldDescription:
		return "No description inputted, please try again."
	case FieldLanguage:
		return "No language inputted, please try again."
	case FieldEmail:
		return "You are not logged in. Please try again."
	default:
		return fmt.Sprintf("No %s inputted, please try again.", e.Field)
	}
}

// IsInvalidField reports whether err is an InvalidFieldError.
func IsInvalidField(err error) bool {
	var fieldErr *InvalidFieldError
	return errors.As(err, &fieldErr)
}
