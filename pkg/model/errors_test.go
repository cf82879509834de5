package model

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestInvalidFieldErrorMessages(t *testing.T) {
	cases := map[string]string{
		FieldTitle:       "No Title inputted, please try again.",
		FieldDescription: "No description inputted, please try again.",
		FieldLanguage:    "No language inputted, please try again.",
		FieldEmail:       "You are not logged in. Please try again.",
		FieldName:        "No name inputted, please try again.",
		FieldCategory:    "No category inputted, please try again.",
	}

	for field, message := range cases {
		err := &InvalidFieldError{Field: field}
		assert.Equal(t, message, err.Error())
	}
}

func TestIsInvalidField(t *testing.T) {
	err := &InvalidFieldError{Field: FieldTitle}

	assert.True(t, IsInvalidField(err))
	assert.True(t, IsInvalidField(errors.Wrap(err, "wrapped")))
	assert.False(t, IsInvalidField(ErrNotFound))
	assert.False(t, IsInvalidField(nil))
}
