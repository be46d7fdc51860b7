package validator

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func TestValidate(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&credentials{Username: "alice", Password: "secret"}))

	err := v.Validate(&credentials{Username: "alice"})
	require.Error(t, err)
	assert.Equal(t, map[string]string{"password": "required"}, FieldErrors(err))
}

func TestFieldErrors_FallsBackToGoNameWithoutJSONTag(t *testing.T) {
	type untagged struct {
		Secret string `validate:"required"`
	}

	err := New().Validate(&untagged{})
	require.Error(t, err)
	assert.Equal(t, map[string]string{"Secret": "required"}, FieldErrors(err))
}

func TestFieldErrors_ForeignError(t *testing.T) {
	assert.Nil(t, FieldErrors(errors.New("boom")))
}
