package errors

import (
	"context"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_WrapMessageKeepsIdentity(t *testing.T) {
	err := ErrInvalidCredentials.WrapMessage("login failed")

	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	var appErr AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode())
	assert.Equal(t, "INVALID_CREDENTIALS", appErr.ErrorCode())
	assert.Equal(t, "Incorrect username or password", appErr.Message())
}

func TestBaseError_WithDetails(t *testing.T) {
	detailed := ErrValidationFailed.WithDetails("username is required")

	assert.Equal(t, "username is required", detailed.Details())
	assert.Empty(t, ErrValidationFailed.Details())
	assert.Equal(t, ErrValidationFailed.ErrorCode(), detailed.ErrorCode())
}

func TestDatabaseExecuteError(t *testing.T) {
	err := NewDatabaseExecuteError(context.DeadlineExceeded, "failed to find user by username")

	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", err.ErrorCode())
	assert.Contains(t, err.Error(), "database execution failed")
	assert.NotContains(t, err.Message(), "deadline")
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
