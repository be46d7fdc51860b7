package response

import (
	"net/http"

	domainerrors "signin/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// AuthenticateChallenge is sent with every 401 so clients know which scheme to present.
const AuthenticateChallenge = "Bearer"

// ErrorResponse defines the structure for error responses.
// It has no per-request fields, so equal failures produce byte-identical bodies.
type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
}

// ErrorInfo contains detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`              // Machine-readable error code, e.g., "VALIDATION_FAILED"
	Message string `json:"message"`           // User-friendly error message
	Details any    `json:"details,omitempty"` // Additional error context (only for 4xx errors)
}

// TokenResponse is the body of a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Success returns a successful response with data as the body.
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, data)
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode string, message string, details any) error {
	// Details should not be included for 5xx errors or authentication/authorization errors
	if statusCode >= 500 || statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		details = nil
	}

	if statusCode == http.StatusUnauthorized {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, AuthenticateChallenge)
	}

	return c.JSON(statusCode, ErrorResponse{
		Error: &ErrorInfo{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
	})
}

// ValidationError returns a 422 error with per-field details
func ValidationError(c echo.Context, details any) error {
	return Error(c, domainerrors.ErrValidationFailed.HTTPCode(), domainerrors.ErrValidationFailed.ErrorCode(),
		domainerrors.ErrValidationFailed.Message(), details)
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message, nil)
}
