package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "signin/internal/domain/errors"
	"signin/internal/domain/service"
	mockSvc "signin/internal/mocks/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMiddleware_AppError(t *testing.T) {
	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/login", nil), rec)

	m.HandleHTTPError(errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed"), c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
	assert.JSONEq(t, `{"error":{"code":"INVALID_CREDENTIALS","message":"Incorrect username or password"}}`, rec.Body.String())
}

func TestErrorMiddleware_EchoHTTPError(t *testing.T) {
	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/nope", nil), rec)

	m.HandleHTTPError(echo.ErrNotFound, c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"HTTP_ERROR"`)
	assert.Empty(t, rec.Header().Get(echo.HeaderWWWAuthenticate))
}

func TestErrorMiddleware_UnknownErrorIsGeneric500(t *testing.T) {
	var buf bytes.Buffer
	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(&buf, nil)))

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/login", nil), rec)

	m.HandleHTTPError(errors.New("pq: relation users does not exist"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t,
		`{"error":{"code":"INTERNAL_ERROR","message":"Internal server error, please try again later"}}`,
		rec.Body.String())
	assert.Contains(t, buf.String(), "relation users does not exist")
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	m := NewAuthMiddleware(tokenSvc)

	claims := &service.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"}}
	tokenSvc.EXPECT().ValidateToken("good-token").Return(claims, nil)

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/auth/me", nil), httptest.NewRecorder())
	c.Request().Header.Set(echo.HeaderAuthorization, "bearer good-token")

	called := false
	err := m.Authenticate(func(c echo.Context) error {
		called = true
		assert.Same(t, claims, GetClaims(c))

		return nil
	})(c)

	require.NoError(t, err)
	assert.True(t, called)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	m := NewAuthMiddleware(tokenSvc)

	tokenSvc.EXPECT().ValidateToken("bad-token").Return(nil, errors.New("signature is invalid"))

	for _, header := range []string{"", "Bearer ", "Token abc", "Bearer bad-token"} {
		e := echo.New()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/auth/me", nil), httptest.NewRecorder())
		if header != "" {
			c.Request().Header.Set(echo.HeaderAuthorization, header)
		}

		err := m.Authenticate(func(echo.Context) error {
			t.Fatal("next must not run")

			return nil
		})(c)

		assert.ErrorIs(t, err, domainerrors.ErrUnauthorized, header)
	}
}
