package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"signin/config"
	deliverycontext "signin/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	e := echo.New()
	m := NewRequestIDMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

	var seen string
	e.GET("/", func(c echo.Context) error {
		seen = deliverycontext.GetRequestIDFromContext(c.Request().Context())
		assert.NotNil(t, deliverycontext.GetLogger(c.Request().Context()))

		return c.NoContent(http.StatusNoContent)
	}, m.Process)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	header := rec.Header().Get(deliverycontext.HeaderXRequestID)
	_, err := uuid.Parse(header)
	require.NoError(t, err)
	assert.Equal(t, header, seen)
}

func TestRequestIDMiddleware_PropagatesValidID(t *testing.T) {
	e := echo.New()
	m := NewRequestIDMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }, m.Process)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "client-req-42")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "client-req-42", rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestRequestIDMiddleware_ReplacesInvalidID(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{name: "contains space", id: "a b"},
		{name: "too long", id: strings.Repeat("x", maxRequestIDLength+1)},
		{name: "non ascii", id: "héllo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			m := NewRequestIDMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
			e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }, m.Process)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(deliverycontext.HeaderXRequestID, tt.id)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			got := rec.Header().Get(deliverycontext.HeaderXRequestID)
			assert.NotEqual(t, tt.id, got)
			_, err := uuid.Parse(got)
			assert.NoError(t, err)
		})
	}
}

func TestLoggerMiddleware_LogsWithRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	cfg := &config.Config{}
	cfg.Env.Debug = true

	e := echo.New()
	requestID := NewRequestIDMiddleware(logger)
	requestLog := NewLoggerMiddleware(logger, cfg)
	e.Use(requestID.Process, requestLog.Handle)
	e.POST("/login", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusUnauthorized, "nope")
	})

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"password":"hunter2"}`))
	req.Header.Set(deliverycontext.HeaderXRequestID, "req-7")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	out := buf.String()
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, out, "request_id=req-7")
	assert.Contains(t, out, "status=401")
	assert.Contains(t, out, "level=WARN")
	assert.NotContains(t, out, "hunter2")
}

func TestLoggerMiddleware_SilentWithoutDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	requestLog := NewLoggerMiddleware(logger, &config.Config{})
	e.Use(requestLog.Handle)
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, buf.String())
}
