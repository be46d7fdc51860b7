package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"signin/config"
	deliverycontext "signin/internal/delivery/context"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newBufferedGormLogger(debug bool) (*bytes.Buffer, logger.Interface) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := &config.Config{}
	cfg.Env.Debug = debug

	return &buf, newGormSlogLogger(base, cfg)
}

func sqlFn(sql string) func() (string, int64) {
	return func() (string, int64) { return sql, 1 }
}

func TestGormSlogLogger_QueriesOnlyInDebug(t *testing.T) {
	buf, l := newBufferedGormLogger(false)
	l.Trace(context.Background(), time.Now(), sqlFn("SELECT 1"), nil)
	assert.Empty(t, buf.String())

	buf, l = newBufferedGormLogger(true)
	l.Trace(context.Background(), time.Now(), sqlFn("SELECT 1"), nil)
	assert.Contains(t, buf.String(), "GORM query")
	assert.Contains(t, buf.String(), "SELECT 1")
}

func TestGormSlogLogger_Errors(t *testing.T) {
	buf, l := newBufferedGormLogger(false)

	l.Trace(context.Background(), time.Now(), sqlFn("SELECT 1"), gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	l.Trace(context.Background(), time.Now(), sqlFn("SELECT 1"), errors.New("connection refused"))
	assert.Contains(t, buf.String(), "GORM query failed")
	assert.Contains(t, buf.String(), "connection refused")
}

func TestGormSlogLogger_SlowQuery(t *testing.T) {
	buf, l := newBufferedGormLogger(false)

	l.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn("SELECT pg_sleep(1)"), nil)
	assert.Contains(t, buf.String(), "GORM slow query")
}

func TestGormSlogLogger_UsesRequestLogger(t *testing.T) {
	_, l := newBufferedGormLogger(true)

	var reqBuf bytes.Buffer
	reqLogger := slog.New(slog.NewTextHandler(&reqBuf, &slog.HandlerOptions{Level: slog.LevelDebug})).
		With(slog.String("request_id", "req-1"))
	ctx := deliverycontext.WithLogger(context.Background(), reqLogger)

	l.Trace(ctx, time.Now(), sqlFn("SELECT 1"), nil)
	assert.Contains(t, reqBuf.String(), "request_id=req-1")
}

func TestGormSlogLogger_ParamsFilterHidesValues(t *testing.T) {
	_, l := newBufferedGormLogger(true)

	filter, ok := l.(gorm.ParamsFilter)
	if !ok {
		t.Fatal("logger must implement gorm.ParamsFilter")
	}

	sql, params := filter.ParamsFilter(context.Background(), "INSERT INTO users VALUES ($1,$2)", "alice", "$2a$hash")
	assert.Equal(t, "INSERT INTO users VALUES ($1,$2)", sql)
	assert.Empty(t, params)
}

func TestGormSlogLogger_Silent(t *testing.T) {
	buf, l := newBufferedGormLogger(true)
	l = l.LogMode(logger.Silent)

	l.Trace(context.Background(), time.Now(), sqlFn("SELECT 1"), errors.New("boom"))
	assert.Empty(t, buf.String())
}
