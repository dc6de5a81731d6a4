package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amannn/next-intl-sub001/pkg/icu"
	"github.com/amannn/next-intl-sub001/pkg/logger"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	return rec
}

func TestLocaleExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, slog.LevelInfo, logger.LocaleExtractor, nil)

	ctx := logger.WithLocale(context.Background(), "de-AT")
	log.InfoContext(ctx, "hello", logger.Key("common.greeting"))

	rec := decode(t, &buf)
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "de-AT", rec["locale"])
	assert.Equal(t, "common.greeting", rec["key"])
}

func TestLocaleExtractor_Missing(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, slog.LevelInfo, logger.LocaleExtractor)
	log.InfoContext(context.Background(), "hello")

	rec := decode(t, &buf)
	assert.NotContains(t, rec, "locale")
}

func TestDecorator_WithAttrsKeepsExtractors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, slog.LevelInfo, logger.LocaleExtractor).
		With("component", "catalog").
		WithGroup("g")

	log.InfoContext(logger.WithLocale(context.Background(), "fr"), "hello", "x", 1)

	rec := decode(t, &buf)
	assert.Equal(t, "catalog", rec["component"])
	group, ok := rec["g"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "fr", group["locale"])
	assert.Equal(t, float64(1), group["x"])
}

func TestLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, slog.LevelWarn)
	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	assert.NotZero(t, buf.Len())
}

func TestErr(t *testing.T) {
	t.Parallel()

	t.Run("compile error", func(t *testing.T) {
		t.Parallel()

		_, err := icu.Compile("{n, plural, one {x}}")
		require.Error(t, err)

		var buf bytes.Buffer
		logger.NewWithWriter(&buf, slog.LevelInfo).Warn("failed", logger.Err(err))

		group, ok := decode(t, &buf)["error"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "MISSING_OTHER_CLAUSE", group["code"])
		assert.Equal(t, float64(1), group["line"])
	})

	t.Run("format error", func(t *testing.T) {
		t.Parallel()

		_, err := icu.FormatString(icu.MustCompile("{name}"), "en", nil)
		require.Error(t, err)

		var buf bytes.Buffer
		logger.NewWithWriter(&buf, slog.LevelInfo).Warn("failed", logger.Err(err))

		group, ok := decode(t, &buf)["error"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "MISSING_ARGUMENT", group["code"])
	})

	t.Run("plain error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger.NewWithWriter(&buf, slog.LevelInfo).Warn("failed", logger.Err(errors.New("boom")))
		assert.Equal(t, "boom", decode(t, &buf)["error"])
	})

	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		assert.True(t, logger.Err(nil).Equal(slog.Attr{}))
	})
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	require.NotNil(t, log)
	log.Error("discarded")
}
