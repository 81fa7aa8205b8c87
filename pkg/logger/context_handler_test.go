package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notify/pkg/logger"
)

type ctxKey struct{}

func traceExtractor(ctx context.Context) (slog.Attr, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	if !ok {
		return slog.Attr{}, false
	}
	return slog.String("trace_id", id), true
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	buf.Reset()
	return rec
}

func TestWithContextExtractors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithContextExtractors(traceExtractor, nil),
	)

	ctx := context.WithValue(t.Context(), ctxKey{}, "abc")
	log.InfoContext(ctx, "with trace")
	assert.Equal(t, "abc", decode(t, &buf)["trace_id"])

	log.Info("without trace")
	assert.NotContains(t, decode(t, &buf), "trace_id")
}

func TestContextHandler_KeepsExtractorsThroughWith(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := logger.NewContextHandler(slog.NewJSONHandler(&buf, nil), traceExtractor)
	log := slog.New(h).With(logger.Component("api")).WithGroup("req")

	log.InfoContext(context.WithValue(t.Context(), ctxKey{}, "xyz"), "grouped")
	rec := decode(t, &buf)
	assert.Equal(t, "api", rec["component"])
	assert.Equal(t, map[string]any{"trace_id": "xyz"}, rec["req"])
}

func TestNewContextHandler_NoExtractors(t *testing.T) {
	t.Parallel()

	base := slog.NewJSONHandler(&bytes.Buffer{}, nil)
	assert.Same(t, base, logger.NewContextHandler(base))
	assert.Same(t, base, logger.NewContextHandler(base, nil))
}
