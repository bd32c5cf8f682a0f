package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/myrjola/polyglot/internal/logging"
	"github.com/stretchr/testify/require"
)

func TestContextHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelDebug, false).With(slog.String("component", "pipeline"))

	ctx := logging.WithAttrs(context.Background(), slog.String("request_id", "abc"))
	ctx = logging.WithAttrs(ctx, slog.String("lang", "hi"))
	logger.LogAttrs(ctx, slog.LevelInfo, "detected language")

	out := buf.String()
	require.Contains(t, out, "request_id=abc")
	require.Contains(t, out, "lang=hi")
	require.Contains(t, out, "component=pipeline")
}

func TestWithAttrsDoesNotLeakBetweenSiblings(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelDebug, false)

	parent := logging.WithAttrs(context.Background(), slog.String("request_id", "abc"))
	first := logging.WithAttrs(parent, slog.String("stage", "detect"))
	_ = logging.WithAttrs(parent, slog.String("stage", "translate"))

	logger.InfoContext(first, "stage finished")
	require.Contains(t, buf.String(), "stage=detect")
	require.NotContains(t, buf.String(), "stage=translate")
}
