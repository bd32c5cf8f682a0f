package errors_test

import (
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/myrjola/polyglot/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := errors.New("test error", slog.String("id", "123"))
	require.Equal(t, "test error", err.Error())
	require.NotErrorIs(t, err, errors.NewSentinel("test error"))
}

func TestWrap(t *testing.T) {
	sentinel := errors.NewSentinel("no candidate")
	wrapped := errors.Wrap(sentinel, "generate content", slog.String("model", "gemini"))
	require.ErrorIs(t, wrapped, sentinel)
	require.Equal(t, "generate content: no candidate", wrapped.Error())

	twice := errors.Wrap(wrapped, "answer question")
	require.ErrorIs(t, twice, sentinel)
	require.Equal(t, "answer question: generate content: no candidate", twice.Error())

	require.NoError(t, errors.Wrap(nil, "nothing to wrap"))
}

func TestSlogError(t *testing.T) {
	inner := errors.New("inner", slog.String("title", "Java"))
	outer := errors.Wrap(inner, "fetch summary", slog.Int("hit", 2))

	attr := errors.SlogError(outer)
	require.Equal(t, "error", attr.Key)
	group := attr.Value.Group()
	require.Contains(t, group, slog.String("msg", "fetch summary: inner"))
	require.Contains(t, group, slog.String("title", "Java"))
	require.Contains(t, group, slog.Int("hit", 2))

	sourceIdx := slices.IndexFunc(group, func(attr slog.Attr) bool {
		return attr.Key == "source"
	})
	require.NotEqual(t, -1, sourceIdx)
	require.Contains(t, group[sourceIdx].Value.String(), "annotatederror_test.go")

	// Make sure the attribute is printable by a real handler.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	logger.Error("failed", attr)
}

func TestSlogErrorPlain(t *testing.T) {
	attr := errors.SlogError(errors.NewSentinel("plain"))
	require.Contains(t, attr.Value.Group(), slog.String("msg", "plain"))
}
