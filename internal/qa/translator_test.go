package qa_test

import (
	"context"
	"testing"

	"github.com/myrjola/polyglot/internal/ports"
	"github.com/myrjola/polyglot/internal/qa"
	"github.com/myrjola/polyglot/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

func TestTranslator_TranslateSameLanguage(t *testing.T) {
	for _, text := range []string{"", "Paris is the capital of France.", "  spaced  "} {
		completer := &fakeCompleter{reply: replyWith("should not be used", nil)}
		translator := qa.NewTranslator(completer, testhelpers.NewTestLogger(t))

		got := translator.Translate(context.Background(), text, "fr", "fr")
		require.Equal(t, text, got.Value)
		require.False(t, got.Degraded())
		require.Empty(t, completer.Prompts())
	}
}

func TestTranslator_Translate(t *testing.T) {
	completer := &fakeCompleter{reply: replyWith("Paris est la capitale de la France.", nil)}
	translator := qa.NewTranslator(completer, testhelpers.NewTestLogger(t))

	got := translator.Translate(context.Background(), "Paris is the capital of France.", "en", "fr")
	require.Equal(t, "Paris est la capitale de la France.", got.Value)
	require.False(t, got.Degraded())
	require.Equal(t, []string{
		"Translate the following text from en to fr: 'Paris is the capital of France.'. " +
			"Respond with only the translated text.",
	}, completer.Prompts())
}

func TestTranslator_TranslateFailureKeepsOriginal(t *testing.T) {
	for _, err := range []error{errUnreachable, ports.ErrNoCandidate} {
		completer := &fakeCompleter{reply: replyWith("", err)}
		translator := qa.NewTranslator(completer, testhelpers.NewTestLogger(t))

		got := translator.Translate(context.Background(), "Hello", "en", "hi")
		require.Equal(t, "Hello", got.Value)
		require.True(t, got.Degraded())
		require.ErrorIs(t, got.Reason, err)
	}
}
