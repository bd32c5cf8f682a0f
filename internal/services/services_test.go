package services_test

import (
	"testing"

	"github.com/myrjola/polyglot/internal/ai"
	"github.com/myrjola/polyglot/internal/config"
	"github.com/myrjola/polyglot/internal/gemini"
	"github.com/myrjola/polyglot/internal/services"
	"github.com/myrjola/polyglot/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

func lookupEnv(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoad(t *testing.T) {
	logger := testhelpers.NewTestLogger(t)

	t.Run("gemini by default", func(t *testing.T) {
		svc, cfg, err := services.Load(lookupEnv(map[string]string{"GOOGLE_API_KEY": "key"}), logger)
		require.NoError(t, err)
		require.Equal(t, config.ProviderGemini, cfg.CompletionProvider)
		require.IsType(t, &gemini.Client{}, svc.Recognizer)
		require.NotNil(t, svc.Pipeline)
		require.NotNil(t, svc.Synthesizer)
	})

	t.Run("openai transcription", func(t *testing.T) {
		svc, _, err := services.Load(lookupEnv(map[string]string{
			"POLYGLOT_COMPLETION_PROVIDER":    "openai",
			"POLYGLOT_TRANSCRIPTION_PROVIDER": "openai",
			"OPENAI_API_KEY":                  "key",
		}), logger)
		require.NoError(t, err)
		require.IsType(t, &ai.Client{}, svc.Recognizer)
	})

	t.Run("missing credential", func(t *testing.T) {
		_, _, err := services.Load(lookupEnv(map[string]string{}), logger)
		require.ErrorIs(t, err, config.ErrMissingCredential)
	})
}
