// Package config reads the runtime configuration shared by the console and the chat server.
package config

import (
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/myrjola/polyglot/internal/envstruct"
	"github.com/myrjola/polyglot/internal/errors"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

var (
	ErrMissingCredential = errors.NewSentinel("completion credential not configured")
	ErrUnknownProvider   = errors.NewSentinel("unknown completion provider")
)

// Config is populated from the environment with [envstruct.Populate].
type Config struct {
	Addr      string `env:"POLYGLOT_ADDR" envDefault:"localhost:4000"`
	PprofAddr string `env:"POLYGLOT_PPROF_ADDR" envDefault:""`

	// CompletionProvider selects the completion service for detection, translation and answering.
	CompletionProvider string `env:"POLYGLOT_COMPLETION_PROVIDER" envDefault:"gemini"`
	// TranscriptionProvider selects the speech-to-text service for voice questions.
	TranscriptionProvider string `env:"POLYGLOT_TRANSCRIPTION_PROVIDER" envDefault:"gemini"`

	GoogleAPIKey  string `env:"GOOGLE_API_KEY" envDefault:""`
	GeminiBaseURL string `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
	GeminiModel   string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`

	OpenAIAPIKey             string `env:"OPENAI_API_KEY" envDefault:""`
	OpenAIBaseURL            string `env:"OPENAI_BASE_URL" envDefault:""`
	OpenAIModel              string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAITranscriptionModel string `env:"OPENAI_TRANSCRIPTION_MODEL" envDefault:"whisper-1"`

	WikipediaAPIURL string `env:"WIKIPEDIA_API_URL" envDefault:"https://en.wikipedia.org/w/api.php"`

	EspeakPath string `env:"POLYGLOT_ESPEAK_PATH" envDefault:"espeak"`
	// SpeechRate is the speaking rate in words per minute.
	SpeechRate int `env:"POLYGLOT_SPEECH_RATE" envDefault:"150"`

	// UpstreamTimeout bounds every single call to an external service.
	UpstreamTimeout time.Duration `env:"POLYGLOT_UPSTREAM_TIMEOUT" envDefault:"30s"`
	// RequestTimeout bounds a whole question in the chat server.
	RequestTimeout time.Duration `env:"POLYGLOT_REQUEST_TIMEOUT" envDefault:"90s"`
	// QuestionsPerMinute throttles questions that spend the shared credential.
	QuestionsPerMinute int `env:"POLYGLOT_QUESTIONS_PER_MINUTE" envDefault:"30"`
}

// LoadDotEnv loads variables from a .env file in the working directory. Variables that are already set in the
// process environment are not overridden and a missing file is not an error.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrap(err, "load .env")
	}
	return nil
}

// Load populates the configuration with lookupEnv which has the same signature as [os.LookupEnv].
func Load(lookupEnv func(string) (string, bool)) (Config, error) {
	var cfg Config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return cfg, errors.Wrap(err, "populate config")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Credential returns the API key of provider and the environment variable it is read from.
func (c Config) Credential(provider string) (string, string, error) {
	switch strings.ToLower(provider) {
	case ProviderGemini:
		return c.GoogleAPIKey, "GOOGLE_API_KEY", nil
	case ProviderOpenAI:
		return c.OpenAIAPIKey, "OPENAI_API_KEY", nil
	default:
		return "", "", errors.Wrap(ErrUnknownProvider, "look up credential", slog.String("provider", provider))
	}
}

// Validate checks that the selected completion and transcription providers are known and that both of their
// credentials are present.
func (c Config) Validate() error {
	for _, use := range []struct {
		purpose  string
		provider string
	}{
		{purpose: "completion", provider: c.CompletionProvider},
		{purpose: "transcription", provider: c.TranscriptionProvider},
	} {
		key, envVar, err := c.Credential(use.provider)
		if err != nil {
			return errors.Wrap(err, "validate config", slog.String("purpose", use.purpose))
		}
		if strings.TrimSpace(key) == "" {
			return errors.Wrap(ErrMissingCredential,
				fmt.Sprintf("set the %s environment variable before running the assistant", envVar),
				slog.String("purpose", use.purpose),
				slog.String("provider", use.provider))
		}
	}
	return nil
}
