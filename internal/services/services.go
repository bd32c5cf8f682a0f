// Package services wires the external service adapters into the question-answering pipeline.
package services

import (
	"log/slog"
	"strings"

	"github.com/myrjola/polyglot/internal/ai"
	"github.com/myrjola/polyglot/internal/config"
	"github.com/myrjola/polyglot/internal/errors"
	"github.com/myrjola/polyglot/internal/gemini"
	"github.com/myrjola/polyglot/internal/ports"
	"github.com/myrjola/polyglot/internal/qa"
	"github.com/myrjola/polyglot/internal/speech"
	"github.com/myrjola/polyglot/internal/wikipedia"
)

// Services holds the components shared by the console and the chat server.
type Services struct {
	Detector    *qa.Detector
	Translator  *qa.Translator
	Retriever   *qa.Retriever
	Answerer    *qa.Answerer
	Pipeline    *qa.Pipeline
	Recognizer  ports.Recognizer
	Synthesizer ports.Synthesizer
}

// New builds the components selected by cfg. cfg is expected to be validated.
func New(cfg config.Config, logger *slog.Logger) *Services {
	geminiClient := gemini.NewClient(cfg.GeminiBaseURL, cfg.GeminiModel, cfg.GoogleAPIKey, cfg.UpstreamTimeout)
	openAIClient := ai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.OpenAITranscriptionModel)

	var (
		completer  ports.Completer  = geminiClient
		recognizer ports.Recognizer = geminiClient
	)
	if strings.EqualFold(cfg.CompletionProvider, config.ProviderOpenAI) {
		completer = openAIClient
	}
	var credential qa.Credential
	// The error is impossible for a validated configuration and leaves the credential blank otherwise, which makes
	// the Answerer refuse to answer.
	credential.Value, credential.EnvVar, _ = cfg.Credential(cfg.CompletionProvider)
	if strings.EqualFold(cfg.TranscriptionProvider, config.ProviderOpenAI) {
		recognizer = openAIClient
	}

	encyclopedia := wikipedia.NewClient(cfg.WikipediaAPIURL, cfg.UpstreamTimeout)
	detector := qa.NewDetector(completer, logger)
	translator := qa.NewTranslator(completer, logger)
	retriever := qa.NewRetriever(encyclopedia, logger)
	answerer := qa.NewAnswerer(completer, translator, retriever, credential, logger)

	return &Services{
		Detector:    detector,
		Translator:  translator,
		Retriever:   retriever,
		Answerer:    answerer,
		Pipeline:    qa.NewPipeline(detector, answerer, translator, logger),
		Recognizer:  recognizer,
		Synthesizer: speech.NewEspeak(cfg.EspeakPath, cfg.SpeechRate, logger),
	}
}

// Load reads the configuration with lookupEnv and builds the components. It fails when the configuration is invalid,
// most notably when the completion credential is missing.
func Load(lookupEnv func(string) (string, bool), logger *slog.Logger) (*Services, config.Config, error) {
	cfg, err := config.Load(lookupEnv)
	if err != nil {
		return nil, cfg, errors.Wrap(err, "load config")
	}
	return New(cfg, logger), cfg, nil
}
