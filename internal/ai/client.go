// Package ai talks to OpenAI-compatible services through go-openai. It serves as the alternative completion
// backend and as the Whisper speech-to-text backend.
package ai

import (
	"bytes"
	"context"
	"log/slog"
	"mime"
	"strings"

	"github.com/myrjola/polyglot/internal/errors"
	"github.com/myrjola/polyglot/internal/ports"
	"github.com/sashabaranov/go-openai"
)

const MaxTokens = 1024

type Client struct {
	client             *openai.Client
	model              string
	transcriptionModel string
}

// NewClient creates a client for the OpenAI API or, with a non-empty baseURL, any compatible endpoint.
func NewClient(apiKey, baseURL, model, transcriptionModel string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if transcriptionModel == "" {
		transcriptionModel = openai.Whisper1
	}
	return &Client{
		client:             openai.NewClientWithConfig(cfg),
		model:              model,
		transcriptionModel: transcriptionModel,
	}
}

// Complete sends the prompt as a single user message and returns the trimmed content of the first choice.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	completion, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
			Model:     c.model,
			MaxTokens: MaxTokens,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt}, //nolint:exhaustruct // plain text message
			},
		},
	)
	if err != nil {
		return "", errors.Wrap(err, "create chat completion", slog.String("model", c.model))
	}
	if len(completion.Choices) == 0 {
		return "", errors.Wrap(ports.ErrNoCandidate, "empty choice list")
	}
	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return "", errors.Wrap(ports.ErrNoCandidate, "choice with empty content",
			slog.String("finish_reason", string(completion.Choices[0].FinishReason)))
	}
	return text, nil
}

// Transcribe uploads the audio to the transcription endpoint.
func (c *Client) Transcribe(ctx context.Context, audio ports.Audio) (string, error) {
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{ //nolint:exhaustruct // defaults are fine
		Model:    c.transcriptionModel,
		FilePath: "question" + extensionFor(audio.MIMEType),
		Reader:   bytes.NewReader(audio.Data),
	})
	if err != nil {
		return "", errors.Wrap(err, "create transcription", slog.String("model", c.transcriptionModel))
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", errors.Wrap(ports.ErrSpeechUnrecognized, "empty transcription")
	}
	return text, nil
}

// extensionFor picks the file extension the transcription endpoint uses to detect the container format.
func extensionFor(mimeType string) string {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return ".webm"
	}
	switch mediaType {
	case "audio/wav", "audio/x-wav", "audio/wave":
		return ".wav"
	case "audio/ogg":
		return ".ogg"
	case "audio/mpeg":
		return ".mp3"
	case "audio/mp4", "audio/m4a", "audio/x-m4a":
		return ".m4a"
	default:
		return ".webm"
	}
}
