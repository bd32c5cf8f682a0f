// Package gemini is a client for the generateContent endpoint of the Gemini API.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/myrjola/polyglot/internal/errors"
	"github.com/myrjola/polyglot/internal/ports"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.0-flash"
	apiVersion     = "v1beta"

	// maxErrorBody caps how much of an error response ends up in the error message.
	maxErrorBody = 512
)

var ErrUnexpectedStatus = errors.NewSentinel("unexpected status code")

type Client struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Gemini client. Empty baseURL and model fall back to the defaults.
//
// timeout bounds each request on top of the context deadline.
func NewClient(baseURL, model, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type inlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type candidate struct {
	Content      *content `json:"content"`
	FinishReason string   `json:"finishReason"`
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Complete sends the prompt as a single user turn and returns the trimmed text of the first candidate.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	text, err := c.generate(ctx, []part{{Text: prompt, InlineData: nil}})
	if err != nil {
		return "", errors.Wrap(err, "generate content")
	}
	return text, nil
}

const transcribePrompt = "Transcribe the speech in this audio recording verbatim in the language it is spoken. " +
	"Respond with only the transcription. If the recording contains no intelligible speech, respond with nothing."

// Transcribe sends the audio inline and asks the model for a verbatim transcription.
func (c *Client) Transcribe(ctx context.Context, audio ports.Audio) (string, error) {
	parts := []part{
		{Text: transcribePrompt, InlineData: nil},
		{Text: "", InlineData: &inlineData{
			MIMEType: audio.MIMEType,
			Data:     base64.StdEncoding.EncodeToString(audio.Data),
		}},
	}
	text, err := c.generate(ctx, parts)
	if errors.Is(err, ports.ErrNoCandidate) {
		return "", errors.Wrap(ports.ErrSpeechUnrecognized, "transcribe audio")
	}
	if err != nil {
		return "", errors.Wrap(err, "transcribe audio")
	}
	return text, nil
}

func (c *Client) endpoint() string {
	return fmt.Sprintf("%s/%s/models/%s:generateContent?%s",
		c.baseURL, apiVersion, url.PathEscape(c.model), url.Values{"key": {c.apiKey}}.Encode())
}

func (c *Client) generate(ctx context.Context, parts []part) (string, error) {
	payload := generateContentRequest{
		Contents: []content{{Role: "user", Parts: parts}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrap(err, "marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(redactURL(err), "create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(redactURL(err), "do request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.Wrap(ErrUnexpectedStatus, statusMessage(resp.StatusCode, respBody),
			slog.Int("status", resp.StatusCode), slog.String("model", c.model))
	}

	var result generateContentResponse
	if err = json.Unmarshal(respBody, &result); err != nil {
		return "", errors.Wrap(err, "unmarshal response")
	}

	return firstCandidateText(result)
}

func firstCandidateText(result generateContentResponse) (string, error) {
	if len(result.Candidates) == 0 {
		return "", errors.Wrap(ports.ErrNoCandidate, "empty candidate list")
	}
	first := result.Candidates[0]
	if first.Content == nil || len(first.Content.Parts) == 0 {
		return "", errors.Wrap(ports.ErrNoCandidate, "candidate without parts",
			slog.String("finish_reason", first.FinishReason))
	}
	text := strings.TrimSpace(first.Content.Parts[0].Text)
	if text == "" {
		return "", errors.Wrap(ports.ErrNoCandidate, "candidate with empty text",
			slog.String("finish_reason", first.FinishReason))
	}
	return text, nil
}

func statusMessage(status int, body []byte) string {
	var apiErr errorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return fmt.Sprintf("status %d %s: %s", status, apiErr.Error.Status, apiErr.Error.Message)
	}
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return fmt.Sprintf("status %d: %s", status, strings.TrimSpace(string(body)))
}

// redactURL drops the request URL from transport errors because the credential travels as a query parameter.
func redactURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s request: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
