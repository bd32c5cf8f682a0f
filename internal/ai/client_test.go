package ai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/myrjola/polyglot/internal/ai"
	"github.com/myrjola/polyglot/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenAIServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		w.Header().Set("Content-Type", "application/json")
		if req.Messages[0].Content == "empty" {
			_, _ = w.Write([]byte(`{"choices":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":" fr "},"finish_reason":"stop"}]}`))
	})
	mux.HandleFunc("/audio/transcriptions", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		_, header, err := r.FormFile("file")
		assert.NoError(t, err)
		w.Header().Set("Content-Type", "application/json")
		if header.Filename == "question.wav" {
			_, _ = w.Write([]byte(`{"text":""}`))
			return
		}
		_, _ = w.Write([]byte(`{"text":"Qui est le président de la France ?"}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestClient_Complete(t *testing.T) {
	server := newOpenAIServer(t)
	client := ai.NewClient("key", server.URL, "test-model", "")

	got, err := client.Complete(context.Background(), "Detect the language")
	require.NoError(t, err)
	require.Equal(t, "fr", got)

	_, err = client.Complete(context.Background(), "empty")
	require.ErrorIs(t, err, ports.ErrNoCandidate)
}

func TestClient_Transcribe(t *testing.T) {
	server := newOpenAIServer(t)
	client := ai.NewClient("key", server.URL, "test-model", "")

	got, err := client.Transcribe(context.Background(), ports.Audio{Data: []byte("webm"), MIMEType: "audio/webm;codecs=opus"})
	require.NoError(t, err)
	require.Equal(t, "Qui est le président de la France ?", got)

	_, err = client.Transcribe(context.Background(), ports.Audio{Data: []byte("RIFF"), MIMEType: "audio/wav"})
	require.ErrorIs(t, err, ports.ErrSpeechUnrecognized)
}
