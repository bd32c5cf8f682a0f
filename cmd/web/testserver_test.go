package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/myrjola/polyglot/internal/e2etest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testQuestion     = "Who is the Prime Minister of India?"
	testAnswer       = "The Prime Minister of India is Narendra Modi."
	testFrenchAnswer = "Le Premier ministre de l'Inde est Narendra Modi."
	silence          = "silence"
)

// fakeGemini answers detection, translation, answering and transcription instructions with canned replies.
func fakeGemini(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Contents []struct {
				Parts []struct {
					Text       string `json:"text"`
					InlineData *struct {
						Data string `json:"data"`
					} `json:"inline_data"`
				} `json:"parts"`
			} `json:"contents"`
		}
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		parts := req.Contents[0].Parts

		var reply string
		switch prompt := parts[0].Text; {
		case len(parts) > 1 && parts[1].InlineData != nil:
			audio, err := base64.StdEncoding.DecodeString(parts[1].InlineData.Data)
			assert.NoError(t, err)
			if string(audio) != silence {
				reply = testQuestion
			}
		case strings.HasPrefix(prompt, "Detect"):
			reply = "en"
		case strings.HasPrefix(prompt, "Translate the following text from en to fr"):
			reply = testFrenchAnswer
		default:
			reply = testAnswer
		}

		w.Header().Set("Content-Type", "application/json")
		if reply == "" {
			_, _ = w.Write([]byte(`{"candidates":[]}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{"role": "model", "parts": []any{map[string]any{"text": reply}}},
			}},
		})
	}))
	t.Cleanup(server.Close)
	return server
}

// fakeWikipedia returns a single article for every search.
func fakeWikipedia(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("list") == "search" {
			_, _ = w.Write([]byte(`{"query":{"search":[{"title":"Prime Minister of India"}]}}`))
			return
		}
		_, _ = w.Write([]byte(`{"query":{"pages":[{"title":"Prime Minister of India","extract":` +
			`"<p>The prime minister of India is the head of government of the Republic of India. ` +
			`Narendra Modi is the current prime minister.</p>"}]}}`))
	}))
	t.Cleanup(server.Close)
	return server
}

// fakeEspeak writes a script that emits a RIFF marker followed by the text it was asked to speak.
func fakeEspeak(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "espeak")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nprintf 'RIFF'\ncat\n"), 0o700))
	return path
}

func newTestLookupEnv(t *testing.T, overrides map[string]string) func(string) (string, bool) {
	t.Helper()
	env := map[string]string{
		"POLYGLOT_ADDR":        "localhost:0",
		"GOOGLE_API_KEY":       "test-key",
		"GEMINI_BASE_URL":      fakeGemini(t).URL,
		"WIKIPEDIA_API_URL":    fakeWikipedia(t).URL,
		"POLYGLOT_ESPEAK_PATH": fakeEspeak(t),
	}
	for key, value := range overrides {
		env[key] = value
	}
	return func(key string) (string, bool) {
		value, ok := env[key]
		if ok && value == "" {
			return "", false
		}
		return value, ok
	}
}

// startTestServer starts the chat server against fake upstream services and stops it when the test ends.
func startTestServer(t *testing.T, overrides map[string]string) *e2etest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	logSink := testLogSink()
	server, err := e2etest.StartServer(ctx, logSink, newTestLookupEnv(t, overrides), run)
	require.NoError(t, err)
	return server
}

func testLogSink() io.Writer {
	if testing.Verbose() {
		return os.Stdout
	}
	return io.Discard
}
