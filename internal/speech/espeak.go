// Package speech synthesizes answers with the espeak speech engine.
package speech

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"github.com/myrjola/polyglot/internal/errors"
)

var ErrEmptyText = errors.NewSentinel("nothing to speak")

// voices maps language codes to espeak voice names where they differ.
var voices = map[string]string{
	"zh": "cmn",
}

// Espeak drives the espeak command line program.
type Espeak struct {
	path   string
	rate   int
	logger *slog.Logger
}

// NewEspeak creates a synthesizer running the binary at path with rate words per minute.
func NewEspeak(path string, rate int, logger *slog.Logger) *Espeak {
	return &Espeak{
		path:   path,
		rate:   rate,
		logger: logger.With("source", "Espeak"),
	}
}

// Play speaks text on the default audio device.
func (e *Espeak) Play(ctx context.Context, text, lang string) error {
	return e.run(ctx, io.Discard, text, lang)
}

// Render writes text as a WAV stream to w.
func (e *Espeak) Render(ctx context.Context, w io.Writer, text, lang string) error {
	return e.run(ctx, w, text, lang, "--stdout")
}

func (e *Espeak) run(ctx context.Context, w io.Writer, text, lang string, extra ...string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	args := append([]string{"-v", Voice(lang), "-s", strconv.Itoa(e.rate), "--stdin"}, extra...)
	cmd := exec.CommandContext(ctx, e.path, args...)
	cmd.Stdin = strings.NewReader(text)
	cmd.Stdout = w
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "run espeak",
			slog.String("voice", Voice(lang)),
			slog.String("stderr", strings.TrimSpace(stderr.String())))
	}
	e.logger.LogAttrs(ctx, slog.LevelDebug, "synthesized speech",
		slog.String("voice", Voice(lang)), slog.Int("chars", len(text)))
	return nil
}

// Voice returns the espeak voice for a language code, English when lang is empty.
func Voice(lang string) string {
	if lang == "" {
		return "en"
	}
	if v, ok := voices[lang]; ok {
		return v
	}
	return lang
}
