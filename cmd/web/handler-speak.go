package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/myrjola/polyglot/internal/errors"
)

const speakErrorFmt = "Error speaking answer: %v"

// speak synthesizes the transcript message chosen by its index as a WAV stream.
func (app *application) speak(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	index, err := strconv.Atoi(r.PostForm.Get("index"))
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	msg, ok := app.transcript(ctx).Message(index)
	if !ok {
		app.clientError(w, r, http.StatusNotFound)
		return
	}

	var wav bytes.Buffer
	if err = app.synthesizer.Render(ctx, &wav, msg.Content, msg.Language); err != nil {
		err = errors.Wrap(err, "render speech", slog.Int("index", index))
		app.logger.LogAttrs(ctx, slog.LevelError, "speech synthesis failed", errors.SlogError(err))
		http.Error(w, fmt.Sprintf(speakErrorFmt, err), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Length", strconv.Itoa(wav.Len()))
	_, _ = wav.WriteTo(w)
}
