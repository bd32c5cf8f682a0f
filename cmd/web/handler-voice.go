package main

import (
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/myrjola/polyglot/internal/errors"
	"github.com/myrjola/polyglot/internal/ports"
)

const (
	maxAudioBytes = 10 << 20
	// maxVoiceRequestBytes leaves room for the multipart framing and the other form fields.
	maxVoiceRequestBytes      = maxAudioBytes + 64<<10
	speechUnrecognizedMessage = "Sorry, I could not understand your speech."
	speechServiceErrorFmt     = "Speech recognition service error: %v"
	missingAudioMessage       = "Please record or upload a voice question."
)

// voice transcribes an uploaded recording and answers it like a typed question. Recognition failures leave the
// transcript untouched.
func (app *application) voice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			app.clientError(w, r, http.StatusRequestEntityTooLarge)
			return
		}
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	lang := app.selectLanguage(ctx, r.PostForm.Get("lang"))

	audio, err := readAudio(r)
	if errors.Is(err, errRecordingTooLarge) {
		app.clientError(w, r, http.StatusRequestEntityTooLarge)
		return
	}
	if err != nil {
		app.logger.LogAttrs(ctx, slog.LevelDebug, "no audio in request", errors.SlogError(err))
		app.flash(ctx, errorFlashKey, missingAudioMessage)
		app.respond(w, r)
		return
	}

	question, err := app.recognizer.Transcribe(ctx, audio)
	switch {
	case errors.Is(err, ports.ErrSpeechUnrecognized):
		app.logger.LogAttrs(ctx, slog.LevelInfo, "speech not recognized", errors.SlogError(err))
		app.flash(ctx, errorFlashKey, speechUnrecognizedMessage)
		app.respond(w, r)
		return
	case err != nil:
		err = errors.Wrap(err, "transcribe speech")
		app.logger.LogAttrs(ctx, slog.LevelError, "speech recognition failed", errors.SlogError(err))
		app.flash(ctx, errorFlashKey, fmt.Sprintf(speechServiceErrorFmt, err))
		app.respond(w, r)
		return
	}

	app.logger.LogAttrs(ctx, slog.LevelInfo, "transcribed speech", slog.String("question", question))
	app.answer(w, r, question, lang)
}

var errRecordingTooLarge = errors.NewSentinel("recording too large")

func readAudio(r *http.Request) (ports.Audio, error) {
	file, header, err := r.FormFile("audio")
	if err != nil {
		return ports.Audio{}, errors.Wrap(err, "form file")
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(file, maxAudioBytes+1))
	if err != nil {
		return ports.Audio{}, errors.Wrap(err, "read audio")
	}
	if len(data) > maxAudioBytes {
		return ports.Audio{}, errors.Wrap(errRecordingTooLarge, "read audio", slog.Int64("size", header.Size))
	}
	if len(data) == 0 {
		return ports.Audio{}, errors.New("empty recording")
	}

	mimeType := "audio/webm"
	if mediaType, _, parseErr := mime.ParseMediaType(header.Header.Get("Content-Type")); parseErr == nil &&
		strings.HasPrefix(mediaType, "audio/") {
		mimeType = mediaType
	}
	return ports.Audio{Data: data, MIMEType: mimeType}, nil
}
