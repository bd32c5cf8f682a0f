package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/myrjola/polyglot/internal/errors"
	"github.com/myrjola/polyglot/internal/models"
)

const (
	emptyQuestionMessage = "Please enter a question."
	processingErrorFmt   = "An error occurred during processing: %v " +
		"Please ensure your API key is correct and Generative Language API is enabled."
)

func (app *application) ask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	lang := app.selectLanguage(ctx, r.PostForm.Get("lang"))
	question := strings.TrimSpace(r.PostForm.Get("question"))
	if question == "" {
		app.flash(ctx, errorFlashKey, emptyQuestionMessage)
		app.respond(w, r)
		return
	}

	app.answer(w, r, question, lang)
}

// answer runs the pipeline for question, records the exchange in the transcript and responds with the chat.
func (app *application) answer(w http.ResponseWriter, r *http.Request, question, lang string) {
	ctx := r.Context()
	reply, err := app.pipeline.Ask(ctx, question, lang)
	if err != nil {
		err = errors.Wrap(err, "ask question")
		app.logger.LogAttrs(ctx, slog.LevelError, "question failed", errors.SlogError(err))
		app.flash(ctx, errorFlashKey, fmt.Sprintf(processingErrorFmt, err))
		app.respond(w, r)
		return
	}

	transcript := app.transcript(ctx)
	transcript.Append(models.RoleUser, question, reply.SourceLanguage)
	transcript.Append(models.RoleBot, reply.Answer, reply.DestinationLanguage)
	app.saveTranscript(ctx, transcript)

	answerLanguage := reply.DestinationLanguage
	if l, ok := models.LookupLanguage(reply.DestinationLanguage); ok {
		answerLanguage = l.Name
	}
	app.flash(ctx, detectedFlashKey, reply.SourceLanguage)
	app.flash(ctx, answerFlashKey, reply.Answer)
	app.flash(ctx, answerLanguageFlashKey, answerLanguage)
	app.respond(w, r)
}
