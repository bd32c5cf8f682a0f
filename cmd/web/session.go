package main

import (
	"context"

	"github.com/myrjola/polyglot/internal/models"
)

type sessionKey string

const (
	transcriptSessionKey = sessionKey("transcript")
	langSessionKey       = sessionKey("lang")
	// Flash keys hold the outcome of the last question until the next page render.
	detectedFlashKey       = sessionKey("flashDetected")
	answerFlashKey         = sessionKey("flashAnswer")
	answerLanguageFlashKey = sessionKey("flashAnswerLanguage")
	errorFlashKey          = sessionKey("flashError")
)

func (app *application) transcript(ctx context.Context) *models.Transcript {
	t, ok := app.sessionManager.Get(ctx, string(transcriptSessionKey)).(models.Transcript)
	if !ok {
		return models.NewTranscript()
	}
	return &t
}

func (app *application) saveTranscript(ctx context.Context, t *models.Transcript) {
	app.sessionManager.Put(ctx, string(transcriptSessionKey), *t)
}

// selectedLanguage returns the output language of the session, English by default.
func (app *application) selectedLanguage(ctx context.Context) string {
	if lang := app.sessionManager.GetString(ctx, string(langSessionKey)); lang != "" {
		return lang
	}
	return models.Languages[0].Code
}

// selectLanguage stores code as the output language of the session when it is offered and returns the effective
// language.
func (app *application) selectLanguage(ctx context.Context, code string) string {
	if _, ok := models.LookupLanguage(code); ok {
		app.sessionManager.Put(ctx, string(langSessionKey), code)
		return code
	}
	return app.selectedLanguage(ctx)
}

func (app *application) flash(ctx context.Context, key sessionKey, value string) {
	app.sessionManager.Put(ctx, string(key), value)
}

func (app *application) popFlash(ctx context.Context, key sessionKey) string {
	return app.sessionManager.PopString(ctx, string(key))
}
