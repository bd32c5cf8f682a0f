package main

import (
	"net/http"

	"github.com/myrjola/polyglot/internal/models"
)

type homeTemplateData struct {
	BaseTemplateData

	Messages  []models.Message
	Languages []models.Language
	Lang      string

	Detected       string
	Answer         string
	AnswerLanguage string
	Error          string
}

func (app *application) newHomeTemplateData(r *http.Request) homeTemplateData {
	ctx := r.Context()
	data := homeTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Messages:         app.transcript(ctx).Messages,
		Languages:        models.Languages,
		Lang:             app.selectedLanguage(ctx),
		Detected:         app.popFlash(ctx, detectedFlashKey),
		Answer:           app.popFlash(ctx, answerFlashKey),
		AnswerLanguage:   app.popFlash(ctx, answerLanguageFlashKey),
		Error:            app.popFlash(ctx, errorFlashKey),
	}
	return data
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "base", app.newHomeTemplateData(r))
}

// respond renders the chat partial for htmx requests and redirects everything else back to the chat page.
//
// Errors are shown inside the partial with status 200 because htmx does not swap error responses.
func (app *application) respond(w http.ResponseWriter, r *http.Request) {
	h := app.htmx.NewHandler(w, r)
	if h.Request().HxRequest {
		app.render(w, r, http.StatusOK, "chat", app.newHomeTemplateData(r))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
