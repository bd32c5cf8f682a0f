package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/myrjola/polyglot/internal/models"
)

func (app *application) clearTranscript(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	transcript := app.transcript(ctx)
	transcript.Clear()
	app.saveTranscript(ctx, transcript)
	app.respond(w, r)
}

// downloadTranscript exports the session transcript as a text file attachment.
func (app *application) downloadTranscript(w http.ResponseWriter, r *http.Request) {
	export := app.transcript(r.Context()).Export()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", models.DownloadFilename(time.Now())))
	_, _ = w.Write([]byte(export))
}
