package main

import (
	"io/fs"
	"net/http"

	htmxmiddleware "github.com/donseba/go-htmx/middleware"
	"github.com/justinas/alice"
	"github.com/myrjola/polyglot/ui"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	static, err := fs.Sub(ui.Files, "static")
	if err != nil {
		panic(err) // the directory is embedded at compile time
	}
	mux.Handle("GET /static/", http.StripPrefix("/static", http.FileServer(http.FS(static))))

	session := alice.New(app.sessionManager.LoadAndSave, noSurf, commonContext, htmxmiddleware.MiddleWare)
	questions := session.Append(app.throttle)
	// The body limit comes first because the CSRF check parses the multipart form.
	voice := alice.New(limitBody(maxVoiceRequestBytes)).Extend(questions)

	mux.Handle("GET /{$}", session.ThenFunc(app.home))
	mux.Handle("POST /ask", questions.ThenFunc(app.ask))
	mux.Handle("POST /voice", voice.ThenFunc(app.voice))
	mux.Handle("POST /speak", session.ThenFunc(app.speak))
	mux.Handle("POST /transcript/clear", session.ThenFunc(app.clearTranscript))
	mux.Handle("GET /transcript/download", session.ThenFunc(app.downloadTranscript))

	mux.HandleFunc("GET /api/healthy", app.healthy)

	return app.recoverPanic(app.logRequest(app.secureHeaders(timeoutHandler(mux, app.cfg.RequestTimeout))))
}
