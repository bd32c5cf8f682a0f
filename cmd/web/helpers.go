package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/myrjola/polyglot/internal/contexthelpers"
	"github.com/myrjola/polyglot/internal/errors"
)

func requestAttrs(r *http.Request) []slog.Attr {
	return []slog.Attr{slog.String("method", r.Method), slog.String("uri", r.URL.RequestURI())}
}

// serverError logs err and answers 500. The body carries the request id so that a user report can be matched
// with the log.
func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	attrs := append(requestAttrs(r), errors.SlogError(err))
	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error", attrs...)

	msg := http.StatusText(http.StatusInternalServerError)
	if id := contexthelpers.RequestID(r.Context()); id != "" {
		msg = fmt.Sprintf("%s (request %s)", msg, id)
	}
	http.Error(w, msg, http.StatusInternalServerError)
}

func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int) {
	app.logger.LogAttrs(r.Context(), slog.LevelDebug, http.StatusText(status), requestAttrs(r)...)
	http.Error(w, http.StatusText(status), status)
}
