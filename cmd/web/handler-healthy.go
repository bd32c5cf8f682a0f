package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/myrjola/polyglot/internal/errors"
)

type healthResponse struct {
	Status             string `json:"status"`
	CompletionProvider string `json:"completionProvider"`
}

// healthy reports that the server accepts questions and which completion provider answers them.
func (app *application) healthy(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	resp := healthResponse{Status: "ok", CompletionProvider: app.cfg.CompletionProvider}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "write health response", errors.SlogError(err))
	}
}
