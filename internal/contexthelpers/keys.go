// Package contexthelpers stores request scoped values of the chat server in the request context.
package contexthelpers

import (
	"context"
	"net/http"
)

type contextKey int

const (
	currentPathKey contextKey = iota
	csrfTokenKey
	cspNonceKey
	requestIDKey
)

func withValue(r *http.Request, key contextKey, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), key, value))
}

// value returns the string stored under key or "" when the context does not carry it.
func value(ctx context.Context, key contextKey) string {
	v, _ := ctx.Value(key).(string)
	return v
}
