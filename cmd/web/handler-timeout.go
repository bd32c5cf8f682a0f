package main

import (
	"net/http"
	"time"
)

// timeoutBody is plain HTML because the secure headers forbid inline scripts without the request nonce.
const timeoutBody = `<!doctype html>
<html lang="en">
<head><title>Polyglot is taking too long</title></head>
<body>
<h1>The answer took too long</h1>
<p>One of the language or encyclopedia services did not respond in time.</p>
<p><a href="/">Back to the chat</a></p>
</body>
</html>
`

// timeoutHandler responds with 503 Service Unavailable when a question is not answered within requestTimeout.
func timeoutHandler(h http.Handler, requestTimeout time.Duration) http.Handler {
	// Respond a moment before the server's write deadline so the page still reaches the browser.
	handlerTimeout := requestTimeout - 500*time.Millisecond //nolint:mnd // 500ms
	if handlerTimeout <= 0 {
		handlerTimeout = requestTimeout
	}
	return http.TimeoutHandler(h, handlerTimeout, timeoutBody)
}
