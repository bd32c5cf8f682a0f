package contexthelpers

import "context"

// CurrentPath is the URL path of the page being rendered, used for navigation state.
func CurrentPath(ctx context.Context) string {
	return value(ctx, currentPathKey)
}

// CSRFToken is the token every chat form posts back.
func CSRFToken(ctx context.Context) string {
	return value(ctx, csrfTokenKey)
}

// CSPNonce authorizes the scripts of the page.
func CSPNonce(ctx context.Context) string {
	return value(ctx, cspNonceKey)
}

// RequestID returns the identifier assigned to the request, or an empty string outside of a request.
func RequestID(ctx context.Context) string {
	return value(ctx, requestIDKey)
}
