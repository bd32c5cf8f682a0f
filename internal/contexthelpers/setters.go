package contexthelpers

import "net/http"

func SetCurrentPath(r *http.Request, currentPath string) *http.Request {
	return withValue(r, currentPathKey, currentPath)
}

func SetCSRFToken(r *http.Request, csrfToken string) *http.Request {
	return withValue(r, csrfTokenKey, csrfToken)
}

func SetCSPNonce(r *http.Request, nonce string) *http.Request {
	return withValue(r, cspNonceKey, nonce)
}

func SetRequestID(r *http.Request, requestID string) *http.Request {
	return withValue(r, requestIDKey, requestID)
}
