package contexthelpers_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/myrjola/polyglot/internal/contexthelpers"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	r := httptest.NewRequest("GET", "/ask", nil)
	r = contexthelpers.SetCurrentPath(r, "/ask")
	r = contexthelpers.SetCSRFToken(r, "token")
	r = contexthelpers.SetCSPNonce(r, "nonce")
	r = contexthelpers.SetRequestID(r, "id")

	ctx := r.Context()
	require.Equal(t, "/ask", contexthelpers.CurrentPath(ctx))
	require.Equal(t, "token", contexthelpers.CSRFToken(ctx))
	require.Equal(t, "nonce", contexthelpers.CSPNonce(ctx))
	require.Equal(t, "id", contexthelpers.RequestID(ctx))
}

func TestMissingValues(t *testing.T) {
	ctx := context.Background()
	require.Empty(t, contexthelpers.CurrentPath(ctx))
	require.Empty(t, contexthelpers.CSRFToken(ctx))
	require.Empty(t, contexthelpers.CSPNonce(ctx))
	require.Empty(t, contexthelpers.RequestID(ctx))
}
