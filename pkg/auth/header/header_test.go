package header

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/imharvol/cienciathon-2021/pkg/auth"

	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/", nil)

	_, err = p.Authenticate(context.Background(), r)
	require.Error(t, err)

	r.Header.Set("X-Forwarded-User", "jane@example.com")

	ctx, err := p.Authenticate(context.Background(), r)
	require.NoError(t, err)

	require.Equal(t, "jane@example.com", auth.User(ctx))
	require.Equal(t, "jane@example.com", auth.Email(ctx))
}

func TestAuthenticateCustomHeader(t *testing.T) {
	p, err := New(WithUserHeader("X-User"))
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("X-User", "jane")

	ctx, err := p.Authenticate(context.Background(), r)
	require.NoError(t, err)

	require.Equal(t, "jane", auth.User(ctx))
	require.Empty(t, auth.Email(ctx))
}
