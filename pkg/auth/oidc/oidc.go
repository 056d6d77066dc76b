package oidc

import (
	"context"
	"errors"
	"net/http"

	"github.com/imharvol/cienciathon-2021/pkg/auth"

	"github.com/coreos/go-oidc/v3/oidc"
)

var _ auth.Provider = &Provider{}

type Provider struct {
	verifier *oidc.IDTokenVerifier
}

func New(ctx context.Context, issuer, audience string) (*Provider, error) {
	provider, err := oidc.NewProvider(ctx, issuer)

	if err != nil {
		return nil, err
	}

	return &Provider{
		verifier: provider.Verifier(&oidc.Config{
			ClientID: audience,
		}),
	}, nil
}

func (p *Provider) Authenticate(ctx context.Context, r *http.Request) (context.Context, error) {
	token, ok := auth.BearerToken(r)

	if !ok {
		return ctx, errors.New("missing or invalid authorization header")
	}

	idtoken, err := p.verifier.Verify(ctx, token)

	if err != nil {
		return ctx, err
	}

	var claims struct {
		Subject string `json:"sub"`
		Email   string `json:"email"`
	}

	if err := idtoken.Claims(&claims); err != nil {
		return ctx, err
	}

	return auth.WithUser(ctx, claims.Subject, claims.Email), nil
}
