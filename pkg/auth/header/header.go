package header

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/imharvol/cienciathon-2021/pkg/auth"
)

var _ auth.Provider = &Provider{}

// Provider trusts identity headers set by an authenticating reverse proxy.
type Provider struct {
	userHeader  string
	emailHeader string
}

func New(options ...Option) (*Provider, error) {
	p := &Provider{
		userHeader:  "X-Forwarded-User",
		emailHeader: "X-Forwarded-Email",
	}

	for _, option := range options {
		option(p)
	}

	return p, nil
}

func (p *Provider) Authenticate(ctx context.Context, r *http.Request) (context.Context, error) {
	user := strings.TrimSpace(r.Header.Get(p.userHeader))
	email := strings.TrimSpace(r.Header.Get(p.emailHeader))

	if user == "" && email == "" {
		return ctx, errors.New("no user information found in headers")
	}

	if email == "" && isEmail(user) {
		email = user
	}

	return auth.WithUser(ctx, user, email), nil
}

func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
