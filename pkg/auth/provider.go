package auth

import (
	"context"
	"net/http"
)

type contextKey string

const (
	UserContextKey  contextKey = "auth.user"
	EmailContextKey contextKey = "auth.email"
)

type Provider interface {
	Authenticate(ctx context.Context, r *http.Request) (context.Context, error)
}

func WithUser(ctx context.Context, user, email string) context.Context {
	if user != "" {
		ctx = context.WithValue(ctx, UserContextKey, user)
	}

	if email != "" {
		ctx = context.WithValue(ctx, EmailContextKey, email)
	}

	return ctx
}

func User(ctx context.Context) string {
	user, _ := ctx.Value(UserContextKey).(string)
	return user
}

func Email(ctx context.Context) string {
	email, _ := ctx.Value(EmailContextKey).(string)
	return email
}

// BearerToken returns the token of an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")

	token, ok := cutPrefixFold(header, "Bearer ")

	if !ok || token == "" {
		return "", false
	}

	return token, true
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) {
		return s, false
	}

	for i := range len(prefix) {
		a, b := s[i], prefix[i]

		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}

		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}

		if a != b {
			return s, false
		}
	}

	return s[len(prefix):], true
}
