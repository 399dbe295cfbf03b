// Package authctx carries the caller's backend credentials through a request context.
package authctx

import (
	"context"
	"strings"
)

type accessTokenKey struct{}

// WithAccessToken returns ctx carrying the bearer token used for backend calls.
// Blank tokens leave ctx unchanged.
func WithAccessToken(ctx context.Context, token string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, accessTokenKey{}, token)
}

// AccessToken returns the bearer token stored by WithAccessToken.
func AccessToken(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	token, ok := ctx.Value(accessTokenKey{}).(string)
	return token, ok && token != ""
}
