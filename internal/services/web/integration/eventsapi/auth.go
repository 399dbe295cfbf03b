package eventsapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/meninasdigitais/eventos/internal/services/web/platform/errors"
)

// Login exchanges credentials for a bearer token using the OAuth2 password form.
func (c *Client) Login(ctx context.Context, email string, password string) (Token, error) {
	resp, err := c.do(ctx, call{
		method: http.MethodPost,
		route:  "/token",
		path:   "/token",
		build: func(r *resty.Request) {
			r.SetFormData(map[string]string{
				"username": strings.TrimSpace(email),
				"password": password,
			})
		},
	})
	if err != nil {
		if apperrors.Is(err, apperrors.KindUnauthorized) || apperrors.Is(err, apperrors.KindInvalidInput) {
			return Token{}, apperrors.EK(apperrors.KindUnauthorized, "auth.error.invalid_credentials", err.Error())
		}
		return Token{}, err
	}
	wire, err := decodeBody[wireToken](resp, "token")
	if err != nil {
		return Token{}, err
	}
	if strings.TrimSpace(wire.AccessToken) == "" {
		return Token{}, apperrors.EK(apperrors.KindUnavailable, "errors.backend_unavailable", "token response has no access_token")
	}
	return Token{AccessToken: wire.AccessToken, TokenType: wire.TokenType}, nil
}

// Claims are the identity facts carried by a backend token.
type Claims struct {
	Email     string
	Role      Role
	ExpiresAt time.Time
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ParseClaims reads sub, role and exp from a backend token without checking
// the signature; the backend verifies it on every call. Tokens that are
// malformed, lack a subject or have expired at now are rejected.
func ParseClaims(token string, now time.Time) (Claims, error) {
	var claims tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(strings.TrimSpace(token), &claims); err != nil {
		return Claims{}, apperrors.EK(apperrors.KindUnauthorized, "errors.session_expired", fmt.Sprintf("parse token: %v", err))
	}
	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return Claims{}, apperrors.EK(apperrors.KindUnauthorized, "errors.session_expired", "token has no subject")
	}
	out := Claims{Email: subject, Role: ParseRole(claims.Role)}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
		if !out.ExpiresAt.After(now) {
			return Claims{}, apperrors.EK(apperrors.KindUnauthorized, "errors.session_expired", "token expired")
		}
	}
	return out, nil
}
