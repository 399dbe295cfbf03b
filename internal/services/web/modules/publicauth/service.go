package publicauth

import (
	"context"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/meninasdigitais/eventos/internal/services/shared/authctx"
	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
	apperrors "github.com/meninasdigitais/eventos/internal/services/web/platform/errors"
	"github.com/meninasdigitais/eventos/internal/services/web/storage"
)

const (
	minPasswordLength = 6
	defaultSessionTTL = 8 * time.Hour
)

// Gateway abstracts the backend account operations behind domain types.
type Gateway interface {
	Login(ctx context.Context, email string, password string) (eventsapi.Token, error)
	CurrentUser(ctx context.Context) (eventsapi.User, error)
	Register(ctx context.Context, input eventsapi.UserInput) (eventsapi.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
}

// Sessions is the part of the session store sign-in and sign-out need.
type Sessions interface {
	PutSession(ctx context.Context, session storage.Session) error
	DeleteSession(ctx context.Context, id string) error
}

type service struct {
	gateway  Gateway
	sessions Sessions
	now      func() time.Time
	ttl      time.Duration
}

func newService(gateway Gateway, sessions Sessions, now func() time.Time, ttl time.Duration) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	if sessions == nil {
		sessions = unavailableSessions{}
	}
	if now == nil {
		now = time.Now
	}
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return service{gateway: gateway, sessions: sessions, now: now, ttl: ttl}
}

type credentials struct {
	Email    string
	Password string
}

func (c credentials) validate() error {
	if err := validateEmail(c.Email); err != nil {
		return err
	}
	if c.Password == "" {
		return apperrors.EK(apperrors.KindInvalidInput, "auth.error.password_required", "password is required")
	}
	return nil
}

type signup struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	PasswordConfirm string
}

func (s signup) validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return apperrors.EK(apperrors.KindInvalidInput, "auth.error.name_required", "name is required")
	}
	if err := validateEmail(s.Email); err != nil {
		return err
	}
	if len(s.Password) < minPasswordLength {
		return apperrors.EK(apperrors.KindInvalidInput, "auth.error.password_short", "password is too short")
	}
	if s.Password != s.PasswordConfirm {
		return apperrors.EK(apperrors.KindInvalidInput, "auth.error.password_mismatch", "passwords do not match")
	}
	return nil
}

func validateEmail(raw string) error {
	email := strings.TrimSpace(raw)
	if email == "" {
		return apperrors.EK(apperrors.KindInvalidInput, "auth.error.email_required", "email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apperrors.EK(apperrors.KindInvalidInput, "auth.error.email_required", fmt.Sprintf("parse email: %v", err))
	}
	return nil
}

// signIn exchanges credentials for a token and stores a session holding it
// together with a snapshot of the account. The role comes from the account,
// never from the token claims.
func (s service) signIn(ctx context.Context, in credentials) (storage.Session, error) {
	if err := in.validate(); err != nil {
		return storage.Session{}, err
	}
	token, err := s.gateway.Login(ctx, strings.TrimSpace(in.Email), in.Password)
	if err != nil {
		return storage.Session{}, err
	}
	now := s.now()
	claims, err := eventsapi.ParseClaims(token.AccessToken, now)
	if err != nil {
		return storage.Session{}, err
	}
	user, err := s.gateway.CurrentUser(authctx.WithAccessToken(ctx, token.AccessToken))
	if err != nil {
		return storage.Session{}, err
	}
	email := user.Email
	if strings.TrimSpace(email) == "" {
		email = claims.Email
	}
	expires := claims.ExpiresAt
	if expires.IsZero() {
		expires = now.Add(s.ttl)
	}
	session := storage.Session{
		ID:          uuid.NewString(),
		AccessToken: token.AccessToken,
		UserID:      user.ID,
		UserName:    user.Name,
		UserEmail:   email,
		Role:        string(user.Role),
		CreatedAt:   now,
		ExpiresAt:   expires,
	}
	if err := s.sessions.PutSession(ctx, session); err != nil {
		return storage.Session{}, fmt.Errorf("store session: %w", err)
	}
	return session, nil
}

// signUp registers a participant account and signs it in.
func (s service) signUp(ctx context.Context, in signup) (storage.Session, error) {
	if err := in.validate(); err != nil {
		return storage.Session{}, err
	}
	if _, err := s.gateway.Register(ctx, eventsapi.UserInput{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.TrimSpace(in.Email),
		Phone:    strings.TrimSpace(in.Phone),
		Password: in.Password,
		Role:     eventsapi.RoleParticipant,
	}); err != nil {
		return storage.Session{}, err
	}
	return s.signIn(ctx, credentials{Email: in.Email, Password: in.Password})
}

// requestReset asks the backend for reset instructions. Backend failures are
// logged and hidden so the answer never reveals whether an account exists.
func (s service) requestReset(ctx context.Context, email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := s.gateway.RequestPasswordReset(ctx, strings.TrimSpace(email)); err != nil {
		log.Printf("web: password reset request failed: err=%v", err)
	}
	return nil
}

func (s service) signOut(ctx context.Context, sessionID string) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return
	}
	if err := s.sessions.DeleteSession(ctx, sessionID); err != nil {
		log.Printf("web: delete session failed: err=%v", err)
	}
}
