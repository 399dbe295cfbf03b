package storage

import (
	"context"
	"strings"
	"time"
)

// Session maps an opaque browser session id to the backend bearer token and a
// snapshot of the signed-in user taken at login.
type Session struct {
	ID          string
	AccessToken string
	UserID      string
	UserName    string
	UserEmail   string
	Role        string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// Valid reports whether the session carries the fields a lookup relies on.
func (s Session) Valid() bool {
	return strings.TrimSpace(s.ID) != "" && strings.TrimSpace(s.AccessToken) != "" && !s.ExpiresAt.IsZero()
}

// SessionStore persists web sessions.
type SessionStore interface {
	PutSession(ctx context.Context, session Session) error
	GetSession(ctx context.Context, id string) (Session, bool, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
	Close() error
}
