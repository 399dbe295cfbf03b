package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/meninasdigitais/eventos/internal/services/shared/authctx"
	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
	module "github.com/meninasdigitais/eventos/internal/services/web/module"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/requestmeta"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/sessioncookie"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/webctx"
	"github.com/meninasdigitais/eventos/internal/services/web/storage"
)

// sessionLookup is the part of the session store request resolution needs.
type sessionLookup interface {
	GetSession(ctx context.Context, id string) (storage.Session, bool, error)
	DeleteSession(ctx context.Context, id string) error
}

// principal turns the session cookie into a viewer and a backend token.
type principal struct {
	sessions sessionLookup
	now      func() time.Time
	policy   requestmeta.SchemePolicy
}

func newPrincipal(sessions sessionLookup, now func() time.Time, policy requestmeta.SchemePolicy) principal {
	if now == nil {
		now = time.Now
	}
	return principal{sessions: sessions, now: now, policy: policy}
}

// middleware attaches the signed-in viewer and access token to the request
// context. Unknown or expired sessions continue as anonymous requests.
func (p principal) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := p.lookup(w, r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		ctx := webctx.WithViewer(r.Context(), viewerFromSession(session))
		ctx = authctx.WithAccessToken(ctx, session.AccessToken)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (p principal) lookup(w http.ResponseWriter, r *http.Request) (storage.Session, bool) {
	if p.sessions == nil {
		return storage.Session{}, false
	}
	id, ok := sessioncookie.Read(r)
	if !ok {
		return storage.Session{}, false
	}
	session, found, err := p.sessions.GetSession(r.Context(), id)
	if err != nil {
		log.Printf("web: session lookup failed: err=%v", err)
		return storage.Session{}, false
	}
	if !found {
		sessioncookie.Clear(w, r, p.policy)
		return storage.Session{}, false
	}
	if session.Expired(p.now()) {
		if err := p.sessions.DeleteSession(r.Context(), id); err != nil {
			log.Printf("web: expired session delete failed: err=%v", err)
		}
		sessioncookie.Clear(w, r, p.policy)
		return storage.Session{}, false
	}
	return session, true
}

// clearSession drops the stored session and expires the cookie.
func (p principal) clearSession(w http.ResponseWriter, r *http.Request) {
	if id, ok := sessioncookie.Read(r); ok && p.sessions != nil {
		if err := p.sessions.DeleteSession(r.Context(), id); err != nil {
			log.Printf("web: session delete failed: err=%v", err)
		}
	}
	sessioncookie.Clear(w, r, p.policy)
}

func viewerFromSession(session storage.Session) module.Viewer {
	return module.Viewer{
		SignedIn: true,
		UserID:   session.UserID,
		Name:     session.UserName,
		Email:    session.UserEmail,
		Role:     eventsapi.ParseRole(session.Role),
	}
}
