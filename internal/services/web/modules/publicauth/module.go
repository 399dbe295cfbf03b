package publicauth

import (
	"net/http"
	"time"

	module "github.com/meninasdigitais/eventos/internal/services/web/module"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/publichandler"
	"github.com/meninasdigitais/eventos/internal/services/web/routepath"
)

// Options tune session lifetime and login throttling.
type Options struct {
	Now            func() time.Time
	SessionTTL     time.Duration
	Limiter        LimiterConfig
	TrustForwarded bool
}

// Module provides the login, signup, password reset and logout routes.
type Module struct {
	gateway  Gateway
	sessions Sessions
	base     publichandler.Base
	options  Options
}

// New returns an auth module storing sessions in sessions.
func New(gateway Gateway, sessions Sessions, base publichandler.Base, options Options) Module {
	return Module{gateway: gateway, sessions: sessions, base: base, options: options}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string { return "auth" }

// Healthy reports whether the module can reach the backend and store sessions.
func (m Module) Healthy() bool {
	if m.gateway == nil || m.sessions == nil {
		return false
	}
	_, unavailable := m.gateway.(unavailableGateway)
	return !unavailable
}

// Mount wires the auth routes on their exact paths.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	svc := newService(m.gateway, m.sessions, m.options.Now, m.options.SessionTTL)
	h := newHandlers(svc, m.base, newLoginLimiter(m.options.Limiter, m.options.Now), m.options.TrustForwarded)
	registerRoutes(mux, h)
	return module.Mount{
		Paths:   []string{routepath.Login, routepath.Signup, routepath.Reset, routepath.Logout},
		Handler: mux,
	}, nil
}
