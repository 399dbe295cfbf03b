package dashboard

import (
	"net/http"
	"time"

	module "github.com/meninasdigitais/eventos/internal/services/web/module"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/modulehandler"
	"github.com/meninasdigitais/eventos/internal/services/web/routepath"
)

// Module provides the signed-in participant dashboard.
type Module struct {
	gateway Gateway
	base    modulehandler.Base
	now     func() time.Time
}

// New returns a dashboard module.
func New(gateway Gateway, base modulehandler.Base, now func() time.Time) Module {
	return Module{gateway: gateway, base: base, now: now}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "dashboard" }

// Healthy reports whether the module has a backend gateway.
func (m Module) Healthy() bool {
	_, unavailable := m.gateway.(unavailableGateway)
	return m.gateway != nil && !unavailable
}

// Mount wires dashboard route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := newHandlers(newService(m.gateway, m.now), m.base)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.DashboardPrefix, Handler: mux}, nil
}
