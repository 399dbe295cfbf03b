package users

import (
	"net/http"
	"time"

	module "github.com/meninasdigitais/eventos/internal/services/web/module"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/modulehandler"
	"github.com/meninasdigitais/eventos/internal/services/web/routepath"
)

// Module provides admin-only user management.
type Module struct {
	gateway  Gateway
	base     modulehandler.Base
	location *time.Location
	now      func() time.Time
}

// New returns a users module. Export dates are written in location.
func New(gateway Gateway, base modulehandler.Base, location *time.Location, now func() time.Time) Module {
	return Module{gateway: gateway, base: base, location: location, now: now}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "users" }

// Healthy reports whether the module has a backend gateway.
func (m Module) Healthy() bool {
	_, unavailable := m.gateway.(unavailableGateway)
	return m.gateway != nil && !unavailable
}

// Mount wires user management routes under the users prefix.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(m.gateway, m.location, m.now), m.base))
	return module.Mount{Prefix: routepath.UsersPrefix, Handler: mux}, nil
}
