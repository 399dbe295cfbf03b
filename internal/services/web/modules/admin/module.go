package admin

import (
	"net/http"
	"time"

	module "github.com/meninasdigitais/eventos/internal/services/web/module"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/modulehandler"
	"github.com/meninasdigitais/eventos/internal/services/web/routepath"
)

// Module provides the staff event management panel.
type Module struct {
	gateway  Gateway
	base     modulehandler.Base
	location *time.Location
}

// New returns an admin module. Form dates and times are read in location.
func New(gateway Gateway, base modulehandler.Base, location *time.Location) Module {
	return Module{gateway: gateway, base: base, location: location}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "admin" }

// Healthy reports whether the module has a backend gateway.
func (m Module) Healthy() bool {
	_, unavailable := m.gateway.(unavailableGateway)
	return m.gateway != nil && !unavailable
}

// Mount wires admin routes under the admin prefix.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := newHandlers(newService(m.gateway, m.location), m.base)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.AdminPrefix, Handler: mux}, nil
}
