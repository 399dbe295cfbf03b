package public

import (
	"net/http"
	"time"

	module "github.com/meninasdigitais/eventos/internal/services/web/module"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/publichandler"
	"github.com/meninasdigitais/eventos/internal/services/web/routepath"
)

// Module provides the home, about and health routes plus the site-wide 404.
type Module struct {
	gateway Gateway
	base    publichandler.Base
	now     func() time.Time
}

// New returns a public module reading featured events through gateway.
func New(gateway Gateway, base publichandler.Base, now func() time.Time) Module {
	return Module{gateway: gateway, base: base, now: now}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string { return "public" }

// Healthy reports whether the module has a backend gateway.
func (m Module) Healthy() bool {
	_, unavailable := m.gateway.(unavailableGateway)
	return m.gateway != nil && !unavailable
}

// Mount wires public routes under the root prefix.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := newHandlers(newService(m.gateway, m.now), m.base)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
