package statistics

import (
	"net/http"
	"time"

	module "github.com/meninasdigitais/eventos/internal/services/web/module"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/modulehandler"
	"github.com/meninasdigitais/eventos/internal/services/web/routepath"
)

// Module provides the staff statistics dashboard and report download.
type Module struct {
	gateway  Gateway
	base     modulehandler.Base
	location *time.Location
	now      func() time.Time
}

// New returns a statistics module. Months and report dates use location.
func New(gateway Gateway, base modulehandler.Base, location *time.Location, now func() time.Time) Module {
	return Module{gateway: gateway, base: base, location: location, now: now}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "statistics" }

// Healthy reports whether the module has a backend gateway.
func (m Module) Healthy() bool {
	_, unavailable := m.gateway.(unavailableGateway)
	return m.gateway != nil && !unavailable
}

// Mount wires statistics routes under the statistics prefix.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(m.gateway, m.location, m.now), m.base))
	return module.Mount{Prefix: routepath.StatisticsPrefix, Handler: mux}, nil
}
