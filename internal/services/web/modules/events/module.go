package events

import (
	"net/http"
	"time"

	module "github.com/meninasdigitais/eventos/internal/services/web/module"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/publichandler"
	"github.com/meninasdigitais/eventos/internal/services/web/routepath"
)

// Module provides the public event list, event pages and the enrollment and
// rating actions.
type Module struct {
	gateway Gateway
	base    publichandler.Base
	now     func() time.Time
}

// New returns an events module backed by gateway.
func New(gateway Gateway, base publichandler.Base, now func() time.Time) Module {
	return Module{gateway: gateway, base: base, now: now}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string { return "events" }

// Healthy reports whether the module has a backend gateway.
func (m Module) Healthy() bool {
	_, unavailable := m.gateway.(unavailableGateway)
	return m.gateway != nil && !unavailable
}

// Mount wires the event list path and the per-event subtree.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := newHandlers(newService(m.gateway, m.now), m.base)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.EventsPrefix, Paths: []string{routepath.Events}, Handler: mux}, nil
}
