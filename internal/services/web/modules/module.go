// Package modules defines web module registry helpers.
package modules

import (
	"time"

	module "github.com/meninasdigitais/eventos/internal/services/web/module"
	"github.com/meninasdigitais/eventos/internal/services/web/modules/admin"
	"github.com/meninasdigitais/eventos/internal/services/web/modules/dashboard"
	"github.com/meninasdigitais/eventos/internal/services/web/modules/events"
	"github.com/meninasdigitais/eventos/internal/services/web/modules/public"
	"github.com/meninasdigitais/eventos/internal/services/web/modules/publicauth"
	"github.com/meninasdigitais/eventos/internal/services/web/modules/statistics"
	"github.com/meninasdigitais/eventos/internal/services/web/modules/users"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/requestmeta"
)

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// Backend is the union of the narrow gateways each module declares. The
// events API client satisfies it; modules only see their own slice of it.
type Backend interface {
	public.Gateway
	publicauth.Gateway
	events.Gateway
	dashboard.Gateway
	admin.Gateway
	users.Gateway
	statistics.Gateway
}

// ModuleResolvers carries request-scoped resolver functions built by the
// server after the session store is open.
type ModuleResolvers struct {
	ResolveViewer   module.ResolveViewer
	ResolveLanguage module.ResolveLanguage
	ClearSession    module.ClearSession
}

// Dependencies carries the backend client and shared settings required to
// compose the web module registry. A nil Backend or Sessions leaves the
// affected modules mounted but unavailable.
type Dependencies struct {
	Backend  Backend
	Sessions publicauth.Sessions
	// Location is the display time zone for form input, calendars and exports.
	Location *time.Location
	Now      func() time.Time
	Auth     publicauth.Options
}

// BuildInput is everything Build needs to construct module groups.
type BuildInput struct {
	Dependencies Dependencies
	Resolvers    ModuleResolvers
	SchemePolicy requestmeta.SchemePolicy
}

// BuildOutput groups modules by the viewer standing they require.
type BuildOutput struct {
	Public    []Module
	Protected []Module
	Staff     []Module
	Admin     []Module
}
