package modules

import (
	"github.com/meninasdigitais/eventos/internal/services/web/modules/admin"
	"github.com/meninasdigitais/eventos/internal/services/web/modules/dashboard"
	"github.com/meninasdigitais/eventos/internal/services/web/modules/events"
	"github.com/meninasdigitais/eventos/internal/services/web/modules/public"
	"github.com/meninasdigitais/eventos/internal/services/web/modules/publicauth"
	"github.com/meninasdigitais/eventos/internal/services/web/modules/statistics"
	"github.com/meninasdigitais/eventos/internal/services/web/modules/users"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/modulehandler"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/publichandler"
)

// Registry builds the web module groups.
type Registry struct{}

// NewRegistry returns the default module registry.
func NewRegistry() Registry {
	return Registry{}
}

// Build constructs every module group from input.
func (Registry) Build(input BuildInput) BuildOutput {
	resolvers := modulehandler.Resolvers{
		ResolveViewer:   input.Resolvers.ResolveViewer,
		ResolveLanguage: input.Resolvers.ResolveLanguage,
		ClearSession:    input.Resolvers.ClearSession,
		SchemePolicy:    input.SchemePolicy,
	}
	deps := input.Dependencies
	return BuildOutput{
		Public:    DefaultPublicModules(deps, publichandler.NewBase(publichandler.WithResolvers(resolvers))),
		Protected: DefaultProtectedModules(deps, modulehandler.NewBase(resolvers)),
		Staff:     DefaultStaffModules(deps, modulehandler.NewBase(resolvers)),
		Admin:     DefaultAdminModules(deps, modulehandler.NewBase(resolvers)),
	}
}

// DefaultPublicModules returns modules open to every visitor.
func DefaultPublicModules(deps Dependencies, base publichandler.Base) []Module {
	return []Module{
		public.New(publicGateway(deps.Backend), base, deps.Now),
		publicauth.New(authGateway(deps.Backend), deps.Sessions, base, deps.Auth),
		events.New(eventsGateway(deps.Backend), base, deps.Now),
	}
}

// DefaultProtectedModules returns modules for any signed-in viewer.
func DefaultProtectedModules(deps Dependencies, base modulehandler.Base) []Module {
	return []Module{
		dashboard.New(dashboardGateway(deps.Backend), base, deps.Now),
	}
}

// DefaultStaffModules returns modules for organizers and admins.
func DefaultStaffModules(deps Dependencies, base modulehandler.Base) []Module {
	return []Module{
		admin.New(adminGateway(deps.Backend), base, deps.Location),
		statistics.New(statisticsGateway(deps.Backend), base, deps.Location, deps.Now),
	}
}

// DefaultAdminModules returns modules for admins only.
func DefaultAdminModules(deps Dependencies, base modulehandler.Base) []Module {
	return []Module{
		users.New(usersGateway(deps.Backend), base, deps.Location, deps.Now),
	}
}

// The converters below keep a nil Backend a nil gateway so modules fall back
// to their unavailable implementation.

func publicGateway(backend Backend) public.Gateway {
	if backend == nil {
		return nil
	}
	return backend
}

func authGateway(backend Backend) publicauth.Gateway {
	if backend == nil {
		return nil
	}
	return backend
}

func eventsGateway(backend Backend) events.Gateway {
	if backend == nil {
		return nil
	}
	return backend
}

func dashboardGateway(backend Backend) dashboard.Gateway {
	if backend == nil {
		return nil
	}
	return backend
}

func adminGateway(backend Backend) admin.Gateway {
	if backend == nil {
		return nil
	}
	return backend
}

func statisticsGateway(backend Backend) statistics.Gateway {
	if backend == nil {
		return nil
	}
	return backend
}

func usersGateway(backend Backend) users.Gateway {
	if backend == nil {
		return nil
	}
	return backend
}
