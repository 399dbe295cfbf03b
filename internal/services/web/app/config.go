package app

import (
	"net/http"

	module "github.com/meninasdigitais/eventos/internal/services/web/module"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/requestmeta"
)

// Config captures the composition inputs for the web root handler.
type Config struct {
	ResolveViewer    module.ResolveViewer
	SchemePolicy     requestmeta.SchemePolicy
	Forbidden        http.Handler
	Rejected         http.Handler
	PublicModules    []module.Module
	ProtectedModules []module.Module
	StaffModules     []module.Module
	AdminModules     []module.Module
}
