package app

import (
	"net/http"

	module "github.com/meninasdigitais/eventos/internal/services/web/module"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/webctx"
)

// BuildRootHandler composes a root mux using the configured module groups.
func BuildRootHandler(cfg Config) (http.Handler, error) {
	resolveViewer := cfg.ResolveViewer
	if resolveViewer == nil {
		resolveViewer = module.ResolveViewer(webctx.RequestViewer)
	}
	return Compose(ComposeInput{
		ResolveViewer:       resolveViewer,
		PublicModules:       cfg.PublicModules,
		ProtectedModules:    cfg.ProtectedModules,
		StaffModules:        cfg.StaffModules,
		AdminModules:        cfg.AdminModules,
		RequestSchemePolicy: cfg.SchemePolicy,
		Forbidden:           cfg.Forbidden,
		Rejected:            cfg.Rejected,
	})
}
