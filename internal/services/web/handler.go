package web

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/meninasdigitais/eventos/internal/services/web/app"
	module "github.com/meninasdigitais/eventos/internal/services/web/module"
	"github.com/meninasdigitais/eventos/internal/services/web/modules"
	"github.com/meninasdigitais/eventos/internal/services/web/modules/publicauth"
	apperrors "github.com/meninasdigitais/eventos/internal/services/web/platform/errors"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/httpx"
	webi18n "github.com/meninasdigitais/eventos/internal/services/web/platform/i18n"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/modulehandler"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/observability"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/requestmeta"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/webctx"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/weberror"
	"github.com/meninasdigitais/eventos/internal/services/web/static"
)

// sessionStore is what the web handler needs from session persistence.
type sessionStore interface {
	publicauth.Sessions
	sessionLookup
}

type handlerDependencies struct {
	backend  modules.Backend
	sessions sessionStore
	location *time.Location
	now      func() time.Time
	policy   requestmeta.SchemePolicy
	auth     publicauth.Options
	logger   *log.Logger
}

// newHandler composes static assets, page modules and the request middleware
// chain into the root handler.
func newHandler(deps handlerDependencies) (http.Handler, error) {
	if deps.now == nil {
		deps.now = time.Now
	}
	if deps.auth.Now == nil {
		deps.auth.Now = deps.now
	}
	who := newPrincipal(deps.sessions, deps.now, deps.policy)
	resolvers := modules.ModuleResolvers{
		ResolveViewer:   webctx.RequestViewer,
		ResolveLanguage: webi18n.ResolveLanguage,
		ClearSession:    who.clearSession,
	}

	groups := modules.NewRegistry().Build(modules.BuildInput{
		Dependencies: modules.Dependencies{
			Backend:  deps.backend,
			Sessions: deps.sessions,
			Location: deps.location,
			Now:      deps.now,
			Auth:     deps.auth,
		},
		Resolvers:    resolvers,
		SchemePolicy: deps.policy,
	})

	errorBase := modulehandler.NewBase(modulehandler.Resolvers{
		ResolveViewer:   webctx.RequestViewer,
		ResolveLanguage: webi18n.ResolveLanguage,
		SchemePolicy:    deps.policy,
	})
	root, err := app.BuildRootHandler(app.Config{
		SchemePolicy:     deps.policy,
		Forbidden:        forbiddenHandler(errorBase),
		Rejected:         rejectedHandler(errorBase),
		PublicModules:    groups.Public,
		ProtectedModules: groups.Protected,
		StaffModules:     groups.Staff,
		AdminModules:     groups.Admin,
	})
	if err != nil {
		return nil, fmt.Errorf("compose modules: %w", err)
	}
	for _, feature := range unhealthyModules(groups) {
		log.Printf("web: module unavailable: id=%s", feature)
	}

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(static.FS))))
	mux.Handle("/", root)

	return httpx.Chain(mux,
		httpx.RequestID(),
		observability.RequestLogger(deps.logger),
		httpx.RecoverPanic(),
		who.middleware,
	), nil
}

func forbiddenHandler(base modulehandler.Base) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		weberror.WriteAppError(w, r, http.StatusForbidden, apperrors.EK(apperrors.KindForbidden, "errors.forbidden", "access denied"), base)
	})
}

func rejectedHandler(base modulehandler.Base) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		weberror.WriteAppError(w, r, http.StatusForbidden, apperrors.EK(apperrors.KindForbidden, "errors.same_origin", "cross-origin request rejected"), base)
	})
}

func unhealthyModules(groups modules.BuildOutput) []string {
	var ids []string
	for _, group := range [][]modules.Module{groups.Public, groups.Protected, groups.Staff, groups.Admin} {
		for _, feature := range group {
			reporter, ok := feature.(module.HealthReporter)
			if ok && !reporter.Healthy() {
				ids = append(ids, feature.ID())
			}
		}
	}
	return ids
}
