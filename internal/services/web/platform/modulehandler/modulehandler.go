// Package modulehandler provides a composable base for web module handlers.
//
// Every page module shares handler infrastructure for viewer resolution,
// localization, page rendering, redirects and error handling. This package
// extracts that scaffold so modules embed it rather than duplicating it.
package modulehandler

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	module "github.com/meninasdigitais/eventos/internal/services/web/module"
	apperrors "github.com/meninasdigitais/eventos/internal/services/web/platform/errors"
	flashnotice "github.com/meninasdigitais/eventos/internal/services/web/platform/flash"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/httpx"
	webi18n "github.com/meninasdigitais/eventos/internal/services/web/platform/i18n"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/pagerender"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/requestmeta"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/weberror"
	"github.com/meninasdigitais/eventos/internal/services/web/routepath"
	webtemplates "github.com/meninasdigitais/eventos/internal/services/web/templates"

	"golang.org/x/text/language"
)

// Resolvers are the request-scoped lookups a handler base needs.
type Resolvers struct {
	ResolveViewer   module.ResolveViewer
	ResolveLanguage module.ResolveLanguage
	ClearSession    module.ClearSession
	SchemePolicy    requestmeta.SchemePolicy
}

// Base carries the shared request-scoped resolvers used by module handlers.
type Base struct {
	resolveViewer   module.ResolveViewer
	resolveLanguage module.ResolveLanguage
	clearSession    module.ClearSession
	policy          requestmeta.SchemePolicy
}

// NewBase builds a handler base from explicit resolvers.
func NewBase(resolvers Resolvers) Base {
	return Base{
		resolveViewer:   resolvers.ResolveViewer,
		resolveLanguage: resolvers.ResolveLanguage,
		clearSession:    resolvers.ClearSession,
		policy:          resolvers.SchemePolicy,
	}
}

// NewTestBase builds a handler base with no-op resolvers suitable for tests
// that do not exercise viewer state or localization.
func NewTestBase() Base {
	return Base{
		resolveViewer:   func(*http.Request) module.Viewer { return module.Viewer{} },
		resolveLanguage: func(*http.Request) string { return "" },
		clearSession:    func(http.ResponseWriter, *http.Request) {},
	}
}

// ResolveRequestViewer resolves the viewer of a request.
func (b Base) ResolveRequestViewer(r *http.Request) module.Viewer {
	if b.resolveViewer == nil || r == nil {
		return module.Viewer{}
	}
	return b.resolveViewer(r)
}

// ResolveRequestLanguage returns the effective request language.
func (b Base) ResolveRequestLanguage(r *http.Request) string {
	if b.resolveLanguage == nil {
		return ""
	}
	return b.resolveLanguage(r)
}

// RequestSchemePolicy returns the cookie security policy.
func (b Base) RequestSchemePolicy() requestmeta.SchemePolicy {
	return b.policy
}

// PageLocalizer resolves a localizer and language tag from the request.
func (b Base) PageLocalizer(w http.ResponseWriter, r *http.Request) (webtemplates.Localizer, string) {
	return webi18n.ResolveLocalizer(w, r, b.resolveLanguage)
}

// RequestUserID returns the signed-in user id, or empty for anonymous requests.
func (b Base) RequestUserID(r *http.Request) string {
	viewer := b.ResolveRequestViewer(r)
	if !viewer.SignedIn {
		return ""
	}
	return strings.TrimSpace(viewer.UserID)
}

// RequestLocaleTag returns the resolved language tag for the request.
func (b Base) RequestLocaleTag(r *http.Request) language.Tag {
	return webi18n.ResolveTag(r, b.resolveLanguage)
}

// WriteError renders a localized module error response. An unauthorized
// backend answer ends the session and sends the browser to the login page.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	if apperrors.Is(err, apperrors.KindUnauthorized) {
		if b.clearSession != nil {
			b.clearSession(w, r)
		}
		b.RedirectWithNotice(w, r, routepath.Login, flashnotice.Error("errors.session_expired"))
		return
	}
	weberror.WriteModuleError(w, r, err, b)
}

// WriteNotFound renders a 404 error page within the site layout.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, nil, b)
}

// WriteForbidden renders a 403 error page within the site layout.
func (b Base) WriteForbidden(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusForbidden, nil, b)
}

// WritePage renders a full page (HTMX-aware) with the given title and fragment.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, title string, statusCode int, fragment templ.Component) {
	if err := pagerender.WriteModulePage(w, r, b, pagerender.ModulePage{
		Title:      title,
		StatusCode: statusCode,
		Fragment:   fragment,
	}); err != nil {
		b.WriteError(w, r, err)
	}
}

// RedirectWithNotice stores a one-time notice and redirects.
func (b Base) RedirectWithNotice(w http.ResponseWriter, r *http.Request, location string, notice flashnotice.Notice) {
	flashnotice.Write(w, r, notice, b.policy)
	httpx.WriteRedirect(w, r, location)
}
