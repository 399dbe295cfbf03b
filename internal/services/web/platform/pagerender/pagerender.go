// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/meninasdigitais/eventos/internal/services/shared/i18nhttp"
	module "github.com/meninasdigitais/eventos/internal/services/web/module"
	flashnotice "github.com/meninasdigitais/eventos/internal/services/web/platform/flash"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/httpx"
	webi18n "github.com/meninasdigitais/eventos/internal/services/web/platform/i18n"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/requestmeta"
	webtemplates "github.com/meninasdigitais/eventos/internal/services/web/templates"
)

// RequestResolver resolves viewer, language and cookie policy from a request.
// This decouples platform rendering from module handler bases.
type RequestResolver interface {
	ResolveRequestViewer(r *http.Request) module.Viewer
	ResolveRequestLanguage(r *http.Request) string
	RequestSchemePolicy() requestmeta.SchemePolicy
}

// ModulePage describes a page response for both full-page and HTMX flows.
type ModulePage struct {
	Title      string
	StatusCode int
	Fragment   templ.Component
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WriteModulePage writes a page inside the site layout. HTMX requests get the
// fragment alone and leave any pending flash notice for the next full page.
func WriteModulePage(w http.ResponseWriter, r *http.Request, resolver RequestResolver, page ModulePage) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = emptyComponent{}
	}

	var resolveLanguage module.ResolveLanguage
	var policy requestmeta.SchemePolicy
	viewer := module.Viewer{}
	if resolver != nil {
		resolveLanguage = resolver.ResolveRequestLanguage
		policy = resolver.RequestSchemePolicy()
		viewer = resolver.ResolveRequestViewer(r)
	}
	loc, lang := webi18n.ResolveLocalizer(w, r, resolveLanguage)
	ctx := httpx.RequestContext(r)

	var buf bytes.Buffer
	if httpx.IsHTMXRequest(r) {
		if err := fragment.Render(ctx, &buf); err != nil {
			return err
		}
		return writeHTML(w, statusCode, buf.Bytes())
	}

	chrome := webtemplates.Chrome{
		Title:     page.Title,
		Lang:      lang,
		Path:      requestPath(r),
		Viewer:    ViewerChrome(viewer),
		Languages: languageOptions(r, lang),
		Notice:    resolveFlashToast(w, r, loc, policy),
	}
	if err := webtemplates.Layout(chrome, loc).Render(templ.WithChildren(ctx, fragment), &buf); err != nil {
		return err
	}
	return writeHTML(w, statusCode, buf.Bytes())
}

// ViewerChrome maps a viewer onto the navbar state.
func ViewerChrome(viewer module.Viewer) webtemplates.ViewerChrome {
	return webtemplates.ViewerChrome{
		SignedIn: viewer.SignedIn,
		Name:     viewer.DisplayName(),
		Staff:    viewer.Staff(),
		Admin:    viewer.Admin(),
	}
}

func writeHTML(w http.ResponseWriter, statusCode int, body []byte) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, err := w.Write(body)
	return err
}

func requestPath(r *http.Request) string {
	if r == nil || r.URL == nil {
		return "/"
	}
	return r.URL.Path
}

func languageOptions(r *http.Request, lang string) []i18nhttp.LanguageOption {
	tag, _ := i18nhttp.ParseTag(lang)
	return i18nhttp.LanguageOptions(r, tag)
}

func resolveFlashToast(w http.ResponseWriter, r *http.Request, loc webtemplates.Localizer, policy requestmeta.SchemePolicy) *webtemplates.Notice {
	notice, ok := flashnotice.ReadAndClear(w, r, policy)
	if !ok {
		return nil
	}
	var message string
	if notice.Arg != "" {
		message = webtemplates.T(loc, notice.Key, notice.Arg)
	} else {
		message = webtemplates.T(loc, notice.Key)
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil
	}
	return &webtemplates.Notice{
		Kind:    string(notice.Kind),
		Message: message,
	}
}
