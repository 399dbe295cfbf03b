// Package weberror renders shared error responses for web modules.
package weberror

import (
	"net/http"
	"strings"

	apperrors "github.com/meninasdigitais/eventos/internal/services/web/platform/errors"
	webi18n "github.com/meninasdigitais/eventos/internal/services/web/platform/i18n"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/pagerender"
	webtemplates "github.com/meninasdigitais/eventos/internal/services/web/templates"
)

// ShouldRenderAppError reports whether status should use the error page UX.
func ShouldRenderAppError(statusCode int) bool {
	return statusCode == http.StatusNotFound ||
		statusCode == http.StatusForbidden ||
		statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(loc webtemplates.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if loc != nil {
		if key := apperrors.LocalizationKey(err); key != "" {
			if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" {
				return localized
			}
		}
		if key := kindMessageKey(apperrors.KindOf(err)); key != "" {
			return loc.Sprintf(key)
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	if text := strings.TrimSpace(http.StatusText(statusCode)); text != "" {
		return text
	}
	return http.StatusText(http.StatusInternalServerError)
}

// MessageKey returns the catalog key describing err for inline form errors.
func MessageKey(err error) string {
	if err == nil {
		return ""
	}
	if key := apperrors.LocalizationKey(err); key != "" {
		return key
	}
	return kindMessageKey(apperrors.KindOf(err))
}

func kindMessageKey(kind apperrors.Kind) string {
	switch kind {
	case apperrors.KindInvalidInput:
		return "errors.invalid_input"
	case apperrors.KindUnauthorized:
		return "errors.session_expired"
	case apperrors.KindForbidden:
		return "errors.forbidden"
	case apperrors.KindUnavailable:
		return "errors.backend_unavailable"
	case apperrors.KindNotFound:
		return "errors.not_found"
	case apperrors.KindConflict:
		return "errors.conflict"
	case apperrors.KindTooManyRequests:
		return "errors.too_many_requests"
	}
	return "errors.unknown"
}

// View maps a status and its cause onto the error page.
func View(statusCode int, err error) webtemplates.ErrorView {
	view := webtemplates.ErrorView{Status: statusCode}
	switch {
	case statusCode == http.StatusNotFound:
		view.TitleKey, view.MessageKey = "errors.page.not_found_title", "errors.page.not_found_message"
	case statusCode == http.StatusForbidden:
		view.TitleKey, view.MessageKey = "errors.page.forbidden_title", "errors.forbidden"
	case statusCode == http.StatusMethodNotAllowed:
		view.TitleKey, view.MessageKey = "errors.page.method_not_allowed_title", "errors.invalid_input"
	case statusCode == http.StatusServiceUnavailable:
		view.TitleKey, view.MessageKey = "errors.page.unavailable_title", "errors.backend_unavailable"
	case statusCode >= http.StatusInternalServerError:
		view.TitleKey, view.MessageKey = "errors.page.server_title", "errors.unknown"
	default:
		view.TitleKey, view.MessageKey = "errors.page.bad_request_title", "errors.invalid_input"
	}
	if key := apperrors.LocalizationKey(err); key != "" && statusCode != http.StatusNotFound {
		view.MessageKey = key
	}
	return view
}

// WriteAppError writes a localized error page for full-page and HTMX requests.
func WriteAppError(w http.ResponseWriter, r *http.Request, statusCode int, err error, resolver pagerender.RequestResolver) {
	if w == nil {
		return
	}
	if !ShouldRenderAppError(statusCode) && statusCode != http.StatusMethodNotAllowed {
		statusCode = http.StatusInternalServerError
	}
	loc, _ := webi18n.ResolveLocalizer(w, r, languageResolver(resolver))
	view := View(statusCode, err)
	if renderErr := pagerender.WriteModulePage(w, r, resolver, pagerender.ModulePage{
		Title:      webtemplates.T(loc, view.TitleKey),
		StatusCode: statusCode,
		Fragment:   webtemplates.ErrorPage(view, loc),
	}); renderErr != nil {
		http.Error(w, PublicMessage(loc, renderErr), statusCode)
	}
}

// WriteModuleError writes a module-safe localized error response.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, resolver pagerender.RequestResolver) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if ShouldRenderAppError(statusCode) {
		WriteAppError(w, r, statusCode, err, resolver)
		return
	}
	loc, _ := webi18n.ResolveLocalizer(w, r, languageResolver(resolver))
	http.Error(w, PublicMessage(loc, err), statusCode)
}

func languageResolver(resolver pagerender.RequestResolver) func(*http.Request) string {
	if resolver == nil {
		return nil
	}
	return resolver.ResolveRequestLanguage
}
