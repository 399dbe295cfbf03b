// Package i18n resolves the localizer used to render a web request.
package i18n

import (
	"net/http"
	"strings"

	"github.com/meninasdigitais/eventos/internal/services/shared/i18nhttp"
	module "github.com/meninasdigitais/eventos/internal/services/web/module"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ResolveLanguage is the default request language resolver.
func ResolveLanguage(r *http.Request) string {
	tag, _ := i18nhttp.ResolveTag(r)
	return tag.String()
}

// ResolveTag returns the request language. A resolver answer that maps onto a
// supported language wins; otherwise the request itself decides.
func ResolveTag(r *http.Request, resolve module.ResolveLanguage) language.Tag {
	if resolve != nil {
		if tag, ok := i18nhttp.ParseTag(resolve(r)); ok {
			return tag
		}
	}
	tag, _ := i18nhttp.ResolveTag(r)
	return tag
}

// ResolveLocalizer returns the printer and language tag for the request. An
// explicit lang query parameter is persisted in the language cookie.
func ResolveLocalizer(w http.ResponseWriter, r *http.Request, resolve module.ResolveLanguage) (*message.Printer, string) {
	tag := ResolveTag(r, resolve)
	if r != nil && r.URL != nil {
		if requested, ok := i18nhttp.ParseTag(r.URL.Query().Get(i18nhttp.LangParam)); ok && requested == tag {
			i18nhttp.SetLanguageCookie(w, tag)
		}
	}
	return i18nhttp.Printer(tag), tag.String()
}

// Translate renders key in the request language.
func Translate(r *http.Request, resolve module.ResolveLanguage, key string, args ...any) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	return i18nhttp.Printer(ResolveTag(r, resolve)).Sprintf(key, args...)
}
