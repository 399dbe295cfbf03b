package public

import (
	"net/http"

	"github.com/meninasdigitais/eventos/internal/services/web/platform/publichandler"
	webtemplates "github.com/meninasdigitais/eventos/internal/services/web/templates"
)

type handlers struct {
	publichandler.Base
	service service
}

func newHandlers(s service, base publichandler.Base) handlers {
	return handlers{Base: base, service: s}
}

func (h handlers) handleHome(w http.ResponseWriter, r *http.Request) {
	loc, _ := h.PageLocalizer(w, r)
	view := h.service.home(r.Context(), h.ResolveRequestViewer(r))
	h.WritePage(w, r, webtemplates.T(loc, "core.page.home"), http.StatusOK, webtemplates.HomePage(view, loc))
}

func (h handlers) handleAbout(w http.ResponseWriter, r *http.Request) {
	loc, _ := h.PageLocalizer(w, r)
	h.WritePage(w, r, webtemplates.T(loc, "core.page.about"), http.StatusOK, webtemplates.AboutPage(loc))
}

func (handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}
