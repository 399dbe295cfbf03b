package dashboard

import (
	"net/http"

	"github.com/meninasdigitais/eventos/internal/services/web/platform/modulehandler"
	webtemplates "github.com/meninasdigitais/eventos/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, base modulehandler.Base) handlers {
	return handlers{Base: base, service: s}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.load(r.Context(), h.ResolveRequestViewer(r))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	h.WritePage(w, r, webtemplates.T(loc, "dashboard.title"), http.StatusOK, webtemplates.DashboardPage(view, loc))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}
