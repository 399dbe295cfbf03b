package statistics

import (
	"log"
	"net/http"

	"github.com/meninasdigitais/eventos/internal/services/web/platform/httpx"
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
	view, err := h.service.view(r.Context())
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	h.WritePage(w, r, webtemplates.T(loc, "statistics.title"), http.StatusOK, webtemplates.StatisticsPage(view, loc))
}

func (h handlers) handleReport(w http.ResponseWriter, r *http.Request) {
	name, body, err := h.service.report(r.Context())
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	if err := httpx.WriteDownload(w, name, "text/plain; charset=utf-8", body); err != nil {
		log.Printf("web: statistics report failed: file=%s err=%v", name, err)
	}
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}
