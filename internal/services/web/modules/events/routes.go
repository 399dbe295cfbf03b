package events

import (
	"net/http"

	"github.com/meninasdigitais/eventos/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Events, h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.EventsPrefix+"{$}", h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.EventPattern, h.handleDetail)
	mux.HandleFunc(http.MethodPost+" "+routepath.EventEnrollPattern, h.handleEnroll)
	mux.HandleFunc(http.MethodPost+" "+routepath.EventCancelPattern, h.handleCancel)
	mux.HandleFunc(http.MethodPost+" "+routepath.EventRatePattern, h.handleRate)
	mux.HandleFunc(routepath.EventRestPattern, h.handleNotFound)
}
