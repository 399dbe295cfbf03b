package statistics

import (
	"net/http"

	"github.com/meninasdigitais/eventos/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AppStatistics, h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.StatisticsPrefix+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppStatisticsReport, h.handleReport)
	mux.HandleFunc(routepath.StatisticsPrefix, h.handleNotFound)
}
