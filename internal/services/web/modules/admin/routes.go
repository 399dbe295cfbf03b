package admin

import (
	"net/http"

	"github.com/meninasdigitais/eventos/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AppAdmin, h.handlePanel)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminPrefix+"{$}", h.handlePanel)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppAdminEvents, h.handleCreate)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminEventEditPattern, h.handleEdit)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminEventPattern, h.handleUpdate)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminEventDeletePattern, h.handleDelete)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminEventEnrollmentsPattern, h.handleEnrollments)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminEnrollmentCheckInPattern, h.handleCheckIn)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminEnrollmentDeletePattern, h.handleRemoveEnrollment)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminEventRatingsPattern, h.handleRatings)
	mux.HandleFunc(routepath.AdminPrefix, h.handleNotFound)
}
