package users

import (
	"net/http"

	"github.com/meninasdigitais/eventos/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AppUsers, h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.UsersPrefix+"{$}", h.handleList)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppUsers, h.handleCreate)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppUsersNew, h.handleNew)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppUsersExport, h.handleExport)
	mux.HandleFunc(http.MethodGet+" "+routepath.UserEditPattern, h.handleEdit)
	mux.HandleFunc(http.MethodPost+" "+routepath.UserPattern, h.handleUpdate)
	mux.HandleFunc(http.MethodGet+" "+routepath.UserDeletePattern, h.handleDeleteConfirm)
	mux.HandleFunc(http.MethodPost+" "+routepath.UserDeletePattern, h.handleDelete)
	mux.HandleFunc(routepath.UsersPrefix, h.handleNotFound)
}
