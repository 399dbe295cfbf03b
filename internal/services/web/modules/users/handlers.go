package users

import (
	"log"
	"net/http"

	apperrors "github.com/meninasdigitais/eventos/internal/services/web/platform/errors"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/flash"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/httpx"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/modulehandler"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/weberror"
	"github.com/meninasdigitais/eventos/internal/services/web/routepath"
	webtemplates "github.com/meninasdigitais/eventos/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, base modulehandler.Base) handlers {
	return handlers{Base: base, service: s}
}

func requestQuery(r *http.Request) listQuery {
	values := r.URL.Query()
	return queryFromValues(values.Get(routepath.UsersQueryParam), values.Get(routepath.UsersRoleQueryParam))
}

func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.page(r.Context(), requestQuery(r))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	h.WritePage(w, r, webtemplates.T(loc, "users.title"), http.StatusOK, webtemplates.UsersPage(view, loc))
}

func (h handlers) handleExport(w http.ResponseWriter, r *http.Request) {
	name, body, err := h.service.export(r.Context(), requestQuery(r))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	if err := httpx.WriteDownload(w, name, "text/csv; charset=utf-8", body); err != nil {
		log.Printf("web: user export failed: file=%s err=%v", name, err)
	}
}

func (h handlers) handleNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, newUserForm())
}

func (h handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	form, password := formFromRequest(r)
	form.Action = routepath.AppUsers
	user, err := h.service.create(r.Context(), form, password)
	if err != nil {
		h.formError(w, r, form, err)
		return
	}
	h.RedirectWithNotice(w, r, routepath.AppUsers, flash.Success("users.notice.created", user.Name))
}

func (h handlers) handleEdit(w http.ResponseWriter, r *http.Request) {
	form, err := h.service.editForm(r.Context(), r.PathValue("userID"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.renderForm(w, r, http.StatusOK, form)
}

func (h handlers) handleUpdate(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	form, password := formFromRequest(r)
	form.Action = routepath.User(userID)
	form.Editing = true
	if _, err := h.service.update(r.Context(), userID, form, password); err != nil {
		h.formError(w, r, form, err)
		return
	}
	h.RedirectWithNotice(w, r, routepath.AppUsers, flash.Success("users.notice.updated", ""))
}

func (h handlers) handleDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.find(r.Context(), r.PathValue("userID"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	h.WritePage(w, r, webtemplates.T(loc, "users.delete.title"), http.StatusOK, webtemplates.UserDeletePage(webtemplates.UserDeleteView{User: user}, loc))
}

func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.delete(r.Context(), r.PathValue("userID")); err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.RedirectWithNotice(w, r, routepath.AppUsers, flash.Success("users.notice.deleted", ""))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}

// formError re-renders form with err inline when the user can fix it.
func (h handlers) formError(w http.ResponseWriter, r *http.Request, form webtemplates.UserFormView, err error) {
	switch apperrors.KindOf(err) {
	case apperrors.KindInvalidInput, apperrors.KindConflict:
		form.Error = weberror.MessageKey(err)
		h.renderForm(w, r, apperrors.HTTPStatus(err), form)
	default:
		h.WriteError(w, r, err)
	}
}

func (h handlers) renderForm(w http.ResponseWriter, r *http.Request, status int, form webtemplates.UserFormView) {
	loc, _ := h.PageLocalizer(w, r)
	titleKey := "users.form.new_title"
	if form.Editing {
		titleKey = "users.form.edit_title"
	}
	h.WritePage(w, r, webtemplates.T(loc, titleKey), status, webtemplates.UserFormPage(form, loc))
}
