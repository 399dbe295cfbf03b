package admin

import (
	"errors"
	"net/http"

	apperrors "github.com/meninasdigitais/eventos/internal/services/web/platform/errors"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/flash"
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

func (h handlers) handlePanel(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.panel(r.Context(), r.URL.Query().Get(routepath.AdminTabQueryParam))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.renderPanel(w, r, http.StatusOK, view)
}

func (h handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	form := formFromRequest(r)
	form.Action = routepath.AppAdminEvents
	event, err := h.service.create(r.Context(), form)
	if err != nil {
		status, ok := applyFormError(&form, err)
		if !ok {
			h.WriteError(w, r, err)
			return
		}
		view, panelErr := h.service.panel(r.Context(), routepath.AdminTabEvents)
		if panelErr != nil {
			h.WriteError(w, r, panelErr)
			return
		}
		view.Form = form
		h.renderPanel(w, r, status, view)
		return
	}
	h.RedirectWithNotice(w, r, routepath.AppAdmin, flash.Success("admin.notice.created", event.Title))
}

func (h handlers) handleEdit(w http.ResponseWriter, r *http.Request) {
	form, err := h.service.editForm(r.Context(), r.PathValue("eventID"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.renderEdit(w, r, http.StatusOK, form)
}

func (h handlers) handleUpdate(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	form := formFromRequest(r)
	form.Action = routepath.AdminEvent(eventID)
	form.Editing = true
	if _, err := h.service.update(r.Context(), eventID, form); err != nil {
		status, ok := applyFormError(&form, err)
		if !ok {
			h.WriteError(w, r, err)
			return
		}
		h.renderEdit(w, r, status, form)
		return
	}
	h.RedirectWithNotice(w, r, routepath.AppAdmin, flash.Success("admin.notice.updated", ""))
}

func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.delete(r.Context(), r.PathValue("eventID")); err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.RedirectWithNotice(w, r, routepath.AppAdmin, flash.Success("admin.notice.deleted", ""))
}

func (h handlers) handleEnrollments(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.enrollments(r.Context(), r.PathValue("eventID"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	title := webtemplates.T(loc, "admin.enrollments.event_title", view.Event.Title)
	h.WritePage(w, r, title, http.StatusOK, webtemplates.AdminEnrollmentsPage(view, loc))
}

func (h handlers) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if err := h.service.checkIn(r.Context(), eventID, r.PathValue("enrollmentID")); err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.RedirectWithNotice(w, r, routepath.AdminEventEnrollments(eventID), flash.Success("admin.notice.checked_in", ""))
}

func (h handlers) handleRemoveEnrollment(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if err := h.service.removeEnrollment(r.Context(), eventID, r.PathValue("enrollmentID")); err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.RedirectWithNotice(w, r, routepath.AdminEventEnrollments(eventID), flash.Success("admin.notice.enrollment_removed", ""))
}

func (h handlers) handleRatings(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.ratings(r.Context(), r.PathValue("eventID"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	title := webtemplates.T(loc, "admin.ratings.event_title", view.Event.Title)
	h.WritePage(w, r, title, http.StatusOK, webtemplates.AdminRatingsPage(view, loc))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}

func (h handlers) renderPanel(w http.ResponseWriter, r *http.Request, status int, view webtemplates.AdminView) {
	loc, _ := h.PageLocalizer(w, r)
	h.WritePage(w, r, webtemplates.T(loc, "admin.title"), status, webtemplates.AdminPage(view, loc))
}

func (h handlers) renderEdit(w http.ResponseWriter, r *http.Request, status int, form webtemplates.EventFormView) {
	loc, _ := h.PageLocalizer(w, r)
	h.WritePage(w, r, webtemplates.T(loc, "admin.form.edit_title"), status, webtemplates.AdminEventEditPage(form, loc))
}

// applyFormError records err on form when it belongs next to the fields and
// returns the status to answer with.
func applyFormError(form *webtemplates.EventFormView, err error) (int, bool) {
	var conflict conflictError
	switch {
	case errors.As(err, &conflict):
		form.ConflictWith = conflict.title
		return http.StatusConflict, true
	case apperrors.Is(err, apperrors.KindConflict):
		form.Error = "events.error.conflict"
		return http.StatusConflict, true
	case apperrors.Is(err, apperrors.KindInvalidInput):
		form.Error = weberror.MessageKey(err)
		return http.StatusBadRequest, true
	}
	return 0, false
}
