package events

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	apperrors "github.com/meninasdigitais/eventos/internal/services/web/platform/errors"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/flash"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/httpx"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/publichandler"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/weberror"
	"github.com/meninasdigitais/eventos/internal/services/web/routepath"
	webtemplates "github.com/meninasdigitais/eventos/internal/services/web/templates"
)

type handlers struct {
	publichandler.Base
	service service
}

func newHandlers(s service, base publichandler.Base) handlers {
	return handlers{Base: base, service: s}
}

func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	view, err := h.service.list(r.Context(), h.ResolveRequestViewer(r), listQuery{
		Text: query.Get(routepath.EventsQueryParam),
		Type: query.Get(routepath.EventsTypeQueryParam),
	})
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	h.WritePage(w, r, webtemplates.T(loc, "events.list.title"), http.StatusOK, webtemplates.EventsPage(view, loc))
}

func (h handlers) handleDetail(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.detail(r.Context(), h.ResolveRequestViewer(r), r.PathValue("eventID"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.renderDetail(w, r, http.StatusOK, view)
}

func (h handlers) handleEnroll(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	viewer := h.ResolveRequestViewer(r)
	guest := webtemplates.GuestForm{
		Name:  strings.TrimSpace(r.FormValue("name")),
		Email: strings.TrimSpace(r.FormValue("email")),
		Phone: strings.TrimSpace(r.FormValue("phone")),
	}
	event, err := h.service.enroll(r.Context(), viewer, eventID, guest)
	if err != nil {
		if !inlineError(err) {
			h.WriteError(w, r, err)
			return
		}
		view, detailErr := h.service.detail(r.Context(), viewer, eventID)
		if detailErr != nil {
			h.WriteError(w, r, detailErr)
			return
		}
		view.Guest = guest
		view.EnrollError = weberror.MessageKey(err)
		h.renderDetail(w, r, apperrors.HTTPStatus(err), view)
		return
	}
	h.RedirectWithNotice(w, r, routepath.Event(event.ID), flash.Success("events.notice.enrolled", event.Title))
}

func (h handlers) handleCancel(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !h.requireSignIn(w, r, routepath.Event(eventID)) {
		return
	}
	back := backTo(r, eventID)
	if err := h.service.cancel(r.Context(), eventID); err != nil {
		if !inlineError(err) {
			h.WriteError(w, r, err)
			return
		}
		h.RedirectWithNotice(w, r, back, flash.Error(weberror.MessageKey(err)))
		return
	}
	h.RedirectWithNotice(w, r, back, flash.Success("events.notice.cancelled", ""))
}

func (h handlers) handleRate(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !h.requireSignIn(w, r, routepath.Event(eventID)) {
		return
	}
	viewer := h.ResolveRequestViewer(r)
	score, _ := strconv.Atoi(strings.TrimSpace(r.FormValue("score")))
	form := webtemplates.RatingForm{Score: score, Comment: strings.TrimSpace(r.FormValue("comment"))}
	back := backTo(r, eventID)
	if err := h.service.rate(r.Context(), viewer, eventID, form); err != nil {
		if !inlineError(err) {
			h.WriteError(w, r, err)
			return
		}
		if back != routepath.Event(eventID) || !apperrors.Is(err, apperrors.KindInvalidInput) {
			h.RedirectWithNotice(w, r, back, flash.Error(weberror.MessageKey(err)))
			return
		}
		view, detailErr := h.service.detail(r.Context(), viewer, eventID)
		if detailErr != nil {
			h.WriteError(w, r, detailErr)
			return
		}
		form.Error = weberror.MessageKey(err)
		view.Rating.Form = form
		h.renderDetail(w, r, apperrors.HTTPStatus(err), view)
		return
	}
	h.RedirectWithNotice(w, r, back, flash.Success("events.notice.rated", ""))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}

func (h handlers) renderDetail(w http.ResponseWriter, r *http.Request, status int, view webtemplates.EventDetailView) {
	loc, _ := h.PageLocalizer(w, r)
	h.WritePage(w, r, view.Event.Title, status, webtemplates.EventDetailPage(view, loc))
}

// requireSignIn sends anonymous viewers to the login page, returning to next
// after sign-in.
func (h handlers) requireSignIn(w http.ResponseWriter, r *http.Request, next string) bool {
	if h.IsViewerSignedIn(r) {
		return true
	}
	httpx.WriteRedirect(w, r, routepath.Login+"?next="+url.QueryEscape(next))
	return false
}

// inlineError reports whether err belongs next to the form rather than on an
// error page.
func inlineError(err error) bool {
	switch apperrors.KindOf(err) {
	case apperrors.KindInvalidInput, apperrors.KindConflict, apperrors.KindForbidden, apperrors.KindTooManyRequests:
		return true
	}
	return false
}

func backTo(r *http.Request, eventID string) string {
	if next := routepath.SafeNext(r.FormValue("next")); next != "" {
		return next
	}
	return routepath.Event(eventID)
}

