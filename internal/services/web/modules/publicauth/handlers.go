package publicauth

import (
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/meninasdigitais/eventos/internal/services/web/platform/errors"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/flash"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/httpx"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/publichandler"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/sessioncookie"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/weberror"
	"github.com/meninasdigitais/eventos/internal/services/web/routepath"
	"github.com/meninasdigitais/eventos/internal/services/web/storage"
	webtemplates "github.com/meninasdigitais/eventos/internal/services/web/templates"
)

const nextParam = "next"

type handlers struct {
	publichandler.Base
	service        service
	limiter        *loginLimiter
	trustForwarded bool
}

func newHandlers(s service, base publichandler.Base, limiter *loginLimiter, trustForwarded bool) handlers {
	return handlers{Base: base, service: s, limiter: limiter, trustForwarded: trustForwarded}
}

func (h handlers) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderEntry(w, r, r.URL.Query().Get("tab"))
}

func (h handlers) handleSignupPage(w http.ResponseWriter, r *http.Request) {
	h.renderEntry(w, r, webtemplates.AuthTabSignup)
}

func (h handlers) handleResetPage(w http.ResponseWriter, r *http.Request) {
	h.renderEntry(w, r, webtemplates.AuthTabReset)
}

func (h handlers) renderEntry(w http.ResponseWriter, r *http.Request, tab string) {
	next := r.URL.Query().Get(nextParam)
	if h.IsViewerSignedIn(r) {
		httpx.WriteRedirect(w, r, resolveAppRedirectPath(next))
		return
	}
	h.renderAuth(w, r, http.StatusOK, webtemplates.AuthView{Tab: normalizeTab(tab), Next: routepath.SafeNext(next)})
}

func (h handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r) {
		h.renderAuth(w, r, http.StatusTooManyRequests, webtemplates.AuthView{
			Tab:   webtemplates.AuthTabLogin,
			Login: webtemplates.LoginForm{Email: r.FormValue("email"), Error: "auth.error.throttled"},
		})
		return
	}
	in := credentials{Email: r.FormValue("email"), Password: r.FormValue("password")}
	session, err := h.service.signIn(r.Context(), in)
	if err != nil {
		h.renderAuth(w, r, apperrors.HTTPStatus(err), webtemplates.AuthView{
			Tab:   webtemplates.AuthTabLogin,
			Next:  routepath.SafeNext(r.FormValue(nextParam)),
			Login: webtemplates.LoginForm{Email: strings.TrimSpace(in.Email), Error: weberror.MessageKey(err)},
		})
		return
	}
	h.startSession(w, r, session, "auth.notice.signed_in")
}

func (h handlers) handleSignup(w http.ResponseWriter, r *http.Request) {
	in := signup{
		Name:            r.FormValue("name"),
		Email:           r.FormValue("email"),
		Phone:           r.FormValue("phone"),
		Password:        r.FormValue("password"),
		PasswordConfirm: r.FormValue("password_confirm"),
	}
	form := webtemplates.SignupForm{Name: strings.TrimSpace(in.Name), Email: strings.TrimSpace(in.Email), Phone: strings.TrimSpace(in.Phone)}
	if !h.allow(w, r) {
		form.Error = "auth.error.throttled"
		h.renderAuth(w, r, http.StatusTooManyRequests, webtemplates.AuthView{Tab: webtemplates.AuthTabSignup, Signup: form})
		return
	}
	session, err := h.service.signUp(r.Context(), in)
	if err != nil {
		form.Error = weberror.MessageKey(err)
		h.renderAuth(w, r, apperrors.HTTPStatus(err), webtemplates.AuthView{
			Tab:    webtemplates.AuthTabSignup,
			Next:   routepath.SafeNext(r.FormValue(nextParam)),
			Signup: form,
		})
		return
	}
	h.startSession(w, r, session, "auth.notice.signed_up")
}

func (h handlers) handlePasswordReset(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	if !h.allow(w, r) {
		h.renderAuth(w, r, http.StatusTooManyRequests, webtemplates.AuthView{
			Tab:   webtemplates.AuthTabReset,
			Reset: webtemplates.ResetForm{Email: email, Error: "auth.error.throttled"},
		})
		return
	}
	if err := h.service.requestReset(r.Context(), email); err != nil {
		h.renderAuth(w, r, apperrors.HTTPStatus(err), webtemplates.AuthView{
			Tab:   webtemplates.AuthTabReset,
			Reset: webtemplates.ResetForm{Email: email, Error: weberror.MessageKey(err)},
		})
		return
	}
	h.RedirectWithNotice(w, r, routepath.Login, flash.Info("auth.notice.reset_sent"))
}

func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sessionID, ok := sessioncookie.Read(r); ok {
		h.service.signOut(r.Context(), sessionID)
	}
	sessioncookie.Clear(w, r, h.RequestSchemePolicy())
	h.RedirectWithNotice(w, r, routepath.Root, flash.Info("auth.notice.signed_out"))
}

func (h handlers) startSession(w http.ResponseWriter, r *http.Request, session storage.Session, noticeKey string) {
	sessioncookie.Write(w, r, session.ID, session.ExpiresAt, h.RequestSchemePolicy())
	name := strings.TrimSpace(session.UserName)
	if name == "" {
		name = session.UserEmail
	}
	h.RedirectWithNotice(w, r, resolveAppRedirectPath(r.FormValue(nextParam)), flash.Success(noticeKey, name))
}

func (h handlers) allow(w http.ResponseWriter, r *http.Request) bool {
	if h.limiter.allow(httpx.ClientAddress(r, h.trustForwarded)) {
		return true
	}
	if seconds := h.limiter.retryAfter(); seconds > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}
	return false
}

func (h handlers) renderAuth(w http.ResponseWriter, r *http.Request, status int, view webtemplates.AuthView) {
	loc, _ := h.PageLocalizer(w, r)
	h.WritePage(w, r, webtemplates.T(loc, "auth.title"), status, webtemplates.AuthPage(view, loc))
}

func normalizeTab(raw string) string {
	switch strings.TrimSpace(raw) {
	case webtemplates.AuthTabSignup:
		return webtemplates.AuthTabSignup
	case webtemplates.AuthTabReset:
		return webtemplates.AuthTabReset
	}
	return webtemplates.AuthTabLogin
}

// resolveAppRedirectPath returns a safe local destination after sign-in.
// Anything that is not an app or event page falls back to the dashboard.
func resolveAppRedirectPath(raw string) string {
	if next := routepath.SafeNext(raw); next != "" {
		return next
	}
	return routepath.AppDashboard
}
