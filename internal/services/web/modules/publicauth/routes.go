package publicauth

import (
	"net/http"

	"github.com/meninasdigitais/eventos/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Login, h.handleLoginPage)
	mux.HandleFunc(http.MethodPost+" "+routepath.Login, h.handleLogin)
	mux.HandleFunc(http.MethodGet+" "+routepath.Signup, h.handleSignupPage)
	mux.HandleFunc(http.MethodPost+" "+routepath.Signup, h.handleSignup)
	mux.HandleFunc(http.MethodGet+" "+routepath.Reset, h.handleResetPage)
	mux.HandleFunc(http.MethodPost+" "+routepath.Reset, h.handlePasswordReset)
	mux.HandleFunc(http.MethodPost+" "+routepath.Logout, h.handleLogout)
}
