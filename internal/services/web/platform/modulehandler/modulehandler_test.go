package modulehandler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
	module "github.com/meninasdigitais/eventos/internal/services/web/module"
	apperrors "github.com/meninasdigitais/eventos/internal/services/web/platform/errors"
	flashnotice "github.com/meninasdigitais/eventos/internal/services/web/platform/flash"
	"github.com/meninasdigitais/eventos/internal/services/web/routepath"
	webtemplates "github.com/meninasdigitais/eventos/internal/services/web/templates"
)

func TestNewBaseExtractsResolvers(t *testing.T) {
	t.Parallel()

	base := NewBase(Resolvers{
		ResolveViewer: func(*http.Request) module.Viewer {
			return module.Viewer{SignedIn: true, UserID: " 7 ", Name: "Ana", Role: eventsapi.RoleOrganizer}
		},
		ResolveLanguage: func(*http.Request) string { return "en-US" },
	})
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	if got := base.RequestUserID(r); got != "7" {
		t.Fatalf("RequestUserID() = %q, want %q", got, "7")
	}
	if got := base.ResolveRequestLanguage(r); got != "en-US" {
		t.Fatalf("ResolveRequestLanguage() = %q, want %q", got, "en-US")
	}
	if got := base.RequestLocaleTag(r).String(); got != "en-US" {
		t.Fatalf("RequestLocaleTag() = %q, want %q", got, "en-US")
	}
	if got := base.ResolveRequestViewer(r); got.Name != "Ana" {
		t.Fatalf("ResolveRequestViewer() = %+v, want Name=Ana", got)
	}
}

func TestRequestUserIDIsEmptyForAnonymousViewer(t *testing.T) {
	t.Parallel()

	base := NewBase(Resolvers{ResolveViewer: func(*http.Request) module.Viewer {
		return module.Viewer{UserID: "7"}
	}})
	if got := base.RequestUserID(httptest.NewRequest(http.MethodGet, "/", nil)); got != "" {
		t.Fatalf("RequestUserID() = %q, want empty", got)
	}
}

func TestResolveRequestViewerReturnsZeroWhenNil(t *testing.T) {
	t.Parallel()

	base := NewBase(Resolvers{})
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := base.ResolveRequestViewer(r); got != (module.Viewer{}) {
		t.Fatalf("ResolveRequestViewer() = %+v, want zero Viewer", got)
	}
}

func TestWriteErrorUnauthorizedClearsSessionAndRedirects(t *testing.T) {
	t.Parallel()

	cleared := false
	base := NewBase(Resolvers{ClearSession: func(http.ResponseWriter, *http.Request) { cleared = true }})
	req := httptest.NewRequest(http.MethodGet, routepath.AppDashboard, nil)
	rr := httptest.NewRecorder()
	base.WriteError(rr, req, apperrors.E(apperrors.KindUnauthorized, "token expired"))

	if !cleared {
		t.Fatalf("expected session to be cleared")
	}
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
	}
	if got := rr.Header().Get("Location"); got != routepath.Login {
		t.Fatalf("Location = %q, want %q", got, routepath.Login)
	}
	if got := rr.Header().Get("Set-Cookie"); !strings.Contains(got, flashnotice.CookieName+"=") {
		t.Fatalf("Set-Cookie = %q, want flash notice", got)
	}
}

func TestWriteErrorUnauthorizedHTMXUsesHXRedirect(t *testing.T) {
	t.Parallel()

	base := NewTestBase()
	req := httptest.NewRequest(http.MethodPost, "/events/1/cancel", nil)
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()
	base.WriteError(rr, req, apperrors.E(apperrors.KindUnauthorized, "expired"))
	if got := rr.Header().Get("HX-Redirect"); got != routepath.Login {
		t.Fatalf("HX-Redirect = %q, want %q", got, routepath.Login)
	}
}

func TestWriteNotFoundRendersErrorPage(t *testing.T) {
	t.Parallel()

	base := NewTestBase()
	rr := httptest.NewRecorder()
	base.WriteNotFound(rr, httptest.NewRequest(http.MethodGet, "/app/dashboard/missing", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if !strings.Contains(rr.Body.String(), `class="error-page"`) {
		t.Fatalf("body missing error page: %q", rr.Body.String())
	}
}

func TestWriteForbiddenRendersErrorPage(t *testing.T) {
	t.Parallel()

	base := NewTestBase()
	rr := httptest.NewRecorder()
	base.WriteForbidden(rr, httptest.NewRequest(http.MethodGet, routepath.AppAdmin, nil))
	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusForbidden)
	}
	if !strings.Contains(rr.Body.String(), "Acesso negado") {
		t.Fatalf("body missing forbidden title: %q", rr.Body.String())
	}
}

func TestWritePageUsesLocalizedLayout(t *testing.T) {
	t.Parallel()

	base := NewBase(Resolvers{ResolveLanguage: func(*http.Request) string { return "en-US" }})
	req := httptest.NewRequest(http.MethodGet, routepath.About, nil)
	rr := httptest.NewRecorder()
	loc, _ := base.PageLocalizer(rr, req)
	base.WritePage(rr, req, "About", http.StatusOK, webtemplates.AboutPage(loc))
	body := rr.Body.String()
	if !strings.Contains(body, `lang="en-US"`) || !strings.Contains(body, "<title>About | ") {
		t.Fatalf("body = %q, want English layout", body)
	}
}

func TestRedirectWithNotice(t *testing.T) {
	t.Parallel()

	base := NewTestBase()
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rr := httptest.NewRecorder()
	base.RedirectWithNotice(rr, req, routepath.Root, flashnotice.Info("auth.notice.signed_out"))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if got := rr.Header().Get("Location"); got != routepath.Root {
		t.Fatalf("Location = %q, want %q", got, routepath.Root)
	}
}
