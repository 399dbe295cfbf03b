package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
	module "github.com/meninasdigitais/eventos/internal/services/web/module"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/webctx"
)

func TestBuildRootHandlerResolvesViewerFromContextByDefault(t *testing.T) {
	t.Parallel()

	h, err := BuildRootHandler(Config{
		StaffModules: []module.Module{
			stubModule{id: "admin", mount: module.Mount{Prefix: "/app/admin/", Handler: noContent()}},
		},
	})
	if err != nil {
		t.Fatalf("BuildRootHandler() error = %v", err)
	}

	blocked := httptest.NewRecorder()
	h.ServeHTTP(blocked, httptest.NewRequest(http.MethodGet, "/app/admin/", nil))
	if blocked.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", blocked.Code, http.StatusFound)
	}

	req := httptest.NewRequest(http.MethodGet, "/app/admin/", nil)
	req = req.WithContext(webctx.WithViewer(req.Context(), module.Viewer{SignedIn: true, Role: eventsapi.RoleAdmin}))
	allowed := httptest.NewRecorder()
	h.ServeHTTP(allowed, req)
	if allowed.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", allowed.Code, http.StatusNoContent)
	}
}
