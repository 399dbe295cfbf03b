package app

import (
	"fmt"
	"net/http"
	"strings"

	module "github.com/meninasdigitais/eventos/internal/services/web/module"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/httpx"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/requestmeta"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/sessioncookie"
	"github.com/meninasdigitais/eventos/internal/services/web/routepath"
)

const defaultLoginPath = routepath.Login

// access is the minimum viewer standing a module group requires.
type access int

const (
	accessPublic access = iota
	accessSignedIn
	accessStaff
	accessAdmin
)

func (a access) String() string {
	switch a {
	case accessSignedIn:
		return "protected"
	case accessStaff:
		return "staff"
	case accessAdmin:
		return "admin"
	}
	return "public"
}

// ComposeInput carries module groups and shared composition contracts.
type ComposeInput struct {
	ResolveViewer       module.ResolveViewer
	PublicModules       []module.Module
	ProtectedModules    []module.Module
	StaffModules        []module.Module
	AdminModules        []module.Module
	RequestSchemePolicy requestmeta.SchemePolicy
	// Forbidden answers signed-in viewers whose role is too low.
	Forbidden http.Handler
	// Rejected answers cookie-authenticated mutations without same-origin proof.
	Rejected http.Handler
}

// Compose builds a root HTTP handler from module groups.
func Compose(input ComposeInput) (http.Handler, error) {
	root := http.NewServeMux()
	if input.ResolveViewer == nil {
		input.ResolveViewer = func(*http.Request) module.Viewer { return module.Viewer{} }
	}
	if input.Forbidden == nil {
		input.Forbidden = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		})
	}
	if input.Rejected == nil {
		input.Rejected = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		})
	}
	seen := make(map[string]string)

	groups := []struct {
		level   access
		modules []module.Module
	}{
		{level: accessPublic, modules: input.PublicModules},
		{level: accessSignedIn, modules: input.ProtectedModules},
		{level: accessStaff, modules: input.StaffModules},
		{level: accessAdmin, modules: input.AdminModules},
	}
	for _, group := range groups {
		wrap := wrapModule(input, group.level)
		for _, feature := range group.modules {
			if feature == nil {
				return nil, fmt.Errorf("%s module is nil", group.level)
			}
			if err := mountGroupModule(root, feature, group.level, seen, wrap); err != nil {
				return nil, err
			}
		}
	}

	return root, nil
}

func mountGroupModule(root *http.ServeMux, feature module.Module, level access, seen map[string]string, wrap func(http.Handler) http.Handler) error {
	mount, err := resolveMount(feature)
	if err != nil {
		return err
	}
	patterns := append([]string(nil), mount.Paths...)
	if mount.Prefix != "" {
		patterns = append(patterns, mount.Prefix)
	}
	for _, pattern := range patterns {
		if err := checkGroupPattern(feature, level, pattern); err != nil {
			return err
		}
	}
	if level != accessPublic {
		if alias := protectedSlashlessPrefixAlias(mount.Prefix); alias != "" {
			patterns = append(patterns, alias)
		}
	}
	handler := wrap(mount.Handler)
	for _, pattern := range patterns {
		if previous, ok := seen[pattern]; ok {
			return fmt.Errorf("module %q duplicates route %q owned by module %q", feature.ID(), pattern, previous)
		}
		seen[pattern] = feature.ID()
		root.Handle(pattern, handler)
	}
	return nil
}

func checkGroupPattern(feature module.Module, level access, pattern string) error {
	switch level {
	case accessPublic:
		if isProtectedPath(pattern) {
			return fmt.Errorf("module %q has protected route %q in public group", feature.ID(), pattern)
		}
	case accessSignedIn:
		if !isProtectedPath(pattern) {
			return fmt.Errorf("module %q must mount under %s, got %q", feature.ID(), routepath.AppPrefix, pattern)
		}
	default:
		if !strings.HasPrefix(pattern, routepath.AdminPrefix) {
			return fmt.Errorf("module %q must mount under %s, got %q", feature.ID(), routepath.AdminPrefix, pattern)
		}
	}
	return nil
}

func isProtectedPath(path string) bool {
	return strings.HasPrefix(path, routepath.AppPrefix) || path == strings.TrimSuffix(routepath.AppPrefix, "/")
}

func resolveMount(feature module.Module) (module.Mount, error) {
	if feature == nil {
		return module.Mount{}, fmt.Errorf("module is nil")
	}
	mount, err := feature.Mount()
	if err != nil {
		return module.Mount{}, fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	if mount.Prefix != "" {
		if err := validatePrefix(mount.Prefix); err != nil {
			return module.Mount{}, fmt.Errorf("mount module %q has invalid prefix %q: %w", feature.ID(), mount.Prefix, err)
		}
	}
	for _, path := range mount.Paths {
		if err := validatePath(path); err != nil {
			return module.Mount{}, fmt.Errorf("mount module %q has invalid path %q: %w", feature.ID(), path, err)
		}
	}
	if mount.Prefix == "" && len(mount.Paths) == 0 {
		return module.Mount{}, fmt.Errorf("mount module %q: prefix or paths are required", feature.ID())
	}
	if mount.Handler == nil {
		return module.Mount{}, fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	return mount, nil
}

func validatePrefix(prefix string) error {
	if strings.TrimSpace(prefix) != prefix {
		return fmt.Errorf("prefix must not include surrounding whitespace")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("prefix must begin with /")
	}
	if !strings.HasSuffix(prefix, "/") {
		return fmt.Errorf("prefix must end with /")
	}
	return nil
}

func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path is required")
	}
	if strings.TrimSpace(path) != path {
		return fmt.Errorf("path must not include surrounding whitespace")
	}
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("path must begin with /")
	}
	if path != "/" && strings.HasSuffix(path, "/") {
		return fmt.Errorf("path must not end with /")
	}
	return nil
}

func protectedSlashlessPrefixAlias(prefix string) string {
	if !isProtectedPath(prefix) || !strings.HasSuffix(prefix, "/") {
		return ""
	}
	return strings.TrimSuffix(prefix, "/")
}

func wrapModule(input ComposeInput, level access) func(http.Handler) http.Handler {
	csrfWrap := requireCookieSessionSameOrigin(input.RequestSchemePolicy, input.Rejected)
	if level == accessPublic {
		return csrfWrap
	}
	accessWrap := requireAccess(input.ResolveViewer, level, input.Forbidden)
	return func(next http.Handler) http.Handler {
		return accessWrap(csrfWrap(next))
	}
}

func requireAccess(resolve module.ResolveViewer, level access, forbidden http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			return http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			viewer := resolve(r)
			if !viewer.SignedIn {
				httpx.WriteRedirect(w, r, defaultLoginPath)
				return
			}
			if !allowed(viewer, level) {
				forbidden.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func allowed(viewer module.Viewer, level access) bool {
	switch level {
	case accessStaff:
		return viewer.Staff()
	case accessAdmin:
		return viewer.Admin()
	}
	return viewer.SignedIn
}

func requireCookieSessionSameOrigin(policy requestmeta.SchemePolicy, rejected http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isMutationMethod(r) || !hasSessionCookie(r) {
				next.ServeHTTP(w, r)
				return
			}
			if !requestmeta.HasSameOriginProof(r, policy) {
				rejected.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isMutationMethod(r *http.Request) bool {
	if r == nil {
		return false
	}
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

func hasSessionCookie(r *http.Request) bool {
	_, ok := sessioncookie.Read(r)
	return ok
}
