// Package module defines the feature contract used by web composition.
package module

import (
	"net/http"
	"strings"

	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
)

// Viewer is the signed-in state of a request.
type Viewer struct {
	SignedIn bool
	UserID   string
	Name     string
	Email    string
	Role     eventsapi.Role
}

// Staff reports whether the viewer may manage events.
func (v Viewer) Staff() bool {
	return v.SignedIn && v.Role.Staff()
}

// Admin reports whether the viewer may manage users.
func (v Viewer) Admin() bool {
	return v.SignedIn && v.Role == eventsapi.RoleAdmin
}

// DisplayName returns the name shown in page chrome.
func (v Viewer) DisplayName() string {
	if name := strings.TrimSpace(v.Name); name != "" {
		return name
	}
	return strings.TrimSpace(v.Email)
}

// ResolveViewer resolves the viewer of a request.
type ResolveViewer func(*http.Request) Viewer

// ResolveLanguage returns the effective request language.
type ResolveLanguage func(*http.Request) string

// ClearSession ends the session attached to a request.
type ClearSession func(http.ResponseWriter, *http.Request)

// Mount describes a module route mount. Prefix claims a subtree and Paths
// claim exact paths; a mount needs at least one of them.
type Mount struct {
	Prefix  string
	Paths   []string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}

// HealthReporter is an optional interface for modules that can report their
// operational availability.
type HealthReporter interface {
	Healthy() bool
}
