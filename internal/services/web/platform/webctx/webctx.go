// Package webctx provides shared web request context helpers.
package webctx

import (
	"context"
	"net/http"

	module "github.com/meninasdigitais/eventos/internal/services/web/module"
)

type viewerKey struct{}

// WithViewer returns ctx carrying the resolved viewer.
func WithViewer(ctx context.Context, viewer module.Viewer) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, viewerKey{}, viewer)
}

// Viewer returns the viewer stored in ctx, or an anonymous viewer.
func Viewer(ctx context.Context) module.Viewer {
	if ctx == nil {
		return module.Viewer{}
	}
	viewer, _ := ctx.Value(viewerKey{}).(module.Viewer)
	return viewer
}

// RequestViewer resolves the viewer attached to r.
func RequestViewer(r *http.Request) module.Viewer {
	if r == nil {
		return module.Viewer{}
	}
	return Viewer(r.Context())
}
