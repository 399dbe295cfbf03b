// Package publichandler provides a shared base for web handlers that serve
// anonymous visitors as well as signed-in viewers.
package publichandler

import (
	"net/http"

	module "github.com/meninasdigitais/eventos/internal/services/web/module"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/modulehandler"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/requestmeta"
)

// Base provides shared error handling and page rendering for public modules.
type Base struct {
	modulehandler.Base
}

// Option configures a Base.
type Option func(*modulehandler.Resolvers)

// WithResolveViewer attaches a viewer resolver for chrome rendering.
func WithResolveViewer(rv module.ResolveViewer) Option {
	return func(r *modulehandler.Resolvers) { r.ResolveViewer = rv }
}

// WithResolveLanguage attaches a language resolver.
func WithResolveLanguage(rl module.ResolveLanguage) Option {
	return func(r *modulehandler.Resolvers) { r.ResolveLanguage = rl }
}

// WithClearSession attaches the hook that ends a stale session.
func WithClearSession(clear module.ClearSession) Option {
	return func(r *modulehandler.Resolvers) { r.ClearSession = clear }
}

// WithSchemePolicy sets the cookie security policy.
func WithSchemePolicy(policy requestmeta.SchemePolicy) Option {
	return func(r *modulehandler.Resolvers) { r.SchemePolicy = policy }
}

// WithResolvers copies every resolver at once.
func WithResolvers(resolvers modulehandler.Resolvers) Option {
	return func(r *modulehandler.Resolvers) { *r = resolvers }
}

// NewBase builds a public handler base with the given options.
func NewBase(opts ...Option) Base {
	var resolvers modulehandler.Resolvers
	for _, o := range opts {
		if o != nil {
			o(&resolvers)
		}
	}
	return Base{Base: modulehandler.NewBase(resolvers)}
}

// IsViewerSignedIn reports whether the current request is authenticated.
func (b Base) IsViewerSignedIn(r *http.Request) bool {
	return b.ResolveRequestViewer(r).SignedIn
}
