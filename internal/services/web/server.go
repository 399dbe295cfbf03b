package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/meninasdigitais/eventos/internal/platform/timeouts"
	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
	"github.com/meninasdigitais/eventos/internal/services/web/modules/publicauth"
	"github.com/meninasdigitais/eventos/internal/services/web/platform/requestmeta"
	"github.com/meninasdigitais/eventos/internal/services/web/storage"
	"github.com/meninasdigitais/eventos/internal/services/web/storage/sqlite"
)

// Config defines the inputs for the web server.
type Config struct {
	HTTPAddr string
	// BackendURL is the events backend base URL, including the /v1 prefix.
	BackendURL     string
	BackendTimeout time.Duration
	SessionDBPath  string
	// SessionTTL applies when the backend token carries no expiry.
	SessionTTL time.Duration
	// Location is the display time zone. Nil means UTC.
	Location            *time.Location
	TrustForwardedProto bool
	LoginPerMinute      float64
	LoginBurst          int
}

// Server hosts the web HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	sessions   storage.SessionStore
	now        func() time.Time
}

// NewServer opens the session store, builds the backend client and composes
// the root handler.
func NewServer(ctx context.Context, config Config) (*Server, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if strings.TrimSpace(config.SessionDBPath) == "" {
		return nil, errors.New("session db path is required")
	}
	location := config.Location
	if location == nil {
		location = time.UTC
	}

	client, err := eventsapi.New(eventsapi.Options{
		BaseURL:  config.BackendURL,
		Timeout:  config.BackendTimeout,
		Location: location,
	})
	if err != nil {
		return nil, fmt.Errorf("init backend client: %w", err)
	}
	sessions, err := sqlite.Open(ctx, config.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	handler, err := newHandler(handlerDependencies{
		backend:  client,
		sessions: sessions,
		location: location,
		policy:   requestmeta.SchemePolicy{TrustForwardedProto: config.TrustForwardedProto},
		auth: publicauth.Options{
			SessionTTL:     config.SessionTTL,
			TrustForwarded: config.TrustForwardedProto,
			Limiter: publicauth.LimiterConfig{
				PerMinute: config.LoginPerMinute,
				Burst:     config.LoginBurst,
			},
		},
		logger: log.Default(),
	})
	if err != nil {
		if closeErr := sessions.Close(); closeErr != nil {
			log.Printf("close session store: %v", closeErr)
		}
		return nil, fmt.Errorf("build web handler: %w", err)
	}

	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		sessions: sessions,
		now:      time.Now,
	}, nil
}

// ListenAndServe serves HTTP traffic until the context is canceled or the
// server stops. Expired sessions are swept in the background meanwhile.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go sweepSessions(sweepCtx, s.sessions, s.now, timeouts.SessionSweep)

	serveErr := make(chan error, 1)
	log.Printf("web listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases the session store.
func (s *Server) Close() {
	if s == nil || s.sessions == nil {
		return
	}
	if err := s.sessions.Close(); err != nil {
		log.Printf("close session store: %v", err)
	}
}

type expiredSessionSweeper interface {
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// sweepSessions deletes expired sessions every interval until ctx ends.
func sweepSessions(ctx context.Context, store expiredSessionSweeper, now func() time.Time, interval time.Duration) {
	if store == nil || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := store.DeleteExpiredSessions(ctx, now())
			if err != nil {
				log.Printf("web: session sweep failed: err=%v", err)
				continue
			}
			if removed > 0 {
				log.Printf("web: session sweep removed=%d", removed)
			}
		}
	}
}
