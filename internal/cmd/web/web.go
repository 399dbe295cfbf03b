// Package web parses web command configuration and starts the web server.
package web

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	entrypoint "github.com/meninasdigitais/eventos/internal/platform/cmd"
	"github.com/meninasdigitais/eventos/internal/services/web"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr       string        `env:"MD_WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	BackendURL     string        `env:"MD_WEB_BACKEND_URL" envDefault:"http://localhost:8000/v1"`
	BackendTimeout time.Duration `env:"MD_WEB_BACKEND_TIMEOUT" envDefault:"10s"`
	SessionDBPath  string        `env:"MD_WEB_SESSION_DB" envDefault:"data/web-sessions.db"`
	SessionTTL     time.Duration `env:"MD_WEB_SESSION_TTL" envDefault:"24h"`
	TimeZone       string        `env:"MD_WEB_TIME_ZONE" envDefault:"America/Sao_Paulo"`
	TrustForwarded bool          `env:"MD_WEB_TRUST_FORWARDED_PROTO"`
	LoginPerMinute float64       `env:"MD_WEB_LOGIN_PER_MINUTE" envDefault:"10"`
	LoginBurst     int           `env:"MD_WEB_LOGIN_BURST" envDefault:"5"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	bindFlags(fs, &cfg)
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.BackendURL, "backend-url", cfg.BackendURL, "Events backend base URL")
	fs.DurationVar(&cfg.BackendTimeout, "backend-timeout", cfg.BackendTimeout, "Timeout for a single backend request")
	fs.StringVar(&cfg.SessionDBPath, "session-db", cfg.SessionDBPath, "SQLite session database path")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "Session lifetime when the token has no expiry")
	fs.StringVar(&cfg.TimeZone, "time-zone", cfg.TimeZone, "Display time zone (IANA name)")
	fs.BoolVar(&cfg.TrustForwarded, "trust-forwarded-proto", cfg.TrustForwarded, "Trust X-Forwarded-Proto and X-Forwarded-For")
}

// Run starts the web server.
func Run(ctx context.Context, cfg Config) error {
	location, err := loadLocation(cfg.TimeZone)
	if err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		server, err := web.NewServer(ctx, web.Config{
			HTTPAddr:            cfg.HTTPAddr,
			BackendURL:          cfg.BackendURL,
			BackendTimeout:      cfg.BackendTimeout,
			SessionDBPath:       cfg.SessionDBPath,
			SessionTTL:          cfg.SessionTTL,
			Location:            location,
			TrustForwardedProto: cfg.TrustForwarded,
			LoginPerMinute:      cfg.LoginPerMinute,
			LoginBurst:          cfg.LoginBurst,
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}

func loadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.UTC, nil
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", name, err)
	}
	return location, nil
}
