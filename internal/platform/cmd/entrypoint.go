// Package cmd holds the startup sequence shared by commands: environment
// defaults, then flag overrides, then tracing around the run loop.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/meninasdigitais/eventos/internal/platform/config"
	"github.com/meninasdigitais/eventos/internal/platform/otel"
)

// ServiceWeb names the web site in logs and traces.
const ServiceWeb = "web"

const telemetryFlushTimeout = 5 * time.Second

// ParseConfig fills cfg from its env struct tags.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg)
}

// ParseArgs applies command-line flags bound to fs.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	return fs.Parse(append([]string{}, args...))
}

// ParseConfigFromArgs runs ParseConfig and then ParseArgs, for flags bound
// before the environment is read.
func ParseConfigFromArgs[T any](cfg *T, fs *flag.FlagSet, args []string) error {
	if err := ParseConfig(cfg); err != nil {
		return err
	}
	return ParseArgs(fs, args)
}

// RunWithTelemetry sets up tracing from MD_OTEL_* settings, runs the service
// and flushes spans on the way out.
func RunWithTelemetry(ctx context.Context, service string, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return errors.New("service name is required")
	}
	if run == nil {
		return errors.New("run function is required")
	}
	telemetry, err := otel.LoadConfig()
	if err != nil {
		return err
	}
	shutdown, err := otel.Setup(ctx, service, telemetry)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer flush(service, shutdown)
	return run(ctx)
}

func flush(service string, shutdown func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), telemetryFlushTimeout)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.Printf("telemetry shutdown service=%s err=%v", service, err)
	}
}
