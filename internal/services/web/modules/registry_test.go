package modules

import (
	"context"
	"testing"

	"github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
	module "github.com/meninasdigitais/eventos/internal/services/web/module"
	"github.com/meninasdigitais/eventos/internal/services/web/storage"
)

var _ Backend = (*eventsapi.Client)(nil)

type noSessions struct{}

func (noSessions) PutSession(context.Context, storage.Session) error { return nil }
func (noSessions) DeleteSession(context.Context, string) error       { return nil }

func moduleIDs(modules []Module) []string {
	ids := make([]string, 0, len(modules))
	for _, m := range modules {
		ids = append(ids, m.ID())
	}
	return ids
}

func TestBuildGroupsModulesByAccess(t *testing.T) {
	t.Parallel()

	built := NewRegistry().Build(BuildInput{})
	tests := []struct {
		name    string
		modules []Module
		want    []string
	}{
		{name: "public", modules: built.Public, want: []string{"public", "auth", "events"}},
		{name: "protected", modules: built.Protected, want: []string{"dashboard"}},
		{name: "staff", modules: built.Staff, want: []string{"admin", "statistics"}},
		{name: "admin", modules: built.Admin, want: []string{"users"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := moduleIDs(tc.modules)
			if len(got) != len(tc.want) {
				t.Fatalf("ids = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("ids = %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestBuildWithoutBackendLeavesModulesUnhealthy(t *testing.T) {
	t.Parallel()

	built := NewRegistry().Build(BuildInput{})
	all := append(append(append(built.Public, built.Protected...), built.Staff...), built.Admin...)
	for _, m := range all {
		reporter, ok := m.(module.HealthReporter)
		if !ok {
			t.Fatalf("module %q does not report health", m.ID())
		}
		if reporter.Healthy() {
			t.Fatalf("module %q healthy without backend", m.ID())
		}
	}
}

func TestBuildWithBackendIsHealthy(t *testing.T) {
	t.Parallel()

	client, err := eventsapi.New(eventsapi.Options{BaseURL: "http://backend.test"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	built := NewRegistry().Build(BuildInput{Dependencies: Dependencies{Backend: client, Sessions: noSessions{}}})
	for _, m := range append(built.Public, built.Staff...) {
		if reporter, ok := m.(module.HealthReporter); ok && !reporter.Healthy() {
			t.Fatalf("module %q unhealthy with backend", m.ID())
		}
	}
}

func TestModulesHaveUniqueMounts(t *testing.T) {
	t.Parallel()

	built := NewRegistry().Build(BuildInput{})
	all := append(append(append(built.Public, built.Protected...), built.Staff...), built.Admin...)
	seen := map[string]string{}
	for _, m := range all {
		mount, err := m.Mount()
		if err != nil {
			t.Fatalf("module %q mount error = %v", m.ID(), err)
		}
		patterns := append([]string(nil), mount.Paths...)
		if mount.Prefix != "" {
			patterns = append(patterns, mount.Prefix)
		}
		if len(patterns) == 0 {
			t.Fatalf("module %q mounts nothing", m.ID())
		}
		for _, pattern := range patterns {
			if owner, ok := seen[pattern]; ok {
				t.Fatalf("pattern %q mounted by %q and %q", pattern, owner, m.ID())
			}
			seen[pattern] = m.ID()
		}
	}
}
