package catalog

import (
	"testing"
	"testing/fstest"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	t.Parallel()

	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	for _, locale := range []string{BaseLocale, "en-US"} {
		if !bundle.HasLocale(locale) {
			t.Fatalf("expected locale %s", locale)
		}
		if got := len(bundle.LocaleMessages(locale)); got == 0 {
			t.Fatalf("expected %s messages", locale)
		}
	}
}

func TestEmbeddedLocalesTranslateEveryBaseKey(t *testing.T) {
	t.Parallel()

	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	if missing := bundle.MissingKeys("en-US"); len(missing) > 0 {
		t.Fatalf("en-US missing keys: %v", missing)
	}
}

func TestDefaultBundleRegistersPrinterMessages(t *testing.T) {
	t.Parallel()

	want, ok := Default().Message("en-US", "core.nav.events")
	if !ok {
		t.Fatal("expected core.nav.events in en-US")
	}
	got := message.NewPrinter(language.AmericanEnglish).Sprintf("core.nav.events")
	if got != want {
		t.Fatalf("printer = %q, want %q", got, want)
	}
}

func TestLoadFromFSRejectsKeyOutsideNamespace(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"locales/pt-BR/core.yaml":   {Data: []byte("locale: pt-BR\nnamespace: core\nmessages:\n  core.ok: \"ok\"\n")},
		"locales/pt-BR/events.yaml": {Data: []byte("locale: pt-BR\nnamespace: events\nmessages:\n  core.bad: \"nope\"\n")},
	}
	if _, err := LoadFromFS(fsys); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadFromFSRejectsLocaleMismatch(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"locales/pt-BR/core.yaml": {Data: []byte("locale: en-US\nnamespace: core\nmessages:\n  core.ok: \"ok\"\n")},
	}
	if _, err := LoadFromFS(fsys); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadFromFSRequiresBaseLocale(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"locales/en-US/core.yaml": {Data: []byte("locale: en-US\nnamespace: core\nmessages:\n  core.ok: \"ok\"\n")},
	}
	if _, err := LoadFromFS(fsys); err == nil {
		t.Fatal("expected error")
	}
}

func TestMessageFallsBackToBaseLocale(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"locales/pt-BR/core.yaml": {Data: []byte("locale: pt-BR\nnamespace: core\nmessages:\n  core.a: \"A\"\n  core.b: \"B\"\n")},
		"locales/en-US/core.yaml": {Data: []byte("locale: en-US\nnamespace: core\nmessages:\n  core.a: \"a\"\n")},
	}
	bundle, err := LoadFromFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got, ok := bundle.Message("en-US", "core.b")
	if !ok || got != "B" {
		t.Fatalf("Message = %q, %v; want %q, true", got, ok, "B")
	}
	if missing := bundle.MissingKeys("en-US"); len(missing) != 1 || missing[0] != "core.b" {
		t.Fatalf("MissingKeys = %v, want [core.b]", missing)
	}
}
