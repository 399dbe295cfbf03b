// Package catalog loads the site's translation catalogs and registers them
// with golang.org/x/text/message.
//
// Catalogs live in locales/<locale>/<page>.yaml. Every key in a file is
// prefixed with the file's page namespace, for example events.card.full in
// events.yaml, so a key always names the page that owns it.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the locale every other catalog is checked against and falls
// back to.
const BaseLocale = "pt-BR"

//go:embed locales/*/*.yaml
var embedded embed.FS

var defaultBundle = mustRegister(LoadEmbedded())

type pageFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// Bundle holds the flattened messages of every locale.
type Bundle struct {
	messages map[string]map[string]string
}

// Default returns the embedded bundle, already registered with x/text.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded loads the catalogs compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embedded)
}

// LoadFromFS loads every locales/*/*.yaml file in fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	files, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob catalogs: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	slices.Sort(files)

	bundle := &Bundle{messages: map[string]map[string]string{}}
	for _, name := range files {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", name, err)
		}
		var page pageFile
		if err := yaml.Unmarshal(raw, &page); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", name, err)
		}
		if err := bundle.merge(name, page); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", name, err)
		}
	}
	if !bundle.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("base locale %s has no catalogs", BaseLocale)
	}
	return bundle, nil
}

func (b *Bundle) merge(name string, page pageFile) error {
	locale := strings.TrimSpace(page.Locale)
	namespace := strings.TrimSpace(page.Namespace)
	switch {
	case locale != path.Base(path.Dir(name)):
		return fmt.Errorf("locale %q does not match its directory", page.Locale)
	case namespace != strings.TrimSuffix(path.Base(name), ".yaml"):
		return fmt.Errorf("namespace %q does not match its file name", page.Namespace)
	case len(page.Messages) == 0:
		return fmt.Errorf("no messages")
	}

	messages := b.messages[locale]
	if messages == nil {
		messages = map[string]string{}
		b.messages[locale] = messages
	}
	for key, text := range page.Messages {
		key = strings.TrimSpace(key)
		if !strings.HasPrefix(key, namespace+".") {
			return fmt.Errorf("key %q is outside namespace %q", key, namespace)
		}
		if _, dup := messages[key]; dup {
			return fmt.Errorf("key %q defined twice for %s", key, locale)
		}
		messages[key] = text
	}
	return nil
}

// Register installs every message with x/text. A locale is registered under
// its full tag and its bare language (pt-BR and pt), and keys it does not
// translate use the base-locale text so printers never show a raw key.
func (b *Bundle) Register() error {
	if b == nil {
		return nil
	}
	for _, locale := range b.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale %q: %w", locale, err)
		}
		tags := []language.Tag{tag}
		if lang, conf := tag.Base(); conf != language.No {
			if bare := language.Make(lang.String()); bare != tag {
				tags = append(tags, bare)
			}
		}
		messages := b.LocaleMessages(locale)
		for key, text := range b.messages[BaseLocale] {
			if _, ok := messages[key]; !ok {
				messages[key] = text
			}
		}
		for _, key := range slices.Sorted(maps.Keys(messages)) {
			for _, target := range tags {
				if err := message.SetString(target, key, messages[key]); err != nil {
					return fmt.Errorf("register %s %q: %w", locale, key, err)
				}
			}
		}
	}
	return nil
}

// HasLocale reports whether any catalog exists for locale.
func (b *Bundle) HasLocale(locale string) bool {
	if b == nil {
		return false
	}
	_, ok := b.messages[strings.TrimSpace(locale)]
	return ok
}

// Locales returns the loaded locales in sorted order.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(b.messages))
}

// Tags returns the language tags of every locale, base locale first.
func (b *Bundle) Tags() []language.Tag {
	tags := []language.Tag{language.Make(BaseLocale)}
	for _, locale := range b.Locales() {
		if locale != BaseLocale {
			tags = append(tags, language.Make(locale))
		}
	}
	return tags
}

// LocaleMessages returns a copy of one locale's messages.
func (b *Bundle) LocaleMessages(locale string) map[string]string {
	if b == nil {
		return map[string]string{}
	}
	messages := maps.Clone(b.messages[strings.TrimSpace(locale)])
	if messages == nil {
		return map[string]string{}
	}
	return messages
}

// Message looks key up in locale, then in the base locale.
func (b *Bundle) Message(locale string, key string) (string, bool) {
	if b == nil {
		return "", false
	}
	key = strings.TrimSpace(key)
	for _, candidate := range []string{strings.TrimSpace(locale), BaseLocale} {
		if text, ok := b.messages[candidate][key]; ok && key != "" {
			return text, true
		}
	}
	return "", false
}

// MissingKeys lists base-locale keys that locale does not translate.
func (b *Bundle) MissingKeys(locale string) []string {
	own := b.LocaleMessages(locale)
	var missing []string
	for key := range b.LocaleMessages(BaseLocale) {
		if _, ok := own[key]; !ok {
			missing = append(missing, key)
		}
	}
	slices.Sort(missing)
	return missing
}

func mustRegister(bundle *Bundle, err error) *Bundle {
	if err != nil {
		panic(err)
	}
	if err := bundle.Register(); err != nil {
		panic(err)
	}
	return bundle
}
