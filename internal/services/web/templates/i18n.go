package templates

import (
	"fmt"
	"strings"

	"golang.org/x/text/message"
)

// Localizer formats catalog messages for one request language.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// T formats a catalog key. Without a localizer the key itself is formatted,
// so templates stay renderable in tests that skip the catalog.
func T(loc Localizer, key string, args ...any) string {
	key = strings.TrimSpace(key)
	switch {
	case key == "":
		return ""
	case loc != nil:
		return loc.Sprintf(key, args...)
	case len(args) > 0:
		return fmt.Sprintf(key, args...)
	}
	return key
}
