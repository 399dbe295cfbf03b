package static

import "embed"

// FS holds the stylesheet and script served under /static/.
//
//go:embed *.css *.js
var FS embed.FS
