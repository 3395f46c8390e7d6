package content

import "embed"

// FS holds the markdown pages rendered by the site.
//
//go:embed *.md
var FS embed.FS
