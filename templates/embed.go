package templates

import "embed"

// FS holds the html/template sources.
//
//go:embed layouts/*.tmpl partials/*.tmpl pages/*.tmpl
var FS embed.FS
