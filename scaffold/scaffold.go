// Package scaffold provides the embedded site skeleton used by `folio new`.
package scaffold

import "embed"

// Templates contains all scaffold files. Files with a .tmpl suffix are
// rendered with text/template; others are copied verbatim.
//
//go:embed all:templates
var Templates embed.FS
