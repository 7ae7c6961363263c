package folio

import _ "embed"

// Stylesheet is the default site stylesheet, written to /style.css on build
// and served by the dev server.
//
//go:embed embedded/style.css
var Stylesheet []byte
