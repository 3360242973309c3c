// Package web bundles the single-page viewer and the default quote list.
package web

import (
	"embed"
	"io/fs"
)

// QuotesFile is the quote list path inside Static.
const QuotesFile = "sozler.json"

//go:embed static
var content embed.FS

// Static returns the UI assets rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		panic(err) // embedded path is fixed at build time
	}

	return sub
}

// Quotes returns the bundled quote list.
func Quotes() ([]byte, error) {
	return fs.ReadFile(Static(), QuotesFile)
}
