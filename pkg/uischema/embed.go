package uischema

import (
	"embed"
	"io/fs"
)

//go:embed ui/*.yaml
var embeddedLayout embed.FS

// EmbeddedFS returns the bundled step layout. Callers may pass this
// filesystem to LoadFS to use the default four-step wizard.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedLayout, "ui")
	if err != nil {
		panic(err)
	}
	return sub
}
