// Package web embeds the page templates and the default site assets.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var Templates embed.FS

//go:embed site
var site embed.FS

// Site returns the default site directory: data.yaml, images/ and static/.
func Site() fs.FS {
	sub, err := fs.Sub(site, "site")
	if err != nil {
		panic(err)
	}
	return sub
}
