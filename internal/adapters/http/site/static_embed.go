package site

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFS embed.FS

// dashboardFS exposes a sub-filesystem rooted at static/.
var dashboardFS fs.FS = func() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// Should never happen if the static dir is present at build time.
		return staticFS
	}
	return sub
}()

// FS returns an http.FileSystem for the embedded dashboard.
func FS() http.FileSystem {
	return http.FS(dashboardFS)
}
