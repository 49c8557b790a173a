// Package site serves the embedded DALS dashboard.
package site

import (
	"context"
	"errors"
	"io"
	"net/http"
)

// Error constants
var (
	ErrServe = errors.New("dashboard serve failed")
)

// Register attaches the embedded dashboard routes to mux. The dashboard is
// served at / and /dashboard.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	files := http.FileServer(FS())
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			files.ServeHTTP(w, r)
			return
		}
		serveDashboardHTML(w, r)
	})
	mux.HandleFunc("/dashboard", func(w http.ResponseWriter, r *http.Request) {
		serveDashboardHTML(w, r)
	})
}

// serveDashboardHTML serves dashboard.html from the embedded filesystem.
// Equivalent to http.ServeFileFS, which requires Go 1.22+.
func serveDashboardHTML(w http.ResponseWriter, r *http.Request) {
	f, err := dashboardFS.Open("dashboard.html")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		http.NotFound(w, r)
		return
	}
	rs, ok := f.(io.ReadSeeker)
	if !ok {
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, "dashboard.html", fi.ModTime(), rs)
}
