// Package site serves the embedded lineup selector page.
package site

import (
	"context"
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var assets embed.FS

// Prefix is the path the selector page is mounted under.
const Prefix = "/ui/"

// Register attaches the selector page routes to mux. GET /ui redirects to
// /ui/; assets are served from the embedded static directory.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	files := http.StripPrefix(Prefix, http.FileServer(FS()))
	mux.Handle(Prefix, getOnly(files))
	mux.Handle("/ui", http.RedirectHandler(Prefix, http.StatusMovedPermanently))
}

func getOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// FS returns the embedded selector assets rooted at static/.
func FS() http.FileSystem {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
