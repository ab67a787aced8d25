package api

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static/dashboard.html
var dashboardFiles embed.FS

// dashboardFS is rooted at static/ so the page is served by its bare name.
var dashboardFS = mustSub(dashboardFiles, "static")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// dashboardHandler serves the metrics dashboard.
type dashboardHandler struct{}

func newDashboardHandler() *dashboardHandler {
	return &dashboardHandler{}
}

// HandleDashboard handles GET /dashboard requests.
// The page polls /healthz and /stats and charts selection activity.
func (h *dashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFileFS(w, r, dashboardFS, "dashboard.html")
}
