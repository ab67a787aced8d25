package api

import "net/http"

// StatusHandler answers the root liveness probe.
type StatusHandler struct{}

// NewStatusHandler creates a new status handler.
func NewStatusHandler() *StatusHandler {
	return &StatusHandler{}
}

// HandleStatus handles GET / requests.
func (h *StatusHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": StatusMessage})
}

// StatsProvider reports the selector's running counters.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler serves a snapshot of the selector counters.
type StatsHandler struct {
	provider StatsProvider
}

// NewStatsHandler creates a stats handler reading from provider.
func NewStatsHandler(provider StatsProvider) *StatsHandler {
	return &StatsHandler{provider: provider}
}

// HandleStats handles GET /stats requests. Snapshots change on every
// selection, so responses are never cached.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	stats := map[string]interface{}{}
	if h.provider != nil {
		stats = h.provider.GetStats()
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, stats)
}
