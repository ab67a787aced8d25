package api

import (
	"net/http"

	"github.com/okian/bestxi/internal/domain/types"
)

// VenuesDependencies defines the interface for venue listing.
type VenuesDependencies interface {
	Venues() []types.Venue
}

// VenuesHandler handles venue listing requests.
type VenuesHandler struct {
	deps VenuesDependencies
}

// NewVenuesHandler creates a new venues handler.
func NewVenuesHandler(deps VenuesDependencies) *VenuesHandler {
	return &VenuesHandler{deps: deps}
}

// HandleGetVenues handles GET /venues requests.
func (h *VenuesHandler) HandleGetVenues(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Venues())
}
