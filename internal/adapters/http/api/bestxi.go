package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	service "github.com/okian/bestxi/internal/app"
	"github.com/okian/bestxi/pkg/logger"
)

// Response headers describing the pitch a lineup was picked for.
const (
	HeaderPitchType   = "X-Pitch-Type"
	HeaderPitchSource = "X-Pitch-Source"
)

// BestXIDependencies defines the interface for lineup selection.
type BestXIDependencies interface {
	SelectBestXI(ctx context.Context, q service.Query) (service.Result, error)
}

// BestXIHandler handles best XI requests.
type BestXIHandler struct {
	deps    BestXIDependencies
	timeout time.Duration
	logger  logger.Logger
}

// NewBestXIHandler creates a new best XI handler. A zero timeout leaves the
// request context untouched.
func NewBestXIHandler(deps BestXIDependencies, timeout time.Duration, l logger.Logger) *BestXIHandler {
	return &BestXIHandler{deps: deps, timeout: timeout, logger: l}
}

// HandleGetBestXI handles GET /best-xi?pitch_type=&opponent=&venue= requests.
func (h *BestXIHandler) HandleGetBestXI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	values := r.URL.Query()
	q := service.Query{
		PitchType: strings.TrimSpace(values.Get("pitch_type")),
		Opponent:  strings.TrimSpace(values.Get("opponent")),
		Venue:     strings.TrimSpace(values.Get("venue")),
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	res, err := h.deps.SelectBestXI(ctx, q)
	if err != nil {
		apiErr := Wrap(err)
		h.logger.Debug(ctx, "best xi request failed",
			logger.String("requestId", RequestIDFromContext(r.Context())),
			logger.String("kind", apiErr.Kind),
			logger.Int("status", apiErr.Status))
		writeErrorDetails(w, apiErr.Status, apiErr.Kind, apiErr, queryDetails(q))
		return
	}

	w.Header().Set(HeaderPitchType, string(res.Pitch))
	w.Header().Set(HeaderPitchSource, string(res.PitchSource))
	writeJSON(w, http.StatusOK, res.Players)
}

func queryDetails(q service.Query) map[string]string {
	d := make(map[string]string, 3)
	if q.PitchType != "" {
		d["pitch_type"] = q.PitchType
	}
	if q.Opponent != "" {
		d["opponent"] = q.Opponent
	}
	if q.Venue != "" {
		d["venue"] = q.Venue
	}
	if len(d) == 0 {
		return nil
	}
	return d
}
