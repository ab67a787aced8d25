package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/okian/bestxi/internal/domain/types"
)

// lineupResponse is one /best-xi answer.
type lineupResponse struct {
	Status      int
	PitchType   string
	PitchSource string
	Players     []types.LineupEntry
	Body        string
}

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

func bestXIURL(base string, c Case) string {
	q := url.Values{}
	if c.Pitch != "" {
		q.Set("pitch_type", c.Pitch)
	}
	if c.Opponent != "" {
		q.Set("opponent", c.Opponent)
	}
	if c.Venue != "" {
		q.Set("venue", c.Venue)
	}
	u := base + "/best-xi"
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}

// fetchLineup requests the lineup for c. Non-200 answers are returned with
// their body rather than as errors.
func fetchLineup(ctx context.Context, client *HTTPClient, base string, c Case) (lineupResponse, error) {
	resp, err := client.Get(ctx, bestXIURL(base, c))
	if err != nil {
		return lineupResponse{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return lineupResponse{}, fmt.Errorf("failed to read response: %w", err)
	}

	out := lineupResponse{
		Status:      resp.StatusCode,
		PitchType:   resp.Header.Get("X-Pitch-Type"),
		PitchSource: resp.Header.Get("X-Pitch-Source"),
		Body:        string(body),
	}
	if resp.StatusCode != http.StatusOK {
		return out, nil
	}
	if err := json.Unmarshal(body, &out.Players); err != nil {
		return out, fmt.Errorf("failed to decode lineup: %w", err)
	}
	return out, nil
}
