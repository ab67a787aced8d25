package probe

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/bestxi/pkg/logger"
)

// Run probes every pitch × opponent case, twice each, and verifies the
// answers. It returns ErrViolations when any case failed.
func Run(ctx context.Context, config Config) (*Report, error) {
	report := &Report{StartTime: time.Now()}
	log := logger.Get().Named("probe")

	cases := buildCases(config)
	if len(cases) == 0 {
		return report, ErrNoCases
	}
	report.Cases = len(cases)

	log.Info(ctx, "starting probe",
		logger.String("baseURL", config.BaseURL),
		logger.Int("cases", len(cases)),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout))

	client := newHTTPClient(config.Timeout)
	if err := checkServiceHealth(ctx, client, config.BaseURL); err != nil {
		return report, err
	}

	workers := config.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	var (
		mu     sync.Mutex
		passed int64
		failed int64
		wg     sync.WaitGroup
	)
	caseChan := make(chan Case, workers*workerChannelMultiplier)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range caseChan {
				if ctx.Err() != nil {
					return
				}
				reasons := probeCase(ctx, client, config, c)
				if len(reasons) == 0 {
					atomic.AddInt64(&passed, 1)
					if config.Verbose {
						log.Debug(ctx, "case passed", logger.String("case", c.String()))
					}
					continue
				}
				atomic.AddInt64(&failed, 1)
				mu.Lock()
				for _, r := range reasons {
					report.Violations = append(report.Violations, Violation{Case: c, Reason: r})
				}
				mu.Unlock()
			}
		}()
	}

	go func() {
		defer close(caseChan)
		for _, c := range cases {
			select {
			case <-ctx.Done():
				return
			case caseChan <- c:
			}
		}
	}()

	wg.Wait()

	report.Passed = int(atomic.LoadInt64(&passed))
	report.Failed = int(atomic.LoadInt64(&failed))
	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)
	sort.SliceStable(report.Violations, func(i, j int) bool {
		return report.Violations[i].Case.String() < report.Violations[j].Case.String()
	})

	for _, v := range report.Violations {
		log.Warn(ctx, "invariant violated",
			logger.String("case", v.Case.String()),
			logger.String("reason", v.Reason))
	}
	log.Info(ctx, "probe finished",
		logger.Int("cases", report.Cases),
		logger.Int("passed", report.Passed),
		logger.Int("failed", report.Failed),
		logger.Duration("took", report.Duration))

	if err := ctx.Err(); err != nil {
		return report, err
	}
	if report.Failed > 0 {
		return report, fmt.Errorf("%w: %d of %d cases", ErrViolations, report.Failed, report.Cases)
	}
	return report, nil
}

func buildCases(config Config) []Case {
	opponents := config.Opponents
	if len(opponents) == 0 {
		opponents = []string{""}
	}
	cases := make([]Case, 0, len(config.Pitches)*len(opponents))
	for _, p := range config.Pitches {
		for _, o := range opponents {
			cases = append(cases, Case{Pitch: p, Opponent: o, Venue: config.Venue})
		}
	}
	return cases
}

// probeCase fetches c twice and returns every broken invariant.
func probeCase(ctx context.Context, client *HTTPClient, config Config, c Case) []string {
	first, err := fetchLineup(ctx, client, config.BaseURL, c)
	if err != nil {
		return []string{err.Error()}
	}
	if first.Status != http.StatusOK {
		return []string{fmt.Sprintf("status %d: %s", first.Status, first.Body)}
	}

	reasons := Verify(c, first.Players, config.Quotas)
	if c.Pitch != "" && first.PitchType != c.Pitch {
		reasons = append(reasons, fmt.Sprintf("X-Pitch-Type is %q, want %q", first.PitchType, c.Pitch))
	}

	second, err := fetchLineup(ctx, client, config.BaseURL, c)
	if err != nil {
		return append(reasons, err.Error())
	}
	if !sameLineup(first.Players, second.Players) {
		reasons = append(reasons, "repeated request returned a different lineup")
	}
	return reasons
}

// checkServiceHealth verifies the service answers its status probe.
func checkServiceHealth(ctx context.Context, client *HTTPClient, base string) error {
	resp, err := client.Get(ctx, base+"/")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}
