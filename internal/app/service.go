// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/bestxi/internal/adapters/repository"
	"github.com/okian/bestxi/internal/domain/model"
	"github.com/okian/bestxi/internal/domain/scoring"
	"github.com/okian/bestxi/internal/domain/selection"
	"github.com/okian/bestxi/internal/domain/types"
	"github.com/okian/bestxi/pkg/logger"
	"github.com/okian/bestxi/pkg/metrics"
)

// Query is one best XI request. Empty fields mean "not supplied".
type Query struct {
	PitchType string
	Opponent  string
	Venue     string
}

// Result is a presented lineup plus the context it was picked for.
type Result struct {
	Pitch       model.PitchType
	PitchSource selection.PitchSource
	Opponent    string
	Venue       string
	Players     []types.LineupEntry

	Rejected        int  // dataset rows skipped on load
	KeeperPromoted  bool // a batsman keeps wicket
	CaptainFallback bool // no pooled leader in the lineup
}

// Service selects lineups. It holds only read-only policy and counters, so
// concurrent calls are safe.
type Service struct {
	// startMu serializes Start and Stop; mu guards started and startedAt
	// only, so GetStats never waits on a warm-up load.
	startMu sync.Mutex
	mu      sync.RWMutex

	store    repository.Store
	scorer   *scoring.Scorer
	quotas   selection.Quotas
	captains selection.CaptainPool
	venues   selection.VenuePitchMap

	started   bool
	startedAt time.Time

	requests         atomic.Int64
	failures         atomic.Int64
	keeperFallbacks  atomic.Int64
	captainFallbacks atomic.Int64
	lastLoaded       atomic.Int64
	lastRejected     atomic.Int64

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithScorer sets the scorer.
func WithScorer(sc *scoring.Scorer) Option {
	return func(s *Service) {
		if sc != nil {
			s.scorer = sc
		}
	}
}

// WithQuotas sets the lineup composition.
func WithQuotas(q selection.Quotas) Option {
	return func(s *Service) {
		s.quotas = q
	}
}

// WithCaptainPool sets the players eligible to captain.
func WithCaptainPool(names []string) Option {
	return func(s *Service) {
		if names != nil {
			s.captains = selection.NewCaptainPool(names)
		}
	}
}

// WithVenues sets the venue to pitch type table.
func WithVenues(venues map[string]model.PitchType) Option {
	return func(s *Service) {
		if venues != nil {
			s.venues = selection.NewVenuePitchMap(venues)
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service reading players from store.
func New(store repository.Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		scorer:   scoring.New(),
		quotas:   selection.DefaultQuotas(),
		captains: selection.NewCaptainPool(selection.DefaultCaptainPool()),
		venues:   selection.NewVenuePitchMap(selection.DefaultVenues()),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	return s
}

// Start validates policy and warms the dataset. A dataset that cannot be
// loaded yet is logged, not fatal: every request reloads it.
func (s *Service) Start(ctx context.Context) error {
	s.startMu.Lock()
	defer s.startMu.Unlock()

	if s.isStarted() {
		return nil
	}
	if err := s.quotas.Validate(); err != nil {
		return err
	}

	s.logger.Info(ctx, "starting selector service...")
	if res, err := s.store.Load(ctx); err != nil {
		s.logger.Warn(ctx, "dataset not usable yet", logger.String("kind", Kind(err)), logger.Error(err))
	} else {
		s.recordLoad(res)
		s.logger.Info(ctx, "dataset ready",
			logger.Int("players", len(res.Players)),
			logger.Int("rejected", len(res.Rejected)))
	}

	s.mu.Lock()
	s.started = true
	s.startedAt = time.Now()
	s.mu.Unlock()

	s.logger.Info(ctx, "selector service started",
		logger.Int("venues", len(s.venues.Venues())),
		logger.Int("captainPool", s.captains.Len()))
	return nil
}

// Stop marks the service stopped.
func (s *Service) Stop() {
	s.startMu.Lock()
	defer s.startMu.Unlock()

	if !s.isStarted() {
		return
	}
	s.mu.Lock()
	s.started = false
	s.mu.Unlock()
	s.logger.Info(context.Background(), "selector service stopped")
}

func (s *Service) isStarted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// SelectBestXI loads the dataset and returns the best XI for q.
func (s *Service) SelectBestXI(ctx context.Context, q Query) (Result, error) {
	start := time.Now()
	s.requests.Add(1)

	res, err := s.selectBestXI(ctx, q)
	latencyMs := float64(time.Since(start).Nanoseconds()) / 1e6
	if err != nil {
		kind := Kind(err)
		s.failures.Add(1)
		metrics.RecordSelectionError(kind)
		metrics.RecordErrorByComponent("service", kind)
		metrics.RecordErrorLatency("service", kind, latencyMs)
		fields := []logger.Field{
			logger.String("kind", kind),
			logger.String("pitchType", q.PitchType),
			logger.String("opponent", q.Opponent),
			logger.String("venue", q.Venue),
			logger.Error(err),
		}
		if IsClientError(err) {
			s.logger.Warn(ctx, "selection rejected", fields...)
		} else {
			s.logger.Error(ctx, "selection failed", fields...)
		}
		return Result{}, err
	}

	metrics.RecordSelection(string(res.Pitch), string(res.PitchSource))
	metrics.RecordSelectionLatency(latencyMs)
	s.logger.Info(ctx, "best xi selected",
		logger.String("pitch", string(res.Pitch)),
		logger.String("pitchSource", string(res.PitchSource)),
		logger.String("opponent", res.Opponent),
		logger.String("venue", res.Venue),
		logger.Bool("keeperPromoted", res.KeeperPromoted),
		logger.Bool("captainFallback", res.CaptainFallback),
		logger.Duration("took", time.Since(start)))
	return res, nil
}

func (s *Service) selectBestXI(ctx context.Context, q Query) (Result, error) {
	pitch, source, err := selection.ResolvePitch(q.PitchType, q.Venue, s.venues)
	if err != nil {
		return Result{}, err
	}

	loaded, err := s.store.Load(ctx)
	if err != nil {
		return Result{}, err
	}
	s.recordLoad(loaded)

	pool, err := selection.FilterOpponent(loaded.Players, q.Opponent)
	if err != nil {
		metrics.RecordOpponentFiltered(len(loaded.Players))
		return Result{}, err
	}
	metrics.RecordOpponentFiltered(len(loaded.Players) - len(pool))

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	out, err := selection.Select(s.scorer.ScoreAll(pool, pitch), s.quotas)
	if err != nil {
		return Result{}, err
	}
	metrics.RecordBackfilled(out.Backfilled)
	metrics.RecordDuplicatePicks(out.DuplicatesPruned)
	if out.KeeperPromoted {
		s.keeperFallbacks.Add(1)
		metrics.RecordKeeperFallback()
		s.logger.Debug(ctx, "no wicket-keeper available, promoted top batsman")
	}

	captaincy := selection.ResolveCaptain(out.Players, s.captains, s.scorer.Leadership)
	if captaincy.Fallback {
		s.captainFallbacks.Add(1)
		metrics.RecordCaptainFallback()
		s.logger.Debug(ctx, "no pooled leader in lineup, captaining top scorer",
			logger.String("captain", captaincy.Captain))
	}

	return Result{
		Pitch:           pitch,
		PitchSource:     source,
		Opponent:        q.Opponent,
		Venue:           q.Venue,
		Players:         selection.Present(out.Players, captaincy),
		Rejected:        len(loaded.Rejected),
		KeeperPromoted:  out.KeeperPromoted,
		CaptainFallback: captaincy.Fallback,
	}, nil
}

func (s *Service) recordLoad(res repository.LoadResult) {
	s.lastLoaded.Store(int64(len(res.Players)))
	s.lastRejected.Store(int64(len(res.Rejected)))
}

// Venues lists the known venues with their pitch types, sorted by name.
func (s *Service) Venues() []types.Venue {
	names := s.venues.Venues()
	out := make([]types.Venue, 0, len(names))
	for _, name := range names {
		pitch, _ := s.venues.Lookup(name)
		out = append(out, types.Venue{Venue: name, PitchType: string(pitch)})
	}
	return out
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":          s.started,
		"requests":         s.requests.Load(),
		"failures":         s.failures.Load(),
		"keeperFallbacks":  s.keeperFallbacks.Load(),
		"captainFallbacks": s.captainFallbacks.Load(),
		"lastRowsLoaded":   s.lastLoaded.Load(),
		"lastRowsRejected": s.lastRejected.Load(),
		"venues":           len(s.venues.Venues()),
		"captainPool":      s.captains.Len(),
	}
	if s.started {
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
	}
	if p, ok := s.store.(interface{ Path() string }); ok {
		stats["dataset"] = p.Path()
	}
	return stats
}
