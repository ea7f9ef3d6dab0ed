package prefetch

import (
	"context"
	"sync"
	"time"

	"courtside.ai/data-service/app/domain/cachestore"
	"courtside.ai/data-service/app/domain/catalog"
	"courtside.ai/data-service/app/domain/discussion"
	"courtside.ai/data-service/app/utils/datetime"
	"courtside.ai/data-service/app/utils/logger"
)

// EventSource enumerates today's events.
type EventSource interface {
	EventsForDate(ctx context.Context, date string) []catalog.EventRecord
}

// DiscussionFetcher populates both cache tiers for one discussion key with a
// live fetch.
type DiscussionFetcher interface {
	PrefetchHeat(ctx context.Context, away, home, date string) error
	PrefetchComments(ctx context.Context, away, home, date string, limit int) error
}

// Config carries the coordinator's timing knobs. Construction-time only.
type Config struct {
	// MaturityDelay is how long after an event's first observed Final
	// transition its discussion volume is considered stable.
	MaturityDelay time.Duration
	// CycleInterval is the pause between full scans.
	CycleInterval time.Duration
	// PoliteDelay is the pause between upstream calls, layered on top of
	// the rate limiter.
	PoliteDelay time.Duration
	// SleepIncrement bounds each sleep slice; shutdown latency is at most
	// one increment.
	SleepIncrement time.Duration
	// CommentLimit is the page size prefetched for comments.
	CommentLimit int
}

func DefaultConfig() Config {
	return Config{}.normalize()
}

func (c Config) normalize() Config {
	if c.MaturityDelay <= 0 {
		c.MaturityDelay = 2 * time.Hour
	}
	if c.CycleInterval <= 0 {
		c.CycleInterval = 30 * time.Minute
	}
	if c.PoliteDelay <= 0 {
		c.PoliteDelay = 5 * time.Second
	}
	if c.SleepIncrement <= 0 {
		c.SleepIncrement = 10 * time.Second
	}
	if c.CommentLimit <= 0 {
		c.CommentLimit = discussion.DefaultCommentLimit
	}
	return c
}

// Service is the background coordinator that lazily populates the durable
// discussion cache for events whose lifecycle has reached Final. One
// goroutine for the process lifetime; Start and Stop are idempotent and Stop
// blocks until the goroutine has exited.
type Service struct {
	events  EventSource
	store   *cachestore.Service
	fetcher DiscussionFetcher
	config  Config

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	now func() time.Time
}

func NewService(events EventSource, store *cachestore.Service, fetcher DiscussionFetcher, config Config) *Service {
	return &Service{
		events:  events,
		store:   store,
		fetcher: fetcher,
		config:  config.normalize(),
		now:     time.Now,
	}
}

func (s *Service) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.wg.Add(1)
	go s.run(ctx)
	logger.GetLogger().Info("prefetch: coordinator started")
}

func (s *Service) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	s.wg.Wait()
	logger.GetLogger().Info("prefetch: coordinator stopped")
}

func (s *Service) run(ctx context.Context) {
	defer s.wg.Done()
	for {
		s.scan(ctx)
		if !s.sleepFor(ctx, s.config.CycleInterval) {
			return
		}
	}
}

// scan walks today's events and prefetches discussion data for matured Final
// events. Per-event failures are logged and skipped; they never abort the
// rest of the scan.
func (s *Service) scan(ctx context.Context) {
	today := datetime.LocalToday()
	events := s.events.EventsForDate(ctx, today)

	for _, event := range events {
		if ctx.Err() != nil {
			return
		}
		if !event.IsFinal() {
			continue
		}

		date := datetime.DateOnly(event.SourceTimeUTC)
		if date == "" {
			continue
		}
		away, home := event.Away.Name, event.Home.Name

		s.store.RecordEventEnd(ctx, event.EventID)
		endedAt, ok := s.store.EventEndedAt(ctx, event.EventID)
		if !ok {
			continue
		}
		if s.now().Before(endedAt.Add(s.config.MaturityDelay)) {
			// Discussion volume has not stabilized yet.
			continue
		}

		heatKey := discussion.HeatKey(away, home, date)
		if _, ok := s.store.ReadCached(ctx, cachestore.Discussion, heatKey); !ok {
			if err := s.fetcher.PrefetchHeat(ctx, away, home, date); err != nil {
				logger.GetLogger().Warnf("prefetch: heat for %s vs %s failed: %v", away, home, err)
			}
			if !s.sleepFor(ctx, s.config.PoliteDelay) {
				return
			}
		}

		commentsKey := discussion.CommentsKey(away, home, date, s.config.CommentLimit)
		if _, ok := s.store.ReadCached(ctx, cachestore.Discussion, commentsKey); !ok {
			if err := s.fetcher.PrefetchComments(ctx, away, home, date, s.config.CommentLimit); err != nil {
				logger.GetLogger().Warnf("prefetch: comments for %s vs %s failed: %v", away, home, err)
			}
			if !s.sleepFor(ctx, s.config.PoliteDelay) {
				return
			}
		}
	}
}

// sleepFor sleeps d in bounded increments, returning false as soon as the
// context is cancelled.
func (s *Service) sleepFor(ctx context.Context, d time.Duration) bool {
	for remaining := d; remaining > 0; remaining -= s.config.SleepIncrement {
		if ctx.Err() != nil {
			return false
		}
		timer := time.NewTimer(min(remaining, s.config.SleepIncrement))
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-timer.C:
		}
	}
	return ctx.Err() == nil
}
