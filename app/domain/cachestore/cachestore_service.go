package cachestore

import (
	"context"
	"time"

	"courtside.ai/data-service/app/domain/lifecycle"
	"courtside.ai/data-service/app/utils/logger"
)

// Repository is the durable tier. Implementations must serialize concurrent
// writes to the same key and upsert on conflict.
type Repository interface {
	Put(ctx context.Context, ns Namespace, key string, payload []byte, writtenAt time.Time) error
	Get(ctx context.Context, ns Namespace, key string) (payload []byte, writtenAt time.Time, found bool, err error)
	Counts(ctx context.Context) (map[string]int64, error)
}

// MarkerRepository stores one row per event that has reached Final. RecordOnce
// must be atomic insert-if-absent: concurrent observers of the same event id
// must never produce two different recorded timestamps.
type MarkerRepository interface {
	RecordOnce(ctx context.Context, eventID string, at time.Time) error
	RecordedAt(ctx context.Context, eventID string) (time.Time, bool, error)
}

// Service is the durable cache with its freshness rules applied. Storage
// failures never propagate: failed writes are logged and reported as "not
// written", failed reads as misses, so serve paths stay up when the store is
// down.
type Service struct {
	repo    Repository
	markers MarkerRepository

	now func() time.Time
}

func NewService(repo Repository, markers MarkerRepository) *Service {
	return &Service{
		repo:    repo,
		markers: markers,
		now:     time.Now,
	}
}

// ReadCached returns the payload for (ns, key) honoring the namespace's
// staleness horizon: an expired record is a miss.
func (s *Service) ReadCached(ctx context.Context, ns Namespace, key string) ([]byte, bool) {
	payload, writtenAt, found, err := s.repo.Get(ctx, ns, key)
	if err != nil {
		logger.GetLogger().Warnf("cachestore: read %s/%s failed: %v", ns.Name(), key, err)
		return nil, false
	}
	if !found {
		return nil, false
	}
	if !ns.Permanent() && s.now().Sub(writtenAt) > ns.Horizon() {
		return nil, false
	}
	return payload, true
}

// ReadCachedOrFallback returns the payload for (ns, key) ignoring the
// staleness horizon. Last-resort path for when the live fetch has failed.
func (s *Service) ReadCachedOrFallback(ctx context.Context, ns Namespace, key string) ([]byte, bool) {
	payload, _, found, err := s.repo.Get(ctx, ns, key)
	if err != nil {
		logger.GetLogger().Warnf("cachestore: fallback read %s/%s failed: %v", ns.Name(), key, err)
		return nil, false
	}
	return payload, found
}

// WriteIfEligible classifies the batch and writes through to the durable tier
// only when the namespace's eligibility rule allows it. It reports whether a
// durable write happened.
func (s *Service) WriteIfEligible(ctx context.Context, ns Namespace, key string, payload []byte, states []lifecycle.State) bool {
	if Classify(ns, states) != StoreDurable {
		return false
	}
	if err := s.repo.Put(ctx, ns, key, payload, s.now()); err != nil {
		logger.GetLogger().Warnf("cachestore: write %s/%s skipped: %v", ns.Name(), key, err)
		return false
	}
	return true
}

// RecordEventEnd stores the first-observed Final transition time for an
// event. Subsequent calls are no-ops.
func (s *Service) RecordEventEnd(ctx context.Context, eventID string) {
	if err := s.markers.RecordOnce(ctx, eventID, s.now()); err != nil {
		logger.GetLogger().Warnf("cachestore: record end marker %s failed: %v", eventID, err)
	}
}

// EventEndedAt returns when the event was first observed Final.
func (s *Service) EventEndedAt(ctx context.Context, eventID string) (time.Time, bool) {
	at, found, err := s.markers.RecordedAt(ctx, eventID)
	if err != nil {
		logger.GetLogger().Warnf("cachestore: read end marker %s failed: %v", eventID, err)
		return time.Time{}, false
	}
	return at, found
}

// Stats returns per-namespace record counts for the admin surface.
func (s *Service) Stats(ctx context.Context) map[string]int64 {
	counts, err := s.repo.Counts(ctx)
	if err != nil {
		logger.GetLogger().Warnf("cachestore: stats failed: %v", err)
		return map[string]int64{}
	}
	return counts
}
