package cachestore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"courtside.ai/data-service/app/domain/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecord struct {
	payload   []byte
	writtenAt time.Time
}

type fakeRepo struct {
	mu      sync.Mutex
	records map[string]fakeRecord
	failing bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: map[string]fakeRecord{}}
}

func (r *fakeRepo) key(ns Namespace, key string) string { return ns.Table() + "/" + key }

func (r *fakeRepo) Put(_ context.Context, ns Namespace, key string, payload []byte, writtenAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return errors.New("disk full")
	}
	r.records[r.key(ns, key)] = fakeRecord{payload: payload, writtenAt: writtenAt}
	return nil
}

func (r *fakeRepo) Get(_ context.Context, ns Namespace, key string) ([]byte, time.Time, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return nil, time.Time{}, false, errors.New("db unavailable")
	}
	rec, ok := r.records[r.key(ns, key)]
	if !ok {
		return nil, time.Time{}, false, nil
	}
	return rec.payload, rec.writtenAt, true, nil
}

func (r *fakeRepo) Counts(context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[string]int64{}
	for k := range r.records {
		counts[k] = 1
	}
	return counts, nil
}

type fakeMarkers struct {
	mu      sync.Mutex
	markers map[string]time.Time
}

func newFakeMarkers() *fakeMarkers { return &fakeMarkers{markers: map[string]time.Time{}} }

// RecordOnce mimics the unique-key constraint: first write wins.
func (m *fakeMarkers) RecordOnce(_ context.Context, eventID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.markers[eventID]; !ok {
		m.markers[eventID] = at
	}
	return nil
}

func (m *fakeMarkers) RecordedAt(_ context.Context, eventID string) (time.Time, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	at, ok := m.markers[eventID]
	return at, ok, nil
}

func newTestService(repo Repository, markers MarkerRepository) *Service {
	return NewService(repo, markers)
}

func TestWriteIfEligibleRespectsPolicy(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, newFakeMarkers())
	ctx := context.Background()

	written := svc.WriteIfEligible(ctx, CompletedEvents, "2026-01-04", []byte(`[]`),
		[]lifecycle.State{lifecycle.StateFinal, lifecycle.StateLive})
	assert.False(t, written, "mixed batch must not reach the durable tier")

	written = svc.WriteIfEligible(ctx, CompletedEvents, "2026-01-04", []byte(`[]`),
		[]lifecycle.State{lifecycle.StateFinal, lifecycle.StateFinal})
	assert.True(t, written)

	payload, ok := svc.ReadCached(ctx, CompletedEvents, "2026-01-04")
	require.True(t, ok)
	assert.Equal(t, []byte(`[]`), payload)
}

func TestStalenessHorizonBoundaries(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, newFakeMarkers())
	ctx := context.Background()

	now := time.Unix(1_700_000_000, 0)
	svc.now = func() time.Time { return now }

	require.True(t, svc.WriteIfEligible(ctx, EventSchedule, "2026-02-01", []byte(`[{}]`),
		[]lifecycle.State{lifecycle.StateScheduled}))

	// Just inside the 24h horizon.
	svc.now = func() time.Time { return now.Add(23 * time.Hour) }
	_, ok := svc.ReadCached(ctx, EventSchedule, "2026-02-01")
	assert.True(t, ok, "hit expected before the horizon")

	// Just past it.
	svc.now = func() time.Time { return now.Add(25 * time.Hour) }
	_, ok = svc.ReadCached(ctx, EventSchedule, "2026-02-01")
	assert.False(t, ok, "miss expected past the horizon")

	// The fallback path ignores the horizon entirely.
	payload, ok := svc.ReadCachedOrFallback(ctx, EventSchedule, "2026-02-01")
	assert.True(t, ok)
	assert.Equal(t, []byte(`[{}]`), payload)
}

func TestPermanentNamespaceNeverExpires(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, newFakeMarkers())
	ctx := context.Background()

	now := time.Unix(1_700_000_000, 0)
	svc.now = func() time.Time { return now }
	require.True(t, svc.WriteIfEligible(ctx, EventDetail, "0022600123", []byte(`{}`),
		[]lifecycle.State{lifecycle.StateFinal}))

	svc.now = func() time.Time { return now.Add(365 * 24 * time.Hour) }
	_, ok := svc.ReadCached(ctx, EventDetail, "0022600123")
	assert.True(t, ok)
}

func TestStorageFailuresAreSwallowed(t *testing.T) {
	repo := newFakeRepo()
	repo.failing = true
	svc := newTestService(repo, newFakeMarkers())
	ctx := context.Background()

	assert.False(t, svc.WriteIfEligible(ctx, Standings, "current", []byte(`{}`), nil))
	_, ok := svc.ReadCached(ctx, Standings, "current")
	assert.False(t, ok)
	_, ok = svc.ReadCachedOrFallback(ctx, Standings, "current")
	assert.False(t, ok)
}

func TestEventEndMarkerFirstObservationWins(t *testing.T) {
	markers := newFakeMarkers()
	svc := newTestService(newFakeRepo(), markers)
	ctx := context.Background()

	first := time.Unix(1_700_000_000, 0)
	svc.now = func() time.Time { return first }
	svc.RecordEventEnd(ctx, "0022600123")

	svc.now = func() time.Time { return first.Add(time.Hour) }
	svc.RecordEventEnd(ctx, "0022600123")

	at, ok := svc.EventEndedAt(ctx, "0022600123")
	require.True(t, ok)
	assert.Equal(t, first, at)
}

func TestConcurrentEndMarkersProduceOneTimestamp(t *testing.T) {
	markers := newFakeMarkers()
	svc := newTestService(newFakeRepo(), markers)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.RecordEventEnd(ctx, "race-game")
		}()
	}
	wg.Wait()

	markers.mu.Lock()
	defer markers.mu.Unlock()
	assert.Len(t, markers.markers, 1)
}
