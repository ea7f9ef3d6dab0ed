package prefetch

import (
	"context"
	"sync"
	"testing"
	"time"

	"courtside.ai/data-service/app/domain/cachestore"
	"courtside.ai/data-service/app/domain/catalog"
	"courtside.ai/data-service/app/domain/discussion"
	"courtside.ai/data-service/app/utils/datetime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	mu      sync.Mutex
	records map[string][]byte
}

func newMemRepo() *memRepo { return &memRepo{records: map[string][]byte{}} }

func (r *memRepo) Put(_ context.Context, ns cachestore.Namespace, key string, payload []byte, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[ns.Table()+"/"+key] = payload
	return nil
}

func (r *memRepo) Get(_ context.Context, ns cachestore.Namespace, key string) ([]byte, time.Time, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payload, ok := r.records[ns.Table()+"/"+key]
	return payload, time.Time{}, ok, nil
}

func (r *memRepo) Counts(context.Context) (map[string]int64, error) {
	return map[string]int64{}, nil
}

type memMarkers struct {
	mu      sync.Mutex
	markers map[string]time.Time
}

func newMemMarkers() *memMarkers { return &memMarkers{markers: map[string]time.Time{}} }

func (m *memMarkers) RecordOnce(_ context.Context, eventID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.markers[eventID]; !ok {
		m.markers[eventID] = at
	}
	return nil
}

func (m *memMarkers) RecordedAt(_ context.Context, eventID string) (time.Time, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	at, ok := m.markers[eventID]
	return at, ok, nil
}

type fakeEvents struct {
	events []catalog.EventRecord
}

func (f *fakeEvents) EventsForDate(context.Context, string) []catalog.EventRecord {
	return f.events
}

// fakeFetcher records calls and writes durable keys the way the discussion
// service would for a Final event.
type fakeFetcher struct {
	store        *cachestore.Service
	heatCalls    int
	commentCalls int
}

func (f *fakeFetcher) PrefetchHeat(ctx context.Context, away, home, date string) error {
	f.heatCalls++
	f.store.WriteIfEligible(ctx, cachestore.Discussion, discussion.HeatKey(away, home, date),
		[]byte(`{"count":42}`), []catalog.LifecycleState{catalog.StateFinal})
	return nil
}

func (f *fakeFetcher) PrefetchComments(ctx context.Context, away, home, date string, limit int) error {
	f.commentCalls++
	f.store.WriteIfEligible(ctx, cachestore.Discussion, discussion.CommentsKey(away, home, date, limit),
		[]byte(`{"comments":[]}`), []catalog.LifecycleState{catalog.StateFinal})
	return nil
}

func finalEvent(id string) catalog.EventRecord {
	return catalog.EventRecord{
		EventID:       id,
		State:         catalog.StateFinal,
		Home:          catalog.Participant{Name: "Lakers", Tricode: "LAL"},
		Away:          catalog.Participant{Name: "Celtics", Tricode: "BOS"},
		SourceTimeUTC: time.Now().UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func newTestCoordinator(events []catalog.EventRecord) (*Service, *fakeFetcher, *memMarkers) {
	markers := newMemMarkers()
	store := cachestore.NewService(newMemRepo(), markers)
	fetcher := &fakeFetcher{store: store}
	svc := NewService(&fakeEvents{events: events}, store, fetcher, Config{
		PoliteDelay:    time.Millisecond,
		SleepIncrement: time.Millisecond,
	})
	return svc, fetcher, markers
}

func TestScanSkipsImmatureEvents(t *testing.T) {
	svc, fetcher, markers := newTestCoordinator([]catalog.EventRecord{finalEvent("g1")})

	svc.scan(context.Background())

	markers.mu.Lock()
	assert.Len(t, markers.markers, 1, "final event must get an end marker")
	markers.mu.Unlock()
	assert.Zero(t, fetcher.heatCalls, "no discussion write inside the maturity window")
	assert.Zero(t, fetcher.commentCalls)
}

func TestScanPrefetchesMaturedEventsOnce(t *testing.T) {
	svc, fetcher, _ := newTestCoordinator([]catalog.EventRecord{finalEvent("g1")})

	// First observation records the marker.
	svc.scan(context.Background())

	// Jump past the maturity delay.
	svc.now = func() time.Time { return time.Now().Add(3 * time.Hour) }
	svc.scan(context.Background())
	assert.Equal(t, 1, fetcher.heatCalls)
	assert.Equal(t, 1, fetcher.commentCalls)

	// Keys are present now; further scans must not refetch.
	svc.scan(context.Background())
	svc.scan(context.Background())
	assert.Equal(t, 1, fetcher.heatCalls, "present keys must never be refetched")
	assert.Equal(t, 1, fetcher.commentCalls)
}

func TestScanIgnoresNonFinalEvents(t *testing.T) {
	live := finalEvent("g2")
	live.State = catalog.StateLive
	svc, fetcher, markers := newTestCoordinator([]catalog.EventRecord{live})

	svc.now = func() time.Time { return time.Now().Add(3 * time.Hour) }
	svc.scan(context.Background())

	markers.mu.Lock()
	assert.Empty(t, markers.markers)
	markers.mu.Unlock()
	assert.Zero(t, fetcher.heatCalls)
}

func TestMaturityGateUsesFirstObservation(t *testing.T) {
	svc, fetcher, markers := newTestCoordinator([]catalog.EventRecord{finalEvent("g3")})

	base := time.Now()
	svc.now = func() time.Time { return base }
	svc.scan(context.Background())

	// A later scan must gate off the original marker, not re-record it.
	svc.now = func() time.Time { return base.Add(90 * time.Minute) }
	svc.scan(context.Background())
	assert.Zero(t, fetcher.heatCalls)

	markers.mu.Lock()
	recorded := markers.markers["g3"]
	markers.mu.Unlock()
	require.WithinDuration(t, base, recorded, time.Second)

	svc.now = func() time.Time { return base.Add(121 * time.Minute) }
	svc.scan(context.Background())
	assert.Equal(t, 1, fetcher.heatCalls)
}

func TestStartStopIdempotent(t *testing.T) {
	svc, _, _ := newTestCoordinator(nil)
	svc.config.CycleInterval = 10 * time.Millisecond

	svc.Start()
	svc.Start()

	done := make(chan struct{})
	go func() {
		svc.Stop()
		svc.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return promptly")
	}
}

func TestSleepForHonoursCancellation(t *testing.T) {
	svc, _, _ := newTestCoordinator(nil)
	svc.config.SleepIncrement = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	assert.False(t, svc.sleepFor(ctx, time.Hour))
	assert.Less(t, time.Since(start), time.Second)
}

func TestPrefetchUsesSourceDateBucketing(t *testing.T) {
	event := finalEvent("g4")
	event.SourceTimeUTC = "2026-01-04T02:00:00Z"
	svc, fetcher, _ := newTestCoordinator([]catalog.EventRecord{event})

	svc.scan(context.Background())
	svc.now = func() time.Time { return time.Now().Add(3 * time.Hour) }
	svc.scan(context.Background())

	require.Equal(t, 1, fetcher.heatCalls)
	_, ok := fetcher.store.ReadCachedOrFallback(context.Background(), cachestore.Discussion,
		discussion.HeatKey("Celtics", "Lakers", "2026-01-04"))
	assert.True(t, ok, "durable key must use the upstream's own date bucket: %s", datetime.DateOnly(event.SourceTimeUTC))
}
