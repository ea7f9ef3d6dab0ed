package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"courtside.ai/data-service/app/domain/cachestore"
	"courtside.ai/data-service/app/infrastructure/cache"
	"courtside.ai/data-service/app/utils/httpclients/scoreboard"
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
	return payload, time.Now(), ok, nil
}

func (r *memRepo) Counts(context.Context) (map[string]int64, error) {
	return map[string]int64{}, nil
}

func (r *memRepo) has(ns cachestore.Namespace, key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.records[ns.Table()+"/"+key]
	return ok
}

type memMarkers struct{}

func (memMarkers) RecordOnce(context.Context, string, time.Time) error { return nil }
func (memMarkers) RecordedAt(context.Context, string) (time.Time, bool, error) {
	return time.Time{}, false, nil
}

type fakeProvider struct {
	games      []scoreboard.Game
	schedule   []scoreboard.Game
	standings  json.RawMessage
	boxscore   json.RawMessage
	playbyplay json.RawMessage
	err        error

	scoreboardCalls int
}

func (f *fakeProvider) Scoreboard(context.Context, string) ([]scoreboard.Game, error) {
	f.scoreboardCalls++
	return f.games, f.err
}

func (f *fakeProvider) Schedule(context.Context, string) ([]scoreboard.Game, error) {
	return f.schedule, f.err
}

func (f *fakeProvider) Standings(context.Context) (json.RawMessage, error) {
	return f.standings, f.err
}

func (f *fakeProvider) Boxscore(context.Context, string) (json.RawMessage, error) {
	return f.boxscore, f.err
}

func (f *fakeProvider) PlayByPlay(context.Context, string) (json.RawMessage, error) {
	return f.playbyplay, f.err
}

func game(id string, status int) scoreboard.Game {
	return scoreboard.Game{
		GameID:      id,
		GameStatus:  status,
		GameTimeUTC: "2026-01-04T00:00:00Z",
		HomeTeam:    scoreboard.Team{TeamName: "Lakers", TeamTricode: "LAL", Score: 110},
		AwayTeam:    scoreboard.Team{TeamName: "Celtics", TeamTricode: "BOS", Score: 108},
	}
}

func newTestService(provider ScoreboardProvider) (*Service, *memRepo) {
	repo := newMemRepo()
	store := cachestore.NewService(repo, memMarkers{})
	return NewService(provider, store, cache.NewMemoryCacheService()), repo
}

func TestEventsForDateCachesCompletedBatch(t *testing.T) {
	provider := &fakeProvider{games: []scoreboard.Game{game("g1", 3), game("g2", 3)}}
	svc, repo := newTestService(provider)

	events := svc.EventsForDate(context.Background(), "2026-01-04")
	require.Len(t, events, 2)
	assert.True(t, events[0].IsFinal())
	assert.True(t, repo.has(cachestore.CompletedEvents, "2026-01-04"),
		"all-final batch must be durably cached")
}

func TestEventsForDateMixedBatchStaysEphemeral(t *testing.T) {
	provider := &fakeProvider{games: []scoreboard.Game{game("g1", 3), game("g2", 2)}}
	svc, repo := newTestService(provider)

	events := svc.EventsForDate(context.Background(), "2026-01-04")
	require.Len(t, events, 2)
	assert.False(t, repo.has(cachestore.CompletedEvents, "2026-01-04"),
		"a still-changing scoreboard must not be durably cached")

	// But the ephemeral tier absorbs the next burst.
	svc.EventsForDate(context.Background(), "2026-01-04")
	assert.Equal(t, 1, provider.scoreboardCalls)
}

func TestEventsForDateColdResultOnTotalFailure(t *testing.T) {
	svc, _ := newTestService(&fakeProvider{err: errors.New("upstream down")})

	events := svc.EventsForDate(context.Background(), "2026-01-04")
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestEventsForDateFallsBackToStale(t *testing.T) {
	provider := &fakeProvider{games: []scoreboard.Game{game("g1", 3)}}
	svc, repo := newTestService(provider)
	svc.EventsForDate(context.Background(), "2026-01-04")

	// Fresh tiers, dead upstream, same durable repo.
	store := cachestore.NewService(repo, memMarkers{})
	broken := NewService(&fakeProvider{err: errors.New("down")}, store, cache.NewMemoryCacheService())

	events := broken.EventsForDate(context.Background(), "2026-01-04")
	require.Len(t, events, 1)
	assert.Equal(t, "g1", events[0].EventID)
}

func TestLiveEventsFiltersByState(t *testing.T) {
	provider := &fakeProvider{games: []scoreboard.Game{game("g1", 2), game("g2", 3), game("g3", 1)}}
	svc, _ := newTestService(provider)

	live := svc.LiveEvents(context.Background())
	require.Len(t, live, 1)
	assert.Equal(t, "g1", live[0].EventID)
}

func TestScheduleWritesUnconditionally(t *testing.T) {
	provider := &fakeProvider{schedule: []scoreboard.Game{game("g1", 1)}}
	svc, repo := newTestService(provider)

	events := svc.Schedule(context.Background(), "2026-02-01")
	require.Len(t, events, 1)
	assert.True(t, repo.has(cachestore.EventSchedule, "2026-02-01"),
		"future schedules are cacheable before any game starts")
}

func TestStandingsCachedAndColdFallback(t *testing.T) {
	provider := &fakeProvider{standings: json.RawMessage(`{"standings":[]}`)}
	svc, repo := newTestService(provider)

	payload := svc.Standings(context.Background())
	assert.JSONEq(t, `{"standings":[]}`, string(payload))
	assert.True(t, repo.has(cachestore.Standings, StandingsKey))

	broken, _ := newTestService(&fakeProvider{err: errors.New("down")})
	assert.JSONEq(t, `{}`, string(broken.Standings(context.Background())))
}

func TestBoxscoreFinalGating(t *testing.T) {
	finalPayload := json.RawMessage(`{"game":{"gameStatus":3}}`)
	svc, repo := newTestService(&fakeProvider{boxscore: finalPayload})

	_, err := svc.Boxscore(context.Background(), "g1")
	require.NoError(t, err)
	assert.True(t, repo.has(cachestore.EventDetail, "g1"))

	livePayload := json.RawMessage(`{"game":{"gameStatus":2}}`)
	svc2, repo2 := newTestService(&fakeProvider{boxscore: livePayload})
	_, err = svc2.Boxscore(context.Background(), "g2")
	require.NoError(t, err)
	assert.False(t, repo2.has(cachestore.EventDetail, "g2"),
		"in-progress boxscores must not be durably cached")
}

func TestPlayByPlayCallerFlagGating(t *testing.T) {
	payload := json.RawMessage(`{"plays":[]}`)

	svc, repo := newTestService(&fakeProvider{playbyplay: payload})
	_, err := svc.PlayByPlay(context.Background(), "g1", true)
	require.NoError(t, err)
	assert.True(t, repo.has(cachestore.PlayByPlay, "g1"))

	svc2, repo2 := newTestService(&fakeProvider{playbyplay: payload})
	_, err = svc2.PlayByPlay(context.Background(), "g2", false)
	require.NoError(t, err)
	assert.False(t, repo2.has(cachestore.PlayByPlay, "g2"))
}
