package social

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"courtside.ai/data-service/app/domain/cachestore"
	"courtside.ai/data-service/app/domain/catalog"
	"courtside.ai/data-service/app/domain/discussion"
	"courtside.ai/data-service/app/infrastructure/cache"
	discussionclient "courtside.ai/data-service/app/utils/httpclients/discussion"
	"courtside.ai/data-service/app/utils/httpclients/scoreboard"
	"github.com/gin-gonic/gin"
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

type memMarkers struct{}

func (memMarkers) RecordOnce(context.Context, string, time.Time) error { return nil }
func (memMarkers) RecordedAt(context.Context, string) (time.Time, bool, error) {
	return time.Time{}, false, nil
}

// Late tip-off: the local calendar says Jan 3, the source timestamp Jan 4.
type fakeScoreboard struct{}

func (fakeScoreboard) Scoreboard(context.Context, string) ([]scoreboard.Game, error) {
	return []scoreboard.Game{{
		GameID:      "g1",
		GameStatus:  3,
		GameTimeUTC: "2026-01-04T02:30:00Z",
		HomeTeam:    scoreboard.Team{TeamName: "Lakers", TeamTricode: "LAL"},
		AwayTeam:    scoreboard.Team{TeamName: "Celtics", TeamTricode: "BOS"},
	}}, nil
}

func (fakeScoreboard) Schedule(context.Context, string) ([]scoreboard.Game, error) {
	return nil, nil
}

func (fakeScoreboard) Standings(context.Context) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}

func (fakeScoreboard) Boxscore(context.Context, string) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}

func (fakeScoreboard) PlayByPlay(context.Context, string) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}

type fakeThreads struct {
	findCalls int
}

func (f *fakeThreads) FindThread(context.Context, string, string) (*discussionclient.Thread, error) {
	f.findCalls++
	return &discussionclient.Thread{ID: "t1", NumComments: 700, URL: "https://example.com/t1"}, nil
}

func (f *fakeThreads) TopComments(context.Context, string, int) ([]discussionclient.Comment, error) {
	return nil, nil
}

func newSocialServer(t *testing.T, repo *memRepo, threads *fakeThreads) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := cachestore.NewService(repo, memMarkers{})
	catalogService := catalog.NewService(fakeScoreboard{}, store, cache.NewMemoryCacheService())
	discussionService := discussion.NewService(threads, store, cache.NewMemoryCacheService())
	engine := gin.New()
	NewSocialRoute(discussionService, catalogService).RegisterRouter(engine.Group("/v1"))
	return engine
}

// A heat record prefetched under the event's source date must be served
// when the route is asked with the local calendar date.
func TestHeatReadUsesPrefetchedSourceDateKey(t *testing.T) {
	repo := newMemRepo()

	warmThreads := &fakeThreads{}
	warmStore := cachestore.NewService(repo, memMarkers{})
	warmer := discussion.NewService(warmThreads, warmStore, cache.NewMemoryCacheService())
	require.NoError(t, warmer.PrefetchHeat(context.Background(), "Celtics", "Lakers", "2026-01-04"))
	require.Equal(t, 1, warmThreads.findCalls)

	threads := &fakeThreads{}
	engine := newSocialServer(t, repo, threads)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/v1/social/heat/BOS/LAL?date=2026-01-03", nil)
	engine.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	var resp struct {
		Result discussion.Heat `json:"result"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, 700, resp.Result.Count)
	assert.Equal(t, "hot", resp.Result.Level)
	assert.Zero(t, threads.findCalls, "warmed durable record must be served without a live fetch")
}

func TestUnmatchedMatchupKeepsRequestedDate(t *testing.T) {
	threads := &fakeThreads{}
	engine := newSocialServer(t, newMemRepo(), threads)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/v1/social/heat/Knicks/Bulls?date=2026-01-03", nil)
	engine.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 1, threads.findCalls)
}
