package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"courtside.ai/data-service/app/domain/cachestore"
	"courtside.ai/data-service/app/infrastructure/cache"
	"courtside.ai/data-service/app/utils/datetime"
	"courtside.ai/data-service/app/utils/httpclients/scoreboard"
	"courtside.ai/data-service/app/utils/logger"
)

// ScoreboardProvider is the external event catalog.
type ScoreboardProvider interface {
	Scoreboard(ctx context.Context, date string) ([]scoreboard.Game, error)
	Schedule(ctx context.Context, date string) ([]scoreboard.Game, error)
	Standings(ctx context.Context) (json.RawMessage, error)
	Boxscore(ctx context.Context, gameID string) (json.RawMessage, error)
	PlayByPlay(ctx context.Context, gameID string) (json.RawMessage, error)
}

// StandingsKey is the single durable key of the standings namespace.
const StandingsKey = "current"

// Service serves event data through the two cache tiers. Reads probe the
// ephemeral tier, then the durable tier, then fall through to the upstream;
// the freshness policy decides where results land. Upstream failures degrade
// to stale durable data and finally to a cold empty result, never an error
// the HTTP layer has to translate.
type Service struct {
	provider ScoreboardProvider
	store    *cachestore.Service
	mem      cache.CacheService
}

func NewService(provider ScoreboardProvider, store *cachestore.Service, mem cache.CacheService) *Service {
	return &Service{
		provider: provider,
		store:    store,
		mem:      mem,
	}
}

// EventsForDate returns all events for a date with current scores.
func (s *Service) EventsForDate(ctx context.Context, date string) []EventRecord {
	memKey := fmt.Sprintf(cache.EventsByDateKeyPattern, date)
	if cached, err := s.mem.Get(ctx, memKey); err == nil {
		if events, ok := decodeEvents([]byte(cached)); ok {
			return events
		}
	}

	if payload, ok := s.store.ReadCached(ctx, cachestore.CompletedEvents, date); ok {
		if events, ok := decodeEvents(payload); ok {
			return events
		}
	}

	games, err := s.provider.Scoreboard(ctx, date)
	if err != nil {
		logger.GetLogger().Warnf("catalog: scoreboard fetch for %s failed: %v", date, err)
		if payload, ok := s.store.ReadCachedOrFallback(ctx, cachestore.CompletedEvents, date); ok {
			if events, ok := decodeEvents(payload); ok {
				return events
			}
		}
		return []EventRecord{}
	}

	events := mapGames(games)
	s.cacheBatch(ctx, cachestore.CompletedEvents, date, memKey, events)
	return events
}

// LiveEvents returns today's in-progress events. Live data is never durably
// cached; it rides on the ephemeral tier only.
func (s *Service) LiveEvents(ctx context.Context) []EventRecord {
	all := s.EventsForDate(ctx, datetime.LocalToday())
	live := make([]EventRecord, 0, len(all))
	for _, e := range all {
		if e.State == StateLive {
			live = append(live, e)
		}
	}
	return live
}

// Schedule returns the matchup schedule for a future date, durable-cached
// unconditionally under a 24h horizon.
func (s *Service) Schedule(ctx context.Context, date string) []EventRecord {
	memKey := fmt.Sprintf(cache.ScheduleKeyPattern, date)
	if cached, err := s.mem.Get(ctx, memKey); err == nil {
		if events, ok := decodeEvents([]byte(cached)); ok {
			return events
		}
	}

	if payload, ok := s.store.ReadCached(ctx, cachestore.EventSchedule, date); ok {
		if events, ok := decodeEvents(payload); ok {
			return events
		}
	}

	games, err := s.provider.Schedule(ctx, date)
	if err != nil {
		logger.GetLogger().Warnf("catalog: schedule fetch for %s failed: %v", date, err)
		if payload, ok := s.store.ReadCachedOrFallback(ctx, cachestore.EventSchedule, date); ok {
			if events, ok := decodeEvents(payload); ok {
				return events
			}
		}
		return []EventRecord{}
	}

	events := mapGames(games)
	s.cacheBatch(ctx, cachestore.EventSchedule, date, memKey, events)
	return events
}

// Standings returns the league table, durable-cached under a 6h horizon.
func (s *Service) Standings(ctx context.Context) json.RawMessage {
	if cached, err := s.mem.Get(ctx, cache.StandingsKey); err == nil {
		return json.RawMessage(cached)
	}
	if payload, ok := s.store.ReadCached(ctx, cachestore.Standings, StandingsKey); ok {
		return payload
	}

	payload, err := s.provider.Standings(ctx)
	if err != nil {
		logger.GetLogger().Warnf("catalog: standings fetch failed: %v", err)
		if stale, ok := s.store.ReadCachedOrFallback(ctx, cachestore.Standings, StandingsKey); ok {
			return stale
		}
		return json.RawMessage(`{}`)
	}

	s.store.WriteIfEligible(ctx, cachestore.Standings, StandingsKey, payload, nil)
	_ = s.mem.Set(ctx, cache.StandingsKey, string(payload), cache.EphemeralTTL)
	return payload
}

// Boxscore returns the boxscore for an event. The payload is durable-cached
// only once the event is Final; before that it rides the ephemeral tier.
func (s *Service) Boxscore(ctx context.Context, eventID string) (json.RawMessage, error) {
	memKey := fmt.Sprintf(cache.BoxscoreKeyPattern, eventID)
	if cached, err := s.mem.Get(ctx, memKey); err == nil {
		return json.RawMessage(cached), nil
	}
	if payload, ok := s.store.ReadCached(ctx, cachestore.EventDetail, eventID); ok {
		return payload, nil
	}

	payload, err := s.provider.Boxscore(ctx, eventID)
	if err != nil {
		logger.GetLogger().Warnf("catalog: boxscore fetch for %s failed: %v", eventID, err)
		if stale, ok := s.store.ReadCachedOrFallback(ctx, cachestore.EventDetail, eventID); ok {
			return stale, nil
		}
		return nil, err
	}

	states := []LifecycleState{boxscoreState(payload)}
	s.store.WriteIfEligible(ctx, cachestore.EventDetail, eventID, payload, states)
	_ = s.mem.Set(ctx, memKey, string(payload), cache.EphemeralTTL)
	return payload, nil
}

// PlayByPlay returns the play-by-play feed for an event. The caller flags
// whether the source event is Final; only then is the feed durable-cached.
func (s *Service) PlayByPlay(ctx context.Context, eventID string, final bool) (json.RawMessage, error) {
	memKey := fmt.Sprintf(cache.PlayByPlayKeyPattern, eventID)
	if cached, err := s.mem.Get(ctx, memKey); err == nil {
		return json.RawMessage(cached), nil
	}
	if payload, ok := s.store.ReadCached(ctx, cachestore.PlayByPlay, eventID); ok {
		return payload, nil
	}

	payload, err := s.provider.PlayByPlay(ctx, eventID)
	if err != nil {
		logger.GetLogger().Warnf("catalog: playbyplay fetch for %s failed: %v", eventID, err)
		if stale, ok := s.store.ReadCachedOrFallback(ctx, cachestore.PlayByPlay, eventID); ok {
			return stale, nil
		}
		return nil, err
	}

	state := StateLive
	if final {
		state = StateFinal
	}
	s.store.WriteIfEligible(ctx, cachestore.PlayByPlay, eventID, payload, []LifecycleState{state})
	_ = s.mem.Set(ctx, memKey, string(payload), cache.EphemeralTTL)
	return payload, nil
}

func (s *Service) cacheBatch(ctx context.Context, ns cachestore.Namespace, key, memKey string, events []EventRecord) {
	action := cachestore.Classify(ns, States(events))
	if action == cachestore.StoreNone {
		return
	}
	payload, err := json.Marshal(events)
	if err != nil {
		logger.GetLogger().Warnf("catalog: marshal batch for %s failed: %v", key, err)
		return
	}
	if action == cachestore.StoreDurable {
		s.store.WriteIfEligible(ctx, ns, key, payload, States(events))
	}
	_ = s.mem.Set(ctx, memKey, string(payload), cache.EphemeralTTL)
}

func mapGames(games []scoreboard.Game) []EventRecord {
	events := make([]EventRecord, 0, len(games))
	for _, g := range games {
		events = append(events, EventRecord{
			EventID:       g.GameID,
			State:         LifecycleState(g.GameStatus),
			StatusText:    g.GameStatusText,
			Period:        g.Period,
			Clock:         g.GameClock,
			Home:          mapTeam(g.HomeTeam),
			Away:          mapTeam(g.AwayTeam),
			LocalDate:     datetime.LocalDate(g.GameTimeUTC),
			SourceTimeUTC: g.GameTimeUTC,
		})
	}
	return events
}

func mapTeam(t scoreboard.Team) Participant {
	return Participant{
		TeamID:  t.TeamID,
		Name:    t.TeamName,
		City:    t.TeamCity,
		Tricode: t.TeamTricode,
		Score:   t.Score,
	}
}

func decodeEvents(payload []byte) ([]EventRecord, bool) {
	var events []EventRecord
	if err := json.Unmarshal(payload, &events); err != nil {
		logger.GetLogger().Warnf("catalog: corrupt cached batch dropped: %v", err)
		return nil, false
	}
	return events, true
}

func boxscoreState(payload json.RawMessage) LifecycleState {
	var probe struct {
		Game struct {
			GameStatus int `json:"gameStatus"`
		} `json:"game"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil || probe.Game.GameStatus == 0 {
		return StateLive
	}
	return LifecycleState(probe.Game.GameStatus)
}
