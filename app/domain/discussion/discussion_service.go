package discussion

import (
	"context"
	"encoding/json"
	"fmt"

	"courtside.ai/data-service/app/domain/cachestore"
	"courtside.ai/data-service/app/domain/catalog"
	"courtside.ai/data-service/app/infrastructure/cache"
	discussionclient "courtside.ai/data-service/app/utils/httpclients/discussion"
	"courtside.ai/data-service/app/utils/logger"
)

// DefaultCommentLimit matches the client UI's default page size.
const DefaultCommentLimit = 5

// ThreadProvider is the discussion upstream behind the resilient caller.
type ThreadProvider interface {
	FindThread(ctx context.Context, away, home string) (*discussionclient.Thread, error)
	TopComments(ctx context.Context, threadID string, limit int) ([]discussionclient.Comment, error)
}

// Heat summarizes how busy a matchup's discussion thread is.
type Heat struct {
	Count    int    `json:"count"`
	Level    string `json:"level"`
	Trending bool   `json:"trending"`
	ThreadID string `json:"threadId,omitempty"`
	URL      string `json:"url,omitempty"`
}

// DisplayComment is one comment shaped for the client UI.
type DisplayComment struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	User  string `json:"user"`
	Likes int    `json:"likes"`
}

// CommentList wraps comments for the client UI.
type CommentList struct {
	Comments []DisplayComment `json:"comments"`
}

// HeatKey is the durable discussion-namespace key for a matchup's heat.
func HeatKey(away, home, date string) string {
	return fmt.Sprintf("heat_%s_%s_%s", away, home, date)
}

// CommentsKey is the durable discussion-namespace key for a matchup's
// comments at a given page size.
func CommentsKey(away, home, date string, limit int) string {
	return fmt.Sprintf("comments_%s_%s_%s_%d", away, home, date, limit)
}

// ColdHeat is the well-defined empty result when no thread exists or no
// upstream and no cached fallback is available.
func ColdHeat() *Heat {
	return &Heat{Count: 0, Level: "cold", Trending: false}
}

// heatLevel buckets a comment count.
func heatLevel(count int) string {
	switch {
	case count > 1000:
		return "fire"
	case count > 200:
		return "hot"
	case count > 50:
		return "warm"
	default:
		return "cold"
	}
}

// Service serves social-discussion signals through the two cache tiers. The
// upstream is scrape-sensitive, so every live fetch already went through the
// rate-limited resilient caller inside the client.
type Service struct {
	provider ThreadProvider
	store    *cachestore.Service
	mem      cache.CacheService
}

func NewService(provider ThreadProvider, store *cachestore.Service, mem cache.CacheService) *Service {
	return &Service{
		provider: provider,
		store:    store,
		mem:      mem,
	}
}

// Heat returns the discussion heat of a matchup. state is the matchup's
// lifecycle state as known to the caller; it gates the durable write.
func (s *Service) Heat(ctx context.Context, away, home, date string, state catalog.LifecycleState) *Heat {
	memKey := fmt.Sprintf(cache.HeatKeyPattern, away, home, date)
	if cached, err := s.mem.Get(ctx, memKey); err == nil {
		if heat := decodeHeat([]byte(cached)); heat != nil {
			return heat
		}
	}

	durableKey := HeatKey(away, home, date)
	if payload, ok := s.store.ReadCached(ctx, cachestore.Discussion, durableKey); ok {
		if heat := decodeHeat(payload); heat != nil {
			return heat
		}
	}

	heat, err := s.fetchHeat(ctx, away, home, date, state)
	if err != nil {
		logger.GetLogger().Warnf("discussion: heat fetch %s/%s failed: %v", away, home, err)
		if payload, ok := s.store.ReadCachedOrFallback(ctx, cachestore.Discussion, durableKey); ok {
			if stale := decodeHeat(payload); stale != nil {
				return stale
			}
		}
		return ColdHeat()
	}
	return heat
}

// Comments returns the top thread comments of a matchup.
func (s *Service) Comments(ctx context.Context, away, home, date string, limit int, state catalog.LifecycleState) *CommentList {
	if limit <= 0 {
		limit = DefaultCommentLimit
	}
	memKey := fmt.Sprintf(cache.CommentsKeyPattern, away, home, date, limit)
	if cached, err := s.mem.Get(ctx, memKey); err == nil {
		if list := decodeComments([]byte(cached)); list != nil {
			return list
		}
	}

	durableKey := CommentsKey(away, home, date, limit)
	if payload, ok := s.store.ReadCached(ctx, cachestore.Discussion, durableKey); ok {
		if list := decodeComments(payload); list != nil {
			return list
		}
	}

	list, err := s.fetchComments(ctx, away, home, date, limit, state)
	if err != nil {
		logger.GetLogger().Warnf("discussion: comments fetch %s/%s failed: %v", away, home, err)
		if payload, ok := s.store.ReadCachedOrFallback(ctx, cachestore.Discussion, durableKey); ok {
			if stale := decodeComments(payload); stale != nil {
				return stale
			}
		}
		return &CommentList{Comments: []DisplayComment{}}
	}
	return list
}

// PrefetchHeat always performs a live fetch for a Final matchup and
// populates both cache tiers. Used by the background coordinator once the
// maturity delay has passed.
func (s *Service) PrefetchHeat(ctx context.Context, away, home, date string) error {
	_, err := s.fetchHeat(ctx, away, home, date, catalog.StateFinal)
	return err
}

// PrefetchComments is the coordinator's counterpart of Comments.
func (s *Service) PrefetchComments(ctx context.Context, away, home, date string, limit int) error {
	if limit <= 0 {
		limit = DefaultCommentLimit
	}
	_, err := s.fetchComments(ctx, away, home, date, limit, catalog.StateFinal)
	return err
}

func (s *Service) fetchHeat(ctx context.Context, away, home, date string, state catalog.LifecycleState) (*Heat, error) {
	thread, err := s.provider.FindThread(ctx, away, home)
	if err != nil {
		return nil, err
	}
	if thread == nil {
		// No thread yet; nothing worth caching.
		return ColdHeat(), nil
	}

	heat := &Heat{
		Count:    thread.NumComments,
		Level:    heatLevel(thread.NumComments),
		Trending: thread.NumComments > 500,
		ThreadID: thread.ID,
		URL:      thread.URL,
	}
	s.cacheResult(ctx, HeatKey(away, home, date),
		fmt.Sprintf(cache.HeatKeyPattern, away, home, date), heat, state)
	return heat, nil
}

func (s *Service) fetchComments(ctx context.Context, away, home, date string, limit int, state catalog.LifecycleState) (*CommentList, error) {
	thread, err := s.provider.FindThread(ctx, away, home)
	if err != nil {
		return nil, err
	}
	if thread == nil {
		return &CommentList{Comments: []DisplayComment{}}, nil
	}

	comments, err := s.provider.TopComments(ctx, thread.ID, limit)
	if err != nil {
		return nil, err
	}

	list := &CommentList{Comments: make([]DisplayComment, 0, len(comments))}
	for _, c := range comments {
		list.Comments = append(list.Comments, DisplayComment{
			ID:    c.ID,
			Text:  c.Body,
			User:  "u/" + c.Author,
			Likes: c.Score,
		})
	}
	s.cacheResult(ctx, CommentsKey(away, home, date, limit),
		fmt.Sprintf(cache.CommentsKeyPattern, away, home, date, limit), list, state)
	return list, nil
}

func (s *Service) cacheResult(ctx context.Context, durableKey, memKey string, value any, state catalog.LifecycleState) {
	payload, err := json.Marshal(value)
	if err != nil {
		logger.GetLogger().Warnf("discussion: marshal %s failed: %v", durableKey, err)
		return
	}
	s.store.WriteIfEligible(ctx, cachestore.Discussion, durableKey, payload, []catalog.LifecycleState{state})
	_ = s.mem.Set(ctx, memKey, string(payload), cache.EphemeralTTL)
}

func decodeHeat(payload []byte) *Heat {
	var heat Heat
	if err := json.Unmarshal(payload, &heat); err != nil {
		logger.GetLogger().Warnf("discussion: corrupt cached heat dropped: %v", err)
		return nil
	}
	return &heat
}

func decodeComments(payload []byte) *CommentList {
	var list CommentList
	if err := json.Unmarshal(payload, &list); err != nil {
		logger.GetLogger().Warnf("discussion: corrupt cached comments dropped: %v", err)
		return nil
	}
	return &list
}
