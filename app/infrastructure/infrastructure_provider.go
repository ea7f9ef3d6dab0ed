package infrastructure

import (
	"time"

	catalogDomain "courtside.ai/data-service/app/domain/catalog"
	discussionDomain "courtside.ai/data-service/app/domain/discussion"
	marketsDomain "courtside.ai/data-service/app/domain/markets"
	"courtside.ai/data-service/app/infrastructure/cache"
	"courtside.ai/data-service/app/infrastructure/database"
	"courtside.ai/data-service/app/infrastructure/database/repository"
	"courtside.ai/data-service/app/utils/httpclients"
	discussionclient "courtside.ai/data-service/app/utils/httpclients/discussion"
	marketsclient "courtside.ai/data-service/app/utils/httpclients/markets"
	scoreboardclient "courtside.ai/data-service/app/utils/httpclients/scoreboard"
	"courtside.ai/data-service/app/utils/ratelimit"
	"github.com/google/wire"
)

// The discussion upstream tolerates short bursts but throttles sustained
// scraping; one token per six seconds with a burst of five.
func NewDiscussionCaller() *httpclients.ResilientCaller {
	return httpclients.NewResilientCaller(
		ratelimit.NewRateLimiter(5, 0.167),
		httpclients.ResilientCallerConfig{
			Attempts:       3,
			InitialBackoff: time.Second,
			AcquireTimeout: 30 * time.Second,
		},
	)
}

var InfrastructureProvider = wire.NewSet(
	database.NewDB,
	repository.RepositoryProvider,
	cache.NewCacheService,
	NewDiscussionCaller,
	scoreboardclient.NewClient,
	discussionclient.NewClient,
	marketsclient.NewClient,
	wire.Bind(new(catalogDomain.ScoreboardProvider), new(*scoreboardclient.Client)),
	wire.Bind(new(discussionDomain.ThreadProvider), new(*discussionclient.Client)),
	wire.Bind(new(marketsDomain.MarketProvider), new(*marketsclient.Client)),
)
