package domain

import (
	"courtside.ai/data-service/app/domain/cachestore"
	"courtside.ai/data-service/app/domain/catalog"
	"courtside.ai/data-service/app/domain/cron"
	"courtside.ai/data-service/app/domain/discussion"
	"courtside.ai/data-service/app/domain/markets"
	"courtside.ai/data-service/app/domain/prefetch"
	"github.com/google/wire"
)

var ServiceProvider = wire.NewSet(
	cachestore.NewService,
	catalog.NewService,
	discussion.NewService,
	markets.NewService,
	prefetch.DefaultConfig,
	prefetch.NewService,
	wire.Bind(new(prefetch.EventSource), new(*catalog.Service)),
	wire.Bind(new(prefetch.DiscussionFetcher), new(*discussion.Service)),
	cron.NewService,
)
