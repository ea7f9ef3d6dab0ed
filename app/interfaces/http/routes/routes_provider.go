package routes

import (
	v1 "courtside.ai/data-service/app/interfaces/http/routes/v1"
	"courtside.ai/data-service/app/interfaces/http/routes/v1/admin"
	"courtside.ai/data-service/app/interfaces/http/routes/v1/games"
	"courtside.ai/data-service/app/interfaces/http/routes/v1/markets"
	"courtside.ai/data-service/app/interfaces/http/routes/v1/social"
	"github.com/google/wire"
)

var RouteProvider = wire.NewSet(
	games.NewGamesRoute,
	social.NewSocialRoute,
	markets.NewMarketsRoute,
	admin.NewCacheRoute,
	v1.NewV1Route,
)
