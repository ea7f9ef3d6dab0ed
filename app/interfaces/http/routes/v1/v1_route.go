package v1

import (
	"net/http"

	"courtside.ai/data-service/app/interfaces/http/routes/v1/admin"
	"courtside.ai/data-service/app/interfaces/http/routes/v1/games"
	"courtside.ai/data-service/app/interfaces/http/routes/v1/markets"
	"courtside.ai/data-service/app/interfaces/http/routes/v1/social"
	"courtside.ai/data-service/config"
	"github.com/gin-gonic/gin"
)

type V1Route struct {
	gamesRoute   *games.GamesRoute
	socialRoute  *social.SocialRoute
	marketsRoute *markets.MarketsRoute
	cacheRoute   *admin.CacheRoute
}

func NewV1Route(
	gamesRoute *games.GamesRoute,
	socialRoute *social.SocialRoute,
	marketsRoute *markets.MarketsRoute,
	cacheRoute *admin.CacheRoute,
) *V1Route {
	return &V1Route{
		gamesRoute,
		socialRoute,
		marketsRoute,
		cacheRoute,
	}
}

func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")
	v1Router.GET("/version", GetVersion)
	v1Route.gamesRoute.RegisterRouter(v1Router)
	v1Route.socialRoute.RegisterRouter(v1Router)
	v1Route.marketsRoute.RegisterRouter(v1Router)
	v1Route.cacheRoute.RegisterRouter(v1Router)
}

// GetVersion returns the current build version of the API server.
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": config.Version,
	})
}
