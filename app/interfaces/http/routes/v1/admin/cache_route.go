package admin

import (
	"net/http"

	"courtside.ai/data-service/app/domain/cachestore"
	"courtside.ai/data-service/app/interfaces/http/responses"
	"github.com/gin-gonic/gin"
)

type CacheRoute struct {
	store *cachestore.Service
}

func NewCacheRoute(store *cachestore.Service) *CacheRoute {
	return &CacheRoute{
		store: store,
	}
}

func (route *CacheRoute) RegisterRouter(router gin.IRouter) {
	adminRouter := router.Group("/admin")
	adminRouter.GET("/cache/stats", route.GetStats)
}

// GetStats returns per-namespace durable record counts.
func (route *CacheRoute) GetStats(reqCtx *gin.Context) {
	stats := route.store.Stats(reqCtx.Request.Context())
	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[map[string]int64]{
		Status: responses.ResponseCodeOk,
		Result: stats,
	})
}
