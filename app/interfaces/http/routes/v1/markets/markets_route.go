package markets

import (
	"net/http"

	"courtside.ai/data-service/app/domain/markets"
	"courtside.ai/data-service/app/interfaces/http/responses"
	marketsclient "courtside.ai/data-service/app/utils/httpclients/markets"
	"github.com/gin-gonic/gin"
)

type MarketsRoute struct {
	marketsService *markets.Service
}

func NewMarketsRoute(marketsService *markets.Service) *MarketsRoute {
	return &MarketsRoute{
		marketsService: marketsService,
	}
}

func (route *MarketsRoute) RegisterRouter(router gin.IRouter) {
	marketsRouter := router.Group("/markets")
	marketsRouter.GET("/odds", route.GetOdds)
	marketsRouter.GET("/odds/:away/:home/:date", route.GetOddsForEvent)
	marketsRouter.GET("/props", route.GetProps)
	marketsRouter.GET("/history/:token", route.GetHistory)
}

// GetOdds returns all active moneyline odds keyed by AWAY_HOME_DATE.
func (route *MarketsRoute) GetOdds(reqCtx *gin.Context) {
	odds := route.marketsService.ListOdds(reqCtx.Request.Context())
	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[map[string]markets.Odds]{
		Status: responses.ResponseCodeOk,
		Result: odds,
	})
}

func (route *MarketsRoute) GetOddsForEvent(reqCtx *gin.Context) {
	odds, found := route.marketsService.OddsForEvent(
		reqCtx.Request.Context(),
		reqCtx.Param("away"),
		reqCtx.Param("home"),
		reqCtx.Param("date"),
	)
	if !found {
		reqCtx.AbortWithStatusJSON(http.StatusNotFound, responses.ErrorResponse{
			Code:  "9e5d7c30-2b8f-4a16-bd42-c7f1a8e06d93",
			Error: "no odds for matchup",
		})
		return
	}
	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[*markets.Odds]{
		Status: responses.ResponseCodeOk,
		Result: odds,
	})
}

func (route *MarketsRoute) GetProps(reqCtx *gin.Context) {
	events := route.marketsService.Props(reqCtx.Request.Context())
	reqCtx.JSON(http.StatusOK, responses.ListResponse[marketsclient.Event]{
		Status:  responses.ResponseCodeOk,
		Total:   len(events),
		Results: events,
	})
}

func (route *MarketsRoute) GetHistory(reqCtx *gin.Context) {
	points := route.marketsService.History(reqCtx.Request.Context(), reqCtx.Param("token"))
	reqCtx.JSON(http.StatusOK, responses.ListResponse[marketsclient.PricePoint]{
		Status:  responses.ResponseCodeOk,
		Total:   len(points),
		Results: points,
	})
}
