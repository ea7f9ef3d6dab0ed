package games

import (
	"net/http"
	"regexp"

	"courtside.ai/data-service/app/domain/catalog"
	"courtside.ai/data-service/app/interfaces/http/responses"
	"courtside.ai/data-service/app/utils/datetime"
	"github.com/gin-gonic/gin"
)

var dateParamPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type GamesRoute struct {
	catalogService *catalog.Service
}

func NewGamesRoute(catalogService *catalog.Service) *GamesRoute {
	return &GamesRoute{
		catalogService: catalogService,
	}
}

func (route *GamesRoute) RegisterRouter(router gin.IRouter) {
	gamesRouter := router.Group("/games")
	gamesRouter.GET("/today", route.GetToday)
	gamesRouter.GET("/live", route.GetLive)
	gamesRouter.GET("/date/:date", route.GetByDate)
	gamesRouter.GET("/teams", route.GetTeams)
	gamesRouter.GET("/schedule/:date", route.GetSchedule)
	gamesRouter.GET("/standings", route.GetStandings)
	gamesRouter.GET("/boxscore/:id", route.GetBoxscore)
	gamesRouter.GET("/playbyplay/:id", route.GetPlayByPlay)
}

// GetToday returns all of today's games with current scores.
func (route *GamesRoute) GetToday(reqCtx *gin.Context) {
	events := route.catalogService.EventsForDate(reqCtx.Request.Context(), datetime.LocalToday())
	reqCtx.JSON(http.StatusOK, responses.ListResponse[catalog.EventRecord]{
		Status:  responses.ResponseCodeOk,
		Total:   len(events),
		Results: events,
	})
}

// GetLive returns only the games currently in progress.
func (route *GamesRoute) GetLive(reqCtx *gin.Context) {
	events := route.catalogService.LiveEvents(reqCtx.Request.Context())
	reqCtx.JSON(http.StatusOK, responses.ListResponse[catalog.EventRecord]{
		Status:  responses.ResponseCodeOk,
		Total:   len(events),
		Results: events,
	})
}

// GetTeams returns the static team directory.
func (route *GamesRoute) GetTeams(reqCtx *gin.Context) {
	teams := catalog.Teams()
	reqCtx.JSON(http.StatusOK, responses.ListResponse[catalog.TeamInfo]{
		Status:  responses.ResponseCodeOk,
		Total:   len(teams),
		Results: teams,
	})
}

func (route *GamesRoute) GetByDate(reqCtx *gin.Context) {
	date := reqCtx.Param("date")
	if !dateParamPattern.MatchString(date) {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "8f2e4f1a-5d0c-4ad1-b1f2-72c1b0a6e3d9",
			Error: "date must be YYYY-MM-DD",
		})
		return
	}
	events := route.catalogService.EventsForDate(reqCtx.Request.Context(), date)
	reqCtx.JSON(http.StatusOK, responses.ListResponse[catalog.EventRecord]{
		Status:  responses.ResponseCodeOk,
		Total:   len(events),
		Results: events,
	})
}

func (route *GamesRoute) GetSchedule(reqCtx *gin.Context) {
	date := reqCtx.Param("date")
	if !dateParamPattern.MatchString(date) {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "6b93a1de-41cf-4ce0-9a5d-3f8b29c07f14",
			Error: "date must be YYYY-MM-DD",
		})
		return
	}
	events := route.catalogService.Schedule(reqCtx.Request.Context(), date)
	reqCtx.JSON(http.StatusOK, responses.ListResponse[catalog.EventRecord]{
		Status:  responses.ResponseCodeOk,
		Total:   len(events),
		Results: events,
	})
}

func (route *GamesRoute) GetStandings(reqCtx *gin.Context) {
	payload := route.catalogService.Standings(reqCtx.Request.Context())
	reqCtx.Data(http.StatusOK, "application/json", payload)
}

func (route *GamesRoute) GetBoxscore(reqCtx *gin.Context) {
	payload, err := route.catalogService.Boxscore(reqCtx.Request.Context(), reqCtx.Param("id"))
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadGateway, responses.ErrorResponse{
			Code:  "c4f0de2b-7a85-4f44-9e0a-60f2d0b6a1c7",
			Error: "boxscore unavailable",
		})
		return
	}
	reqCtx.Data(http.StatusOK, "application/json", payload)
}

// GetPlayByPlay returns the play-by-play feed. The game's lifecycle state is
// resolved from the scoreboard of the requested date (default today) so that
// finished games become durably cacheable.
func (route *GamesRoute) GetPlayByPlay(reqCtx *gin.Context) {
	gameID := reqCtx.Param("id")
	date := reqCtx.DefaultQuery("date", datetime.LocalToday())

	final := false
	for _, event := range route.catalogService.EventsForDate(reqCtx.Request.Context(), date) {
		if event.EventID == gameID {
			final = event.IsFinal()
			break
		}
	}

	payload, err := route.catalogService.PlayByPlay(reqCtx.Request.Context(), gameID, final)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadGateway, responses.ErrorResponse{
			Code:  "1d6c8a9f-3e52-4b7d-8c01-9ab4f7e2d385",
			Error: "play-by-play unavailable",
		})
		return
	}
	reqCtx.Data(http.StatusOK, "application/json", payload)
}
