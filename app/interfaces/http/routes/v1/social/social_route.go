package social

import (
	"net/http"
	"strconv"
	"strings"

	"courtside.ai/data-service/app/domain/catalog"
	"courtside.ai/data-service/app/domain/discussion"
	"courtside.ai/data-service/app/interfaces/http/responses"
	"courtside.ai/data-service/app/utils/datetime"
	"github.com/gin-gonic/gin"
)

type SocialRoute struct {
	discussionService *discussion.Service
	catalogService    *catalog.Service
}

func NewSocialRoute(discussionService *discussion.Service, catalogService *catalog.Service) *SocialRoute {
	return &SocialRoute{
		discussionService: discussionService,
		catalogService:    catalogService,
	}
}

func (route *SocialRoute) RegisterRouter(router gin.IRouter) {
	socialRouter := router.Group("/social")
	socialRouter.GET("/heat/:away/:home", route.GetHeat)
	socialRouter.GET("/comments/:away/:home", route.GetComments)
}

// GetHeat returns the discussion heat of a matchup. The matchup's lifecycle
// state is resolved from the scoreboard so finished games get durably cached.
func (route *SocialRoute) GetHeat(reqCtx *gin.Context) {
	away, home, date, state := route.resolveMatchup(reqCtx)
	heat := route.discussionService.Heat(reqCtx.Request.Context(), away, home, date, state)
	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[*discussion.Heat]{
		Status: responses.ResponseCodeOk,
		Result: heat,
	})
}

func (route *SocialRoute) GetComments(reqCtx *gin.Context) {
	limit := discussion.DefaultCommentLimit
	if raw := reqCtx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 50 {
			reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
				Code:  "f3a9b2c4-6d17-48e5-b0a3-52c8e1f9d674",
				Error: "limit must be an integer between 1 and 50",
			})
			return
		}
		limit = parsed
	}

	away, home, date, state := route.resolveMatchup(reqCtx)
	comments := route.discussionService.Comments(reqCtx.Request.Context(), away, home, date, limit, state)
	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[*discussion.CommentList]{
		Status: responses.ResponseCodeOk,
		Result: comments,
	})
}

// resolveMatchup normalizes the away/home path params against the scoreboard
// of the requested date. A matched event contributes its canonical team names
// and its source UTC date, so read keys line up with what the background
// prefetcher writes; an unmatched matchup is treated as live so nothing gets
// durably cached under an unverified key.
func (route *SocialRoute) resolveMatchup(reqCtx *gin.Context) (string, string, string, catalog.LifecycleState) {
	away := reqCtx.Param("away")
	home := reqCtx.Param("home")
	date := reqCtx.DefaultQuery("date", datetime.LocalToday())

	for _, event := range route.catalogService.EventsForDate(reqCtx.Request.Context(), date) {
		if matchesTeam(event.Away, away) && matchesTeam(event.Home, home) {
			if sourceDate := datetime.DateOnly(event.SourceTimeUTC); sourceDate != "" {
				date = sourceDate
			}
			return event.Away.Name, event.Home.Name, date, event.State
		}
	}
	return away, home, date, catalog.StateLive
}

func matchesTeam(team catalog.Participant, param string) bool {
	return strings.EqualFold(team.Name, param) || strings.EqualFold(team.Tricode, param)
}
