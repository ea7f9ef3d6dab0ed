package scoreboard

import (
	"context"
	"encoding/json"
	"fmt"

	"courtside.ai/data-service/app/utils/httpclients"
	"courtside.ai/data-service/config/environment_variables"
	"resty.dev/v3"
)

var ScoreboardRestyClient *resty.Client

func Init() {
	ScoreboardRestyClient = httpclients.NewClient("ScoreboardClient")
	ScoreboardRestyClient.SetBaseURL(environment_variables.EnvironmentVariables.SCOREBOARD_API_BASE_URL)
}

// Team is one side of a game as the scoreboard upstream reports it.
type Team struct {
	TeamID      int64  `json:"teamId"`
	TeamName    string `json:"teamName"`
	TeamCity    string `json:"teamCity"`
	TeamTricode string `json:"teamTricode"`
	Score       int    `json:"score"`
}

// Game is one scheduled contest. GameStatus: 1=Scheduled, 2=InProgress, 3=Final.
type Game struct {
	GameID         string `json:"gameId"`
	GameStatus     int    `json:"gameStatus"`
	GameStatusText string `json:"gameStatusText"`
	Period         int    `json:"period"`
	GameClock      string `json:"gameClock"`
	GameTimeUTC    string `json:"gameTimeUTC"`
	HomeTeam       Team   `json:"homeTeam"`
	AwayTeam       Team   `json:"awayTeam"`
}

type scoreboardResponse struct {
	Scoreboard struct {
		GameDate string `json:"gameDate"`
		Games    []Game `json:"games"`
	} `json:"scoreboard"`
}

type scheduleResponse struct {
	Schedule struct {
		Games []Game `json:"games"`
	} `json:"schedule"`
}

type Client struct{}

func NewClient() *Client {
	return &Client{}
}

// Scoreboard fetches all games for a date with current scores.
func (c *Client) Scoreboard(ctx context.Context, date string) ([]Game, error) {
	var result scoreboardResponse
	resp, err := ScoreboardRestyClient.R().
		SetContext(ctx).
		SetQueryParam("gameDate", date).
		SetResult(&result).
		Get("/scoreboard")
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("scoreboard fetch failed: status %d", resp.StatusCode())
	}
	return result.Scoreboard.Games, nil
}

// Schedule fetches the matchup schedule for a future date. Scores are zero
// and statuses Scheduled.
func (c *Client) Schedule(ctx context.Context, date string) ([]Game, error) {
	var result scheduleResponse
	resp, err := ScoreboardRestyClient.R().
		SetContext(ctx).
		SetQueryParam("gameDate", date).
		SetResult(&result).
		Get("/schedule")
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("schedule fetch failed: status %d", resp.StatusCode())
	}
	return result.Schedule.Games, nil
}

// Standings fetches the league table as an opaque payload.
func (c *Client) Standings(ctx context.Context) (json.RawMessage, error) {
	return c.rawGet(ctx, "/standings")
}

// Boxscore fetches the full boxscore for a game as an opaque payload.
func (c *Client) Boxscore(ctx context.Context, gameID string) (json.RawMessage, error) {
	return c.rawGet(ctx, fmt.Sprintf("/boxscore/%s", gameID))
}

// PlayByPlay fetches the play-by-play feed for a game as an opaque payload.
func (c *Client) PlayByPlay(ctx context.Context, gameID string) (json.RawMessage, error) {
	return c.rawGet(ctx, fmt.Sprintf("/playbyplay/%s", gameID))
}

func (c *Client) rawGet(ctx context.Context, path string) (json.RawMessage, error) {
	resp, err := ScoreboardRestyClient.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("fetch %s failed: status %d", path, resp.StatusCode())
	}
	return json.RawMessage(resp.Bytes()), nil
}
