package markets

import (
	"context"
	"fmt"

	"courtside.ai/data-service/app/utils/httpclients"
	"courtside.ai/data-service/config/environment_variables"
	"resty.dev/v3"
)

var MarketsRestyClient *resty.Client

func Init() {
	MarketsRestyClient = httpclients.NewClient("MarketsClient")
	MarketsRestyClient.SetBaseURL(environment_variables.EnvironmentVariables.MARKETS_API_BASE_URL)
}

// Market is one tradeable question inside an event. OutcomePrices is a
// string-encoded JSON array of probabilities, as the upstream ships it.
type Market struct {
	Question      string `json:"question"`
	OutcomePrices string `json:"outcomePrices"`
	ClobTokenIDs  string `json:"clobTokenIds"`
}

// Event is one prediction-market event ("Team A vs. Team B").
type Event struct {
	Title   string   `json:"title"`
	EndDate string   `json:"endDate"`
	Markets []Market `json:"markets"`
}

// PricePoint is one sample of a market's 24h price history.
type PricePoint struct {
	Timestamp int64   `json:"t"`
	Price     float64 `json:"p"`
}

type historyResponse struct {
	History []PricePoint `json:"history"`
}

type Client struct{}

func NewClient() *Client {
	return &Client{}
}

// ActiveEvents lists open events for the configured league series.
func (c *Client) ActiveEvents(ctx context.Context) ([]Event, error) {
	var events []Event
	resp, err := MarketsRestyClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"series_id": environment_variables.EnvironmentVariables.MARKETS_SERIES_ID,
			"active":    "true",
			"closed":    "false",
			"limit":     "50",
		}).
		SetResult(&events).
		Get("/events")
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("markets fetch failed: status %d", resp.StatusCode())
	}
	return events, nil
}

// Props lists season-long proposition events (championship, awards).
func (c *Client) Props(ctx context.Context) ([]Event, error) {
	var events []Event
	resp, err := MarketsRestyClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"series_id": environment_variables.EnvironmentVariables.MARKETS_SERIES_ID,
			"active":    "true",
			"closed":    "false",
			"tag":       "props",
			"limit":     "25",
		}).
		SetResult(&events).
		Get("/events")
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("props fetch failed: status %d", resp.StatusCode())
	}
	return events, nil
}

// PriceHistory fetches the 24h price history for a CLOB token.
func (c *Client) PriceHistory(ctx context.Context, clobTokenID string) ([]PricePoint, error) {
	var result historyResponse
	resp, err := MarketsRestyClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"market":   clobTokenID,
			"interval": "1d",
		}).
		SetResult(&result).
		Get("/prices-history")
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("history fetch failed: status %d", resp.StatusCode())
	}
	return result.History, nil
}
