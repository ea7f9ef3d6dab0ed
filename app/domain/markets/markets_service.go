package markets

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"courtside.ai/data-service/app/infrastructure/cache"
	marketsclient "courtside.ai/data-service/app/utils/httpclients/markets"
	"courtside.ai/data-service/app/utils/logger"
	"golang.org/x/sync/singleflight"
)

// MarketProvider is the prediction-market upstream.
type MarketProvider interface {
	ActiveEvents(ctx context.Context) ([]marketsclient.Event, error)
	Props(ctx context.Context) ([]marketsclient.Event, error)
	PriceHistory(ctx context.Context, clobTokenID string) ([]marketsclient.PricePoint, error)
}

// Odds is the moneyline for one matchup, keyed AWAY_HOME_DATE.
type Odds struct {
	AwayTeam string  `json:"awayTeam"`
	HomeTeam string  `json:"homeTeam"`
	AwayOdds float64 `json:"awayOdds"`
	HomeOdds float64 `json:"homeOdds"`
	AwayProb float64 `json:"awayProb"`
	HomeProb float64 `json:"homeProb"`
	Date     string  `json:"date"`
	Source   string  `json:"source"`
}

// Service serves prediction-market odds. Odds move constantly, so this data
// kind never touches the durable tier: a short ephemeral cache absorbs
// request bursts and singleflight collapses concurrent refreshes.
type Service struct {
	provider MarketProvider
	mem      cache.CacheService
	group    singleflight.Group
}

func NewService(provider MarketProvider, mem cache.CacheService) *Service {
	return &Service{
		provider: provider,
		mem:      mem,
	}
}

// ListOdds returns all active moneyline odds keyed by AWAY_HOME_DATE.
func (s *Service) ListOdds(ctx context.Context) map[string]Odds {
	if cached, err := s.mem.Get(ctx, cache.MarketsOddsKey); err == nil {
		var odds map[string]Odds
		if json.Unmarshal([]byte(cached), &odds) == nil {
			return odds
		}
	}

	value, err, _ := s.group.Do(cache.MarketsOddsKey, func() (any, error) {
		events, err := s.provider.ActiveEvents(ctx)
		if err != nil {
			return nil, err
		}
		odds := buildOdds(events)
		if payload, err := json.Marshal(odds); err == nil {
			_ = s.mem.Set(ctx, cache.MarketsOddsKey, string(payload), cache.EphemeralTTL)
		}
		return odds, nil
	})
	if err != nil {
		logger.GetLogger().Warnf("markets: odds fetch failed: %v", err)
		return map[string]Odds{}
	}
	return value.(map[string]Odds)
}

// OddsForEvent returns the odds for one matchup, trying the exact date key
// first and then one day either side to absorb timezone skew.
func (s *Service) OddsForEvent(ctx context.Context, away, home, date string) (*Odds, bool) {
	all := s.ListOdds(ctx)

	if odds, ok := all[oddsKey(away, home, date)]; ok {
		return &odds, true
	}
	if parsed, err := time.Parse("2006-01-02", date); err == nil {
		for _, offset := range []int{-1, 1} {
			alt := parsed.AddDate(0, 0, offset).Format("2006-01-02")
			if odds, ok := all[oddsKey(away, home, alt)]; ok {
				return &odds, true
			}
		}
	}
	return nil, false
}

// Props returns season-long proposition events as opaque payloads.
func (s *Service) Props(ctx context.Context) []marketsclient.Event {
	if cached, err := s.mem.Get(ctx, cache.MarketsPropsKey); err == nil {
		var events []marketsclient.Event
		if json.Unmarshal([]byte(cached), &events) == nil {
			return events
		}
	}

	value, err, _ := s.group.Do(cache.MarketsPropsKey, func() (any, error) {
		events, err := s.provider.Props(ctx)
		if err != nil {
			return nil, err
		}
		if payload, err := json.Marshal(events); err == nil {
			_ = s.mem.Set(ctx, cache.MarketsPropsKey, string(payload), cache.EphemeralTTL)
		}
		return events, nil
	})
	if err != nil {
		logger.GetLogger().Warnf("markets: props fetch failed: %v", err)
		return []marketsclient.Event{}
	}
	return value.([]marketsclient.Event)
}

// History returns the 24h price history of a CLOB token.
func (s *Service) History(ctx context.Context, clobTokenID string) []marketsclient.PricePoint {
	memKey := fmt.Sprintf(cache.MarketsHistoryKeyPattern, clobTokenID)
	if cached, err := s.mem.Get(ctx, memKey); err == nil {
		var points []marketsclient.PricePoint
		if json.Unmarshal([]byte(cached), &points) == nil {
			return points
		}
	}

	points, err := s.provider.PriceHistory(ctx, clobTokenID)
	if err != nil {
		logger.GetLogger().Warnf("markets: history fetch for %s failed: %v", clobTokenID, err)
		return []marketsclient.PricePoint{}
	}
	if payload, err := json.Marshal(points); err == nil {
		_ = s.mem.Set(ctx, memKey, string(payload), cache.EphemeralTTL)
	}
	return points
}

func oddsKey(away, home, date string) string {
	return fmt.Sprintf("%s_%s_%s", away, home, date)
}

// probabilityToDecimalOdds converts a win probability to decimal odds.
func probabilityToDecimalOdds(prob float64) float64 {
	if prob <= 0 || prob >= 1 {
		return 0
	}
	return math.Round(100/prob) / 100
}

// parseTeams extracts away/home tricodes from an event title like
// "Pistons vs. Lakers".
func parseTeams(title string) (string, string, bool) {
	title = strings.ReplaceAll(title, "vs.", "vs")
	parts := strings.Split(title, " vs ")
	if len(parts) != 2 {
		return "", "", false
	}
	away, okA := teamNameToTricode[strings.TrimSpace(parts[0])]
	home, okH := teamNameToTricode[strings.TrimSpace(parts[1])]
	if !okA || !okH {
		return "", "", false
	}
	return away, home, true
}

func buildOdds(events []marketsclient.Event) map[string]Odds {
	odds := make(map[string]Odds)
	for _, event := range events {
		away, home, ok := parseTeams(event.Title)
		if !ok {
			continue
		}

		market := moneylineMarket(event)
		if market == nil {
			continue
		}

		var prices []string
		if err := json.Unmarshal([]byte(market.OutcomePrices), &prices); err != nil || len(prices) < 2 {
			continue
		}
		var awayProb, homeProb float64
		if _, err := fmt.Sscanf(prices[0], "%f", &awayProb); err != nil {
			continue
		}
		if _, err := fmt.Sscanf(prices[1], "%f", &homeProb); err != nil {
			continue
		}

		// Resolved markets sit at 0% or 100%; skip them.
		if awayProb >= 0.999 || awayProb <= 0.001 || homeProb >= 0.999 || homeProb <= 0.001 {
			continue
		}

		date := "unknown"
		if len(event.EndDate) >= 10 {
			date = event.EndDate[:10]
		}

		odds[oddsKey(away, home, date)] = Odds{
			AwayTeam: away,
			HomeTeam: home,
			AwayOdds: probabilityToDecimalOdds(awayProb),
			HomeOdds: probabilityToDecimalOdds(homeProb),
			AwayProb: math.Round(awayProb*1000) / 10,
			HomeProb: math.Round(homeProb*1000) / 10,
			Date:     date,
			Source:   "polymarket",
		}
	}
	return odds
}

// moneylineMarket picks the market whose question matches the event title.
func moneylineMarket(event marketsclient.Event) *marketsclient.Market {
	for i := range event.Markets {
		q := event.Markets[i].Question
		if q == event.Title || strings.Contains(strings.ToLower(q), "vs") {
			return &event.Markets[i]
		}
	}
	return nil
}
