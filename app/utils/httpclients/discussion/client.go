package discussion

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"courtside.ai/data-service/app/utils/httpclients"
	"courtside.ai/data-service/config/environment_variables"
	"resty.dev/v3"
)

// A browser User-Agent keeps the discussion upstream from rejecting
// anonymous read-only requests.
const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36 Courtside/1.0"

var DiscussionRestyClient *resty.Client

func Init() {
	DiscussionRestyClient = httpclients.NewClient("DiscussionClient")
	DiscussionRestyClient.SetBaseURL(environment_variables.EnvironmentVariables.DISCUSSION_API_BASE_URL)
	userAgent := environment_variables.EnvironmentVariables.DISCUSSION_USER_AGENT
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	DiscussionRestyClient.SetHeader("User-Agent", userAgent)
}

// Thread is a located game discussion thread.
type Thread struct {
	ID          string
	Title       string
	NumComments int
	Score       int
	URL         string
	Permalink   string
}

// Comment is one thread comment.
type Comment struct {
	ID        string
	Author    string
	Body      string
	Score     int
	Permalink string
}

type listingChild struct {
	Data struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		NumComments int    `json:"num_comments"`
		Score       int    `json:"score"`
		URL         string `json:"url"`
		Permalink   string `json:"permalink"`
		Author      string `json:"author"`
		Body        string `json:"body"`
	} `json:"data"`
}

type listing struct {
	Data struct {
		Children []listingChild `json:"children"`
	} `json:"data"`
}

// Client talks to the scrape-sensitive discussion upstream. Every request
// goes through the resilient caller, which owns rate limiting and retries.
type Client struct {
	caller *httpclients.ResilientCaller
}

func NewClient(caller *httpclients.ResilientCaller) *Client {
	return &Client{caller: caller}
}

// FindThread searches for the game thread of a matchup. A nil thread with a
// nil error means no thread exists yet.
func (c *Client) FindThread(ctx context.Context, away, home string) (*Thread, error) {
	query := fmt.Sprintf(`flair:"Game Thread" %s %s`, away, home)

	resp, err := c.caller.Do(ctx, func(ctx context.Context) (*resty.Response, error) {
		return DiscussionRestyClient.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"q":           query,
				"restrict_sr": "on",
				"sort":        "new",
				"t":           "month",
				"limit":       "5",
			}).
			Get("/r/nba/search.json")
	})
	if err != nil {
		return nil, err
	}

	var result listing
	if err := json.Unmarshal(resp.Bytes(), &result); err != nil {
		return nil, fmt.Errorf("malformed search response: %w", err)
	}

	for _, child := range result.Data.Children {
		// Search is fuzzy; double-check the title.
		if !strings.Contains(child.Data.Title, "Game Thread") {
			continue
		}
		return &Thread{
			ID:          child.Data.ID,
			Title:       child.Data.Title,
			NumComments: child.Data.NumComments,
			Score:       child.Data.Score,
			URL:         child.Data.URL,
			Permalink:   child.Data.Permalink,
		}, nil
	}
	return nil, nil
}

// TopComments fetches the top comments of a thread, filtering deleted
// authors and moderation bots. It over-fetches to survive the filtering.
func (c *Client) TopComments(ctx context.Context, threadID string, limit int) ([]Comment, error) {
	resp, err := c.caller.Do(ctx, func(ctx context.Context) (*resty.Response, error) {
		return DiscussionRestyClient.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"sort":  "top",
				"limit": strconv.Itoa(limit * 3),
			}).
			Get(fmt.Sprintf("/comments/%s.json", threadID))
	})
	if err != nil {
		return nil, err
	}

	// The comments endpoint returns two listings: the post, then comments.
	var listings []listing
	if err := json.Unmarshal(resp.Bytes(), &listings); err != nil {
		return nil, fmt.Errorf("malformed comments response: %w", err)
	}
	if len(listings) < 2 {
		return nil, nil
	}

	comments := make([]Comment, 0, limit)
	for _, child := range listings[1].Data.Children {
		body := child.Data.Body
		author := child.Data.Author
		if body == "" || author == "[deleted]" || author == "AutoModerator" {
			continue
		}
		comments = append(comments, Comment{
			ID:        child.Data.ID,
			Author:    author,
			Body:      body,
			Score:     child.Data.Score,
			Permalink: child.Data.Permalink,
		})
		if len(comments) >= limit {
			break
		}
	}
	return comments, nil
}
