package social

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://api.twitter.com"

	// trendEngagementFloor is the combined like+retweet count a keyword's
	// recent tweets must clear to count as trending.
	trendEngagementFloor = 100
)

// TwitterClient talks to the X API v2.
type TwitterClient struct {
	client *resty.Client
	handle string
	userID string
	rng    *rand.Rand
}

// TwitterConfig holds configuration for the Twitter client.
type TwitterConfig struct {
	BearerToken string
	Handle      string
	// BaseURL overrides the API host, for tests.
	BaseURL string
	// Rand seeds keyword sampling and the trend fallback, for tests.
	Rand *rand.Rand
}

// NewTwitterClient creates a new X API client.
func NewTwitterClient(cfg TwitterConfig) *TwitterClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &TwitterClient{
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(30*time.Second).
			SetHeader("User-Agent", "engagebot/1.0").
			SetAuthToken(cfg.BearerToken),
		handle: cfg.Handle,
		rng:    rng,
	}
}

type tweetData struct {
	ID             string `json:"id"`
	Text           string `json:"text"`
	AuthorID       string `json:"author_id"`
	ConversationID string `json:"conversation_id"`
	CreatedAt      string `json:"created_at"`
	PublicMetrics  struct {
		RetweetCount int `json:"retweet_count"`
		LikeCount    int `json:"like_count"`
		ReplyCount   int `json:"reply_count"`
	} `json:"public_metrics"`
}

type createTweetRequest struct {
	Text  string `json:"text"`
	Reply *struct {
		InReplyToTweetID string `json:"in_reply_to_tweet_id"`
	} `json:"reply,omitempty"`
}

type createTweetResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

// PostText publishes a tweet. The text is defensively truncated to the
// platform limit even though the normalizer should have enforced it.
func (t *TwitterClient) PostText(ctx context.Context, text string) (*PostResult, error) {
	if utf8.RuneCountInString(text) > 280 {
		slog.Warn("tweet too long, truncating", "runes", utf8.RuneCountInString(text))
		runes := []rune(text)
		text = string(runes[:277]) + "..."
	}

	return t.createTweet(ctx, createTweetRequest{Text: text})
}

// ReplyTo publishes a reply in an existing thread.
func (t *TwitterClient) ReplyTo(ctx context.Context, tweetID, text string) (*PostResult, error) {
	req := createTweetRequest{Text: text}
	req.Reply = &struct {
		InReplyToTweetID string `json:"in_reply_to_tweet_id"`
	}{InReplyToTweetID: tweetID}

	return t.createTweet(ctx, req)
}

func (t *TwitterClient) createTweet(ctx context.Context, req createTweetRequest) (*PostResult, error) {
	resp, err := t.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/2/tweets")
	if err != nil {
		return nil, fmt.Errorf("send tweet: %w", err)
	}

	if resp.StatusCode() != 200 && resp.StatusCode() != 201 {
		return nil, fmt.Errorf("create tweet failed (status %d): %s", resp.StatusCode(), resp.Body())
	}

	var created createTweetResponse
	if err := json.Unmarshal(resp.Body(), &created); err != nil {
		return nil, fmt.Errorf("parse create response: %w", err)
	}
	if created.Data.ID == "" {
		return nil, fmt.Errorf("create tweet returned no id")
	}

	return &PostResult{
		ID:  created.Data.ID,
		URL: fmt.Sprintf("https://x.com/%s/status/%s", t.handle, created.Data.ID),
	}, nil
}

// GetMentions returns mentions strictly newer than sinceID, oldest first.
func (t *TwitterClient) GetMentions(ctx context.Context, sinceID string) ([]Mention, error) {
	userID, err := t.ownUserID(ctx)
	if err != nil {
		return nil, err
	}

	req := t.client.R().
		SetContext(ctx).
		SetQueryParam("tweet.fields", "author_id,conversation_id,created_at").
		SetQueryParam("max_results", "50")
	if sinceID != "" {
		req.SetQueryParam("since_id", sinceID)
	}

	resp, err := req.Get(fmt.Sprintf("/2/users/%s/mentions", userID))
	if err != nil {
		return nil, fmt.Errorf("fetch mentions: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("mentions failed (status %d): %s", resp.StatusCode(), resp.Body())
	}

	var body struct {
		Data []tweetData `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("parse mentions: %w", err)
	}

	// The API yields newest first; callers want chronological order.
	mentions := make([]Mention, 0, len(body.Data))
	for i := len(body.Data) - 1; i >= 0; i-- {
		tw := body.Data[i]
		createdAt, _ := time.Parse(time.RFC3339, tw.CreatedAt)
		mentions = append(mentions, Mention{
			ID:             tw.ID,
			Text:           tw.Text,
			AuthorID:       tw.AuthorID,
			ConversationID: tw.ConversationID,
			CreatedAt:      createdAt,
		})
	}

	return mentions, nil
}

// GetMetrics fetches public engagement counters for a post.
func (t *TwitterClient) GetMetrics(ctx context.Context, postID string) (*Metrics, error) {
	resp, err := t.client.R().
		SetContext(ctx).
		SetQueryParam("tweet.fields", "public_metrics").
		Get("/2/tweets/" + url.PathEscape(postID))
	if err != nil {
		return nil, fmt.Errorf("fetch metrics: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("metrics failed (status %d): %s", resp.StatusCode(), resp.Body())
	}

	var body struct {
		Data tweetData `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("parse metrics: %w", err)
	}

	return &Metrics{
		Likes:    body.Data.PublicMetrics.LikeCount,
		Replies:  body.Data.PublicMetrics.ReplyCount,
		Retweets: body.Data.PublicMetrics.RetweetCount,
	}, nil
}

// GetTechTrends samples tech keywords and keeps the ones whose recent
// tweets clear the engagement floor. Any failure, including an empty
// result, silently falls back to the curated evergreen-debate list.
func (t *TwitterClient) GetTechTrends(ctx context.Context, count int) []string {
	if count <= 0 {
		return nil
	}

	sampled := t.sampleKeywords(count * 2)

	var trending []string
	for _, keyword := range sampled {
		engagement, err := t.keywordEngagement(ctx, keyword)
		if err != nil {
			slog.Debug("trend search failed", "keyword", keyword, "error", err)
			continue
		}
		if engagement > trendEngagementFloor {
			trending = append(trending, keyword)
			if len(trending) >= count {
				break
			}
		}
	}

	if len(trending) == 0 {
		slog.Debug("no live trends, using curated fallback")
		return t.fallbackTrends(count)
	}
	return trending
}

func (t *TwitterClient) keywordEngagement(ctx context.Context, keyword string) (int, error) {
	resp, err := t.client.R().
		SetContext(ctx).
		SetQueryParam("query", fmt.Sprintf("%s -is:retweet lang:en", keyword)).
		SetQueryParam("max_results", "10").
		SetQueryParam("tweet.fields", "public_metrics").
		Get("/2/tweets/search/recent")
	if err != nil {
		return 0, err
	}
	if resp.StatusCode() != 200 {
		return 0, fmt.Errorf("search failed (status %d)", resp.StatusCode())
	}

	var body struct {
		Data []tweetData `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return 0, err
	}

	total := 0
	for _, tw := range body.Data {
		total += tw.PublicMetrics.LikeCount + tw.PublicMetrics.RetweetCount
	}
	return total, nil
}

// VerifyCredentials checks the bearer token against /2/users/me.
func (t *TwitterClient) VerifyCredentials(ctx context.Context) error {
	_, err := t.ownUserID(ctx)
	return err
}

func (t *TwitterClient) ownUserID(ctx context.Context) (string, error) {
	if t.userID != "" {
		return t.userID, nil
	}

	resp, err := t.client.R().SetContext(ctx).Get("/2/users/me")
	if err != nil {
		return "", fmt.Errorf("fetch own user: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("users/me failed (status %d): %s", resp.StatusCode(), resp.Body())
	}

	var body struct {
		Data struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", fmt.Errorf("parse users/me: %w", err)
	}
	if body.Data.ID == "" {
		return "", fmt.Errorf("users/me returned no id")
	}

	t.userID = body.Data.ID
	if t.handle == "" {
		t.handle = body.Data.Username
	}
	slog.Debug("authenticated with X", "user_id", t.userID, "handle", t.handle)

	return t.userID, nil
}

func (t *TwitterClient) sampleKeywords(n int) []string {
	sampled := append([]string(nil), techKeywords...)
	t.rng.Shuffle(len(sampled), func(i, j int) {
		sampled[i], sampled[j] = sampled[j], sampled[i]
	})
	if n < len(sampled) {
		sampled = sampled[:n]
	}
	return sampled
}

func (t *TwitterClient) fallbackTrends(count int) []string {
	shuffled := append([]string(nil), curatedHotTopics...)
	t.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if count < len(shuffled) {
		shuffled = shuffled[:count]
	}
	return shuffled
}

// NewerID compares two tweet ids numerically (snowflake ids grow over
// time) and reports whether a is newer than b. An empty b always loses.
func NewerID(a, b string) bool {
	if b == "" {
		return a != ""
	}
	if len(a) != len(b) {
		return len(a) > len(b)
	}
	return strings.Compare(a, b) > 0
}
