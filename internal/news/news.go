// Package news gathers tech headlines used as context for news-reaction
// posts. Sources fail independently: a dead API just means fewer snippets.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultHNBaseURL     = "https://hacker-news.firebaseio.com/v0"
	defaultGitHubBaseURL = "https://api.github.com"
)

// Monitor fetches top stories from Hacker News and trending repositories
// from GitHub search.
type Monitor struct {
	httpClient    *http.Client
	hnBaseURL     string
	githubBaseURL string
}

// Config holds configuration for the news monitor.
type Config struct {
	// HNBaseURL and GitHubBaseURL override the API hosts, for tests.
	HNBaseURL     string
	GitHubBaseURL string
}

// NewMonitor creates a news monitor.
func NewMonitor(cfg Config) *Monitor {
	hn := cfg.HNBaseURL
	if hn == "" {
		hn = defaultHNBaseURL
	}
	gh := cfg.GitHubBaseURL
	if gh == "" {
		gh = defaultGitHubBaseURL
	}

	return &Monitor{
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		hnBaseURL:     hn,
		githubBaseURL: gh,
	}
}

// TopTechNews merges headlines from all sources, up to limit per source.
// Source failures are logged and absorbed; the result may be empty.
func (m *Monitor) TopTechNews(ctx context.Context, limit int) []string {
	var items []string

	hn, err := m.HackerNewsTop(ctx, limit)
	if err != nil {
		slog.Warn("hackernews fetch failed", "error", err)
	}
	items = append(items, hn...)

	gh, err := m.GitHubTrending(ctx, limit)
	if err != nil {
		slog.Warn("github trending fetch failed", "error", err)
	}
	items = append(items, gh...)

	return items
}

type hnStory struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

// HackerNewsTop fetches the current top stories.
func (m *Monitor) HackerNewsTop(ctx context.Context, limit int) ([]string, error) {
	var ids []int
	if err := m.getJSON(ctx, m.hnBaseURL+"/topstories.json", nil, &ids); err != nil {
		return nil, fmt.Errorf("fetch top stories: %w", err)
	}
	if len(ids) > limit*2 {
		ids = ids[:limit*2]
	}

	var stories []string
	for _, id := range ids {
		if len(stories) >= limit {
			break
		}

		var story hnStory
		if err := m.getJSON(ctx, fmt.Sprintf("%s/item/%d.json", m.hnBaseURL, id), nil, &story); err != nil {
			slog.Debug("skipping HN item", "id", id, "error", err)
			continue
		}
		if story.Type != "story" || story.Title == "" {
			continue
		}

		stories = append(stories, fmt.Sprintf("Hacker News: %s (%s)", story.Title, story.URL))
	}

	return stories, nil
}

type githubSearchResponse struct {
	Items []struct {
		FullName    string `json:"full_name"`
		Description string `json:"description"`
		Stars       int    `json:"stargazers_count"`
		Language    string `json:"language"`
	} `json:"items"`
}

// GitHubTrending approximates trending via the search API: repositories
// created in the last week, ordered by stars.
func (m *Monitor) GitHubTrending(ctx context.Context, limit int) ([]string, error) {
	weekAgo := time.Now().AddDate(0, 0, -7).Format("2006-01-02")
	params := url.Values{
		"q":     {"created:>" + weekAgo},
		"sort":  {"stars"},
		"order": {"desc"},
	}

	var resp githubSearchResponse
	headers := map[string]string{"Accept": "application/vnd.github.v3+json"}
	if err := m.getJSON(ctx, m.githubBaseURL+"/search/repositories?"+params.Encode(), headers, &resp); err != nil {
		return nil, fmt.Errorf("search repositories: %w", err)
	}

	var trends []string
	for _, item := range resp.Items {
		if len(trends) >= limit {
			break
		}
		if item.FullName == "" {
			continue
		}

		desc := item.Description
		if desc == "" {
			desc = "No description"
		}
		lang := item.Language
		if lang == "" {
			lang = "Unknown"
		}
		trends = append(trends, fmt.Sprintf("GitHub Trend: %s (%s, %d stars) - %s",
			item.FullName, lang, item.Stars, desc))
	}

	return trends, nil
}

func (m *Monitor) getJSON(ctx context.Context, rawURL string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}
