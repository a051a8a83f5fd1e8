package news

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func newHNServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/topstories.json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []int{1, 2, 3})
	})
	mux.HandleFunc("/item/1.json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"id": 1, "title": "Go 2 announced", "url": "https://example.com/go2", "type": "story"})
	})
	mux.HandleFunc("/item/2.json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"id": 2, "title": "Ask HN: jobs?", "type": "job"})
	})
	mux.HandleFunc("/item/3.json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"id": 3, "title": "Rust 2.0", "url": "https://example.com/rust", "type": "story"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newGitHubServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/search/repositories", func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("q"), "created:>")
		assert.Equal(t, "stars", r.URL.Query().Get("sort"))
		writeJSON(w, map[string]any{"items": []map[string]any{
			{"full_name": "acme/zap2", "description": "faster logging", "stargazers_count": 900, "language": "Go"},
			{"full_name": "acme/mystery", "stargazers_count": 500},
		}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHackerNewsTop(t *testing.T) {
	m := NewMonitor(Config{HNBaseURL: newHNServer(t).URL})

	stories, err := m.HackerNewsTop(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, stories, 2, "non-story items are skipped")
	assert.Equal(t, "Hacker News: Go 2 announced (https://example.com/go2)", stories[0])
}

func TestGitHubTrending(t *testing.T) {
	m := NewMonitor(Config{GitHubBaseURL: newGitHubServer(t).URL})

	trends, err := m.GitHubTrending(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, trends, 2)
	assert.Equal(t, "GitHub Trend: acme/zap2 (Go, 900 stars) - faster logging", trends[0])
	assert.Contains(t, trends[1], "No description")
}

func TestTopTechNewsAbsorbsFailures(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	t.Cleanup(dead.Close)

	m := NewMonitor(Config{HNBaseURL: dead.URL, GitHubBaseURL: newGitHubServer(t).URL})

	items := m.TopTechNews(context.Background(), 3)
	require.Len(t, items, 2, "the healthy source still contributes")
	assert.Contains(t, items[0], "GitHub Trend:")
}

func TestTopTechNewsAllDown(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	t.Cleanup(dead.Close)

	m := NewMonitor(Config{HNBaseURL: dead.URL, GitHubBaseURL: dead.URL})
	assert.Empty(t, m.TopTechNews(context.Background(), 3))
}
