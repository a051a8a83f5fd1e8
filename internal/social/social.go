// Package social wraps the X (Twitter) API behind a small client
// interface. Every call is a direct passthrough with errors translated to
// results; nothing here retries or dedupes, so posting twice posts twice.
package social

import (
	"context"
	"time"
)

// PostResult identifies a published post.
type PostResult struct {
	ID  string
	URL string
}

// Mention is a tweet that mentions the bot's account.
type Mention struct {
	ID             string
	Text           string
	AuthorID       string
	ConversationID string
	CreatedAt      time.Time
}

// Metrics are the public engagement counters of a post.
type Metrics struct {
	Likes    int
	Replies  int
	Retweets int
}

// Client is the interface for the social platform.
type Client interface {
	// PostText publishes a post and returns its reference.
	PostText(ctx context.Context, text string) (*PostResult, error)

	// ReplyTo publishes a reply to an existing post.
	ReplyTo(ctx context.Context, tweetID, text string) (*PostResult, error)

	// GetMentions returns mentions strictly newer than sinceID, oldest
	// first. An empty sinceID returns the most recent mentions.
	GetMentions(ctx context.Context, sinceID string) ([]Mention, error)

	// GetTechTrends returns up to count trending tech topics. It never
	// fails: on any API problem it falls back to a curated list.
	GetTechTrends(ctx context.Context, count int) []string

	// GetMetrics fetches engagement counters for a post.
	GetMetrics(ctx context.Context, postID string) (*Metrics, error)

	// VerifyCredentials checks that the configured credentials work.
	VerifyCredentials(ctx context.Context) error
}
