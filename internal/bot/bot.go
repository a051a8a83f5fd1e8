// Package bot orchestrates the generate-review-publish pipeline and the
// long-running schedule around it.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/devunfiltered/engagebot/internal/config"
	"github.com/devunfiltered/engagebot/internal/content"
	"github.com/devunfiltered/engagebot/internal/llm"
	"github.com/devunfiltered/engagebot/internal/news"
	"github.com/devunfiltered/engagebot/internal/prompt"
	"github.com/devunfiltered/engagebot/internal/social"
	"github.com/devunfiltered/engagebot/internal/store"
	"github.com/devunfiltered/engagebot/internal/topics"
)

// trendCount is how many trending topics a generation prompt gets.
const trendCount = 3

// Bot wires the completion client, the social client, and the state
// stores into one posting pipeline.
type Bot struct {
	cfg    *config.Config
	llm    llm.Client
	social social.Client
	store  *store.Store
	topics *topics.Tracker
	news   *news.Monitor
	deals  []store.Deal

	rng *rand.Rand
	now func() time.Time
}

// Config holds the bot's dependencies. Rand and Now default to the real
// thing; tests inject deterministic versions.
type Config struct {
	Cfg    *config.Config
	LLM    llm.Client
	Social social.Client
	Store  *store.Store
	Topics *topics.Tracker
	News   *news.Monitor
	Deals  []store.Deal

	Rand *rand.Rand
	Now  func() time.Time
}

// New creates a bot from its dependencies.
func New(cfg Config) *Bot {
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Bot{
		cfg:    cfg.Cfg,
		llm:    cfg.LLM,
		social: cfg.Social,
		store:  cfg.Store,
		topics: cfg.Topics,
		news:   cfg.News,
		deals:  cfg.Deals,
		rng:    rng,
		now:    now,
	}
}

// CycleResult summarizes one posting cycle.
type CycleResult struct {
	Posted   bool
	Category prompt.Category
	PostText string
	Score    int
	URL      string
	Attempts int
}

// RunCycle runs one full posting cycle: pick a category, gather context,
// then generate and review candidates until one passes or the attempt
// budget runs out. A cycle that publishes nothing is not an error; a
// failed publish of an approved post is.
func (b *Bot) RunCycle(ctx context.Context) (*CycleResult, error) {
	cat := b.pickCategory()
	pctx := b.gatherContext(ctx, cat)

	slog.Info("starting post cycle", "category", cat, "trending", pctx.Trending)

	result := &CycleResult{Category: cat}

	for attempt := 1; attempt <= b.cfg.MaxRetries; attempt++ {
		result.Attempts = attempt

		post, score, feedback, err := b.generateCandidate(ctx, cat, pctx)
		if err != nil {
			slog.Error("candidate generation failed", "attempt", attempt, "error", err)
			continue
		}

		if score >= b.cfg.MinScoreThreshold && content.HasEngagementHook(post) {
			return b.publish(ctx, result, cat, pctx, post, score, feedback)
		}

		reason := feedback
		if score >= b.cfg.MinScoreThreshold {
			reason = "missing engagement hook; " + feedback
		}
		slog.Info("candidate rejected", "attempt", attempt, "score", score, "threshold", b.cfg.MinScoreThreshold)
		if err := b.store.LogRejection(store.RejectionEntry{
			Timestamp:   b.now(),
			ContentType: string(cat),
			PostText:    post,
			Score:       score,
			Feedback:    reason,
		}); err != nil {
			slog.Error("failed to log rejection", "error", err)
		}
	}

	slog.Warn("no candidate passed review", "category", cat, "attempts", b.cfg.MaxRetries)
	return result, nil
}

// generateCandidate produces one normalized candidate and its review
// score. The generation and review calls are separate completions.
func (b *Bot) generateCandidate(ctx context.Context, cat prompt.Category, pctx prompt.Context) (post string, score int, feedback string, err error) {
	gen := prompt.Build(cat, pctx)
	raw, err := b.llm.Complete(ctx, gen.System, gen.User)
	if err != nil {
		return "", 0, "", fmt.Errorf("generate: %w", err)
	}

	post = content.Normalize(raw)
	if post == "" {
		return "", 0, "", fmt.Errorf("generation returned empty post")
	}

	eval := prompt.Evaluation(post, cat)
	review, err := b.llm.Complete(ctx, eval.System, eval.User)
	if err != nil {
		return "", 0, "", fmt.Errorf("review: %w", err)
	}

	score, feedback = content.ParseEvaluation(review)
	return post, score, feedback, nil
}

func (b *Bot) publish(ctx context.Context, result *CycleResult, cat prompt.Category, pctx prompt.Context, post string, score int, feedback string) (*CycleResult, error) {
	res, err := b.social.PostText(ctx, post)
	if err != nil {
		if logErr := b.store.LogFailure(store.FailureEntry{
			Timestamp:   b.now(),
			ContentType: string(cat),
			PostText:    post,
			Error:       err.Error(),
		}); logErr != nil {
			slog.Error("failed to log post failure", "error", logErr)
		}
		return result, fmt.Errorf("publish post: %w", err)
	}

	if err := b.store.LogSuccess(store.PostedRecord{
		Timestamp:   b.now(),
		ContentType: string(cat),
		PostText:    post,
		Score:       score,
		Feedback:    feedback,
		URL:         res.URL,
		PostID:      res.ID,
	}); err != nil {
		slog.Error("failed to log posted record", "error", err)
	}

	for _, topic := range pctx.Trending {
		if err := b.topics.Add(topic); err != nil {
			slog.Error("failed to record topic use", "topic", topic, "error", err)
		}
	}

	slog.Info("post published", "category", cat, "score", score, "url", res.URL)

	result.Posted = true
	result.PostText = post
	result.Score = score
	result.URL = res.URL
	return result, nil
}

// pickCategory draws a category from the configured weights. Deal posts
// need a deals catalog; with none loaded, the deal weight is treated as
// zero.
func (b *Bot) pickCategory() prompt.Category {
	dealWeight := b.cfg.DealWeight
	if len(b.deals) == 0 {
		dealWeight = 0
	}

	weighted := []struct {
		cat    prompt.Category
		weight int
	}{
		{prompt.Controversial, b.cfg.ControversialWeight},
		{prompt.Relatable, b.cfg.RelatableWeight},
		{prompt.NewsReaction, b.cfg.NewsReactionWeight},
		{prompt.Joke, b.cfg.JokeWeight},
		{prompt.Deal, dealWeight},
	}

	total := 0
	for _, w := range weighted {
		total += w.weight
	}
	if total <= 0 {
		return prompt.Controversial
	}

	n := b.rng.Intn(total)
	for _, w := range weighted {
		if n < w.weight {
			return w.cat
		}
		n -= w.weight
	}
	return prompt.Controversial
}

// gatherContext assembles the prompt context for a category: fresh
// trending topics, recent headlines for news reactions, and the rolling
// winner notes.
func (b *Bot) gatherContext(ctx context.Context, cat prompt.Category) prompt.Context {
	trends := b.social.GetTechTrends(ctx, 10)
	fresh := b.topics.FreshOnly(trends)
	if len(fresh) == 0 {
		fresh = b.topics.Suggestions()
		slog.Debug("all trends stale, using evergreen topics")
	}
	if len(fresh) > trendCount {
		fresh = fresh[:trendCount]
	}

	pctx := prompt.Context{
		Trending:    fresh,
		WinnerNotes: b.store.WinnerNotes(),
	}

	if cat == prompt.NewsReaction && b.news != nil {
		pctx.News = b.news.TopTechNews(ctx, 5)
	}
	if cat == prompt.Deal && len(b.deals) > 0 {
		deal := b.deals[b.rng.Intn(len(b.deals))]
		pctx.DealName = deal.Name
		pctx.DealLink = deal.Link
	}

	return pctx
}

// NextPostTime draws the next run from the configured frequency window
// and persists it as an absolute timestamp, so a restart resumes the
// schedule instead of posting immediately.
func (b *Bot) NextPostTime() (time.Time, error) {
	hours := b.cfg.PostFrequencyHoursMin
	if spread := b.cfg.PostFrequencyHoursMax - b.cfg.PostFrequencyHoursMin; spread > 0 {
		hours += b.rng.Float64() * spread
	}
	next := b.now().Add(time.Duration(hours * float64(time.Hour)))
	if err := b.store.SetNextPostTime(next); err != nil {
		return next, err
	}
	return next, nil
}
