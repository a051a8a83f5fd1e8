package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/devunfiltered/engagebot/internal/content"
	"github.com/devunfiltered/engagebot/internal/prompt"
	"github.com/devunfiltered/engagebot/internal/social"
	"github.com/devunfiltered/engagebot/internal/store"
)

// Run starts the main loop: sleep until the scheduled post time in short
// chunks, polling mentions between chunks, then run a posting cycle
// followed by a learning cycle. A failed cycle follows the same schedule
// as a successful one; only a panic trips the error cooldown.
func (b *Bot) Run(ctx context.Context) error {
	slog.Info("starting bot loop",
		"post_hours_min", b.cfg.PostFrequencyHoursMin,
		"post_hours_max", b.cfg.PostFrequencyHoursMax,
		"mention_poll", b.cfg.MentionPollInterval,
	)

	if err := b.social.VerifyCredentials(ctx); err != nil {
		return fmt.Errorf("verify credentials: %w", err)
	}

	next := b.resumeOrSchedule()

	for {
		if err := b.waitUntil(ctx, next); err != nil {
			slog.Info("bot shutting down")
			return err
		}

		next = b.runScheduledCycle(ctx)
		slog.Info("next post scheduled", "at", next)
	}
}

// runScheduledCycle runs one posting cycle and returns the next wake-up
// time: the error cooldown after a panic, the normal frequency draw
// otherwise. Publish and generation failures are logged but do not change
// the schedule.
func (b *Bot) runScheduledCycle(ctx context.Context) time.Time {
	panicked, err := b.safeCycle(ctx)
	if panicked {
		slog.Error("post cycle panicked, backing off", "error", err, "cooldown", b.cfg.ErrorCooldown)
		next := b.now().Add(b.cfg.ErrorCooldown)
		if serr := b.store.SetNextPostTime(next); serr != nil {
			slog.Error("failed to persist next post time", "error", serr)
		}
		return next
	}
	if err != nil {
		slog.Error("post cycle failed", "error", err)
	}

	b.runLearningCycle(ctx)

	next, err := b.NextPostTime()
	if err != nil {
		slog.Error("failed to persist next post time", "error", err)
	}
	return next
}

// resumeOrSchedule returns the persisted next-post time when it is still
// in the future, otherwise draws a fresh one. This keeps restarts from
// posting immediately.
func (b *Bot) resumeOrSchedule() time.Time {
	if t := b.store.Activity().NextPostTime; t != nil && t.After(b.now()) {
		slog.Info("resuming persisted schedule", "at", *t)
		return *t
	}
	next, err := b.NextPostTime()
	if err != nil {
		slog.Error("failed to persist next post time", "error", err)
	}
	slog.Info("next post scheduled", "at", next)
	return next
}

// waitUntil sleeps to the deadline in mention-poll sized chunks, running
// a mention cycle between chunks.
func (b *Bot) waitUntil(ctx context.Context, deadline time.Time) error {
	for {
		remaining := deadline.Sub(b.now())
		if remaining <= 0 {
			return nil
		}

		chunk := b.cfg.MentionPollInterval
		if remaining < chunk {
			chunk = remaining
		}

		timer := time.NewTimer(chunk)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		b.runMentionCycle(ctx)
	}
}

// safeCycle runs one posting cycle with panics converted to errors,
// reporting whether it panicked so the caller can back off.
func (b *Bot) safeCycle(ctx context.Context) (panicked bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			err = fmt.Errorf("post cycle panicked: %v", r)
		}
	}()
	_, err = b.RunCycle(ctx)
	return false, err
}

// runMentionCycle fetches mentions newer than the watermark and replies
// to each, capped per thread/author pair. The watermark advances past
// every fetched mention, replied to or not, so a bad mention can't wedge
// the poll loop.
func (b *Bot) runMentionCycle(ctx context.Context) {
	mentions, err := b.social.GetMentions(ctx, b.store.LastMentionID())
	if err != nil {
		slog.Error("mention fetch failed", "error", err)
		return
	}
	if len(mentions) == 0 {
		return
	}

	slog.Info("processing mentions", "count", len(mentions))

	for _, m := range mentions {
		b.advanceWatermark(m.ID)

		key := store.ReplyKey(m.ConversationID, m.AuthorID)
		if b.store.ReplyCount(key) >= b.cfg.ReplyCap {
			slog.Debug("reply cap reached", "conversation", m.ConversationID, "author", m.AuthorID)
			continue
		}

		if err := b.replyToMention(ctx, m); err != nil {
			slog.Error("reply failed", "mention", m.ID, "error", err)
			continue
		}
		if err := b.store.IncrementReply(key); err != nil {
			slog.Error("failed to record reply", "error", err)
		}
	}
}

func (b *Bot) advanceWatermark(id string) {
	if !social.NewerID(id, b.store.LastMentionID()) {
		return
	}
	if err := b.store.SetLastMentionID(id); err != nil {
		slog.Error("failed to persist mention watermark", "error", err)
	}
}

func (b *Bot) replyToMention(ctx context.Context, m social.Mention) error {
	p := prompt.Reply(m.Text, m.AuthorID)
	raw, err := b.llm.Complete(ctx, p.System, p.User)
	if err != nil {
		return fmt.Errorf("generate reply: %w", err)
	}

	text := content.Normalize(raw)
	if text == "" {
		return fmt.Errorf("reply generation returned empty text")
	}

	res, err := b.social.ReplyTo(ctx, m.ID, text)
	if err != nil {
		return err
	}
	slog.Info("replied to mention", "mention", m.ID, "url", res.URL)
	return nil
}

// runLearningCycle looks at the engagement of the most recent posts and
// records the text of anything that crossed the threshold as a winner
// note for future prompts. Replies are weighted double: the account
// optimizes for conversation, not likes.
func (b *Bot) runLearningCycle(ctx context.Context) {
	recent := b.store.RecentPosts(b.cfg.LearningWindow)
	for _, rec := range recent {
		if rec.PostID == "" {
			continue
		}
		metrics, err := b.social.GetMetrics(ctx, rec.PostID)
		if err != nil {
			slog.Debug("metrics fetch failed", "post", rec.PostID, "error", err)
			continue
		}

		signal := metrics.Likes + 2*metrics.Replies
		if signal < b.cfg.EngagementThreshold {
			continue
		}

		slog.Info("post crossed engagement threshold",
			"post", rec.PostID, "likes", metrics.Likes, "replies", metrics.Replies)
		if err := b.store.AddWinnerNote(rec.PostText); err != nil {
			slog.Error("failed to record winner note", "error", err)
		}
	}
}
