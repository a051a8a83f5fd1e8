package bot

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devunfiltered/engagebot/internal/config"
	"github.com/devunfiltered/engagebot/internal/prompt"
	"github.com/devunfiltered/engagebot/internal/social"
	"github.com/devunfiltered/engagebot/internal/store"
	"github.com/devunfiltered/engagebot/internal/topics"
)

// fakeLLM returns queued responses in order, or a fixed error.
type fakeLLM struct {
	responses []string
	err       error
	panicMsg  string
	calls     int
}

func (f *fakeLLM) Complete(ctx context.Context, system, user string) (string, error) {
	f.calls++
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", errors.New("fakeLLM: no responses left")
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

// fakeSocial records posts and replies and serves canned mentions,
// metrics, and trends.
type fakeSocial struct {
	posts    []string
	replies  map[string]string
	mentions []social.Mention
	metrics  map[string]social.Metrics
	trends   []string

	postErr    error
	mentionErr error
	nextID     int
}

func newFakeSocial() *fakeSocial {
	return &fakeSocial{
		replies: make(map[string]string),
		metrics: make(map[string]social.Metrics),
		trends:  []string{"Go generics", "AI coding agents", "monorepo tooling"},
	}
}

func (f *fakeSocial) PostText(ctx context.Context, text string) (*social.PostResult, error) {
	if f.postErr != nil {
		return nil, f.postErr
	}
	f.nextID++
	f.posts = append(f.posts, text)
	id := fmt.Sprintf("%d", 1000+f.nextID)
	return &social.PostResult{ID: id, URL: "https://x.com/i/status/" + id}, nil
}

func (f *fakeSocial) ReplyTo(ctx context.Context, tweetID, text string) (*social.PostResult, error) {
	f.nextID++
	f.replies[tweetID] = text
	id := fmt.Sprintf("%d", 2000+f.nextID)
	return &social.PostResult{ID: id, URL: "https://x.com/i/status/" + id}, nil
}

func (f *fakeSocial) GetMentions(ctx context.Context, sinceID string) ([]social.Mention, error) {
	if f.mentionErr != nil {
		return nil, f.mentionErr
	}
	var out []social.Mention
	for _, m := range f.mentions {
		if social.NewerID(m.ID, sinceID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeSocial) GetTechTrends(ctx context.Context, count int) []string {
	if count < len(f.trends) {
		return f.trends[:count]
	}
	return f.trends
}

func (f *fakeSocial) GetMetrics(ctx context.Context, postID string) (*social.Metrics, error) {
	m, ok := f.metrics[postID]
	if !ok {
		return nil, errors.New("not found")
	}
	return &m, nil
}

func (f *fakeSocial) VerifyCredentials(ctx context.Context) error { return nil }

const goodPost = "Hot take: X is bad. Why? Because.\nWhat do you think? 🤔"

func testConfig() *config.Config {
	return &config.Config{
		MinScoreThreshold:     8,
		MaxRetries:            3,
		ControversialWeight:   70,
		RelatableWeight:       30,
		PostFrequencyHoursMin: 4,
		PostFrequencyHoursMax: 8,
		MentionPollInterval:   5 * time.Minute,
		ErrorCooldown:         time.Hour,
		ReplyCap:              2,
		EngagementThreshold:   15,
		LearningWindow:        5,
	}
}

func newTestBot(t *testing.T, cfg *config.Config, llmClient *fakeLLM, socialClient *fakeSocial) (*Bot, *store.Store) {
	t.Helper()
	dir := t.TempDir()

	st, err := store.New(store.Config{
		ActivityPath: filepath.Join(dir, "activity.json"),
		HistoryPath:  filepath.Join(dir, "history.json"),
	})
	require.NoError(t, err)

	tracker, err := topics.New(topics.Config{Path: filepath.Join(dir, "topics.json")})
	require.NoError(t, err)

	b := New(Config{
		Cfg:    cfg,
		LLM:    llmClient,
		Social: socialClient,
		Store:  st,
		Topics: tracker,
		Rand:   rand.New(rand.NewSource(1)),
	})
	return b, st
}

func TestRunCycleAcceptsAndPublishesOnce(t *testing.T) {
	llmClient := &fakeLLM{responses: []string{goodPost, "SCORE: 9\nENGAGEMENT: 9 - asks a question"}}
	socialClient := newFakeSocial()
	b, st := newTestBot(t, testConfig(), llmClient, socialClient)

	res, err := b.RunCycle(context.Background())
	require.NoError(t, err)

	assert.True(t, res.Posted)
	assert.Equal(t, 1, res.Attempts)
	assert.Equal(t, 9, res.Score)
	require.Len(t, socialClient.posts, 1)
	assert.Equal(t, goodPost, socialClient.posts[0])

	hist := st.History()
	require.Len(t, hist, 1)
	assert.Equal(t, goodPost, hist[0].PostText)
	assert.Equal(t, 9, hist[0].Score)

	// Used topics were recorded for freshness tracking.
	assert.Equal(t, 3, b.topics.Len())
}

func TestRunCycleAllAttemptsFailPublishesNothing(t *testing.T) {
	llmClient := &fakeLLM{err: errors.New("upstream unavailable")}
	socialClient := newFakeSocial()
	cfg := testConfig()
	b, st := newTestBot(t, cfg, llmClient, socialClient)

	res, err := b.RunCycle(context.Background())
	require.NoError(t, err)

	assert.False(t, res.Posted)
	assert.Equal(t, cfg.MaxRetries, res.Attempts)
	// One generation call per attempt, no review calls.
	assert.Equal(t, cfg.MaxRetries, llmClient.calls)
	assert.Empty(t, socialClient.posts)
	assert.Empty(t, st.History())
}

func TestRunCycleRejectsLowScores(t *testing.T) {
	llmClient := &fakeLLM{responses: []string{
		goodPost, "SCORE: 5\nOVERALL_FEEDBACK: too generic",
		goodPost, "SCORE: 7\nOVERALL_FEEDBACK: closer",
		goodPost, "SCORE: 8\nOVERALL_FEEDBACK: ship it",
	}}
	socialClient := newFakeSocial()
	b, st := newTestBot(t, testConfig(), llmClient, socialClient)

	res, err := b.RunCycle(context.Background())
	require.NoError(t, err)

	assert.True(t, res.Posted)
	assert.Equal(t, 3, res.Attempts)
	assert.Equal(t, 8, res.Score)

	act := st.Activity()
	assert.Equal(t, 2, act.TotalRejections)
	require.Len(t, act.Rejections, 2)
	assert.Equal(t, 5, act.Rejections[0].Score)
}

func TestRunCycleRejectsHooklessPostDespiteHighScore(t *testing.T) {
	hookless := "Tests are valuable and everyone should write them."
	llmClient := &fakeLLM{responses: []string{
		hookless, "SCORE: 9",
		hookless, "SCORE: 9",
		hookless, "SCORE: 9",
	}}
	socialClient := newFakeSocial()
	b, st := newTestBot(t, testConfig(), llmClient, socialClient)

	res, err := b.RunCycle(context.Background())
	require.NoError(t, err)

	assert.False(t, res.Posted)
	assert.Empty(t, socialClient.posts)
	assert.Equal(t, 3, st.Activity().TotalRejections)
}

func TestRunCyclePublishFailureIsLogged(t *testing.T) {
	llmClient := &fakeLLM{responses: []string{goodPost, "SCORE: 9"}}
	socialClient := newFakeSocial()
	socialClient.postErr = errors.New("status 503")
	b, st := newTestBot(t, testConfig(), llmClient, socialClient)

	_, err := b.RunCycle(context.Background())
	require.Error(t, err)

	act := st.Activity()
	assert.Equal(t, 1, act.FailedPosts)
	require.Len(t, act.Failures, 1)
	assert.Contains(t, act.Failures[0].Error, "503")
	assert.Empty(t, st.History())
}

func TestNextPostTimeDegenerateWindow(t *testing.T) {
	cfg := testConfig()
	cfg.PostFrequencyHoursMin = 1
	cfg.PostFrequencyHoursMax = 1

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	llmClient := &fakeLLM{}
	b, st := newTestBot(t, cfg, llmClient, newFakeSocial())
	b.now = func() time.Time { return now }

	next, err := b.NextPostTime()
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), next)

	persisted := st.Activity().NextPostTime
	require.NotNil(t, persisted)
	assert.True(t, persisted.Equal(next))
}

func TestNextPostTimeStaysInWindow(t *testing.T) {
	cfg := testConfig()
	b, _ := newTestBot(t, cfg, &fakeLLM{}, newFakeSocial())

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	for i := 0; i < 20; i++ {
		next, err := b.NextPostTime()
		require.NoError(t, err)
		delta := next.Sub(now)
		assert.GreaterOrEqual(t, delta, 4*time.Hour)
		assert.LessOrEqual(t, delta, 8*time.Hour)
	}
}

func TestScheduleAfterPublishFailureFollowsNormalWindow(t *testing.T) {
	cfg := testConfig()
	cfg.PostFrequencyHoursMin = 2
	cfg.PostFrequencyHoursMax = 2
	cfg.ErrorCooldown = time.Hour

	llmClient := &fakeLLM{responses: []string{goodPost, "SCORE: 9"}}
	socialClient := newFakeSocial()
	socialClient.postErr = errors.New("status 503")
	b, st := newTestBot(t, cfg, llmClient, socialClient)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	next := b.runScheduledCycle(context.Background())

	// A failed publish follows the same schedule as a success, not the
	// error cooldown.
	assert.Equal(t, now.Add(2*time.Hour), next)

	persisted := st.Activity().NextPostTime
	require.NotNil(t, persisted)
	assert.True(t, persisted.Equal(next))
	assert.Equal(t, 1, st.Activity().FailedPosts)
}

func TestScheduleAfterGenerationFailureFollowsNormalWindow(t *testing.T) {
	cfg := testConfig()
	cfg.PostFrequencyHoursMin = 2
	cfg.PostFrequencyHoursMax = 2

	llmClient := &fakeLLM{err: errors.New("upstream unavailable")}
	b, _ := newTestBot(t, cfg, llmClient, newFakeSocial())

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	next := b.runScheduledCycle(context.Background())
	assert.Equal(t, now.Add(2*time.Hour), next)
}

func TestScheduleAfterPanicUsesCooldown(t *testing.T) {
	cfg := testConfig()
	cfg.PostFrequencyHoursMin = 2
	cfg.PostFrequencyHoursMax = 2
	cfg.ErrorCooldown = time.Hour

	llmClient := &fakeLLM{panicMsg: "nil map write"}
	b, st := newTestBot(t, cfg, llmClient, newFakeSocial())

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	next := b.runScheduledCycle(context.Background())
	assert.Equal(t, now.Add(time.Hour), next)

	persisted := st.Activity().NextPostTime
	require.NotNil(t, persisted)
	assert.True(t, persisted.Equal(next))
}

func TestMentionCycleRepliesAndAdvancesWatermark(t *testing.T) {
	llmClient := &fakeLLM{responses: []string{"ha, fair point. what would you use instead?"}}
	socialClient := newFakeSocial()
	socialClient.mentions = []social.Mention{
		{ID: "3001", Text: "this take is wild", AuthorID: "u1", ConversationID: "c1"},
	}
	b, st := newTestBot(t, testConfig(), llmClient, socialClient)

	b.runMentionCycle(context.Background())

	assert.Len(t, socialClient.replies, 1)
	assert.Equal(t, "3001", st.LastMentionID())
	assert.Equal(t, 1, st.ReplyCount(store.ReplyKey("c1", "u1")))

	// Same mentions again: watermark filters them out, no second reply.
	b.runMentionCycle(context.Background())
	assert.Len(t, socialClient.replies, 1)
}

func TestMentionCycleHonorsReplyCap(t *testing.T) {
	llmClient := &fakeLLM{responses: []string{"reply 1", "reply 2", "reply to other"}}
	socialClient := newFakeSocial()
	socialClient.mentions = []social.Mention{
		{ID: "3001", Text: "first", AuthorID: "u1", ConversationID: "c1"},
		{ID: "3002", Text: "second", AuthorID: "u1", ConversationID: "c1"},
		{ID: "3003", Text: "third", AuthorID: "u1", ConversationID: "c1"},
		{ID: "3004", Text: "other thread", AuthorID: "u2", ConversationID: "c2"},
	}
	b, st := newTestBot(t, testConfig(), llmClient, socialClient)

	b.runMentionCycle(context.Background())

	// Two replies to u1 in c1 (the cap), one to u2 in c2.
	assert.Len(t, socialClient.replies, 3)
	assert.Equal(t, 2, st.ReplyCount(store.ReplyKey("c1", "u1")))
	assert.Equal(t, 1, st.ReplyCount(store.ReplyKey("c2", "u2")))

	// Watermark advanced past the skipped mention too.
	assert.Equal(t, "3004", st.LastMentionID())
}

func TestMentionCycleWatermarkAdvancesOnReplyFailure(t *testing.T) {
	llmClient := &fakeLLM{err: errors.New("upstream unavailable")}
	socialClient := newFakeSocial()
	socialClient.mentions = []social.Mention{
		{ID: "3001", Text: "hello", AuthorID: "u1", ConversationID: "c1"},
	}
	b, st := newTestBot(t, testConfig(), llmClient, socialClient)

	b.runMentionCycle(context.Background())

	assert.Empty(t, socialClient.replies)
	assert.Equal(t, "3001", st.LastMentionID())
	assert.Zero(t, st.ReplyCount(store.ReplyKey("c1", "u1")))
}

func TestLearningCycleRecordsWinners(t *testing.T) {
	socialClient := newFakeSocial()
	b, st := newTestBot(t, testConfig(), &fakeLLM{}, socialClient)

	require.NoError(t, st.LogSuccess(store.PostedRecord{Timestamp: time.Now(), PostText: "quiet post", PostID: "p1"}))
	require.NoError(t, st.LogSuccess(store.PostedRecord{Timestamp: time.Now(), PostText: "banger post", PostID: "p2"}))

	socialClient.metrics["p1"] = social.Metrics{Likes: 5, Replies: 2} // signal 9, below
	socialClient.metrics["p2"] = social.Metrics{Likes: 7, Replies: 4} // signal 15, at threshold

	b.runLearningCycle(context.Background())

	notes := st.WinnerNotes()
	require.Len(t, notes, 1)
	assert.Equal(t, "banger post", notes[0])
}

func TestPickCategorySkipsDealsWithoutCatalog(t *testing.T) {
	cfg := testConfig()
	cfg.ControversialWeight = 0
	cfg.RelatableWeight = 10
	cfg.DealWeight = 90

	b, _ := newTestBot(t, cfg, &fakeLLM{}, newFakeSocial())
	for i := 0; i < 50; i++ {
		assert.Equal(t, prompt.Relatable, b.pickCategory())
	}
}

func TestPickCategoryRespectsWeights(t *testing.T) {
	cfg := testConfig()
	cfg.ControversialWeight = 100
	cfg.RelatableWeight = 0

	b, _ := newTestBot(t, cfg, &fakeLLM{}, newFakeSocial())
	for i := 0; i < 20; i++ {
		assert.Equal(t, prompt.Controversial, b.pickCategory())
	}
}
