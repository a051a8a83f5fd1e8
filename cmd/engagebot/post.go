package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/devunfiltered/engagebot/internal/config"
	"github.com/devunfiltered/engagebot/internal/content"
	"github.com/devunfiltered/engagebot/internal/llm"
	"github.com/devunfiltered/engagebot/internal/prompt"
	"github.com/devunfiltered/engagebot/internal/social"
)

var (
	postDryRun   bool
	postCategory string
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Run a single post cycle",
	Long: `Generate, review, and publish one post immediately, skipping the
schedule.

Examples:
  engagebot post                          # Generate, review, and publish
  engagebot post --dry-run                # Generate and review, print instead of posting
  engagebot post --category relatable     # Force a content category`,
	RunE: runPost,
}

func init() {
	postCmd.Flags().BoolVar(&postDryRun, "dry-run", false, "Generate and review but print instead of posting")
	postCmd.Flags().StringVar(&postCategory, "category", "", "Force a content category (controversial, relatable, news_reaction, joke, deal)")
	rootCmd.AddCommand(postCmd)
}

func runPost(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.ValidateForGeneration(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	if !postDryRun {
		if err := cfg.ValidateForPosting(); err != nil {
			return fmt.Errorf("validate config: %w", err)
		}
	}

	if postCategory != "" {
		if !prompt.Category(postCategory).Valid() {
			return fmt.Errorf("unknown category %q", postCategory)
		}
		forceCategory(cfg, prompt.Category(postCategory))
	}

	if postDryRun {
		return runDryRun(ctx, cfg)
	}

	b, _, err := buildBot(cfg)
	if err != nil {
		return err
	}

	res, err := b.RunCycle(ctx)
	if err != nil {
		return err
	}

	if !res.Posted {
		fmt.Printf("No candidate passed review after %d attempts.\n", res.Attempts)
		return nil
	}

	fmt.Printf("Posted (%s, score %d): %s\n", res.Category, res.Score, res.URL)
	fmt.Println()
	fmt.Println(res.PostText)
	return nil
}

// forceCategory zeroes every weight except the chosen one.
func forceCategory(cfg *config.Config, cat prompt.Category) {
	cfg.ControversialWeight = 0
	cfg.RelatableWeight = 0
	cfg.NewsReactionWeight = 0
	cfg.JokeWeight = 0
	cfg.DealWeight = 0
	switch cat {
	case prompt.Relatable:
		cfg.RelatableWeight = 1
	case prompt.NewsReaction:
		cfg.NewsReactionWeight = 1
	case prompt.Joke:
		cfg.JokeWeight = 1
	case prompt.Deal:
		cfg.DealWeight = 1
	default:
		cfg.ControversialWeight = 1
	}
}

// runDryRun generates and reviews one candidate without touching the state
// files or the X API.
func runDryRun(ctx context.Context, cfg *config.Config) error {
	llmClient, err := llm.NewXAIClient(llm.Config{
		APIKey:  cfg.XAIAPIKey,
		BaseURL: cfg.XAIBaseURL,
		Model:   cfg.XAIModel,
	})
	if err != nil {
		return fmt.Errorf("create completion client: %w", err)
	}

	var trends []string
	if cfg.XBearerToken != "" {
		twitter := social.NewTwitterClient(social.TwitterConfig{
			BearerToken: cfg.XBearerToken,
			Handle:      cfg.XHandle,
		})
		trends = twitter.GetTechTrends(ctx, 3)
	}

	cat := prompt.Controversial
	if postCategory != "" {
		cat = prompt.Category(postCategory)
	}

	gen := prompt.Build(cat, prompt.Context{Trending: trends})
	raw, err := llmClient.Complete(ctx, gen.System, gen.User)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	post := content.Normalize(raw)

	eval := prompt.Evaluation(post, cat)
	review, err := llmClient.Complete(ctx, eval.System, eval.User)
	if err != nil {
		return fmt.Errorf("review: %w", err)
	}
	score, feedback := content.ParseEvaluation(review)

	verdict := "REJECT"
	if score >= cfg.MinScoreThreshold && content.HasEngagementHook(post) {
		verdict = "ACCEPT"
	}

	slog.Info("dry run complete", "category", cat, "score", score, "verdict", verdict)
	fmt.Printf("[%s] %s (score %d/%d)\n\n%s\n\nFeedback: %s\n", verdict, cat, score, cfg.MinScoreThreshold, post, feedback)
	return nil
}
