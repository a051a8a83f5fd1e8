package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/devunfiltered/engagebot/internal/config"
	"github.com/devunfiltered/engagebot/internal/social"
	"github.com/devunfiltered/engagebot/internal/store"
)

var statsEngagement bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show posting statistics",
	Long: `Display counters from the activity log and the recent posting
history.

Examples:
  engagebot stats               # Counters and recent posts
  engagebot stats --engagement  # Also fetch live engagement metrics`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsEngagement, "engagement", false, "Fetch live engagement metrics for recent posts")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	st, err := store.New(store.Config{
		ActivityPath: cfg.ActivityPath,
		HistoryPath:  cfg.HistoryPath,
	})
	if err != nil {
		return fmt.Errorf("open state store: %w", err)
	}

	act := st.Activity()

	fmt.Println("=== EngageBot Statistics ===")
	fmt.Println()
	fmt.Printf("Posts published:  %d\n", act.SuccessfulPosts)
	fmt.Printf("Posts failed:     %d\n", act.FailedPosts)
	fmt.Printf("Candidates rejected: %d\n", act.TotalRejections)
	if act.LastPostTime != nil {
		fmt.Printf("Last post:        %s\n", act.LastPostTime.Format("2006-01-02 15:04 MST"))
	}
	if act.NextPostTime != nil {
		fmt.Printf("Next post:        %s\n", act.NextPostTime.Format("2006-01-02 15:04 MST"))
	}
	if len(act.WinnerNotes) > 0 {
		fmt.Println("\nWinner notes:")
		for _, n := range act.WinnerNotes {
			fmt.Printf("  - %s\n", n)
		}
	}

	recent := st.RecentPosts(cfg.LearningWindow)
	if len(recent) == 0 {
		return nil
	}

	var twitter *social.TwitterClient
	if statsEngagement {
		if cfg.XBearerToken == "" {
			slog.Warn("X_BEARER_TOKEN not set, skipping engagement metrics")
		} else {
			twitter = social.NewTwitterClient(social.TwitterConfig{
				BearerToken: cfg.XBearerToken,
				Handle:      cfg.XHandle,
			})
		}
	}

	fmt.Println("\nRecent posts:")
	ctx := context.Background()
	for _, rec := range recent {
		fmt.Printf("  [%s] score %d: %s\n", rec.ContentType, rec.Score, rec.PostText)
		if twitter != nil && rec.PostID != "" {
			m, err := twitter.GetMetrics(ctx, rec.PostID)
			if err != nil {
				slog.Debug("metrics fetch failed", "post", rec.PostID, "error", err)
				continue
			}
			fmt.Printf("        likes %d, replies %d, retweets %d (signal %d)\n",
				m.Likes, m.Replies, m.Retweets, m.Likes+2*m.Replies)
		}
	}

	return nil
}
