package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devunfiltered/engagebot/internal/config"
	"github.com/devunfiltered/engagebot/internal/news"
	"github.com/devunfiltered/engagebot/internal/social"
)

var trendsCount int

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Show current trends and headlines",
	Long:  `Fetch the trending tech topics and news headlines the bot would use as prompt context right now.`,
	RunE:  runTrends,
}

func init() {
	trendsCmd.Flags().IntVar(&trendsCount, "count", 5, "Number of trends to fetch")
	rootCmd.AddCommand(trendsCmd)
}

func runTrends(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	fmt.Println("=== Trending Topics ===")
	if cfg.XBearerToken != "" {
		twitter := social.NewTwitterClient(social.TwitterConfig{
			BearerToken: cfg.XBearerToken,
			Handle:      cfg.XHandle,
		})
		for _, t := range twitter.GetTechTrends(ctx, trendsCount) {
			fmt.Printf("  %s\n", t)
		}
	} else {
		fmt.Println("  (X_BEARER_TOKEN not set, skipping)")
	}

	fmt.Println()
	fmt.Println("=== Headlines ===")
	monitor := news.NewMonitor(news.Config{})
	for _, h := range monitor.TopTechNews(ctx, trendsCount) {
		fmt.Printf("  %s\n", h)
	}

	return nil
}
