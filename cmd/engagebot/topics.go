package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devunfiltered/engagebot/internal/config"
	"github.com/devunfiltered/engagebot/internal/topics"
)

var topicsClear bool

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Inspect or clear the topic history",
	Long: `Show which topics the bot used recently and which evergreen topics
are currently fresh.

Examples:
  engagebot topics          # Show usage and fresh suggestions
  engagebot topics --clear  # Drop all history`,
	RunE: runTopics,
}

func init() {
	topicsCmd.Flags().BoolVar(&topicsClear, "clear", false, "Clear all topic history")
	rootCmd.AddCommand(topicsCmd)
}

func runTopics(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	tracker, err := topics.New(topics.Config{
		Path:            cfg.TopicsPath,
		MaxHistory:      cfg.TopicHistoryMax,
		FreshnessWindow: cfg.FreshnessWindow,
	})
	if err != nil {
		return fmt.Errorf("open topic history: %w", err)
	}

	if topicsClear {
		if err := tracker.Clear(); err != nil {
			return fmt.Errorf("clear topic history: %w", err)
		}
		fmt.Println("Topic history cleared.")
		return nil
	}

	stats := tracker.UsageStats()
	fmt.Println("=== Topic Usage ===")
	fmt.Printf("Tracked uses:  %d\n", stats.TotalUses)
	fmt.Printf("Unique topics: %d\n", stats.UniqueTopics)
	if len(stats.MostUsed) > 0 {
		fmt.Println("\nMost used:")
		for _, tc := range stats.MostUsed {
			fmt.Printf("  %3d  %s\n", tc.Count, tc.Topic)
		}
	}

	fmt.Println("\nFresh suggestions:")
	suggestions := tracker.Suggestions()
	if len(suggestions) > 8 {
		suggestions = suggestions[:8]
	}
	for _, s := range suggestions {
		fmt.Printf("  %s\n", s)
	}

	return nil
}
