package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/devunfiltered/engagebot/internal/config"
	"github.com/devunfiltered/engagebot/internal/dashboard"
)

var serveWithDashboard bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bot daemon",
	Long: `Run the EngageBot daemon that posts on a randomized schedule,
polls mentions between posts, and tracks engagement on past posts.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveWithDashboard, "dashboard", false, "Also serve the web dashboard")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.ValidateForServe(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	b, _, err := buildBot(cfg)
	if err != nil {
		return err
	}

	slog.Info("starting EngageBot daemon",
		"model", cfg.XAIModel,
		"handle", cfg.XHandle,
		"score_threshold", cfg.MinScoreThreshold,
	)

	if serveWithDashboard {
		srv := dashboard.New(dashboard.Config{
			Addr:         cfg.DashboardAddr,
			ActivityPath: cfg.ActivityPath,
			HistoryPath:  cfg.HistoryPath,
			TopicsPath:   cfg.TopicsPath,
		})
		go func() {
			if err := srv.ListenAndServe(); err != nil {
				slog.Error("dashboard stopped", "error", err)
			}
		}()
	}

	// Run the bot loop in background
	errCh := make(chan error, 1)
	go func() {
		errCh <- b.Run(ctx)
	}()

	// Wait for shutdown signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("received shutdown signal", "signal", sig)
	case err := <-errCh:
		if err != nil && err != context.Canceled {
			return fmt.Errorf("bot loop error: %w", err)
		}
	}

	slog.Info("shutting down...")
	cancel()

	return nil
}
