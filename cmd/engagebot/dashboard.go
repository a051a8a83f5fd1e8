package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devunfiltered/engagebot/internal/config"
	"github.com/devunfiltered/engagebot/internal/dashboard"
)

var dashboardAddr string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Serve the web dashboard",
	Long: `Serve a read-only web dashboard over the bot's state files. It can
run alongside a separate serve process; the files are re-read per request.`,
	RunE: runDashboard,
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardAddr, "addr", "", "Listen address (defaults to DASHBOARD_ADDR)")
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	addr := dashboardAddr
	if addr == "" {
		addr = cfg.DashboardAddr
	}

	srv := dashboard.New(dashboard.Config{
		Addr:         addr,
		ActivityPath: cfg.ActivityPath,
		HistoryPath:  cfg.HistoryPath,
		TopicsPath:   cfg.TopicsPath,
	})
	return srv.ListenAndServe()
}
