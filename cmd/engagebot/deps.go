package main

import (
	"fmt"
	"log/slog"

	"github.com/devunfiltered/engagebot/internal/bot"
	"github.com/devunfiltered/engagebot/internal/config"
	"github.com/devunfiltered/engagebot/internal/llm"
	"github.com/devunfiltered/engagebot/internal/news"
	"github.com/devunfiltered/engagebot/internal/social"
	"github.com/devunfiltered/engagebot/internal/store"
	"github.com/devunfiltered/engagebot/internal/topics"
)

// buildBot wires the full dependency graph from configuration.
func buildBot(cfg *config.Config) (*bot.Bot, *store.Store, error) {
	st, err := store.New(store.Config{
		ActivityPath: cfg.ActivityPath,
		HistoryPath:  cfg.HistoryPath,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open state store: %w", err)
	}

	tracker, err := topics.New(topics.Config{
		Path:            cfg.TopicsPath,
		MaxHistory:      cfg.TopicHistoryMax,
		FreshnessWindow: cfg.FreshnessWindow,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open topic history: %w", err)
	}

	llmClient, err := llm.NewXAIClient(llm.Config{
		APIKey:  cfg.XAIAPIKey,
		BaseURL: cfg.XAIBaseURL,
		Model:   cfg.XAIModel,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create completion client: %w", err)
	}

	twitter := social.NewTwitterClient(social.TwitterConfig{
		BearerToken: cfg.XBearerToken,
		Handle:      cfg.XHandle,
	})

	deals, err := store.LoadDeals(cfg.DealsPath)
	if err != nil {
		return nil, nil, err
	}
	if len(deals) > 0 {
		slog.Info("deals catalog loaded", "count", len(deals))
	}

	b := bot.New(bot.Config{
		Cfg:    cfg,
		LLM:    llmClient,
		Social: twitter,
		Store:  st,
		Topics: tracker,
		News:   news.NewMonitor(news.Config{}),
		Deals:  deals,
	})
	return b, st, nil
}
