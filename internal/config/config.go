package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// xAI completion endpoint
	XAIAPIKey  string
	XAIBaseURL string
	XAIModel   string

	// X (Twitter) API
	XBearerToken string
	XHandle      string

	// Content policy
	MinScoreThreshold int
	MaxRetries        int

	// Category weights (a zero weight disables the category)
	ControversialWeight int
	RelatableWeight     int
	NewsReactionWeight  int
	JokeWeight          int
	DealWeight          int

	// Scheduling
	PostFrequencyHoursMin float64
	PostFrequencyHoursMax float64
	MentionPollInterval   time.Duration
	ErrorCooldown         time.Duration

	// Mention replies
	ReplyCap int

	// Learning signal
	EngagementThreshold int
	LearningWindow      int

	// Topic tracking
	TopicHistoryMax int
	FreshnessWindow int

	// State files
	ActivityPath string
	HistoryPath  string
	TopicsPath   string
	DealsPath    string

	// Dashboard
	DashboardAddr string

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables.
// It automatically loads .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		XAIAPIKey:     getEnv("XAI_API_KEY", ""),
		XAIBaseURL:    getEnv("XAI_BASE_URL", "https://api.x.ai/v1"),
		XAIModel:      getEnv("XAI_MODEL", "grok-4-1-fast-reasoning"),
		XBearerToken:  getEnv("X_BEARER_TOKEN", ""),
		XHandle:       getEnv("X_HANDLE", "DevUnfiltered"),
		ActivityPath:  getEnv("ACTIVITY_LOG_PATH", "data/bot_activity.json"),
		HistoryPath:   getEnv("POSTED_HISTORY_PATH", "data/posted_history.json"),
		TopicsPath:    getEnv("TOPIC_HISTORY_PATH", "data/topic_history.json"),
		DealsPath:     getEnv("DEALS_PATH", "data/deals.json"),
		DashboardAddr: getEnv("DASHBOARD_ADDR", ":8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	ints := []struct {
		dst *int
		key string
		def string
	}{
		{&cfg.MinScoreThreshold, "MIN_SCORE_THRESHOLD", "8"},
		{&cfg.MaxRetries, "MAX_RETRIES", "3"},
		{&cfg.ControversialWeight, "CONTROVERSIAL_WEIGHT", "70"},
		{&cfg.RelatableWeight, "RELATABLE_WEIGHT", "30"},
		{&cfg.NewsReactionWeight, "NEWS_REACTION_WEIGHT", "0"},
		{&cfg.JokeWeight, "JOKE_WEIGHT", "0"},
		{&cfg.DealWeight, "DEAL_WEIGHT", "0"},
		{&cfg.ReplyCap, "REPLY_CAP", "2"},
		{&cfg.EngagementThreshold, "ENGAGEMENT_THRESHOLD", "15"},
		{&cfg.LearningWindow, "LEARNING_WINDOW", "5"},
		{&cfg.TopicHistoryMax, "TOPIC_HISTORY_MAX", "50"},
		{&cfg.FreshnessWindow, "TOPIC_FRESHNESS_WINDOW", "10"},
	}
	for _, f := range ints {
		v, err := strconv.Atoi(getEnv(f.key, f.def))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", f.key, err)
		}
		*f.dst = v
	}

	var err error
	cfg.PostFrequencyHoursMin, err = strconv.ParseFloat(getEnv("POST_FREQUENCY_HOURS_MIN", "4"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid POST_FREQUENCY_HOURS_MIN: %w", err)
	}
	cfg.PostFrequencyHoursMax, err = strconv.ParseFloat(getEnv("POST_FREQUENCY_HOURS_MAX", "8"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid POST_FREQUENCY_HOURS_MAX: %w", err)
	}
	if cfg.PostFrequencyHoursMax < cfg.PostFrequencyHoursMin {
		return nil, fmt.Errorf("POST_FREQUENCY_HOURS_MAX (%v) is below POST_FREQUENCY_HOURS_MIN (%v)",
			cfg.PostFrequencyHoursMax, cfg.PostFrequencyHoursMin)
	}

	cfg.MentionPollInterval, err = time.ParseDuration(getEnv("MENTION_POLL_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid MENTION_POLL_INTERVAL: %w", err)
	}
	cfg.ErrorCooldown, err = time.ParseDuration(getEnv("ERROR_COOLDOWN", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid ERROR_COOLDOWN: %w", err)
	}

	return cfg, nil
}

// Validate checks that baseline configuration is present.
func (c *Config) Validate() error {
	if c.ActivityPath == "" || c.HistoryPath == "" || c.TopicsPath == "" {
		return fmt.Errorf("state file paths are required")
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("MAX_RETRIES must be at least 1")
	}
	if c.MinScoreThreshold < 0 || c.MinScoreThreshold > 10 {
		return fmt.Errorf("MIN_SCORE_THRESHOLD must be between 0 and 10")
	}
	if c.TotalWeight() <= 0 {
		return fmt.Errorf("at least one category weight must be positive")
	}
	return nil
}

// ValidateForGeneration checks configuration needed for content generation.
func (c *Config) ValidateForGeneration() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.XAIAPIKey == "" {
		return fmt.Errorf("XAI_API_KEY is required for generation")
	}
	return nil
}

// ValidateForPosting checks configuration needed for posting to X.
func (c *Config) ValidateForPosting() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.XBearerToken == "" {
		return fmt.Errorf("X_BEARER_TOKEN is required for posting")
	}
	return nil
}

// ValidateForServe checks all configuration needed for serve mode.
func (c *Config) ValidateForServe() error {
	if err := c.ValidateForGeneration(); err != nil {
		return err
	}
	return c.ValidateForPosting()
}

// TotalWeight returns the sum of all category weights.
func (c *Config) TotalWeight() int {
	return c.ControversialWeight + c.RelatableWeight + c.NewsReactionWeight + c.JokeWeight + c.DealWeight
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
