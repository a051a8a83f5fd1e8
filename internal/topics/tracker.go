// Package topics tracks recently used topics so consecutive posts don't
// beat the same debate to death.
package topics

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	// DefaultMaxHistory caps the persisted topic log.
	DefaultMaxHistory = 50
	// DefaultFreshnessWindow is how many recent entries a topic is checked
	// against before it counts as fresh again.
	DefaultFreshnessWindow = 10
)

// Entry records one topic use.
type Entry struct {
	Topic     string    `json:"topic"`
	Timestamp time.Time `json:"timestamp"`
}

type historyFile struct {
	Topics      []Entry   `json:"topics"`
	LastUpdated time.Time `json:"last_updated"`
}

// Tracker persists a bounded, time-ordered log of used topics.
type Tracker struct {
	path            string
	maxHistory      int
	freshnessWindow int
	recent          []Entry
}

// Config holds tracker configuration.
type Config struct {
	Path            string
	MaxHistory      int
	FreshnessWindow int
}

// New loads the topic history from disk. A missing file starts an empty
// log; any other read or parse failure is an error.
func New(cfg Config) (*Tracker, error) {
	maxHistory := cfg.MaxHistory
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	window := cfg.FreshnessWindow
	if window <= 0 {
		window = DefaultFreshnessWindow
	}

	t := &Tracker{
		path:            cfg.Path,
		maxHistory:      maxHistory,
		freshnessWindow: window,
	}

	data, err := os.ReadFile(cfg.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return nil, fmt.Errorf("read topic history: %w", err)
	}

	var file historyFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse topic history: %w", err)
	}
	t.recent = file.Topics

	return t, nil
}

// Add records a topic use and persists immediately. The log is FIFO: once
// it exceeds the cap, the oldest entries are evicted.
func (t *Tracker) Add(topic string) error {
	t.recent = append(t.recent, Entry{Topic: topic, Timestamp: time.Now()})
	if len(t.recent) > t.maxHistory {
		t.recent = t.recent[len(t.recent)-t.maxHistory:]
	}
	return t.save()
}

// IsFresh reports whether the topic is absent from the freshness window,
// case-insensitively.
func (t *Tracker) IsFresh(topic string) bool {
	start := len(t.recent) - t.freshnessWindow
	if start < 0 {
		start = 0
	}
	for _, e := range t.recent[start:] {
		if strings.EqualFold(e.Topic, topic) {
			return false
		}
	}
	return true
}

// FreshOnly filters a topic list down to currently fresh entries.
func (t *Tracker) FreshOnly(list []string) []string {
	fresh := make([]string, 0, len(list))
	for _, topic := range list {
		if t.IsFresh(topic) {
			fresh = append(fresh, topic)
		}
	}
	return fresh
}

// Suggestions returns fresh evergreen topics. When every evergreen topic
// was used within the freshness window, the whole catalog comes back
// instead so the caller always has something to post about.
func (t *Tracker) Suggestions() []string {
	fresh := t.FreshOnly(EvergreenTopics)
	if len(fresh) == 0 {
		return append([]string(nil), EvergreenTopics...)
	}
	return fresh
}

// Len returns the number of tracked entries.
func (t *Tracker) Len() int {
	return len(t.recent)
}

// Stats summarizes topic usage for the stats command.
type Stats struct {
	TotalUses    int
	UniqueTopics int
	MostUsed     []TopicCount
}

// TopicCount pairs a topic with its use count.
type TopicCount struct {
	Topic string
	Count int
}

// UsageStats computes usage counts over the tracked log.
func (t *Tracker) UsageStats() Stats {
	counts := make(map[string]int)
	for _, e := range t.recent {
		counts[e.Topic]++
	}

	sorted := make([]TopicCount, 0, len(counts))
	for topic, n := range counts {
		sorted = append(sorted, TopicCount{Topic: topic, Count: n})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].Topic < sorted[j].Topic
	})
	if len(sorted) > 5 {
		sorted = sorted[:5]
	}

	return Stats{
		TotalUses:    len(t.recent),
		UniqueTopics: len(counts),
		MostUsed:     sorted,
	}
}

// Clear drops all history and persists the empty log.
func (t *Tracker) Clear() error {
	t.recent = nil
	return t.save()
}

func (t *Tracker) save() error {
	file := historyFile{
		Topics:      t.recent,
		LastUpdated: time.Now(),
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal topic history: %w", err)
	}

	if dir := filepath.Dir(t.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}

	if err := os.WriteFile(t.path, data, 0o644); err != nil {
		return fmt.Errorf("write topic history: %w", err)
	}
	return nil
}
