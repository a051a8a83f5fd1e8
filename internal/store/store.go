// Package store persists the bot's state as plain JSON files. Every
// mutation is read-modify-write of the whole file; there is exactly one
// writer process, so no locking is attempted. The dashboard reads the same
// files and never writes them.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// maxLogEntries caps the rejection and failure rings.
const maxLogEntries = 50

// maxWinnerNotes caps the rolling "what worked" list.
const maxWinnerNotes = 5

// RejectionEntry records a candidate that failed review.
type RejectionEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	ContentType string    `json:"content_type"`
	PostText    string    `json:"post_text"`
	Score       int       `json:"score"`
	Feedback    string    `json:"feedback"`
}

// FailureEntry records a post that was approved but could not be published.
type FailureEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	ContentType string    `json:"content_type"`
	PostText    string    `json:"post_text"`
	Error       string    `json:"error"`
}

// Activity is the bot's single mutable state document.
type Activity struct {
	TotalPosts      int        `json:"total_posts"`
	SuccessfulPosts int        `json:"successful_posts"`
	FailedPosts     int        `json:"failed_posts"`
	TotalRejections int        `json:"total_rejections"`
	LastPostTime    *time.Time `json:"last_post_time"`
	NextPostTime    *time.Time `json:"next_post_time"`

	Rejections []RejectionEntry `json:"rejections,omitempty"`
	Failures   []FailureEntry   `json:"failures,omitempty"`

	// ReplyCounts is keyed by "<conversation id>:<author id>".
	ReplyCounts   map[string]int `json:"reply_counts,omitempty"`
	LastMentionID string         `json:"last_mention_id,omitempty"`

	WinnerNotes []string `json:"winner_notes,omitempty"`
}

// PostedRecord is one accepted, published post. The history log is
// append-only and unbounded.
type PostedRecord struct {
	Timestamp   time.Time `json:"timestamp"`
	ContentType string    `json:"content_type"`
	PostText    string    `json:"post_text"`
	Score       int       `json:"score"`
	Feedback    string    `json:"feedback"`
	URL         string    `json:"url"`
	PostID      string    `json:"post_id,omitempty"`
}

// Store owns the activity and posted-history files.
type Store struct {
	activityPath string
	historyPath  string

	activity Activity
	history  []PostedRecord
}

// Config holds store configuration.
type Config struct {
	ActivityPath string
	HistoryPath  string
}

// New loads existing state from disk. Missing files initialize empty
// state; any other I/O or parse failure is an error, which callers should
// treat as fatal at startup.
func New(cfg Config) (*Store, error) {
	s := &Store{
		activityPath: cfg.ActivityPath,
		historyPath:  cfg.HistoryPath,
	}

	if err := readJSONFile(cfg.ActivityPath, &s.activity); err != nil {
		return nil, fmt.Errorf("load activity log: %w", err)
	}
	if err := readJSONFile(cfg.HistoryPath, &s.history); err != nil {
		return nil, fmt.Errorf("load posted history: %w", err)
	}
	if s.activity.ReplyCounts == nil {
		s.activity.ReplyCounts = make(map[string]int)
	}

	return s, nil
}

// Activity returns a copy of the current activity document.
func (s *Store) Activity() Activity {
	return s.activity
}

// History returns the posted-history log, oldest first.
func (s *Store) History() []PostedRecord {
	return append([]PostedRecord(nil), s.history...)
}

// RecentPosts returns up to n of the most recently posted records,
// newest last.
func (s *Store) RecentPosts(n int) []PostedRecord {
	if n <= 0 || len(s.history) == 0 {
		return nil
	}
	start := len(s.history) - n
	if start < 0 {
		start = 0
	}
	return append([]PostedRecord(nil), s.history[start:]...)
}

// LogRejection appends to the capped rejection ring and bumps the counter.
func (s *Store) LogRejection(e RejectionEntry) error {
	s.activity.TotalRejections++
	s.activity.Rejections = append(s.activity.Rejections, e)
	if len(s.activity.Rejections) > maxLogEntries {
		s.activity.Rejections = s.activity.Rejections[len(s.activity.Rejections)-maxLogEntries:]
	}
	return s.saveActivity()
}

// LogFailure appends to the capped failure ring and bumps the counter.
func (s *Store) LogFailure(e FailureEntry) error {
	s.activity.FailedPosts++
	s.activity.Failures = append(s.activity.Failures, e)
	if len(s.activity.Failures) > maxLogEntries {
		s.activity.Failures = s.activity.Failures[len(s.activity.Failures)-maxLogEntries:]
	}
	return s.saveActivity()
}

// LogSuccess appends the record to the posted history and updates the
// activity counters.
func (s *Store) LogSuccess(rec PostedRecord) error {
	s.history = append(s.history, rec)
	if err := s.saveHistory(); err != nil {
		return err
	}

	s.activity.TotalPosts++
	s.activity.SuccessfulPosts++
	ts := rec.Timestamp
	s.activity.LastPostTime = &ts
	return s.saveActivity()
}

// SetNextPostTime persists the absolute next-run timestamp.
func (s *Store) SetNextPostTime(t time.Time) error {
	s.activity.NextPostTime = &t
	return s.saveActivity()
}

// ReplyKey builds the reply-tracking key for a thread/author pair.
func ReplyKey(conversationID, authorID string) string {
	return conversationID + ":" + authorID
}

// ReplyCount returns how many replies were already sent for a key.
func (s *Store) ReplyCount(key string) int {
	return s.activity.ReplyCounts[key]
}

// IncrementReply bumps the reply counter for a key.
func (s *Store) IncrementReply(key string) error {
	s.activity.ReplyCounts[key]++
	return s.saveActivity()
}

// SetLastMentionID advances the mention watermark.
func (s *Store) SetLastMentionID(id string) error {
	s.activity.LastMentionID = id
	return s.saveActivity()
}

// LastMentionID returns the mention watermark.
func (s *Store) LastMentionID() string {
	return s.activity.LastMentionID
}

// AddWinnerNote records a post that earned strong engagement, keeping the
// most recent few. Duplicates are ignored.
func (s *Store) AddWinnerNote(note string) error {
	for _, n := range s.activity.WinnerNotes {
		if n == note {
			return nil
		}
	}
	s.activity.WinnerNotes = append(s.activity.WinnerNotes, note)
	if len(s.activity.WinnerNotes) > maxWinnerNotes {
		s.activity.WinnerNotes = s.activity.WinnerNotes[len(s.activity.WinnerNotes)-maxWinnerNotes:]
	}
	return s.saveActivity()
}

// WinnerNotes returns the rolling "what worked" notes.
func (s *Store) WinnerNotes() []string {
	return append([]string(nil), s.activity.WinnerNotes...)
}

func (s *Store) saveActivity() error {
	return writeJSONFile(s.activityPath, s.activity)
}

func (s *Store) saveHistory() error {
	return writeJSONFile(s.historyPath, s.history)
}

func readJSONFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, out)
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
