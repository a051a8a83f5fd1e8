package content

import (
	"regexp"
	"strconv"
	"strings"
)

// scorePattern matches the score line, tolerating signs and trailing
// punctuation ("SCORE: 8.", "SCORE: -3", "SCORE: 9/10").
var scorePattern = regexp.MustCompile(`SCORE:\s*(-?\d+)`)

// Feedback line labels in the full evaluation format.
var feedbackLabels = []string{"ENGAGEMENT:", "CONTROVERSY:", "QUALITY:", "OVERALL_FEEDBACK:"}

// ParseEvaluation extracts a clamped 0-10 score and feedback text from a
// reviewer response. It is total: a response with no recognizable score line
// yields score 0 with a diagnostic, never an error. Score 0 always fails the
// acceptance threshold, so a malformed review reads as a rejection.
func ParseEvaluation(response string) (int, string) {
	m := scorePattern.FindStringSubmatch(response)
	if m == nil {
		return 0, "Failed to parse evaluation: no score line in response"
	}

	score, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "Failed to parse evaluation: unreadable score"
	}
	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}

	// Compact variant: "SCORE: n. REASON: text"
	if idx := strings.Index(response, "REASON:"); idx >= 0 {
		reason := strings.TrimSpace(response[idx+len("REASON:"):])
		if reason == "" {
			reason = "No reason provided"
		}
		return score, reason
	}

	// Full variant: collect the labeled feedback lines.
	var feedback []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		for _, label := range feedbackLabels {
			if strings.HasPrefix(line, label) {
				feedback = append(feedback, line)
				break
			}
		}
	}

	return score, strings.Join(feedback, "\n")
}

// Textual signals believed to correlate with reply-driving posts.
var engagementHooks = []string{
	"?", // questions drive replies
	"👇", "👀", "🤔", "🤷‍♂️", "💀", "🔥", "😅",
	"what do you think",
	"change my mind",
	"who else",
	"relatable",
	"just me",
	"thoughts",
	"fight me",
	"anyone else",
}

// HasEngagementHook reports whether the post carries at least one
// engagement-driving element. Acceptance requires this in addition to the
// reviewer score.
func HasEngagementHook(text string) bool {
	lower := strings.ToLower(text)
	for _, hook := range engagementHooks {
		if strings.Contains(lower, hook) {
			return true
		}
	}
	return false
}
