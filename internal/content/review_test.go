package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEvaluation(t *testing.T) {
	t.Run("full format", func(t *testing.T) {
		resp := `SCORE: 8
ENGAGEMENT: 9 - asks a direct question
CONTROVERSY: 7 - takes a clear side
QUALITY: 8 - concise
OVERALL_FEEDBACK: Strong hook, could be more specific.`

		score, feedback := ParseEvaluation(resp)
		assert.Equal(t, 8, score)
		assert.Contains(t, feedback, "ENGAGEMENT: 9")
		assert.Contains(t, feedback, "OVERALL_FEEDBACK: Strong hook")
	})

	t.Run("compact format", func(t *testing.T) {
		score, feedback := ParseEvaluation("SCORE: 9. REASON: Peak dad joke energy.")
		assert.Equal(t, 9, score)
		assert.Equal(t, "Peak dad joke energy.", feedback)
	})

	t.Run("clamps high score", func(t *testing.T) {
		score, _ := ParseEvaluation("SCORE: 11")
		assert.Equal(t, 10, score)
	})

	t.Run("clamps negative score", func(t *testing.T) {
		score, _ := ParseEvaluation("SCORE: -3")
		assert.Equal(t, 0, score)
	})

	t.Run("tolerates trailing punctuation", func(t *testing.T) {
		score, _ := ParseEvaluation("SCORE: 7/10. Decent post.")
		assert.Equal(t, 7, score)
	})

	t.Run("missing score line defaults to zero", func(t *testing.T) {
		score, feedback := ParseEvaluation("This post is pretty good I guess")
		assert.Equal(t, 0, score)
		assert.Contains(t, feedback, "Failed to parse evaluation")
	})

	t.Run("empty response defaults to zero", func(t *testing.T) {
		score, _ := ParseEvaluation("")
		assert.Equal(t, 0, score)
	})

	t.Run("compact with empty reason", func(t *testing.T) {
		score, feedback := ParseEvaluation("SCORE: 6. REASON:")
		assert.Equal(t, 6, score)
		assert.Equal(t, "No reason provided", feedback)
	})
}

func TestHasEngagementHook(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"question mark", "Is Rust actually faster?", true},
		{"emoji hook", "tabs forever 🔥", true},
		{"phrase hook", "WHO ELSE ships on fridays", true},
		{"thoughts keyword", "my Thoughts on monorepos", true},
		{"shrug emoji", "just me 🤷‍♂️", true},
		{"no hook", "TypeScript is overkill for most projects.", false},
		{"high score but hookless", "Rust is the best language and everyone should use it", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasEngagementHook(tt.text))
		})
	}
}
