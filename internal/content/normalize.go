// Package content holds the text plumbing between the model and the
// platform: cleaning generated posts, scoring review responses, and the
// engagement-hook heuristic.
package content

import (
	"strings"
	"unicode/utf8"
)

// MaxPostLength is the platform display-character limit.
const MaxPostLength = 280

// Preambles the model sometimes wraps around the actual post.
var unwantedPrefixes = []string{
	"Here's a post:",
	"Here is a post:",
	"Post:",
	"Tweet:",
	"Here's a controversial opinion:",
	"Here's a relatable post:",
}

// Normalize cleans raw model output into postable text. It is total: any
// input produces a result, and the result never exceeds MaxPostLength runes.
func Normalize(raw string) string {
	text := strings.TrimSpace(raw)

	for _, prefix := range unwantedPrefixes {
		if len(text) >= len(prefix) && strings.EqualFold(text[:len(prefix)], prefix) {
			text = strings.TrimSpace(text[len(prefix):])
		}
	}

	// Strip a single pair of wrapping quotes.
	if len(text) >= 2 && strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) {
		text = text[1 : len(text)-1]
	}

	// The account's voice bans em-dashes.
	text = strings.ReplaceAll(text, "—", "-")

	if utf8.RuneCountInString(text) > MaxPostLength {
		runes := []rune(text)
		text = string(runes[:MaxPostLength-3]) + "..."
	}

	return text
}
