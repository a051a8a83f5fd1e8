package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	ctx := Context{Trending: []string{"TypeScript vs JavaScript", "AI coding tools"}}

	t.Run("deterministic", func(t *testing.T) {
		a := Build(Controversial, ctx)
		b := Build(Controversial, ctx)
		assert.Equal(t, a, b)
	})

	t.Run("trending topics interpolated verbatim", func(t *testing.T) {
		p := Build(Controversial, ctx)
		assert.Contains(t, p.User, "TypeScript vs JavaScript, AI coding tools")
	})

	t.Run("empty trends get evergreen note", func(t *testing.T) {
		p := Build(Relatable, Context{})
		assert.Contains(t, p.User, "No specific trends available")
	})

	t.Run("winner notes included when present", func(t *testing.T) {
		p := Build(Controversial, Context{WinnerNotes: []string{"tabs > spaces, fight me 🔥"}})
		assert.Contains(t, p.User, "POSTS THAT WORKED BEFORE")
		assert.Contains(t, p.User, "tabs > spaces, fight me 🔥")

		p = Build(Controversial, Context{})
		assert.NotContains(t, p.User, "POSTS THAT WORKED BEFORE")
	})

	t.Run("news reaction carries headlines", func(t *testing.T) {
		p := Build(NewsReaction, Context{News: []string{"Hacker News: Go 2 announced"}})
		assert.Contains(t, p.User, "Hacker News: Go 2 announced")
	})

	t.Run("joke prompt uses supplied examples", func(t *testing.T) {
		p := Build(Joke, Context{JokeExamples: []string{"npm install is just gambling"}})
		assert.Contains(t, p.User, "Example: npm install is just gambling")
		assert.Contains(t, p.System, "NEVER use em-dashes")
	})

	t.Run("deal prompt carries name and link", func(t *testing.T) {
		p := Build(Deal, Context{DealName: "PDF Reader Pro", DealLink: "https://stacksocial.com/sales/pdf-reader-pro"})
		assert.Contains(t, p.User, "PDF Reader Pro")
		assert.Contains(t, p.User, "https://stacksocial.com/sales/pdf-reader-pro")
	})

	t.Run("each category has a distinct system framing", func(t *testing.T) {
		seen := map[string]bool{}
		for _, cat := range Categories {
			p := Build(cat, ctx)
			assert.NotEmpty(t, p.System)
			seen[p.System] = true
		}
		assert.Len(t, seen, len(Categories))
	})
}

func TestEvaluation(t *testing.T) {
	t.Run("full rubric for opinion posts", func(t *testing.T) {
		p := Evaluation("Hot take: X is bad", Controversial)
		assert.Contains(t, p.User, "SCORE: [0-10]")
		assert.Contains(t, p.User, "OVERALL_FEEDBACK")
		assert.Contains(t, p.User, `"Hot take: X is bad"`)
	})

	t.Run("compact rubric for jokes", func(t *testing.T) {
		p := Evaluation("git blame: blame the previous dev (me)", Joke)
		assert.Contains(t, p.User, "SCORE: [Total/10]. REASON:")
	})

	t.Run("compact rubric for deals", func(t *testing.T) {
		p := Evaluation("deal text", Deal)
		assert.Contains(t, p.User, "LINK MUST BE PRESENT")
	})
}

func TestCategoryValid(t *testing.T) {
	assert.True(t, Controversial.Valid())
	assert.True(t, Deal.Valid())
	assert.False(t, Category("poetry").Valid())
}

func TestReply(t *testing.T) {
	p := Reply("hard disagree, TS saves lives", "somedev")
	assert.Contains(t, p.User, "@somedev")
	assert.Contains(t, p.User, "hard disagree, TS saves lives")
}
