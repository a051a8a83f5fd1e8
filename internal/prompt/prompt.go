// Package prompt builds the instruction strings sent to the completion
// endpoint. Builders are pure: same inputs produce the same prompt, and any
// randomness (topic choice, example sampling) happens in the caller.
package prompt

import (
	"fmt"
	"strings"
)

// Category selects which template and tone the generator uses.
type Category string

const (
	Controversial Category = "controversial"
	Relatable     Category = "relatable"
	NewsReaction  Category = "news_reaction"
	Joke          Category = "joke"
	Deal          Category = "deal"
)

// Categories lists every supported content category.
var Categories = []Category{Controversial, Relatable, NewsReaction, Joke, Deal}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

// Prompt is a system/user message pair for the completion endpoint.
type Prompt struct {
	System string
	User   string
}

// Context carries the inputs interpolated into generation prompts.
type Context struct {
	// Trending topics to riff on.
	Trending []string
	// News snippets for news_reaction posts.
	News []string
	// Rolling "what worked before" notes from past high-engagement posts.
	WinnerNotes []string
	// Style examples for joke posts.
	JokeExamples []string
	// Deal being promoted, for deal posts.
	DealName string
	DealLink string
}

// Build constructs the generation prompt for a category.
func Build(cat Category, ctx Context) Prompt {
	switch cat {
	case Relatable:
		return relatablePrompt(ctx)
	case NewsReaction:
		return newsReactionPrompt(ctx)
	case Joke:
		return jokePrompt(ctx)
	case Deal:
		return dealPrompt(ctx)
	default:
		return controversialPrompt(ctx)
	}
}

func formatTrending(topics []string) string {
	if len(topics) == 0 {
		return "No specific trends available - use evergreen dev topics"
	}
	return strings.Join(topics, ", ")
}

func winnerSection(notes []string) string {
	if len(notes) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\n\nPOSTS THAT WORKED BEFORE (match their energy, don't copy them):\n")
	for _, n := range notes {
		sb.WriteString("- ")
		sb.WriteString(n)
		sb.WriteString("\n")
	}
	return sb.String()
}

func controversialPrompt(ctx Context) Prompt {
	user := fmt.Sprintf(`Generate a controversial but defensible tech opinion post for X (Twitter) that will drive replies and engagement.

RULES:
- Start with "Unpopular opinion:" or "Hot take:" or "Controversial:" or "Real talk:"
- Make a specific claim that challenges conventional wisdom
- Provide 2-3 bullet points supporting your position
- End with "What do you think? 🤔" or "Change my mind 👇" or "Fight me 🔥" or "Thoughts? 👀"
- Keep total length under 280 characters
- Use casual, conversational tone
- Avoid generic takes - be SPECIFIC and data-driven
- Must be defensible with real reasoning

TOPICS TO CHOOSE FROM:
- Framework debates (React vs Vue, TypeScript vs JavaScript, Next.js vs Remix)
- Development practices (TDD, pair programming, code reviews, documentation)
- Career advice (bootcamps vs degrees, job hopping, remote work, salary negotiation)
- Tools and workflows (IDE choices, Git workflows, CI/CD, monorepo vs polyrepo)
- AI coding assistants (Copilot, Cursor, ChatGPT, Claude)
- Architecture decisions (microservices, monoliths, serverless)
- Programming languages (Python vs Go, Rust hype, JavaScript fatigue)

CURRENT TRENDING TOPICS:
%s

BAD EXAMPLES (too generic):
"Unpopular opinion: Writing tests is good"
"Hot take: You should learn to code"
"Controversial: Documentation matters"

GOOD EXAMPLES:
"Unpopular opinion: TypeScript is overkill for 90%% of projects

Here's why:
• Most bugs aren't type-related
• Adds dev friction for small teams
• Vanilla JS + good tests >>> TS + bad tests

What do you think? 🤔"

"Real talk: Daily standups are productivity killers

• Breaks flow state
• Most updates belong in Slack
• Async >>> sync for remote teams

Thoughts? 👀"%s

Generate ONE controversial opinion post now. Be specific, be bold, be defensible:`,
		formatTrending(ctx.Trending), winnerSection(ctx.WinnerNotes))

	return Prompt{
		System: "You are a senior developer with strong, data-backed opinions on software development practices.",
		User:   user,
	}
}

func relatablePrompt(ctx Context) Prompt {
	user := fmt.Sprintf(`Generate a relatable developer situation post that will get "me too" responses and shares.

RULES:
- Describe a specific, common developer experience
- Use conversational, casual tone (lowercase is fine)
- Include a punchline or observation
- End with engagement hook: "Who else? 👀" or "Just me? 🤷‍♂️" or "Relatable? 💀" or "Anyone else? 😅"
- Keep under 280 characters
- Avoid generic "coding is hard" - be SPECIFIC to a situation
- Use humor, irony, or self-deprecation

RELATABLE SITUATIONS:
- Time estimation failures ("should take 2 hours" → 2 days)
- Debugging mysteries (works on my machine, production breaks)
- Meeting interruptions during flow state
- Stack Overflow dependency for basic syntax
- Git commit message struggles ("fix stuff", "more fixes", "final fix I swear")
- Imposter syndrome moments
- Browser tab hoarding (47 tabs open, still googling same thing)
- "Quick fix" that breaks everything
- Monday morning code review of Friday night commits

CURRENT TRENDING TOPICS:
%s

BAD EXAMPLES (too generic):
"Coding is hard sometimes"
"Developers drink coffee"
"Bugs are annoying"

GOOD EXAMPLES:
"Me: 'I'll just add one small feature'

*3 hours later*

Me: 'Why did I refactor the entire codebase and now nothing works'

Who else? 👀"

"opening 47 stack overflow tabs to solve one error then forgetting which tab had the solution is my core programming skill

Anyone else? 👀"%s

Generate ONE relatable developer post now. Make it SPECIFIC and funny:`,
		formatTrending(ctx.Trending), winnerSection(ctx.WinnerNotes))

	return Prompt{
		System: "You are a developer who experiences the same frustrations and funny moments as everyone else in tech.",
		User:   user,
	}
}

func newsReactionPrompt(ctx Context) Prompt {
	news := "No headlines available - react to a current, widely known dev trend instead."
	if len(ctx.News) > 0 {
		news = "- " + strings.Join(ctx.News, "\n- ")
	}

	user := fmt.Sprintf(`Generate a tech news reaction post that provides value and drives discussion.

RULES:
- Reference specific recent tech news or trend
- Provide 2-3 bullet points on "what this means for devs"
- End with your hot take or prediction
- Include engagement hook: "What do you think? 🤔" or "Thoughts? 👇"
- Keep under 280 characters total
- Be opinionated but informed
- Focus on PRACTICAL implications for developers

TODAY'S HEADLINES:
%s

CURRENT TRENDING TOPICS:
%s

FORMAT:
[Company/Tool] just [announcement]

What this means for devs:
• [Practical impact 1]
• [Practical impact 2]

[Your hot take/prediction]

[Engagement hook]%s

Generate ONE tech news reaction post now:`,
		news, formatTrending(ctx.Trending), winnerSection(ctx.WinnerNotes))

	return Prompt{
		System: "You are a developer who provides quick, insightful reactions to breaking tech news.",
		User:   user,
	}
}

func jokePrompt(ctx Context) Prompt {
	var examples string
	if len(ctx.JokeExamples) > 0 {
		parts := make([]string, len(ctx.JokeExamples))
		for i, ex := range ctx.JokeExamples {
			parts[i] = "Example: " + ex
		}
		examples = strings.Join(parts, "\n\n")
	} else {
		examples = "Example: git commit -m \"fixed stuff\"\ngit commit -m \"fixed stuff for real this time\"\ngit commit -m \"asdfghjkl\""
	}

	user := fmt.Sprintf(`Here are some timeless examples of your style:
%s

CURRENT TRENDING TOPICS:
%s

Analyze the structure and context of the examples. Then write a new, unique post that replicates this style but feels fresh and current.
Keep it under 280 characters. End with a question or a "who else" style hook.
Just output the post content, nothing else.`,
		examples, formatTrending(ctx.Trending))

	return Prompt{
		System: "You are a viral tech twitter influencer in pure pun-filled dad joke style. " +
			"Corny pun-filled tech dev nerdy jokes hilarious to tech communities. " +
			"Lowercase minimal punctuation. No hashtags unless ironic. Under 280 chars. " +
			"NEVER use em-dashes (—); use colons, semicolons, or standard hyphens instead.",
		User: user,
	}
}

func dealPrompt(ctx Context) Prompt {
	user := fmt.Sprintf(`Research and write a high-converting tweet for this product: %s
Affiliate Link: %s

REQUIREMENTS:
1. Research the 'value proposition' (what problem does it solve for devs/entrepreneurs?).
2. Follow this EXACT structure:
   - Short, punchy opener (e.g. 'Stop wasting time on X', 'The ultimate stack addition')
   - Value/What you get (Explain what it does and why it's a steal)
   - Hook question (A natural transition to get people thinking)
   - The product link
3. Keep it under 280 characters.
4. Tone: Authentic, hyped but not spammy.
Just output the tweet text.`,
		ctx.DealName, ctx.DealLink)

	return Prompt{
		System: "You are an expert product reviewer and deal hunter for developers. " +
			"Your goal is to highlight the actual utility and value of a tool. " +
			"NEVER use em-dashes (—); use colons, semicolons, or standard hyphens instead.",
		User: user,
	}
}

// Evaluation constructs the review prompt used to score a candidate post.
// Jokes and deals use a compact rubric answered as "SCORE: n. REASON: ...";
// the other categories use the full multi-criteria format.
func Evaluation(postText string, cat Category) Prompt {
	switch cat {
	case Joke:
		return jokeReviewPrompt(postText)
	case Deal:
		return dealReviewPrompt(postText)
	default:
		return fullEvaluationPrompt(postText, cat)
	}
}

func fullEvaluationPrompt(postText string, cat Category) Prompt {
	user := fmt.Sprintf(`Rate this post on a scale of 0-10 based on these criteria:

ENGAGEMENT POTENTIAL (50%% of score):
- Does it ask a question or invite response?
- Does it have an engagement hook (emoji, "what do you think", "who else", "change my mind", etc.)?
- Will it drive replies and discussion?

CONTROVERSY/INTEREST (30%% of score):
- Is it thought-provoking or challenging conventional wisdom?
- Is it specific enough to be interesting but broad enough to be relatable?
- Will it spark debate without being toxic?

QUALITY (20%% of score):
- Proper length (under 280 characters)?
- Clear and concise?
- Appropriate tone for tech/dev audience?

POST TO EVALUATE:
"%s"

CONTENT TYPE: %s

STRICT REQUIREMENTS FOR 8+ SCORE:
- MUST have engagement hook (question, call to action, "who else", etc.)
- MUST be under 280 characters
- MUST be specific and defensible (not generic)
- MUST drive replies (not just likes)

Respond in EXACTLY this format:
SCORE: [0-10]
ENGAGEMENT: [0-10] - [brief reason]
CONTROVERSY: [0-10] - [brief reason]
QUALITY: [0-10] - [brief reason]
OVERALL_FEEDBACK: [1-2 sentences on strengths and how to improve if score < 8]

Be harsh. Only exceptional posts should score 8+. Most posts should be 5-7.`,
		postText, cat)

	return Prompt{
		System: "You are an expert at evaluating X (Twitter) content for engagement potential in the developer/tech community.",
		User:   user,
	}
}

func jokeReviewPrompt(content string) Prompt {
	user := fmt.Sprintf(`Review this tech joke for a developer audience on X:

'%s'

SCORING PARAMETERS (0-10):
1. Relatability (4/10): Is this a common dev struggle or observation?
2. Brand Voice (3/10): Is it pure pun-filled dad joke corny funny tech puns?
3. Viral Spark (3/10): Does it have 'banger' potential?

CRITICAL CONSTRAINTS:
- Must be under 280 chars.
- No corporate or 'cringe' humor.
- MUST NOT contain em-dashes (—).

Output strictly in this format: SCORE: [Total/10]. REASON: [Short reason].`, content)

	return Prompt{
		System: "You are a ruthless viral editor and tech influencer.",
		User:   user,
	}
}

func dealReviewPrompt(content string) Prompt {
	user := fmt.Sprintf(`Review this SaaS deal post for a developer audience:

'%s'

SCORING PARAMETERS (0-10):
1. Value Research (4/10): Does it highlight a genuine problem/solution or productivity gain?
2. Structure (3/10): Does it follow 'Short opener -> Value -> Hook question -> Link'?
3. Hook Strength (3/10): Is the question/opener engaging enough to stop the scroll?

CRITICAL CONSTRAINTS:
- Character count < 280.
- LINK MUST BE PRESENT.
- Tone should be professional but hyped (NOT cynical).
- MUST NOT contain em-dashes (—).

Output strictly in this format: SCORE: [Total/10]. REASON: [Short reason].`, content)

	return Prompt{
		System: "You are a high-conversion performance marketer and SaaS researcher.",
		User:   user,
	}
}

// Reply constructs the prompt for answering a mention.
func Reply(mentionText, author string) Prompt {
	user := fmt.Sprintf(`Someone replied to one of your posts:

@%s said: "%s"

Write a short, friendly reply that keeps the conversation going.

RULES:
- Under 280 characters
- Match their energy; be casual, never corporate
- Add something: a counterpoint, a joke, or a follow-up question
- No hashtags, no links
Just output the reply text.`, author, mentionText)

	return Prompt{
		System: "You are the developer behind a popular unfiltered tech account on X. You reply like a human, not a brand.",
		User:   user,
	}
}
