package social

// techKeywords are searched against recent tweets to detect which topics
// are currently getting traction.
var techKeywords = []string{
	"TypeScript", "JavaScript", "Python", "React", "Vue",
	"AI coding", "Copilot", "Cursor", "ChatGPT",
	"Next.js", "Remix", "Svelte", "Solid",
	"DevOps", "Kubernetes", "Docker",
	"Web3", "Rust", "Go", "Zig",
	"Remote work", "Developer productivity",
	"TDD", "Clean code", "Code review",
	"Bootcamp", "CS degree", "Self-taught developer",
}

// curatedHotTopics is the unconditional fallback when live trend detection
// yields nothing. These are evergreen debates that consistently drive
// engagement in the dev community.
var curatedHotTopics = []string{
	// Language wars
	"TypeScript vs JavaScript",
	"Python vs Go debate",
	"Rust hype cycle",

	// Framework battles
	"React vs Vue",
	"Next.js vs Remix",
	"Angular still relevant?",

	// AI coding tools
	"Cursor vs Copilot",
	"ChatGPT for coding",
	"AI replacing junior devs",
	"Claude vs ChatGPT for code",

	// Development practices
	"TDD worth it?",
	"Pair programming effectiveness",
	"Code review best practices",
	"Clean code principles",

	// Career topics
	"Bootcamp vs CS degree",
	"Remote work culture",
	"Job hopping strategy",
	"Developer burnout",
	"Imposter syndrome",

	// Architecture debates
	"Microservices vs monolith",
	"Serverless worth it?",
	"GraphQL vs REST",
	"NoSQL vs SQL",

	// Tooling debates
	"VS Code vs Neovim",
	"Git workflow strategies",
	"Docker in development",
	"CI/CD best practices",

	// Productivity and culture
	"4-day work week",
	"Developer productivity metrics",
	"Meeting culture killing dev time",
	"Tech debt management",

	// Industry topics
	"Salary transparency",
	"Big Tech vs startups",
	"Open source sustainability",
}
