package topics

// EvergreenTopics are debate topics that reliably drive engagement in the
// dev community, used when no fresh live trends are available.
var EvergreenTopics = []string{
	// Language debates
	"TypeScript vs JavaScript",
	"Python vs Go",
	"Rust programming language",
	"JavaScript fatigue",

	// Framework wars
	"React vs Vue",
	"Next.js vs Remix",
	"Svelte adoption",

	// Development practices
	"TDD effectiveness",
	"Code review best practices",
	"Pair programming",
	"Clean code principles",
	"Technical debt management",
	"Documentation importance",

	// AI and tools
	"AI coding assistants",
	"Copilot vs Cursor",
	"ChatGPT for coding",
	"AI replacing developers",

	// Career topics
	"Bootcamp vs CS degree",
	"Remote work productivity",
	"Developer burnout",
	"Imposter syndrome",
	"Job hopping strategy",
	"Salary negotiation",

	// Architecture
	"Microservices vs monolith",
	"Serverless architecture",
	"GraphQL vs REST",
	"Event-driven architecture",

	// Workflow and tools
	"Git workflow strategies",
	"VS Code vs Neovim",
	"Docker in development",
	"CI/CD pipelines",
	"Kubernetes worth it",

	// Industry trends
	"Tech layoffs impact",
	"Open source sustainability",
	"Web3 relevance",
	"Developer productivity metrics",
	"Meeting culture",
	"4-day work week",
}
