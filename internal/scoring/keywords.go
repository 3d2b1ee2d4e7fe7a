package scoring

import "jobscout/internal/domain/opportunity"

type skillEntry struct {
	Name     string
	Keywords []string
	Weight   int
	Category opportunity.Category
}

// skillTable is process-wide immutable configuration. Order matters: the
// matched-skills list preserves first-match order, which follows table order.
var skillTable = []skillEntry{
	{
		Name:     "mern",
		Keywords: []string{"mern", "mongo", "mongodb", "express", "react", "node.js", "nodejs", "node", "full stack", "fullstack"},
		Weight:   15,
		Category: opportunity.CategoryMERN,
	},
	{
		Name:     "backend",
		Keywords: []string{"backend", "server", "api", "rest", "graphql", "microservices", "express.js", "fastify", "koa"},
		Weight:   12,
		Category: opportunity.CategoryBackend,
	},
	{
		Name:     "nodejs",
		Keywords: []string{"node.js", "nodejs", "node", "typescript", "ts", "javascript", "js", "npm", "yarn"},
		Weight:   14,
		Category: opportunity.CategoryBackend,
	},
	{
		Name:     "nextjs",
		Keywords: []string{"next.js", "nextjs", "next", "app router", "pages router"},
		Weight:   13,
		Category: opportunity.CategoryMERN,
	},
	{
		Name:     "crypto",
		Keywords: []string{"crypto", "cryptocurrency", "blockchain", "web3", "web 3", "defi", "decentralized", "dapp", "dapps", "smart contract", "smart contracts", "solidity", "ethereum", "bitcoin", "nft", "nfts", "dao", "daos"},
		Weight:   18,
		Category: opportunity.CategoryCrypto,
	},
	{
		Name:     "rust",
		Keywords: []string{"rust", "rustlang", "cargo", "rustacean"},
		Weight:   16,
		Category: opportunity.CategoryRust,
	},
	{
		Name:     "solana",
		Keywords: []string{"solana", "sol", "anchor", "solana program", "solana blockchain", "spl token"},
		Weight:   20,
		Category: opportunity.CategoryCrypto,
	},
	{
		Name:     "typescript",
		Keywords: []string{"typescript", "ts", "tsx"},
		Weight:   10,
		Category: opportunity.CategoryBackend,
	},
	{
		Name:     "react",
		Keywords: []string{"react", "reactjs", "react.js", "jsx", "hooks", "redux", "context"},
		Weight:   12,
		Category: opportunity.CategoryMERN,
	},
	{
		Name:     "database",
		Keywords: []string{"database", "sql", "nosql", "postgresql", "postgres", "mysql", "redis", "prisma", "orm"},
		Weight:   8,
		Category: opportunity.CategoryBackend,
	},
}

// negativeKeywords dampen the score without zeroing it.
var negativeKeywords = []string{
	"java", "python", "c#", "csharp", ".net", "php", "ruby", "go lang", "golang",
	"angular", "vue", "svelte", "flutter", "dart", "swift", "kotlin", "ios", "android",
	"devops", "sre", "kubernetes", "docker only", "only docker",
}
