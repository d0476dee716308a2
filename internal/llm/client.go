// Package llm is the boundary to the remote language-model providers.
// It exposes two call shapes: a plain chat completion (Completer) used for
// the fast first attempt, and a web-search augmented call (Searcher) used
// only when the first attempt is inconclusive.
package llm

import "context"

// Completer issues a synchronous chat completion: system instruction plus
// user prompt in, a single text blob out.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
	ProviderName() string
	ModelName() string
}

// Searcher issues a retrieval-augmented call with web search enabled. The
// instruction and prompt arrive as one combined text.
type Searcher interface {
	Search(ctx context.Context, text string) (SearchOutput, error)
	ProviderName() string
	ModelName() string
}
