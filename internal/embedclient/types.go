// Package embedclient turns text into fixed-dimension vectors over the
// remote embedding provider's HTTP contract (spec.md §4.4, §6): POST
// /embedding with a bearer token, greedily batched to a token budget, with
// bounded-parallel dispatch and exponential backoff on failure. Grounded on
// the teacher's internal/embed package (Provider interface, EmbedWithProgress
// batch loop) and on fredcamaral-mcp-alfarrabio/internal/retry for the
// backoff policy.
package embedclient

import "context"

// Mode mirrors the teacher's EmbedMode: queries and passages are embedded
// differently by most retrieval-tuned models.
type Mode string

const (
	ModeQuery   Mode = "query"
	ModePassage Mode = "passage"
)

// Provider is the contract every embedding backend satisfies. embed(texts,
// store_embeddings?) -> (vectors, tokens_used) from spec.md §4.4.
type Provider interface {
	Embed(ctx context.Context, texts []string, mode Mode) (vectors [][]float32, tokensUsed int, err error)
	Dimensions() int
}

// Progress reports batch completion, mirroring the teacher's BatchProgress
// for UI/log feedback during a long sync.
type Progress struct {
	BatchIndex      int
	TotalBatches    int
	ProcessedChunks int
	TotalChunks     int
}
