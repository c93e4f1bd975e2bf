// Package retrieval composes focus handling, hybrid search, import-chunk
// augmentation, and optional reranking into the ranked-chunk pipeline
// spec.md §4.7 describes. Grounded on the teacher's swallow-errors-and-log
// idiom in internal/indexer/eviction.go for the reranker's graceful
// fallback.
package retrieval

import (
	"github.com/mvp-joe/project-cortex/internal/embedclient"
	"github.com/mvp-joe/project-cortex/internal/usage"
	"github.com/mvp-joe/project-cortex/internal/vectorstore"
)

// hybridAlpha is spec.md §4.7's fixed vector-leaning blend weight for
// candidate selection.
const hybridAlpha = 0.7

// Request is one retrieval call's inputs (spec.md §4.7 "Inputs", §6
// "Retrieval request").
type Request struct {
	Query             string
	FocusFiles        []string
	FocusDirectories  []string
	FocusChunks       []string // "file_path:start-end"
	MaxChunksToReturn int
	RepoFiles         map[string]string // file_path -> file_hash, the candidate universe
	SessionID         string            // forwarded to the reranker as X-Session-Id, if set
	SessionType       string            // forwarded to the reranker as X-Session-Type, if set
}

// Pipeline is C7: it depends on the vector store adapter for candidate
// selection/import augmentation, the embedding client for the query vector,
// the session/usage clock for liveness bookkeeping, and an optional
// reranker.
type Pipeline struct {
	Store    *vectorstore.Store
	Embedder *embedclient.Client
	Usage    *usage.Clock
	Reranker *RerankerClient // nil disables reranking
}

// New builds a Pipeline. Reranker may be nil.
func New(store *vectorstore.Store, embedder *embedclient.Client, usageClock *usage.Clock, reranker *RerankerClient) *Pipeline {
	return &Pipeline{Store: store, Embedder: embedder, Usage: usageClock, Reranker: reranker}
}
