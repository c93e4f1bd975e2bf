// Package sync brings the vector store into the state implied by a repo
// snapshot: decide which files need (re)chunking and embedding, preserve
// already-valid chunks, and upsert the rest (spec.md §4.6). Grounded on
// internal/indexer/change_detector.go and branch_synchronizer.go's overall
// detect → partition → batch → write shape, retargeted from "write chunk
// files to disk" to "upsert into the vector store adapter."
package sync

import (
	"github.com/mvp-joe/project-cortex/internal/embedclient"
	"github.com/mvp-joe/project-cortex/internal/model"
	"github.com/mvp-joe/project-cortex/internal/vectorstore"
)

// maxBatchSizeChunking is spec.md §4.6's max_batch_size_chunking default.
const maxBatchSizeChunking = 200

// Synchronizer is C6: it never persists anything itself; it reads/writes
// only through the vector store adapter and the embedding client.
type Synchronizer struct {
	Store    *vectorstore.Store
	Embedder *embedclient.Client
	RepoPath string
}

// New builds a Synchronizer over an already-open vector store and embedding
// client.
func New(store *vectorstore.Store, embedder *embedclient.Client, repoPath string) *Synchronizer {
	return &Synchronizer{Store: store, Embedder: embedder, RepoPath: repoPath}
}

// partition is the reuse/re-embed/new split from spec.md §4.6 step 2.
type partition struct {
	reuse    []model.ChunkFile // valid hash, every chunk vectored: keep, refresh last_used
	reEmbed  map[string]string // file_path -> file_hash: hash matches, some chunk missing a vector
	newFiles map[string]string // file_path -> file_hash: no record or hash mismatch
}
