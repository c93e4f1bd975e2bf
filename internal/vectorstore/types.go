// Package vectorstore is the typed adapter over the vector-store process
// (spec.md §4.5): two content collections (chunks, chunk_files) plus a usage
// collection and a one-row schema_details bookkeeping collection. Grounded on
// fredcamaral-mcp-alfarrabio/internal/storage/qdrant.go's QdrantStore, which
// is the only example in the corpus that talks to the opaque HTTP+gRPC
// process (with collection CRUD, filtering, and batched upsert/delete)
// spec.md §6 describes; the teacher's own in-process
// SQLite+bleve+chromem-go design does not expose that shape and was
// superseded for this component (see DESIGN.md).
package vectorstore

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/qdrant/go-client/qdrant"
)

const (
	CollectionChunks       = "chunks"
	CollectionChunkFiles   = "chunk_files"
	CollectionSchemaDetail = "schema_details"
	CollectionUsage        = "usage"

	// schemaDetailKey is the fixed id of schema_details' one bookkeeping row
	// (spec.md §4.5 "Schema-details collection").
	schemaDetailKey = "schema-version"

	// maxBatchFetch and maxQueryResults bound get_by_file_hashes per spec.md
	// §4.5: "batch size 1000, max 10000 per query".
	maxBatchFetch   = 1000
	maxQueryResults = 10000

	// updateTimestampsConcurrency is the semaphore width spec.md §4.5 names
	// for update_timestamps's bounded-concurrency partial updates.
	updateTimestampsConcurrency = 50

	// cleanupBatchSize is the iterative delete batch spec.md §4.5 names for
	// cleanup_old.
	cleanupBatchSize = 1000
)

// Config points the adapter at a running vector-store process.
type Config struct {
	Host          string
	Port          int
	GRPCPort      int
	APIKey        string
	UseTLS        bool
	VectorSize    uint64
	SchemaVersion int64
}

// DefaultConfig assumes a local, unauthenticated instance on the standard
// Qdrant ports.
func DefaultConfig() Config {
	return Config{
		Host:          "localhost",
		Port:          6334,
		GRPCPort:      6334,
		VectorSize:    768,
		SchemaVersion: 1,
	}
}

// Store is the C5 adapter: a single client handle shared by batch inserts,
// schema ops, and read/write RPCs, per spec.md §4.5's "Client model" (the
// qdrant-go-client's *qdrant.Client is already safe for concurrent use, so
// the teacher's two-handle split collapses to one).
type Store struct {
	client *qdrant.Client
	config Config
	bm25   bleve.Index
}
