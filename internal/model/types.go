// Package model holds the data types shared across the indexing and
// retrieval engine: chunks, chunk-file placements, scanner-level file
// records, and usage bookkeeping.
package model

import "time"

// Chunk is a content-addressed textual unit returned by retrieval.
// Two chunks with identical text share the same ChunkHash and are stored
// once (spec.md §3).
type Chunk struct {
	ChunkHash string
	Text      string
	Embedding []float32 // nil when not fetched or not yet embedded
	CreatedAt time.Time
	LastUsed  time.Time
}

// HasVector reports whether the chunk carries a dense embedding.
func (c *Chunk) HasVector() bool {
	return c != nil && len(c.Embedding) > 0
}

// HierarchyNode describes one containing scope (class, function, or
// namespace) at the point a chunk was emitted.
type HierarchyNode struct {
	Type        string // "class" | "function" | "namespace"
	Value       string
	IsBreakable bool
}

// MetaInfo carries the chunker's structural metadata for a ChunkFile.
type MetaInfo struct {
	Hierarchy       []HierarchyNode
	Dechunk         bool
	ImportOnlyChunk bool
	AllClasses      []string
	AllFunctions    []string
	ByteSize        int
}

// ChunkFile is a placement record linking one Chunk to one file location.
// Its identity is id5(file_path, file_hash, start_line, end_line); it
// references a Chunk by ChunkHash rather than a hard pointer (spec.md §9).
type ChunkFile struct {
	ID                 string
	FilePath           string
	FileHash           string
	StartLine          int
	EndLine            int
	TotalChunks        int
	ChunkHash          string
	Classes            []string
	Functions          []string
	Entities           string
	SearchableFilePath string
	SearchableFileName string
	Meta               MetaInfo
}

// FileRecord is scanner-level state, not persisted in the vector store.
// Its lifetime is bounded by a single sync cycle.
type FileRecord struct {
	RepoPath string
	FilePath string
	FileName string
	FileHash string
	Language string
	NumLines int
	Metadata map[string]string
}

// UsageRecord tracks per-query usage for the cleanup subsystem.
type UsageRecord struct {
	UsageHash     string
	LastUsageTime time.Time
	References    []string // chunk hashes
}

// ChunkSourceDetails identifies where a chunk's text came from.
type ChunkSourceDetails struct {
	FilePath  string
	FileHash  string
	StartLine int
	EndLine   int
}

// ChunkResult is a ranked retrieval result, the wire shape of spec.md §6's
// ChunkJSON.
type ChunkResult struct {
	Content       string
	SourceDetails ChunkSourceDetails
	SearchScore   float64
	Metadata      map[string]any
}
