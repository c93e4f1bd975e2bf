// Package chunker turns source file bytes into semantically meaningful,
// size-bounded code chunks with hierarchy metadata (spec.md §4.2). The
// generic walker and per-language classification tables replace the
// teacher's one-parser-per-language inheritance family (spec.md §9) with a
// single tree-sitter walk parameterized by a LanguageRules value.
package chunker

import (
	"github.com/mvp-joe/project-cortex/internal/lang"
	"github.com/mvp-joe/project-cortex/internal/model"
)

// NodeKind classifies a tree-sitter node for chunking purposes.
type NodeKind int

const (
	KindOther NodeKind = iota
	KindClass
	KindFunction
	KindImport
	KindDecoratorWrapper
	KindNamespace
)

// RawChunk is the flat, pre-hierarchy view of one syntax node, per spec.md
// §4.2's extract(bytes, language) → [RawChunk].
type RawChunk struct {
	NodeName   string
	NodeType   string
	StartLine  int
	EndLine    int
	StartByte  uint
	EndByte    uint
	ParentName string
	ParentType string
	Metadata   map[string]string
}

// Chunk is the chunker's output unit: text plus the hierarchy metadata that
// becomes a ChunkFile's MetaInfo once the synchronizer persists it.
type Chunk struct {
	Text            string
	StartLine       int
	EndLine         int
	Hierarchy       []model.HierarchyNode
	ImportOnlyChunk bool
	Classes         []string
	Functions       []string
	ByteSize        int
}

// FileResult is everything the chunker accumulates for one file: its
// chunks plus the running all_classes/all_functions lists spec.md §4.2
// says the chunker must track.
type FileResult struct {
	Chunks       []Chunk
	AllClasses   []string
	AllFunctions []string
	Language     lang.Tag
	Supported    bool // false ⇒ parse failure or no grammar; report "unsupported"
}

// Options bounds chunk size and legacy-path coalescing.
type Options struct {
	MaxChars int // character budget per chunk (spec.md §4.2 "Size discipline")
	Coalesce int // legacy-path merge threshold in non-whitespace bytes
}

// DefaultOptions matches the teacher's CodeChunkSize default of 2000.
func DefaultOptions() Options {
	return Options{MaxChars: 2000, Coalesce: 200}
}
