package chunker

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/project-cortex/internal/lang"
)

// LanguageRules is the table-driven replacement for the teacher's
// per-language parser classes (spec.md §9): a small classification
// function plus a couple of per-language node kinds, parameterizing one
// generic walker instead of N virtual-dispatch types.
type LanguageRules struct {
	Lang lang.Tag

	// Grammar is the compiled tree-sitter language.
	Grammar func() *sitter.Language

	// Classify maps a tree-sitter node kind to a chunking role.
	Classify func(nodeType string) NodeKind

	// ContainerKind is the root/compilation-unit node kind (module,
	// program, source_file, translation_unit, ...). The walker does not
	// read it: the direct children of the parsed tree's root are the
	// top-level nodes.
	ContainerKind string

	// DecoratorWrapperKind names the node that wraps a decorated
	// definition (Python's decorated_definition); empty when the
	// language has no such wrapper.
	DecoratorWrapperKind string

	// LineCommentPrefixes are used by import-coalescing to recognize
	// comment-only separator lines.
	LineCommentPrefixes []string
}

var registry = map[lang.Tag]*LanguageRules{}

func register(r *LanguageRules) {
	registry[r.Lang] = r
}

// RulesFor returns the classification table for tag, or nil if no
// tree-sitter grammar is wired for it.
func RulesFor(tag lang.Tag) *LanguageRules {
	return registry[tag]
}
