package chunker

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// walk recursively visits node and its descendants, depth-first, calling
// visitor for each node. Returning false from visitor skips that node's
// children (used to avoid re-descending into a class body that was already
// emitted as one chunk). Grounded on
// internal/indexer/parsers/treesitter.go's walkTree.
func walk(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}
	if !visitor(node) {
		return
	}
	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		walk(node.Child(uint(i)), visitor)
	}
}

// nodeText extracts the text content of a node.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// nodeName resolves a node's declared name, preferring the "name" field and
// falling back to scanning children for common identifier kinds. Grounded
// on internal/indexer/parsers/treesitter.go's nodeToSymbolInfo and the
// per-language fallbacks documented in spec.md §4.2 ("Naming").
func nodeName(node *sitter.Node, source []byte) string {
	if node == nil {
		return "unnamed"
	}
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		return nodeText(nameNode, source)
	}
	if declNode := node.ChildByFieldName("declarator"); declNode != nil {
		if n := findIdentifierDescendant(declNode, source); n != "" {
			return n
		}
	}
	for _, kind := range []string{"identifier", "property_identifier", "type_identifier", "field_identifier", "scoped_identifier"} {
		if child := findChildByKind(node, kind); child != nil {
			return nodeText(child, source)
		}
	}
	return "unnamed"
}

// findIdentifierDescendant walks down nested declarators (pointer/array/
// function declarators in C-family grammars) to the innermost identifier.
func findIdentifierDescendant(node *sitter.Node, source []byte) string {
	for node != nil {
		switch node.Kind() {
		case "identifier", "field_identifier":
			return nodeText(node, source)
		}
		if inner := node.ChildByFieldName("declarator"); inner != nil {
			node = inner
			continue
		}
		break
	}
	return ""
}

func findChildByKind(node *sitter.Node, kind string) *sitter.Node {
	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		child := node.Child(uint(i))
		if child != nil && child.Kind() == kind {
			return child
		}
	}
	return nil
}

// startLine and endLine convert a node's tree-sitter rows (0-based) to
// 1-based line numbers.
func startLine(node *sitter.Node) int { return int(node.StartPosition().Row) + 1 }
func endLine(node *sitter.Node) int   { return int(node.EndPosition().Row) + 1 }

// isBlankOrComment reports whether the byte range [start,end) of source is
// entirely whitespace or a single-line comment marker run, used by import
// coalescing to skip separator lines.
func isBlankOrComment(source []byte, start, end int, lineCommentPrefixes []string) bool {
	if start < 0 {
		start = 0
	}
	if end > len(source) {
		end = len(source)
	}
	if start >= end {
		return true
	}
	text := string(source[start:end])
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		isComment := false
		for _, prefix := range lineCommentPrefixes {
			if strings.HasPrefix(trimmed, prefix) {
				isComment = true
				break
			}
		}
		if !isComment {
			return false
		}
	}
	return true
}
