package chunker

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/project-cortex/internal/lang"
	"github.com/mvp-joe/project-cortex/internal/model"
)

// ancestor is one entry of the class-like ancestor stack maintained during
// the depth-first walk, used to attach parent_name/parent_type to nested
// function-like nodes and to build hierarchy metadata.
type ancestor struct {
	name string
	kind model.HierarchyNode
}

// Extract parses source and produces the full FileResult for it: its chunks
// plus the running all_classes/all_functions lists (spec.md §4.2). A missing
// grammar or parse failure reports Supported=false with zero chunks, per the
// "unsupported rather than fatal" failure semantics.
func Extract(source []byte, tag lang.Tag, opt Options) FileResult {
	result := FileResult{Language: tag}

	rules := RulesFor(tag)
	if rules == nil {
		return result
	}

	parser := sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(rules.Grammar()); err != nil {
		return result
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return result
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return result
	}

	c := &chunking{
		source: source,
		rules:  rules,
		opt:    opt,
	}
	c.walkContainer(root)

	result.Supported = true
	result.Chunks = c.chunks
	result.AllClasses = c.allClasses
	result.AllFunctions = c.allFunctions
	return result
}

// chunking carries the mutable state threaded through one file's walk:
// accumulated chunks and the running class/function name lists spec.md §4.2
// requires the chunker to track across the whole file.
type chunking struct {
	source []byte
	rules  *LanguageRules
	opt    Options

	chunks       []Chunk
	allClasses   []string
	allFunctions []string
}

// walkContainer walks the direct children of the compilation-unit node,
// treating each as a candidate top-level chunk. This is the depth-first walk
// of spec.md §4.2 step 2, restricted to one level at a time: recursion into
// an oversized node happens via emitTopLevel's own children loop, so the stack
// of class-like ancestors only grows as we actually descend into one.
func (c *chunking) walkContainer(root *sitter.Node) {
	children := directChildren(root)
	i := 0
	for i < len(children) {
		node := children[i]
		if c.rules.Classify(node.Kind()) == KindImport {
			j := i
			for j < len(children) && c.rules.Classify(children[j].Kind()) == KindImport {
				j++
			}
			// j-1 is the last import-like sibling in this run; everything
			// between consecutive import nodes must be blank/comment only
			// for the whole run to coalesce per spec.md §4.2 step 3.
			if c.importsCoalesce(children, i, j-1) {
				c.emitImportsBlock(children[i], children[j-1])
				i = j
				continue
			}
		}
		c.emitTopLevel(node, nil)
		i++
	}
}

// importsCoalesce reports whether every gap between consecutive import-like
// siblings in children[start:end+1] is blank or comment only.
func (c *chunking) importsCoalesce(children []*sitter.Node, start, end int) bool {
	for k := start; k < end; k++ {
		gapStart := int(children[k].EndByte())
		gapEnd := int(children[k+1].StartByte())
		if !isBlankOrComment(c.source, gapStart, gapEnd, c.rules.LineCommentPrefixes) {
			return false
		}
	}
	return true
}

func (c *chunking) emitImportsBlock(first, last *sitter.Node) {
	startByte := first.StartByte()
	endByte := last.EndByte()
	text := string(c.source[startByte:endByte])
	c.chunks = append(c.chunks, Chunk{
		Text:            text,
		StartLine:       startLine(first),
		EndLine:         endLine(last),
		ImportOnlyChunk: true,
		ByteSize:        len(text),
	})
}

// emitTopLevel handles one non-import top-level node: decorator expansion,
// size-discipline recursion, and hierarchy bookkeeping for class-like nodes.
func (c *chunking) emitTopLevel(node *sitter.Node, ancestors []ancestor) {
	kind := c.rules.Classify(node.Kind())

	// Python decorators: a decorated_definition wraps the real
	// class/function node; unwrap it so Classify sees the wrapped node,
	// but keep the decorator's own span (spec.md §4.2 step 4).
	effective := node
	if kind == KindDecoratorWrapper {
		if inner := findWrappedDefinition(node); inner != nil {
			effective = inner
			kind = c.rules.Classify(inner.Kind())
		}
	}

	size := int(node.EndByte() - node.StartByte())
	if size > c.opt.MaxChars && hasChunkableChildren(node) {
		nextAncestors := ancestors
		if kind == KindClass || kind == KindNamespace {
			nextAncestors = append(append([]ancestor{}, ancestors...), ancestor{
				name: nodeName(effective, c.source),
				kind: model.HierarchyNode{
					Type:        hierarchyType(kind),
					Value:       nodeName(effective, c.source),
					IsBreakable: true,
				},
			})
		}
		for _, child := range directChildren(node) {
			c.emitTopLevel(child, nextAncestors)
		}
		return
	}

	name := nodeName(effective, c.source)
	if kind == KindClass {
		c.allClasses = append(c.allClasses, name)
	}
	if kind == KindFunction {
		c.allFunctions = append(c.allFunctions, name)
	}

	text := string(c.source[node.StartByte():node.EndByte()])
	c.chunks = append(c.chunks, Chunk{
		Text:      text,
		StartLine: startLine(node),
		EndLine:   endLine(node),
		Hierarchy: hierarchyOf(ancestors, kind, name),
		ByteSize:  len(text),
	})
}

func hierarchyType(kind NodeKind) string {
	if kind == KindNamespace {
		return "namespace"
	}
	return "class"
}

// hierarchyOf builds the emitted chunk's hierarchy stack: the containing
// ancestors, outermost first, followed by this node itself when it is
// class-like or function-like (spec.md §4.2 "Hierarchy metadata").
func hierarchyOf(ancestors []ancestor, kind NodeKind, name string) []model.HierarchyNode {
	nodes := make([]model.HierarchyNode, 0, len(ancestors)+1)
	for _, a := range ancestors {
		nodes = append(nodes, a.kind)
	}
	switch kind {
	case KindClass:
		nodes = append(nodes, model.HierarchyNode{Type: "class", Value: name, IsBreakable: true})
	case KindNamespace:
		nodes = append(nodes, model.HierarchyNode{Type: "namespace", Value: name, IsBreakable: true})
	case KindFunction:
		nodes = append(nodes, model.HierarchyNode{Type: "function", Value: name, IsBreakable: true})
	}
	return nodes
}

// hasChunkableChildren reports whether node has at least one child worth
// recursing into; a leaf node that exceeds max_chars is emitted whole since
// there is nothing smaller to split it into (spec.md §4.2 invariant 3).
func hasChunkableChildren(node *sitter.Node) bool {
	return node.ChildCount() > 0
}

// directChildren returns node's named and unnamed children as a flat slice,
// in source order, used both for the top-level walk and for the recursion
// into oversized nodes.
func directChildren(node *sitter.Node) []*sitter.Node {
	count := int(node.ChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		if child := node.Child(uint(i)); child != nil {
			out = append(out, child)
		}
	}
	return out
}

// findWrappedDefinition returns the class/function definition node inside a
// decorated_definition, skipping the leading decorator nodes.
func findWrappedDefinition(node *sitter.Node) *sitter.Node {
	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		child := node.Child(uint(i))
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "decorator":
			continue
		default:
			return child
		}
	}
	return nil
}
