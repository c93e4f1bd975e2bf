package chunker

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/project-cortex/internal/lang"
)

// Span is the legacy path's output unit: a 1-based line range plus the text
// it covers. Kept only as a test oracle and as the fallback for languages
// with no LanguageRules entry (spec.md §9 Open Question resolution: Kotlin
// and Swift have no tree-sitter grammar anywhere in the corpus, so they are
// chunked this way exclusively).
type Span struct {
	StartLine int
	EndLine   int
	Text      string
}

// ChunkCode performs the legacy byte-span partition: split on top-level
// syntax nodes (or, with no grammar at all, on blank-line-delimited
// paragraphs), then coalesce adjacent small spans and merge orphan closing
// delimiters backward (spec.md §4.2 steps 6-7).
func ChunkCode(source []byte, maxChars, coalesce int, tag lang.Tag) []Span {
	var rawSpans [][2]int // [startByte, endByte)

	if rules := RulesFor(tag); rules != nil {
		parser := sitter.NewParser()
		defer parser.Close()
		if err := parser.SetLanguage(rules.Grammar()); err == nil {
			if tree := parser.Parse(source, nil); tree != nil {
				defer tree.Close()
				if root := tree.RootNode(); root != nil {
					rawSpans = splitByTopLevelNodes(root)
				}
			}
		}
	}
	if rawSpans == nil {
		rawSpans = splitByParagraph(source)
	}

	rawSpans = enforceMaxChars(source, rawSpans, maxChars)
	rawSpans = coalesceSmallSpans(source, rawSpans, coalesce)
	rawSpans = mergeOrphanClosers(source, rawSpans)

	return toLineSpans(source, rawSpans, coalesce)
}

func splitByTopLevelNodes(root *sitter.Node) [][2]int {
	var spans [][2]int
	count := int(root.ChildCount())
	for i := 0; i < count; i++ {
		child := root.Child(uint(i))
		if child == nil {
			continue
		}
		spans = append(spans, [2]int{int(child.StartByte()), int(child.EndByte())})
	}
	return spans
}

// splitByParagraph is the no-grammar fallback: split on runs of two or more
// newlines.
func splitByParagraph(source []byte) [][2]int {
	var spans [][2]int
	start := 0
	blankRun := 0
	for i, b := range source {
		if b == '\n' {
			blankRun++
			if blankRun >= 2 && i+1 < len(source) {
				spans = append(spans, [2]int{start, i + 1})
				start = i + 1
				blankRun = 0
			}
		} else if b != '\r' {
			blankRun = 0
		}
	}
	if start < len(source) {
		spans = append(spans, [2]int{start, len(source)})
	}
	return spans
}

// enforceMaxChars splits any span whose byte length exceeds maxChars at the
// nearest preceding newline, repeatedly, so no single span grossly exceeds
// the budget in the legacy path.
func enforceMaxChars(source []byte, spans [][2]int, maxChars int) [][2]int {
	var out [][2]int
	for _, sp := range spans {
		start, end := sp[0], sp[1]
		for end-start > maxChars {
			cut := start + maxChars
			nl := lastNewlineBefore(source, cut, start)
			if nl <= start {
				break
			}
			out = append(out, [2]int{start, nl + 1})
			start = nl + 1
		}
		out = append(out, [2]int{start, end})
	}
	return out
}

func lastNewlineBefore(source []byte, upto, floor int) int {
	for i := upto; i > floor; i-- {
		if i < len(source) && source[i] == '\n' {
			return i
		}
	}
	return -1
}

// nonWhitespaceLen counts non-blank bytes in source[start:end].
func nonWhitespaceLen(source []byte, start, end int) int {
	n := 0
	for i := start; i < end && i < len(source); i++ {
		b := source[i]
		if b != ' ' && b != '\t' && b != '\n' && b != '\r' {
			n++
		}
	}
	return n
}

// coalesceSmallSpans merges adjacent spans whose combined non-whitespace
// length stays below coalesce (spec.md §4.2 step 6).
func coalesceSmallSpans(source []byte, spans [][2]int, coalesce int) [][2]int {
	if len(spans) == 0 {
		return spans
	}
	out := [][2]int{spans[0]}
	for _, sp := range spans[1:] {
		last := out[len(out)-1]
		combined := nonWhitespaceLen(source, last[0], sp[1])
		if combined < coalesce {
			out[len(out)-1] = [2]int{last[0], sp[1]}
			continue
		}
		out = append(out, sp)
	}
	return out
}

// mergeOrphanClosers merges a span starting with a bare closing delimiter
// into its predecessor, so `}` or `)` never heads a chunk on its own.
func mergeOrphanClosers(source []byte, spans [][2]int) [][2]int {
	if len(spans) < 2 {
		return spans
	}
	out := [][2]int{spans[0]}
	for _, sp := range spans[1:] {
		text := strings.TrimSpace(string(source[sp[0]:min(sp[1], len(source))]))
		if len(text) > 0 && (text[0] == ')' || text[0] == '}' || text[0] == ']') {
			last := out[len(out)-1]
			out[len(out)-1] = [2]int{last[0], sp[1]}
			continue
		}
		out = append(out, sp)
	}
	return out
}

// toLineSpans converts byte spans to 1-based line ranges, drops empty
// spans, and merges a trailing span smaller than coalesce into its
// predecessor (spec.md §4.2 step 7).
func toLineSpans(source []byte, spans [][2]int, coalesce int) []Span {
	var out []Span
	for _, sp := range spans {
		if sp[1] <= sp[0] {
			continue
		}
		text := string(source[sp[0]:sp[1]])
		if strings.TrimSpace(text) == "" {
			continue
		}
		out = append(out, Span{
			StartLine: 1 + strings.Count(string(source[:sp[0]]), "\n"),
			EndLine:   1 + strings.Count(string(source[:sp[1]-1]), "\n"),
			Text:      text,
		})
	}
	if len(out) >= 2 {
		last := out[len(out)-1]
		if nonWhitespaceCount(last.Text) < coalesce {
			prev := out[len(out)-2]
			out[len(out)-2] = Span{
				StartLine: prev.StartLine,
				EndLine:   last.EndLine,
				Text:      prev.Text + last.Text,
			}
			out = out[:len(out)-1]
		}
	}
	return out
}

func nonWhitespaceCount(s string) int {
	n := 0
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			n++
		}
	}
	return n
}
