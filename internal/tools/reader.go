// Package tools holds the ancillary operations the retrieval pipeline and
// its callers lean on directly: an iterative file reader, a ripgrep
// wrapper, and a keyword-search passthrough (spec.md §4.11, SPEC_FULL.md
// §4.11). Grounded on internal/indexer/parsers/treesitter.go's extractLines
// for the line-slicing idiom and internal/pattern's command/executor split
// for the external-process wrapper.
package tools

import (
	"fmt"
	"os"
	"strings"
)

// DefaultMaxLines is the iterative file reader's line-range cap.
const DefaultMaxLines = 100

// ReadResult is one page of a file read.
type ReadResult struct {
	Path       string
	StartLine  int
	EndLine    int
	Text       string
	EOFReached bool
}

// ReadLines reads [startLine, startLine+maxLines) (1-indexed, inclusive) from
// path, capping the page at maxLines and reporting whether the file ended
// within the requested range (spec.md §4.11's max_lines + EOFReached).
func ReadLines(path string, startLine, maxLines int) (ReadResult, error) {
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	if startLine < 1 {
		startLine = 1
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ReadResult{}, fmt.Errorf("read %s: %w", path, err)
	}
	// A trailing newline ends the last line; it does not start an empty one.
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")

	if startLine > len(lines) {
		return ReadResult{Path: path, StartLine: startLine, EndLine: startLine - 1, EOFReached: true}, nil
	}

	endLine := startLine + maxLines - 1
	eof := false
	if endLine >= len(lines) {
		endLine = len(lines)
		eof = true
	}

	return ReadResult{
		Path:       path,
		StartLine:  startLine,
		EndLine:    endLine,
		Text:       ExtractLines(lines, startLine, endLine),
		EOFReached: eof,
	}, nil
}

// ExtractLines joins lines[startLine-1:endLine] (1-indexed, inclusive),
// clamped to the slice bounds. Grounded on
// internal/indexer/parsers/treesitter.go's extractLines.
func ExtractLines(lines []string, startLine, endLine int) string {
	if startLine < 1 || endLine < 1 || startLine > len(lines) {
		return ""
	}
	start := startLine - 1
	end := endLine
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start:end], "\n")
}
