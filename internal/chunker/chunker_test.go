package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/project-cortex/internal/lang"
)

func TestExtract_UnsupportedLanguageYieldsZeroChunks(t *testing.T) {
	result := Extract([]byte("whatever"), lang.Kotlin, DefaultOptions())

	assert.False(t, result.Supported)
	assert.Empty(t, result.Chunks)
}

func TestExtract_LineRangesNonDecreasing(t *testing.T) {
	source := []byte(`import os

def first():
    return 1


def second():
    return 2
`)
	result := Extract(source, lang.Python, DefaultOptions())
	require.True(t, result.Supported)
	require.NotEmpty(t, result.Chunks)

	lastStart := 0
	for _, c := range result.Chunks {
		assert.GreaterOrEqual(t, c.StartLine, lastStart)
		assert.GreaterOrEqual(t, c.EndLine, c.StartLine)
		lastStart = c.StartLine
	}
}

func TestExtract_ImportCoalescing(t *testing.T) {
	source := []byte(`import os
import sys

def run():
    return os.getcwd()
`)
	result := Extract(source, lang.Python, DefaultOptions())
	require.True(t, result.Supported)
	require.NotEmpty(t, result.Chunks)

	imports := result.Chunks[0]
	assert.True(t, imports.ImportOnlyChunk)
	assert.Contains(t, imports.Text, "import os")
	assert.Contains(t, imports.Text, "import sys")
}

func TestExtract_FunctionAndClassNamesTracked(t *testing.T) {
	source := []byte(`class Widget:
    def render(self):
        return "ok"


def helper():
    return 1
`)
	result := Extract(source, lang.Python, DefaultOptions())
	require.True(t, result.Supported)

	assert.Contains(t, result.AllClasses, "Widget")
	assert.Contains(t, result.AllFunctions, "helper")
}

func TestExtract_DecoratorExpandsChunkUpward(t *testing.T) {
	source := []byte(`@app.route("/x")
def handler():
    return "x"
`)
	result := Extract(source, lang.Python, DefaultOptions())
	require.True(t, result.Supported)
	require.NotEmpty(t, result.Chunks)

	assert.True(t, strings.Contains(result.Chunks[0].Text, "@app.route"))
}

func TestExtract_OversizedTopLevelNodeRecursesIntoChildren(t *testing.T) {
	var b strings.Builder
	b.WriteString("class Big:\n")
	for i := 0; i < 400; i++ {
		b.WriteString("    def m")
		b.WriteString(strings.Repeat("x", 1))
		b.WriteString("() :\n        pass\n")
	}
	source := []byte(b.String())

	opt := Options{MaxChars: 200, Coalesce: 50}
	result := Extract(source, lang.Python, opt)
	require.True(t, result.Supported)

	assert.Greater(t, len(result.Chunks), 1)
}

func TestExtract_HierarchyMetadataForNestedFunction(t *testing.T) {
	var b strings.Builder
	b.WriteString("class Big:\n")
	for i := 0; i < 400; i++ {
		b.WriteString("    def m")
		b.WriteString(strings.Repeat("x", 1))
		b.WriteString("() :\n        pass\n")
	}
	source := []byte(b.String())

	opt := Options{MaxChars: 50, Coalesce: 10}
	result := Extract(source, lang.Python, opt)
	require.True(t, result.Supported)
	require.NotEmpty(t, result.Chunks)

	found := false
	for _, c := range result.Chunks {
		for _, h := range c.Hierarchy {
			if h.Type == "class" && h.Value == "Big" {
				found = true
			}
		}
	}
	assert.True(t, found, "expected at least one chunk to carry the Big class in its hierarchy")
}

func TestChunkCode_LegacyPathSplitsAndCoalesces(t *testing.T) {
	source := []byte("package main\n\nfunc a() {}\n\nfunc b() {}\n")

	spans := ChunkCode(source, 2000, 200, lang.Go)
	require.NotEmpty(t, spans)

	for _, s := range spans {
		assert.GreaterOrEqual(t, s.EndLine, s.StartLine)
		assert.NotEmpty(t, s.Text)
	}
}

func TestChunkCode_NoGrammarFallsBackToParagraphSplit(t *testing.T) {
	source := []byte("line one\nline two\n\nline three\nline four\n")

	spans := ChunkCode(source, 2000, 5, lang.Kotlin)
	require.NotEmpty(t, spans)
}
