package tools

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, lines int) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	var b strings.Builder
	for i := 1; i <= lines; i++ {
		b.WriteString("line ")
		b.WriteString(string(rune('0' + i%10)))
		b.WriteString("\n")
	}
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func TestReadLines_ReturnsRequestedPage(t *testing.T) {
	path := writeTempFile(t, 250)
	result, err := ReadLines(path, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, result.StartLine)
	assert.Equal(t, 100, result.EndLine)
	assert.False(t, result.EOFReached)
}

func TestReadLines_ReachesEOFOnFinalPage(t *testing.T) {
	path := writeTempFile(t, 50)
	result, err := ReadLines(path, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 50, result.EndLine)
	assert.True(t, result.EOFReached)
}

func TestReadLines_PastEndOfFileReportsEOF(t *testing.T) {
	path := writeTempFile(t, 10)
	result, err := ReadLines(path, 50, 100)
	require.NoError(t, err)
	assert.True(t, result.EOFReached)
	assert.Empty(t, result.Text)
}

func TestReadLines_DefaultsMaxLines(t *testing.T) {
	path := writeTempFile(t, 500)
	result, err := ReadLines(path, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxLines, result.EndLine-result.StartLine+1)
}

func TestExtractLines_ClampsToSliceBounds(t *testing.T) {
	lines := []string{"a", "b", "c"}
	assert.Equal(t, "b\nc", ExtractLines(lines, 2, 10))
	assert.Equal(t, "", ExtractLines(lines, 0, 2))
}
