package tools

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupAndTruncate_MergesAdjacentLines(t *testing.T) {
	hits := []rawHit{
		{Path: "a.go", Line: 10, Text: "one"},
		{Path: "a.go", Line: 11, Text: "two"},
		{Path: "a.go", Line: 12, Text: "three"},
	}
	groups := groupAndTruncate(hits)
	require.Len(t, groups, 1)
	assert.Equal(t, 10, groups[0].StartLine)
	assert.Equal(t, 12, groups[0].EndLine)
}

func TestGroupAndTruncate_SplitsNonAdjacentLines(t *testing.T) {
	hits := []rawHit{
		{Path: "a.go", Line: 1, Text: "one"},
		{Path: "a.go", Line: 50, Text: "two"},
	}
	groups := groupAndTruncate(hits)
	require.Len(t, groups, 2)
}

func TestGroupAndTruncate_SplitsAcrossFiles(t *testing.T) {
	hits := []rawHit{
		{Path: "a.go", Line: 1, Text: "one"},
		{Path: "b.go", Line: 1, Text: "two"},
	}
	groups := groupAndTruncate(hits)
	require.Len(t, groups, 2)
	assert.Equal(t, "a.go", groups[0].Path)
	assert.Equal(t, "b.go", groups[1].Path)
}

func TestGroupAndTruncate_CapsAtMaxMatchGroups(t *testing.T) {
	var hits []rawHit
	for i := 0; i < maxMatchGroups+20; i++ {
		hits = append(hits, rawHit{Path: "a.go", Line: i * 10, Text: "x"})
	}
	groups := groupAndTruncate(hits)
	assert.LessOrEqual(t, len(groups), maxMatchGroups)
}

func TestTruncate_ShortStringUnchanged(t *testing.T) {
	assert.Equal(t, "short", truncate("short"))
}

func TestTruncate_LongStringTruncatedHeadAndTail(t *testing.T) {
	s := strings.Repeat("a", 1000)
	got := truncate(s)
	assert.Less(t, len(got), len(s))
	assert.Contains(t, got, "...")
}
