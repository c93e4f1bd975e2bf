package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mvp-joe/project-cortex/internal/model"
)

func TestCanonicalText_IncludesFilePathAndRawText(t *testing.T) {
	text := canonicalText("internal/foo/bar.go", nil, "func Foo() {}")
	assert.Contains(t, text, "file_path: internal/foo/bar.go")
	assert.Contains(t, text, "func Foo() {}")
}

func TestCanonicalText_IncludesHierarchyWhenPresent(t *testing.T) {
	hierarchy := []model.HierarchyNode{
		{Type: "class", Value: "Widget"},
		{Type: "function", Value: "Render"},
	}
	text := canonicalText("a.go", hierarchy, "body")
	assert.Contains(t, text, "hierarchy: class:Widget > function:Render")
}

func TestCanonicalText_IsDeterministic(t *testing.T) {
	a := canonicalText("a.go", nil, "x")
	b := canonicalText("a.go", nil, "x")
	assert.Equal(t, a, b)
	assert.Equal(t, model.ContentHash(a), model.ContentHash(b))
}

func TestCanonicalText_DiffersOnHierarchyChange(t *testing.T) {
	a := canonicalText("a.go", []model.HierarchyNode{{Type: "class", Value: "A"}}, "x")
	b := canonicalText("a.go", []model.HierarchyNode{{Type: "class", Value: "B"}}, "x")
	assert.NotEqual(t, a, b)
}
