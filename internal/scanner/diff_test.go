package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mvp-joe/project-cortex/internal/model"
)

func TestDiff_InsertUpdateDelete(t *testing.T) {
	repoState := RepoState{
		"a.go": "hash-a-new",
		"b.go": "hash-b",
		"c.go": "hash-c",
	}
	dbState := []model.FileRecord{
		{FilePath: "a.go", FileHash: "hash-a-old"},
		{FilePath: "b.go", FileHash: "hash-b"},
		{FilePath: "d.go", FileHash: "hash-d"},
	}

	toInsert, toUpdate, toDelete := Diff(repoState, dbState)

	assert.ElementsMatch(t, []string{"c.go"}, toInsert)
	assert.ElementsMatch(t, []string{"a.go"}, toUpdate)
	assert.ElementsMatch(t, []string{"d.go"}, toDelete)
}

func TestDiff_EmptyDBInsertsEverything(t *testing.T) {
	repoState := RepoState{"a.go": "h1", "b.go": "h2"}

	toInsert, toUpdate, toDelete := Diff(repoState, nil)

	assert.ElementsMatch(t, []string{"a.go", "b.go"}, toInsert)
	assert.Empty(t, toUpdate)
	assert.Empty(t, toDelete)
}

func TestDiff_EmptyRepoDeletesEverything(t *testing.T) {
	dbState := []model.FileRecord{
		{FilePath: "a.go", FileHash: "h1"},
	}

	toInsert, toUpdate, toDelete := Diff(RepoState{}, dbState)

	assert.Empty(t, toInsert)
	assert.Empty(t, toUpdate)
	assert.ElementsMatch(t, []string{"a.go"}, toDelete)
}
