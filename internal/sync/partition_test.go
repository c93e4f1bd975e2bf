package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mvp-joe/project-cortex/internal/model"
)

func TestPartitionFiles_NewFileWithNoRecord(t *testing.T) {
	files := map[string]string{"a.go": "hash-a"}
	p := partitionFiles(files, nil, nil)
	assert.Equal(t, map[string]string{"a.go": "hash-a"}, p.newFiles)
	assert.Empty(t, p.reEmbed)
	assert.Empty(t, p.reuse)
}

func TestPartitionFiles_ReuseWhenAllChunksVectored(t *testing.T) {
	files := map[string]string{"a.go": "hash-a"}
	placements := []model.ChunkFile{
		{FilePath: "a.go", FileHash: "hash-a", ChunkHash: "c1"},
		{FilePath: "a.go", FileHash: "hash-a", ChunkHash: "c2"},
	}
	hasVector := map[string]bool{"c1": true, "c2": true}
	p := partitionFiles(files, placements, hasVector)
	assert.Len(t, p.reuse, 2)
	assert.Empty(t, p.newFiles)
	assert.Empty(t, p.reEmbed)
}

func TestPartitionFiles_ReEmbedWhenSomeChunkMissingVector(t *testing.T) {
	files := map[string]string{"a.go": "hash-a"}
	placements := []model.ChunkFile{
		{FilePath: "a.go", FileHash: "hash-a", ChunkHash: "c1"},
		{FilePath: "a.go", FileHash: "hash-a", ChunkHash: "c2"},
	}
	hasVector := map[string]bool{"c1": true, "c2": false}
	p := partitionFiles(files, placements, hasVector)
	assert.Empty(t, p.reuse)
	assert.Equal(t, map[string]string{"a.go": "hash-a"}, p.reEmbed)
}

func TestPartitionFiles_FileWithDifferentHashIsNew(t *testing.T) {
	files := map[string]string{"a.go": "hash-new"}
	placements := []model.ChunkFile{
		{FilePath: "a.go", FileHash: "hash-old", ChunkHash: "c1"},
	}
	p := partitionFiles(files, placements, map[string]bool{"c1": true})
	assert.Equal(t, map[string]string{"a.go": "hash-new"}, p.newFiles)
}
