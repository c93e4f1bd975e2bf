package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchFiles_SplitsAtSize(t *testing.T) {
	files := map[string]string{}
	for i := 0; i < 5; i++ {
		files[string(rune('a'+i))] = "hash"
	}
	batches := batchFiles(files, 2)
	require.Len(t, batches, 3)

	total := 0
	for _, b := range batches {
		assert.LessOrEqual(t, len(b), 2)
		total += len(b)
	}
	assert.Equal(t, 5, total)
}

func TestBatchFiles_EmptyInputYieldsNoBatches(t *testing.T) {
	assert.Empty(t, batchFiles(map[string]string{}, 200))
}

func TestBatchFiles_SmallerThanSizeYieldsOneBatch(t *testing.T) {
	files := map[string]string{"a": "1", "b": "2"}
	batches := batchFiles(files, 200)
	require.Len(t, batches, 1)
	assert.Len(t, batches[0], 2)
}
