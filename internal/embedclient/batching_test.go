package embedclient

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackBatches_FillsUnderBudget(t *testing.T) {
	texts := []string{"hello", "world", "foo", "bar"}
	batches := PackBatches(texts, 1000)

	assert.Len(t, batches, 1)
	assert.Equal(t, texts, batches[0])
}

func TestPackBatches_SplitsAtBudget(t *testing.T) {
	big := strings.Repeat("x", 4000) // ~1000 tokens
	texts := []string{big, big, big}

	batches := PackBatches(texts, 1000)

	assert.Len(t, batches, 3)
}

func TestPackBatches_OversizedTextGetsOwnBatch(t *testing.T) {
	huge := strings.Repeat("x", 100000)
	texts := []string{"small", huge, "small2"}

	batches := PackBatches(texts, 100)

	var foundSolo bool
	for _, b := range batches {
		if len(b) == 1 && b[0] == huge {
			foundSolo = true
		}
	}
	assert.True(t, foundSolo)

	oversized := OversizedBatches(batches, 100)
	assert.NotEmpty(t, oversized)
}

func TestPackBatches_EmptyInput(t *testing.T) {
	assert.Nil(t, PackBatches(nil, 1000))
}
