package vectorstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointID_Deterministic(t *testing.T) {
	a := pointIDString("chunk-hash-abc")
	b := pointIDString("chunk-hash-abc")
	assert.Equal(t, a, b)
}

func TestPointID_DistinctInputsDiffer(t *testing.T) {
	a := pointIDString("chunk-hash-abc")
	b := pointIDString("chunk-hash-xyz")
	assert.NotEqual(t, a, b)
}

func TestPointID_IsWellFormedUUID(t *testing.T) {
	s := pointIDString("some-id5-value")
	assert.Len(t, s, 36)
	assert.Equal(t, byte('-'), s[8])
	assert.Equal(t, byte('-'), s[13])
	assert.Equal(t, byte('-'), s[18])
	assert.Equal(t, byte('-'), s[23])
}
