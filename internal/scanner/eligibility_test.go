package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEligible_ExcludesDirAndExtension(t *testing.T) {
	opt := DefaultOptions()
	ignores := compiledIgnores(opt)

	assert.False(t, eligible("node_modules/left-pad/index.js", 10, opt, ignores))
	assert.False(t, eligible("src/main.min.js", 10, opt, ignores))
	assert.False(t, eligible("assets/logo.png", 10, opt, ignores))
	assert.True(t, eligible("src/main.go", 10, opt, ignores))
}

func TestEligible_SizeCap(t *testing.T) {
	opt := DefaultOptions()
	opt.MaxFileBytes = 100
	ignores := compiledIgnores(opt)

	assert.True(t, eligible("src/small.go", 50, opt, ignores))
	assert.False(t, eligible("src/big.go", 5000, opt, ignores))
}

func TestEligible_CustomIgnoreGlob(t *testing.T) {
	opt := DefaultOptions()
	opt.IgnoreGlobs = []string{"**/testdata/**"}
	ignores := compiledIgnores(opt)

	assert.False(t, eligible("pkg/testdata/fixture.go", 10, opt, ignores))
	assert.True(t, eligible("pkg/real.go", 10, opt, ignores))
}
