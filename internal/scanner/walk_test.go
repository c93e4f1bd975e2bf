package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWalkRepo_HashesEligibleFilesOnly(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "node_modules", "lib.js"), []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "bundle.min.js"), []byte("ignored"), 0o644))

	state, err := WalkRepo(root, DefaultOptions())
	require.NoError(t, err)

	require.Contains(t, state, "main.go")
	require.NotContains(t, state, "node_modules/lib.js")
	require.NotContains(t, state, "bundle.min.js")
}

func TestWalkRepo_SameContentSameHash(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.go"), []byte("package main\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.go"), []byte("package main\n"), 0o644))

	state, err := WalkRepo(root, DefaultOptions())
	require.NoError(t, err)

	require.Equal(t, state["a.go"], state["b.go"])
}
