package scanner

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
)

// WalkRepo is the non-VCS backend (spec.md §4.3): a ripgrep-style directory
// walk honoring the same exclude rules as the VCS backend, content-hashing
// every eligible file. Grounded on
// internal/indexer/discovery.go's FileDiscovery.DiscoverFiles.
func WalkRepo(root string, opt Options) (RepoState, error) {
	ignores := compiledIgnores(opt)
	state := RepoState{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		if relPath == "." {
			return nil
		}
		relPath = normalizeRelPath(relPath)

		if d.IsDir() {
			for _, dir := range opt.ExcludedDirs {
				if d.Name() == dir {
					return filepath.SkipDir
				}
			}
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			return infoErr
		}
		if !eligible(relPath, info.Size(), opt, ignores) {
			return nil
		}

		hash, hashErr := hashFile(path)
		if hashErr != nil {
			return nil // unreadable file: skip rather than fail the whole walk
		}
		state[relPath] = hash
		return nil
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

func hashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
