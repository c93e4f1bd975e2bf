package scanner

import (
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// DetectVCS reports whether root is (inside) a git working tree, per
// spec.md §4.3's "when a version-control repository is detected" branch.
func DetectVCS(root string) (*git.Repository, bool) {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, false
	}
	return repo, true
}

// WalkVCS enumerates tracked files as of HEAD and keeps the git blob hash
// (the full hex object id) for every tracked file whose working-tree content
// still hashes to that blob. Tracked files modified on disk and files present
// on disk but untracked get a content hash instead. Both are found by walking
// the working tree on top of the VCS listing, which covers the blob-hash
// reuse of spec.md §4.3 without needing a working-tree diff API.
func WalkVCS(root string, repo *git.Repository, opt Options) (RepoState, error) {
	ignores := compiledIgnores(opt)
	state := RepoState{}
	tracked := map[string]bool{}

	head, err := repo.Head()
	if err == nil {
		commit, cErr := repo.CommitObject(head.Hash())
		if cErr == nil {
			tree, tErr := commit.Tree()
			if tErr == nil {
				walkErr := tree.Files().ForEach(func(f *object.File) error {
					relPath := normalizeRelPath(f.Name)
					tracked[relPath] = true
					if !eligible(relPath, f.Size, opt, ignores) {
						return nil
					}
					state[relPath] = gitBlobHash(f)
					return nil
				})
				if walkErr != nil {
					return nil, walkErr
				}
			}
		}
	}

	// Pick up untracked-but-present files (new files not yet committed) and
	// tracked files modified since HEAD by walking the working tree: a
	// tracked file keeps its blob hash only while its current content still
	// hashes to that blob; anything else takes the content hash.
	fsState, err := WalkRepo(root, opt)
	if err != nil {
		return nil, err
	}
	for path, hash := range fsState {
		if blobHash, ok := state[path]; ok && tracked[path] {
			data, readErr := os.ReadFile(filepath.Join(root, filepath.FromSlash(path)))
			if readErr == nil && plumbing.ComputeHash(plumbing.BlobObject, data).String() == blobHash {
				continue
			}
		}
		state[path] = hash
	}

	return state, nil
}

// gitBlobHash returns the blob's content hash. go-git exposes the object
// hash (a SHA-1 over "blob <size>\0<content>", not a plain sha256 of
// content), which is stable across unmodified commits and is exactly the
// "VCS blob hash" spec.md §4.3 asks the VCS backend to reuse in place of
// recomputing a content hash.
func gitBlobHash(f *object.File) string {
	return f.Blob.Hash.String()
}
