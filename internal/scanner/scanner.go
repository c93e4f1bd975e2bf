package scanner

// Scanner produces file_path → content_hash for a repository root,
// transparently choosing the VCS-backed backend when root is a git working
// tree and falling back to a plain filesystem walk otherwise (spec.md
// §4.3's "Two backends").
type Scanner struct {
	Root    string
	Options Options
}

// New returns a Scanner with the given root and the indexing-path defaults.
func New(root string) *Scanner {
	return &Scanner{Root: root, Options: DefaultOptions()}
}

// Scan produces the current repo state.
func (s *Scanner) Scan() (RepoState, error) {
	if repo, ok := DetectVCS(s.Root); ok {
		return WalkVCS(s.Root, repo, s.Options)
	}
	return WalkRepo(s.Root, s.Options)
}
