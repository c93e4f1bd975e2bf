// Package scanner produces file_path → content_hash for all eligible files
// in a repository and diffs that state against what is already persisted
// (spec.md §4.3). It replaces the teacher's single filesystem-walk
// FileDiscovery with two backends: a VCS-backed one that reuses blob hashes
// for unmodified tracked files, and a plain filesystem walk for repositories
// with no VCS.
package scanner

// DefaultExcludedDirs are directory names skipped outright during a walk,
// grounded on internal/indexer/discovery.go's ignore-pattern defaults.
var DefaultExcludedDirs = []string{
	".git", ".cortex", "node_modules", "dist", "build", "__pycache__",
	"venv", ".venv", "target", "vendor", ".idea", ".vscode",
}

// DefaultExcludedExtensions are file extensions never chunkable regardless
// of size: locks, minified bundles, images, archives, compiled artifacts.
var DefaultExcludedExtensions = []string{
	".lock", ".min.js", ".min.css",
	".png", ".jpg", ".jpeg", ".gif", ".bmp", ".ico", ".svg", ".webp",
	".zip", ".tar", ".gz", ".tgz", ".7z", ".rar",
	".exe", ".dll", ".so", ".dylib", ".o", ".a", ".class", ".jar", ".pyc",
	".woff", ".woff2", ".ttf", ".eot",
	".pdf", ".mp4", ".mp3", ".mov",
}

// Options configures the eligibility filter shared by both backends.
type Options struct {
	ExcludedDirs       []string
	ExcludedExtensions []string
	// IgnoreGlobs are additional user-configured exclude patterns, compiled
	// with gobwas/glob the same way internal/indexer/discovery.go compiles
	// its ignore list.
	IgnoreGlobs []string
	// MaxFileBytes caps eligible file size; spec.md §4.3 default is 200 KiB
	// for the streaming search path, larger for indexing.
	MaxFileBytes int64
}

// DefaultOptions matches spec.md §4.3's indexing-path defaults.
func DefaultOptions() Options {
	return Options{
		ExcludedDirs:       DefaultExcludedDirs,
		ExcludedExtensions: DefaultExcludedExtensions,
		MaxFileBytes:       2 << 20, // 2 MiB indexing cap
	}
}

// StreamingOptions matches the tighter 200 KiB cap spec.md §4.3 names for
// the streaming search path (internal/tools' file reader and grep wrapper).
func StreamingOptions() Options {
	opt := DefaultOptions()
	opt.MaxFileBytes = 200 << 10
	return opt
}

// RepoState is the result of one scan: relative file path → content hash.
type RepoState map[string]string
