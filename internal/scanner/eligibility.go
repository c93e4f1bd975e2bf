package scanner

import (
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// compiledIgnores compiles opt.IgnoreGlobs once; invalid patterns are
// skipped rather than failing the whole scan, matching the permissive
// stance spec.md §4.3 takes toward user-supplied exclude lists.
func compiledIgnores(opt Options) []glob.Glob {
	var out []glob.Glob
	for _, pattern := range opt.IgnoreGlobs {
		if g, err := glob.Compile(pattern, '/'); err == nil {
			out = append(out, g)
		}
	}
	return out
}

// eligible reports whether relPath, with the given size in bytes, passes the
// extension/directory/size filter of spec.md §4.3. relPath must use forward
// slashes.
func eligible(relPath string, size int64, opt Options, ignores []glob.Glob) bool {
	for _, part := range strings.Split(relPath, "/") {
		for _, dir := range opt.ExcludedDirs {
			if part == dir {
				return false
			}
		}
	}

	lower := strings.ToLower(relPath)
	for _, ext := range opt.ExcludedExtensions {
		if strings.HasSuffix(lower, ext) {
			return false
		}
	}

	for _, g := range ignores {
		if g.Match(relPath) || g.Match(relPath+"/**") {
			return false
		}
	}

	if opt.MaxFileBytes > 0 && size > opt.MaxFileBytes {
		return false
	}

	return true
}

// normalizeRelPath converts an OS path separator to the forward slashes
// eligibility and glob matching expect.
func normalizeRelPath(relPath string) string {
	return filepath.ToSlash(relPath)
}
