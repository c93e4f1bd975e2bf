package retrieval

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mvp-joe/project-cortex/internal/tools"
)

// FocusChunk is a synthetic, unpersisted chunk materialized directly from
// disk for one "file_path:start-end" focus reference (spec.md §4.7 stage 1).
type FocusChunk struct {
	FilePath  string
	StartLine int
	EndLine   int
	Text      string
}

// materializeFocusChunks reads each "path:start-end" reference from
// repoRoot. A reference that fails to parse or read is skipped rather than
// failing the whole request: one bad focus reference should not sink
// retrieval.
func materializeFocusChunks(repoRoot string, refs []string) []FocusChunk {
	var out []FocusChunk
	for _, ref := range refs {
		path, start, end, err := parseFocusChunkRef(ref)
		if err != nil {
			continue
		}
		result, err := tools.ReadLines(filepath.Join(repoRoot, path), start, end-start+1)
		if err != nil {
			continue
		}
		out = append(out, FocusChunk{FilePath: path, StartLine: start, EndLine: end, Text: result.Text})
	}
	return out
}

func parseFocusChunkRef(ref string) (path string, start, end int, err error) {
	idx := strings.LastIndex(ref, ":")
	if idx < 0 {
		return "", 0, 0, fmt.Errorf("retrieval: malformed focus chunk %q", ref)
	}
	path, rng := ref[:idx], ref[idx+1:]
	dash := strings.Index(rng, "-")
	if dash < 0 {
		return "", 0, 0, fmt.Errorf("retrieval: malformed focus chunk range %q", ref)
	}
	if start, err = strconv.Atoi(rng[:dash]); err != nil {
		return "", 0, 0, err
	}
	if end, err = strconv.Atoi(rng[dash+1:]); err != nil {
		return "", 0, 0, err
	}
	return path, start, end, nil
}

// candidateFiles narrows req.RepoFiles to focus_files and focus_directories
// when either is set (spec.md §4.7 stage 1); with neither set, every repo
// file is a candidate.
func candidateFiles(req Request) map[string]string {
	if len(req.FocusFiles) == 0 && len(req.FocusDirectories) == 0 {
		return req.RepoFiles
	}
	allowed := make(map[string]string)
	for _, f := range req.FocusFiles {
		if hash, ok := req.RepoFiles[f]; ok {
			allowed[f] = hash
		}
	}
	for path, hash := range req.RepoFiles {
		for _, dir := range req.FocusDirectories {
			if strings.HasPrefix(path, dir) {
				allowed[path] = hash
				break
			}
		}
	}
	return allowed
}

// biasedQuery concatenates focus chunk text after the original query
// (spec.md §4.7 stage 2), pulling BM25 and dense similarity toward the
// caller's current context.
func biasedQuery(query string, focus []FocusChunk) string {
	if len(focus) == 0 {
		return query
	}
	var b strings.Builder
	b.WriteString(query)
	for _, f := range focus {
		b.WriteString("\n")
		b.WriteString(f.Text)
	}
	return b.String()
}
