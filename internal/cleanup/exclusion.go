// Package cleanup: ExclusionSet tracks chunk hashes a live query currently
// has in view, so a concurrently running RunDetached pass never deletes a
// chunk out from under that query (spec.md §4.8's "exclusion set passed by
// the live query").
package cleanup

import "sync"

// ExclusionSet is a concurrency-safe accumulator of chunk hashes touched by
// in-flight reads. Add is called by the query command (cmd/cortex-retrieve)
// with each retrieval result's TouchedChunkHashes; Snapshot feeds
// Manager.RunDetached's exclusions callback.
type ExclusionSet struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewExclusionSet returns an empty set ready to use.
func NewExclusionSet() *ExclusionSet {
	return &ExclusionSet{seen: make(map[string]struct{})}
}

// Add records hashes as currently in view.
func (e *ExclusionSet) Add(hashes []string) {
	if len(hashes) == 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, h := range hashes {
		e.seen[h] = struct{}{}
	}
}

// Snapshot returns every hash recorded so far, safe to pass directly as a
// Manager.Run/RunDetached exclusion list.
func (e *ExclusionSet) Snapshot() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.seen))
	for h := range e.seen {
		out = append(out, h)
	}
	return out
}
