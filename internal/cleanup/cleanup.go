// Package cleanup enforces the chunk/chunk-file retention policy spec.md
// §4.8 describes, running as a detached background loop whose errors never
// fail a live query. Grounded on the teacher's internal/indexer/eviction.go
// PostIndexEviction: "log a warning, don't fail the caller" wrapping
// cache.EvictStaleBranches, retargeted from branch-cache eviction to
// chunk/chunk-file eviction against internal/vectorstore.
package cleanup

import (
	"context"
	"log"
	"time"
)

// DefaultRetention is spec.md §4.8's default "now - 3 minutes" threshold.
// It is only the zero-value fallback: the first-class, configurable
// threshold is Manager.MaxAge, fed from Config.Cleanup.RetentionMinutes.
const DefaultRetention = 3 * time.Minute

// store is the slice of *vectorstore.Store this package depends on, kept
// narrow so a fake can stand in for it in tests without a live backend.
type store interface {
	CleanupOld(ctx context.Context, lastUsedBefore time.Time, exclusionChunkHashes []string) ([]string, error)
	CleanupOrphanedChunkFiles(ctx context.Context, orphanedHashes []string) (int, error)
}

// Manager runs the cleanup pass against a single vector store. MaxAge is
// the configurable retention threshold (spec.md §9 Open Question: "make
// the threshold a first-class config value, do not guess"); New defaults it
// to DefaultRetention, but a Manager built with a struct literal carries
// whatever MaxAge the caller sets, falling back to DefaultRetention only
// when left at its zero value.
type Manager struct {
	Store  store
	MaxAge time.Duration
}

func New(store store) *Manager {
	return &Manager{Store: store, MaxAge: DefaultRetention}
}

func (m *Manager) maxAge() time.Duration {
	if m.MaxAge <= 0 {
		return DefaultRetention
	}
	return m.MaxAge
}

// Run performs one cleanup pass: delete chunks whose last_used predates
// now-MaxAge and are not in exclusionChunkHashes, then delete any
// ChunkFile placements left pointing at a now-deleted chunk (spec.md §4.8
// "perform the same on ChunkFiles"). It returns counts for observability;
// callers running this in a detached goroutine should not propagate errors
// into request handling.
func (m *Manager) Run(ctx context.Context, exclusionChunkHashes []string) (deletedChunks, deletedChunkFiles int, err error) {
	cutoff := time.Now().Add(-m.maxAge())

	deletedHashes, err := m.Store.CleanupOld(ctx, cutoff, exclusionChunkHashes)
	if err != nil {
		return len(deletedHashes), 0, err
	}
	if len(deletedHashes) == 0 {
		return 0, 0, nil
	}

	n, err := m.Store.CleanupOrphanedChunkFiles(ctx, deletedHashes)
	if err != nil {
		return len(deletedHashes), n, err
	}
	return len(deletedHashes), n, nil
}

// RunDetached loops Run on interval until ctx is cancelled. Every failure is
// logged and swallowed, matching PostIndexEviction's "don't fail indexing if
// eviction fails" idiom: cleanup must never be load-bearing for queries.
func (m *Manager) RunDetached(ctx context.Context, interval time.Duration, exclusions func() []string) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			chunks, chunkFiles, err := m.Run(ctx, exclusions())
			if err != nil {
				log.Printf("cleanup: pass failed, will retry next interval: %v", err)
				continue
			}
			if chunks > 0 || chunkFiles > 0 {
				log.Printf("cleanup: removed %d chunk(s), %d chunk-file(s)", chunks, chunkFiles)
			}
		}
	}
}
