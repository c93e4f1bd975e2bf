// Package usage implements the session/usage clock (spec.md §4.9): a
// per-repo, per-day usage hash that is bumped on every query and feeds the
// cleanup subsystem's exclusion set via reference crawl. A short-TTL cache
// absorbs per-repo listing bursts, grounded on the teacher's
// internal/graph/searcher.go otter.MustBuilder cache construction.
package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/maypok86/otter"

	"github.com/mvp-joe/project-cortex/internal/model"
)

// ListingTTL is spec.md §5's "usage cache (TTL 10s)" for per-repo chunk and
// file listings.
const ListingTTL = 10 * time.Second

// dayBucket truncates now to a coarse string, e.g. "2026-07-29", so usage
// hashes naturally roll over once per day.
func dayBucket(now time.Time) string {
	return now.UTC().Format("2006-01-02")
}

// Hash computes usage_hash = stable_hash({repo_path, day_bucket(now)})
// (spec.md §4.9).
func Hash(repoPath string, now time.Time) string {
	return model.StableID(repoPath, dayBucket(now))
}

// store is the slice of *vectorstore.Store this package depends on.
type store interface {
	GetUsage(ctx context.Context, usageHash string) (model.UsageRecord, bool, error)
	UpsertUsage(ctx context.Context, record model.UsageRecord) error
}

// Clock checks or creates the current usage row on every query and memoizes
// per-repo listings for ListingTTL to absorb retrieval bursts.
type Clock struct {
	Store    store
	listings otter.Cache[string, []string]
}

// New builds a Clock with a weight-bounded, TTL-expiring listing cache
// (capacity in entries, not bytes — listings are small path lists).
func New(store store) (*Clock, error) {
	cache, err := otter.MustBuilder[string, []string](10_000).
		WithTTL(ListingTTL).
		CollectStats().
		Build()
	if err != nil {
		return nil, fmt.Errorf("usage: build listing cache: %w", err)
	}
	return &Clock{Store: store, listings: cache}, nil
}

// Touch checks whether the current day's usage hash exists for repoPath; if
// so it bumps last_usage_timestamp, otherwise it creates the row. When
// references is non-empty they are appended so cleanup can recover chunks
// by reference crawl (spec.md §4.9).
func (c *Clock) Touch(ctx context.Context, repoPath string, now time.Time, references []string) (string, error) {
	hash := Hash(repoPath, now)

	existing, ok, err := c.Store.GetUsage(ctx, hash)
	if err != nil {
		return hash, fmt.Errorf("usage: read existing record: %w", err)
	}

	record := model.UsageRecord{UsageHash: hash, LastUsageTime: now}
	if ok {
		record.References = mergeReferences(existing.References, references)
	} else {
		record.References = references
	}

	if err := c.Store.UpsertUsage(ctx, record); err != nil {
		return hash, fmt.Errorf("usage: upsert record: %w", err)
	}
	return hash, nil
}

func mergeReferences(existing, fresh []string) []string {
	if len(fresh) == 0 {
		return existing
	}
	seen := make(map[string]bool, len(existing)+len(fresh))
	out := make([]string, 0, len(existing)+len(fresh))
	for _, r := range append(append([]string{}, existing...), fresh...) {
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

// ListingKey namespaces a cached listing by repo and kind (e.g. "files",
// "chunks").
func ListingKey(repoPath, kind string) string {
	return repoPath + "\x1f" + kind
}

// CachedListing returns a memoized listing if present and not yet expired.
func (c *Clock) CachedListing(key string) ([]string, bool) {
	return c.listings.Get(key)
}

// SetListing memoizes a listing for ListingTTL.
func (c *Clock) SetListing(key string, listing []string) {
	c.listings.Set(key, listing)
}

// Close releases the listing cache's background resources.
func (c *Clock) Close() {
	c.listings.Close()
}
