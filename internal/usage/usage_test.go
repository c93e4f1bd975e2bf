package usage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/project-cortex/internal/model"
)

type fakeUsageStore struct {
	records map[string]model.UsageRecord
}

func newFakeUsageStore() *fakeUsageStore {
	return &fakeUsageStore{records: map[string]model.UsageRecord{}}
}

func (f *fakeUsageStore) GetUsage(ctx context.Context, usageHash string) (model.UsageRecord, bool, error) {
	r, ok := f.records[usageHash]
	return r, ok, nil
}

func (f *fakeUsageStore) UpsertUsage(ctx context.Context, record model.UsageRecord) error {
	f.records[record.UsageHash] = record
	return nil
}

func TestHash_DeterministicForSameRepoAndDay(t *testing.T) {
	now := time.Date(2026, 7, 29, 10, 0, 0, 0, time.UTC)
	a := Hash("/repo", now)
	b := Hash("/repo", now)
	assert.Equal(t, a, b)
}

func TestHash_DiffersAcrossDayBoundary(t *testing.T) {
	d1 := time.Date(2026, 7, 29, 23, 59, 0, 0, time.UTC)
	d2 := time.Date(2026, 7, 30, 0, 1, 0, 0, time.UTC)
	assert.NotEqual(t, Hash("/repo", d1), Hash("/repo", d2))
}

func TestHash_DiffersAcrossRepos(t *testing.T) {
	now := time.Date(2026, 7, 29, 10, 0, 0, 0, time.UTC)
	assert.NotEqual(t, Hash("/repo-a", now), Hash("/repo-b", now))
}

func TestTouch_CreatesRecordWhenAbsent(t *testing.T) {
	fs := newFakeUsageStore()
	clock, err := New(fs)
	require.NoError(t, err)
	defer clock.Close()

	now := time.Date(2026, 7, 29, 10, 0, 0, 0, time.UTC)
	hash, err := clock.Touch(context.Background(), "/repo", now, []string{"h1"})
	require.NoError(t, err)

	stored := fs.records[hash]
	assert.Equal(t, []string{"h1"}, stored.References)
}

func TestTouch_BumpsTimestampAndMergesReferences(t *testing.T) {
	fs := newFakeUsageStore()
	clock, err := New(fs)
	require.NoError(t, err)
	defer clock.Close()

	first := time.Date(2026, 7, 29, 10, 0, 0, 0, time.UTC)
	hash, err := clock.Touch(context.Background(), "/repo", first, []string{"h1"})
	require.NoError(t, err)

	second := first.Add(time.Hour)
	_, err = clock.Touch(context.Background(), "/repo", second, []string{"h2"})
	require.NoError(t, err)

	stored := fs.records[hash]
	assert.ElementsMatch(t, []string{"h1", "h2"}, stored.References)
	assert.Equal(t, second.Unix(), stored.LastUsageTime.Unix())
}

func TestMergeReferences_DeduplicatesAcrossCalls(t *testing.T) {
	out := mergeReferences([]string{"a", "b"}, []string{"b", "c"})
	assert.ElementsMatch(t, []string{"a", "b", "c"}, out)
}

func TestListingCache_SetThenGetWithinTTL(t *testing.T) {
	fs := newFakeUsageStore()
	clock, err := New(fs)
	require.NoError(t, err)
	defer clock.Close()

	key := ListingKey("/repo", "files")
	clock.SetListing(key, []string{"a.go", "b.go"})

	got, ok := clock.CachedListing(key)
	require.True(t, ok)
	assert.Equal(t, []string{"a.go", "b.go"}, got)
}

func TestListingCache_MissForUnknownKey(t *testing.T) {
	fs := newFakeUsageStore()
	clock, err := New(fs)
	require.NoError(t, err)
	defer clock.Close()

	_, ok := clock.CachedListing(ListingKey("/repo", "unknown"))
	assert.False(t, ok)
}
