package tools

import (
	"context"

	"github.com/mvp-joe/project-cortex/internal/model"
	"github.com/mvp-joe/project-cortex/internal/vectorstore"
)

// KeywordSearch is a thin wrapper over vectorstore.Store.KeywordSearch
// (spec.md §4.11).
func KeywordSearch(ctx context.Context, store *vectorstore.Store, keyword, kind string, files []string, limit int) ([]model.ChunkFile, error) {
	return store.KeywordSearch(ctx, keyword, kind, files, limit)
}
