package scanner

import "github.com/mvp-joe/project-cortex/internal/model"

// Diff compares the current repoState to persisted FileRecords and reports
// which files are new, changed, or gone, per spec.md §4.3: "output
// (to_insert, to_update, to_delete) by set operations on file_path plus hash
// inequality." Grounded on internal/indexer/change_detector.go's
// DetectChanges, minus its mtime fast path (the scanner here always has a
// freshly computed hash, so there is no mtime to short-circuit on).
func Diff(repoState RepoState, dbState []model.FileRecord) (toInsert, toUpdate, toDelete []string) {
	dbHash := make(map[string]string, len(dbState))
	for _, rec := range dbState {
		dbHash[rec.FilePath] = rec.FileHash
	}

	for path, hash := range repoState {
		oldHash, known := dbHash[path]
		switch {
		case !known:
			toInsert = append(toInsert, path)
		case oldHash != hash:
			toUpdate = append(toUpdate, path)
		}
	}

	for _, rec := range dbState {
		if _, stillPresent := repoState[rec.FilePath]; !stillPresent {
			toDelete = append(toDelete, rec.FilePath)
		}
	}

	return toInsert, toUpdate, toDelete
}
