package sync

import "github.com/mvp-joe/project-cortex/internal/model"

// partitionFiles implements spec.md §4.6 step 2. validPlacements holds every
// ChunkFile whose (file_path, file_hash) still matches the on-disk hash;
// hasVector reports, per chunk_hash, whether the store already holds an
// embedding for that chunk (resolved by the caller via GetByChunkHashes).
func partitionFiles(files map[string]string, validPlacements []model.ChunkFile, hasVector map[string]bool) partition {
	byFile := make(map[string][]model.ChunkFile, len(files))
	for _, cf := range validPlacements {
		byFile[cf.FilePath] = append(byFile[cf.FilePath], cf)
	}

	p := partition{
		reEmbed:  map[string]string{},
		newFiles: map[string]string{},
	}

	for path, hash := range files {
		all, hasRecord := byFile[path]
		placements := all[:0]
		for _, cf := range all {
			if cf.FileHash == hash {
				placements = append(placements, cf)
			}
		}
		if !hasRecord || len(placements) == 0 {
			p.newFiles[path] = hash
			continue
		}
		if allVectored(placements, hasVector) {
			p.reuse = append(p.reuse, placements...)
		} else {
			p.reEmbed[path] = hash
		}
	}
	return p
}

// allVectored is spec.md §4.6's reuse condition: "every retrieved chunk has
// a vector."
func allVectored(placements []model.ChunkFile, hasVector map[string]bool) bool {
	for _, cf := range placements {
		if !hasVector[cf.ChunkHash] {
			return false
		}
	}
	return true
}
