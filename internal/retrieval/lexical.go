package retrieval

import (
	"context"
	"fmt"

	"github.com/mvp-joe/project-cortex/internal/model"
)

// LexicalSearch implements spec.md §4.7's "Alternative lexical path": BM25
// (or LIKE, for short keywords) over ChunkFiles' classes/functions/file/
// file_name helper fields, grouped per search term, then resolved to full
// chunk text.
func (p *Pipeline) LexicalSearch(ctx context.Context, terms []string, kind string, files []string, limit int) (map[string][]model.ChunkResult, error) {
	out := make(map[string][]model.ChunkResult, len(terms))
	for _, term := range terms {
		placements, err := p.Store.KeywordSearch(ctx, term, kind, files, limit)
		if err != nil {
			return nil, fmt.Errorf("retrieval: lexical search %q: %w", term, err)
		}
		out[term] = p.resolveChunkText(ctx, placements)
	}
	return out, nil
}

func (p *Pipeline) resolveChunkText(ctx context.Context, placements []model.ChunkFile) []model.ChunkResult {
	if len(placements) == 0 {
		return nil
	}
	hashes := make([]string, len(placements))
	for i, cf := range placements {
		hashes[i] = cf.ChunkHash
	}
	chunks, err := p.Store.GetByChunkHashes(ctx, hashes, false)
	if err != nil {
		return nil
	}
	textByHash := make(map[string]string, len(chunks))
	for _, c := range chunks {
		textByHash[c.ChunkHash] = c.Text
	}

	out := make([]model.ChunkResult, len(placements))
	for i, cf := range placements {
		out[i] = model.ChunkResult{
			Content: textByHash[cf.ChunkHash],
			SourceDetails: model.ChunkSourceDetails{
				FilePath:  cf.FilePath,
				FileHash:  cf.FileHash,
				StartLine: cf.StartLine,
				EndLine:   cf.EndLine,
			},
		}
	}
	return out
}
