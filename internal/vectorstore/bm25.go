package vectorstore

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/mvp-joe/project-cortex/internal/model"
)

// buildBleveMapping mirrors the teacher's exact_searcher.go mapping, scoped
// to the helper fields keyword_search operates over (spec.md §4.5): the
// ChunkFile's classes/functions/searchable_file_path/searchable_file_name.
func buildBleveMapping() *mapping.IndexMappingImpl {
	keyword := bleve.NewTextFieldMapping()
	keyword.Analyzer = "keyword"
	keyword.Store = true
	keyword.Index = true

	standard := bleve.NewTextFieldMapping()
	standard.Analyzer = "standard"
	standard.Store = true
	standard.Index = true

	stored := bleve.NewTextFieldMapping()
	stored.Analyzer = "keyword"
	stored.Store = true
	stored.Index = false

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("id", stored)
	doc.AddFieldMappingsAt("classes", keyword)
	doc.AddFieldMappingsAt("functions", keyword)
	doc.AddFieldMappingsAt("searchable_file_path", standard)
	doc.AddFieldMappingsAt("searchable_file_name", standard)
	doc.AddFieldMappingsAt("entities", standard)
	doc.AddFieldMappingsAt("text", standard)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = doc
	return indexMapping
}

// keywordSearchField maps spec.md §4.5's type enum to the bleve field it
// searches.
func keywordSearchField(kind string) string {
	switch kind {
	case "class":
		return "classes"
	case "function":
		return "functions"
	case "file":
		return "searchable_file_path"
	default:
		return "searchable_file_path"
	}
}

// bm25Search runs keyword_search's BM25 branch (|keyword| >= 3), restricting
// to the given field and optional file set.
func (s *Store) bm25Search(keyword, field string, files []string, limit int) ([]string, error) {
	var q = bleve.NewMatchQuery(keyword)
	q.SetField(field)

	finalQuery := bleve.Query(q)
	if len(files) > 0 {
		fileQueries := make([]bleve.Query, 0, len(files))
		for _, f := range files {
			wq := bleve.NewTermQuery(f)
			wq.SetField("searchable_file_path")
			fileQueries = append(fileQueries, wq)
		}
		finalQuery = bleve.NewConjunctionQuery(q, bleve.NewDisjunctionQuery(fileQueries...))
	}

	req := bleve.NewSearchRequestOptions(finalQuery, limit, 0, false)
	req.Fields = []string{"id"}

	result, err := s.bm25.Search(req)
	if err != nil {
		return nil, fmt.Errorf("%w: bm25 search: %v", model.ErrBackendUnavailable, err)
	}

	ids := make([]string, 0, len(result.Hits))
	for _, hit := range result.Hits {
		if id, ok := hit.Fields["id"].(string); ok {
			ids = append(ids, id)
		} else {
			ids = append(ids, hit.ID)
		}
	}
	return ids, nil
}

// bm25ScoreOverText scores each candidate chunk's text against query using an
// ephemeral in-memory bleve index, grounded on the same BM25 engine
// bm25Search uses for ChunkFile helper fields. A transient index is cheap at
// the scale of one hybrid-search call's pre-filtered candidate set and avoids
// keeping chunk text permanently mirrored into the keyword index.
func bm25ScoreOverText(text map[string]string, query string) map[string]float64 {
	scores := make(map[string]float64, len(text))
	if len(text) == 0 || strings.TrimSpace(query) == "" {
		return scores
	}

	mapping := bleve.NewIndexMapping()
	index, err := bleve.NewMemOnly(mapping)
	if err != nil {
		return scores
	}
	defer index.Close()

	batch := index.NewBatch()
	for hash, t := range text {
		_ = batch.Index(hash, map[string]string{"text": t})
	}
	if err := index.Batch(batch); err != nil {
		return scores
	}

	q := bleve.NewMatchQuery(query)
	q.SetField("text")
	req := bleve.NewSearchRequestOptions(q, len(text), 0, false)
	result, err := index.Search(req)
	if err != nil {
		return scores
	}
	for _, hit := range result.Hits {
		scores[hit.ID] = hit.Score
	}
	return normalizeScores(scores)
}

// normalizeScores rescales raw BM25 scores into [0, 1] so they combine
// sensibly with Qdrant's cosine similarity in the alpha blend.
func normalizeScores(scores map[string]float64) map[string]float64 {
	max := 0.0
	for _, v := range scores {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		return scores
	}
	out := make(map[string]float64, len(scores))
	for k, v := range scores {
		out[k] = v / max
	}
	return out
}

// substringMatch implements keyword_search's short-keyword fallback
// ("otherwise substring LIKE over the same fields"), scanning the
// already-loaded candidate text rather than issuing a second Qdrant round
// trip per candidate.
func substringMatch(haystack, keyword string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(keyword))
}
