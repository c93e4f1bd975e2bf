package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/mvp-joe/project-cortex/internal/model"
)

// RerankerClient calls the remote reranker's POST /rerank contract
// (spec.md §6). Grounded on internal/embedclient/http.go's HTTP-client
// idiom, but every failure is absorbed by the caller rather than
// propagated: spec.md §4.7 stage 6 requires candidates to pass through
// unchanged when the reranker is unavailable or errors.
type RerankerClient struct {
	baseURL   string
	authToken string
	client    *http.Client
}

// NewRerankerClient builds a client against baseURL, authenticating with
// authToken.
func NewRerankerClient(baseURL, authToken string) *RerankerClient {
	return &RerankerClient{
		baseURL:   baseURL,
		authToken: authToken,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

type rerankChunkJSON struct {
	Content       string                 `json:"content"`
	SourceDetails rerankSourceDetails    `json:"source_details"`
	SearchScore   *float64               `json:"search_score,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

type rerankSourceDetails struct {
	FilePath  string `json:"file_path"`
	FileHash  string `json:"file_hash,omitempty"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

type rerankRequest struct {
	Query          string            `json:"query"`
	RelevantChunks []rerankChunkJSON `json:"relevant_chunks"`
}

type rerankResponse struct {
	RerankedDenotations []string `json:"reranked_denotations"`
	SessionID           int      `json:"session_id"`
}

// rerankResult is what Rerank returns on success: the denotation order plus
// whatever session id the reranker assigned (0 when the caller didn't send
// one and the reranker doesn't track sessions).
type rerankResult struct {
	order     []string
	sessionID int
}

// Rerank posts candidates to the reranker and returns the denotation order
// it responds with. The denotation for candidate i is its (file_path,
// start_line) pair rendered as "path:start", since spec.md §6 only
// requires denotations to "identify one of the input chunks" and that pair
// is already this pipeline's dedup key.
func (c *RerankerClient) Rerank(ctx context.Context, query string, candidates []model.ChunkResult, sessionID string, sessionType string) (rerankResult, error) {
	chunks := make([]rerankChunkJSON, len(candidates))
	for i, cand := range candidates {
		chunks[i] = rerankChunkJSON{
			Content: cand.Content,
			SourceDetails: rerankSourceDetails{
				FilePath:  cand.SourceDetails.FilePath,
				FileHash:  cand.SourceDetails.FileHash,
				StartLine: cand.SourceDetails.StartLine,
				EndLine:   cand.SourceDetails.EndLine,
			},
			SearchScore: scorePtr(cand.SearchScore),
			Metadata:    cand.Metadata,
		}
	}

	body, err := json.Marshal(rerankRequest{Query: query, RelevantChunks: chunks})
	if err != nil {
		return rerankResult{}, fmt.Errorf("rerank: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rerank", bytes.NewReader(body))
	if err != nil {
		return rerankResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.authToken)
	if sessionID != "" {
		req.Header.Set("X-Session-Id", sessionID)
	}
	if sessionType != "" {
		req.Header.Set("X-Session-Type", sessionType)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return rerankResult{}, fmt.Errorf("rerank: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return rerankResult{}, fmt.Errorf("rerank: provider returned %d", resp.StatusCode)
	}

	var out rerankResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return rerankResult{}, fmt.Errorf("rerank: decode response: %w", err)
	}
	return rerankResult{order: out.RerankedDenotations, sessionID: out.SessionID}, nil
}

func scorePtr(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}

func denotationOf(cr model.ChunkResult) string {
	return cr.SourceDetails.FilePath + ":" + strconv.Itoa(cr.SourceDetails.StartLine)
}
