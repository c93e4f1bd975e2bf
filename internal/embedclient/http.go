package embedclient

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

// HTTPProvider calls the remote embedding provider's POST /embedding
// contract (spec.md §6). Grounded on the teacher's internal/embed/local.go
// Embed method; unlike the teacher this never spawns a local process, since
// spec.md's embedding provider is always a remote HTTP service.
type HTTPProvider struct {
	baseURL    string
	authToken  string
	dimensions int
	client     *http.Client
}

// NewHTTPProvider builds a provider against baseURL (e.g.
// "https://embed.example.com"), authenticating with authToken and reporting
// dimensions for callers that need to size vector-store collections ahead of
// the first real embed call.
func NewHTTPProvider(baseURL, authToken string, dimensions int) *HTTPProvider {
	return &HTTPProvider{
		baseURL:    baseURL,
		authToken:  authToken,
		dimensions: dimensions,
		client:     &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *HTTPProvider) Dimensions() int { return p.dimensions }

type embedRequest struct {
	Texts           []string `json:"texts"`
	StoreEmbeddings bool     `json:"store_embeddings"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
	TokensUsed int         `json:"tokens_used"`
}

// Embed sends one batch to POST /embedding. Mode is not part of the wire
// contract in spec.md §6 (the provider infers mode from content), so it is
// accepted for interface symmetry with the rest of the pipeline and ignored
// on the wire.
func (p *HTTPProvider) Embed(ctx context.Context, texts []string, _ Mode) ([][]float32, int, error) {
	body, err := json.Marshal(embedRequest{Texts: texts, StoreEmbeddings: true})
	if err != nil {
		return nil, 0, fmt.Errorf("%w: marshal embed request: %v", model.ErrInvalidInput, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/embedding", bytes.NewReader(body))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.authToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", model.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		var retryAfter *time.Duration
		if raw := resp.Header.Get("Retry-After"); raw != "" {
			if secs, parseErr := strconv.Atoi(raw); parseErr == nil {
				d := time.Duration(secs) * time.Second
				retryAfter = &d
			}
		}
		return nil, 0, &model.RateLimitError{Provider: "embedding", Model: "", RetryAfter: retryAfter}
	}
	if resp.StatusCode >= 500 {
		return nil, 0, fmt.Errorf("%w: embedding provider returned %d", model.ErrBackendUnavailable, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return nil, 0, fmt.Errorf("%w: embedding provider returned %d", model.ErrInvalidInput, resp.StatusCode)
	}

	var out embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, 0, fmt.Errorf("%w: decode embed response: %v", model.ErrBackendUnavailable, err)
	}
	return out.Embeddings, out.TokensUsed, nil
}
