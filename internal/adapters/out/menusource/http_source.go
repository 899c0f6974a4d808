// Package menusource fetches the raw menu document from a URL or a local
// file, and loads the ordering rules that sit next to it.
package menusource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxMenuBytes bounds the response body.
const maxMenuBytes = 4 << 20

// HTTPSource GETs a JSON menu document. The caller bounds each fetch through
// ctx.
type HTTPSource struct {
	url    string
	client *http.Client
}

func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{url: url, client: client}
}

// Fetch fails on transport errors, non-200 statuses and bodies that are not
// a JSON object.
func (s *HTTPSource) Fetch(ctx context.Context) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("menu endpoint returned %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxMenuBytes))
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("decode menu: document is not an object")
	}
	return doc, nil
}
