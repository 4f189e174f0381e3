// Package search calls the semantic search backend that turns a
// free-text query into a ranked candidate list. The backend is a black
// box; only the request/response shape is fixed here.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sandevgo/caliando/internal/core"
)

type Client struct {
	client  *http.Client
	baseURL string
}

func NewClient(baseURL string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL: baseURL,
	}
}

type searchRequest struct {
	Texto  string `json:"texto"`
	Fuente string `json:"fuente"`
	Nombre string `json:"nombre"`
}

type searchResponse struct {
	OK         bool             `json:"ok"`
	Resultados []core.Candidate `json:"resultados"`
}

// Search returns ranked candidates for the query. An empty slice means
// the backend found nothing; that is not an error.
func (c *Client) Search(ctx context.Context, query string) ([]core.Candidate, error) {
	body, err := json.Marshal(searchRequest{
		Texto:  query,
		Fuente: "whatsapp",
		Nombre: core.BotName,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/buscar-coincidencia", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", core.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search backend returned status %d", resp.StatusCode)
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !out.OK {
		// The backend reports "no match" through ok=false.
		return nil, nil
	}
	return out.Resultados, nil
}
