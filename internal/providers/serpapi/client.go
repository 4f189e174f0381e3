// Package serpapi wraps the two SerpApi engines the bot relies on:
// google answer boxes for dictionary definitions and google_events for
// live event listings.
package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sandevgo/caliando/internal/core"
	"github.com/sandevgo/caliando/pkg/retry"
)

// eventLimit caps how many live events one lookup returns.
const eventLimit = 5

// meaningMaxLines trims verbose snippets down to a chat-sized answer.
const meaningMaxLines = 3

type Client struct {
	client   *http.Client
	retrier  *retry.Retrier
	baseURL  string
	key      string
	location string
}

func NewClient(baseURL, key, location string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		retrier:  retry.NewDefaultRetrier(),
		baseURL:  baseURL,
		key:      key,
		location: location,
	}
}

func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	params.Set("api_key", c.key)
	endpoint := c.baseURL + "/search.json?" + params.Encode()

	return c.retrier.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", core.UserAgent)

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("serpapi returned status %d", resp.StatusCode)
		}
		return json.NewDecoder(resp.Body).Decode(out)
	})
}
