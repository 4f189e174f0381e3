package serpapi

import (
	"context"
	"net/url"
	"strings"
)

type meaningResponse struct {
	AnswerBox struct {
		Answer  string `json:"answer"`
		Snippet string `json:"snippet"`
	} `json:"answer_box"`
	OrganicResults []struct {
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
}

// Meaning looks up a plain-text definition for the term. Returns ""
// when nothing usable came back; the caller renders "not found".
func (c *Client) Meaning(ctx context.Context, term string) (string, error) {
	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", term)
	params.Set("hl", "es")
	params.Set("gl", "co")

	var resp meaningResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return "", err
	}

	// Answer box first, then the top organic snippet.
	result := resp.AnswerBox.Answer
	if result == "" {
		result = resp.AnswerBox.Snippet
	}
	if result == "" && len(resp.OrganicResults) > 0 {
		result = resp.OrganicResults[0].Snippet
	}
	if result == "" {
		return "", nil
	}

	lines := strings.Split(result, "\n")
	if len(lines) > meaningMaxLines {
		lines = lines[:meaningMaxLines]
	}
	return strings.Join(lines, "\n"), nil
}
