// Package llm holds the optional reply prettifier: an OpenAI-compatible
// chat completion that rewrites a raw detail record into a short,
// friendly answer. Every caller must keep a deterministic plain
// template ready — any failure here falls back to it.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const systemPrompt = `Eres CaliAndo, un asistente que recomienda planes culturales en Cali.
Reescribe la información recibida en un mensaje corto y amable para WhatsApp,
en español, sin inventar datos que no estén en el contexto.`

type Enricher struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

func NewEnricher(baseURL, apiKey, model string) *Enricher {
	return &Enricher{
		client: &http.Client{
			Timeout: 20 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Enrich asks the model to phrase an answer to userMessage using the
// given context documents.
func (e *Enricher) Enrich(ctx context.Context, userMessage string, contextDocs []string) (string, error) {
	payload := chatRequest{
		Model: e.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf("Contexto:\n%s\n\nMensaje del usuario: %s",
				strings.Join(contextDocs, "\n---\n"), userMessage)},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("enrich API returned status %d: %s", resp.StatusCode, msg)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("enrich API returned no content")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
