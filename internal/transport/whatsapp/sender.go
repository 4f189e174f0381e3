package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sandevgo/caliando/internal/config"
	"github.com/sandevgo/caliando/internal/core"
	"github.com/sandevgo/caliando/pkg/retry"
)

// Sender delivers outbound messages through the Graph API. Implements
// core.Messenger.
type Sender struct {
	client  *http.Client
	retrier *retry.Retrier
	baseURL string
	phoneID string
	token   string
}

func NewSender(cfg *config.WhatsAppConfig) *Sender {
	return &Sender{
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		retrier: retry.NewDefaultRetrier(),
		baseURL: cfg.GraphBaseURL,
		phoneID: cfg.PhoneNumberID,
		token:   cfg.Token,
	}
}

type outboundMessage struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             *textBody    `json:"text,omitempty"`
	Interactive      *interactive `json:"interactive,omitempty"`
}

type textBody struct {
	Body string `json:"body"`
}

type interactive struct {
	Type   string `json:"type"`
	Body   body   `json:"body"`
	Action action `json:"action"`
}

type body struct {
	Text string `json:"text"`
}

type action struct {
	Buttons []button `json:"buttons"`
}

type button struct {
	Type  string `json:"type"`
	Reply reply  `json:"reply"`
}

type reply struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func (s *Sender) SendText(ctx context.Context, userID, text string) error {
	return s.post(ctx, outboundMessage{
		MessagingProduct: "whatsapp",
		To:               userID,
		Type:             "text",
		Text:             &textBody{Body: text},
	})
}

func (s *Sender) SendButtons(ctx context.Context, userID, prompt string, options []core.ButtonOption) error {
	// The Cloud API allows at most three reply buttons per message.
	if len(options) > 3 {
		options = options[:3]
	}
	buttons := make([]button, 0, len(options))
	for _, opt := range options {
		buttons = append(buttons, button{
			Type:  "reply",
			Reply: reply{ID: opt.ID, Title: opt.Label},
		})
	}
	return s.post(ctx, outboundMessage{
		MessagingProduct: "whatsapp",
		To:               userID,
		Type:             "interactive",
		Interactive: &interactive{
			Type:   "button",
			Body:   body{Text: prompt},
			Action: action{Buttons: buttons},
		},
	})
}

func (s *Sender) post(ctx context.Context, msg outboundMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", s.baseURL, s.phoneID)
	return s.retrier.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+s.token)
		req.Header.Set("User-Agent", core.UserAgent)

		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return fmt.Errorf("graph API returned status %d: %s", resp.StatusCode, detail)
		}
		return nil
	})
}
