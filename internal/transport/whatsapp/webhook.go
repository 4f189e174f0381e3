// Package whatsapp hosts the WhatsApp Cloud API transport: a gin webhook
// that receives Meta's delivery callbacks and a Graph API sender for
// outbound messages.
package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sandevgo/caliando/internal/config"
	"github.com/sandevgo/caliando/internal/core"
	"github.com/sandevgo/caliando/pkg/log"
)

// Handler consumes inbound messages. Satisfied by dispatcher.Dispatcher.
type Handler interface {
	HandleMessage(ctx context.Context, msg core.InboundMessage)
}

// Webhook is the inbound HTTP surface, registered with pkg/srv as a
// long-running service.
type Webhook struct {
	srv         *http.Server
	verifyToken string
	handler     Handler
	baseCtx     context.Context
}

func NewWebhook(ctx context.Context, appCfg *config.AppConfig, waCfg *config.WhatsAppConfig, handler Handler) *Webhook {
	w := &Webhook{
		verifyToken: waCfg.VerifyToken,
		handler:     handler,
		baseCtx:     ctx,
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", w.health)
	router.GET("/webhook", w.verify)
	router.POST("/webhook", w.receive)

	w.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", appCfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return w
}

func (w *Webhook) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", w.srv.Addr).Msg("whatsapp webhook listening")
	if err := w.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("webhook server: %w", err)
	}
	return nil
}

func (w *Webhook) Shutdown(ctx context.Context) error {
	return w.srv.Shutdown(ctx)
}

func (w *Webhook) health(c *gin.Context) {
	c.String(http.StatusOK, "%s %s", core.BotName, core.Version)
}

// verify answers Meta's subscription handshake: echo hub.challenge when
// the verify token matches.
func (w *Webhook) verify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == w.verifyToken {
		c.String(http.StatusOK, "%s", challenge)
		return
	}
	c.Status(http.StatusForbidden)
}

// receive acks the callback immediately and processes each message on
// its own goroutine; Meta retries deliveries that are not answered fast.
func (w *Webhook) receive(c *gin.Context) {
	var payload notification
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.FromCtx(w.baseCtx).Warn().Err(err).Msg("unparseable webhook payload")
		c.Status(http.StatusOK)
		return
	}
	c.Status(http.StatusOK)

	for _, msg := range payload.inboundMessages() {
		go w.handler.HandleMessage(w.baseCtx, msg)
	}
}

// notification mirrors the slice of the Cloud API callback schema the
// bot cares about. Statuses, reactions and media messages are dropped.
type notification struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []message `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

type message struct {
	From string `json:"from"`
	Type string `json:"type"`
	Text struct {
		Body string `json:"body"`
	} `json:"text"`
	Interactive struct {
		ButtonReply struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"button_reply"`
		ListReply struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"list_reply"`
	} `json:"interactive"`
}

func (n notification) inboundMessages() []core.InboundMessage {
	var out []core.InboundMessage
	for _, entry := range n.Entry {
		for _, change := range entry.Changes {
			for _, m := range change.Value.Messages {
				switch m.Type {
				case "text":
					out = append(out, core.InboundMessage{
						UserID: m.From,
						Kind:   core.KindText,
						Text:   m.Text.Body,
					})
				case "interactive":
					id := m.Interactive.ButtonReply.ID
					if id == "" {
						id = m.Interactive.ListReply.ID
					}
					out = append(out, core.InboundMessage{
						UserID:   m.From,
						Kind:     core.KindButton,
						ButtonID: id,
					})
				}
			}
		}
	}
	return out
}
