// Package telegram is the optional second transport: a long-polling
// Telegram bot feeding the same dispatcher as the WhatsApp webhook.
// Telegram users live in their own user-ID space ("telegram-<chatID>"),
// so sessions never collide across transports.
package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/sandevgo/caliando/internal/config"
	"github.com/sandevgo/caliando/internal/core"
	"github.com/sandevgo/caliando/pkg/log"
)

const baseContextKey = "base_context"

const userIDPrefix = "telegram-"

// Safety margin below Telegram's 4096-char message limit.
const maxMsgLen = 4000

// Handler consumes inbound messages. Satisfied by dispatcher.Dispatcher.
type Handler interface {
	HandleMessage(ctx context.Context, msg core.InboundMessage)
}

type Bot struct {
	bot     *tele.Bot
	handler Handler
}

// NewBot connects to the Bot API. The handler is attached afterwards
// with SetHandler because the outbound Sender needs the bot connection
// first.
func NewBot(ctx context.Context, cfg *config.TelegramConfig) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{bot: b}

	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleText)
	b.Handle(tele.OnCallback, bot.handleCallback)

	return bot, nil
}

func (b *Bot) SetHandler(h Handler) {
	b.handler = h
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleText(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	_ = c.Notify(tele.Typing)

	b.handler.HandleMessage(ctx, core.InboundMessage{
		UserID: userID(c.Chat().ID),
		Kind:   core.KindText,
		Text:   c.Text(),
	})
	return nil
}

func (b *Bot) handleCallback(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	defer func() { _ = c.Respond() }()

	b.handler.HandleMessage(ctx, core.InboundMessage{
		UserID:   userID(c.Chat().ID),
		Kind:     core.KindButton,
		ButtonID: callbackID(c.Callback().Data),
	})
	return nil
}

func userID(chatID int64) string {
	return fmt.Sprintf("%s%d", userIDPrefix, chatID)
}

// callbackID strips telebot's unique-button framing ("\f<unique>|<data>")
// down to the bare button ID.
func callbackID(data string) string {
	data = strings.TrimPrefix(data, "\f")
	if i := strings.Index(data, "|"); i >= 0 {
		data = data[:i]
	}
	return strings.TrimSpace(data)
}

// Sender delivers outbound messages over the same bot connection.
// Implements core.Messenger.
type Sender struct {
	bot *tele.Bot
}

func NewSender(b *Bot) *Sender {
	return &Sender{bot: b.bot}
}

func (s *Sender) SendText(ctx context.Context, userID, text string) error {
	to, err := recipient(userID)
	if err != nil {
		return err
	}
	for i, chunk := range splitText(text, maxMsgLen) {
		if _, err := s.bot.Send(to, chunk); err != nil {
			return fmt.Errorf("send chunk %d: %w", i, err)
		}
	}
	return nil
}

func (s *Sender) SendButtons(ctx context.Context, userID, prompt string, options []core.ButtonOption) error {
	to, err := recipient(userID)
	if err != nil {
		return err
	}

	markup := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(options))
	for _, opt := range options {
		rows = append(rows, markup.Row(markup.Data(opt.Label, opt.ID)))
	}
	markup.Inline(rows...)

	if _, err := s.bot.Send(to, prompt, markup); err != nil {
		return fmt.Errorf("send buttons: %w", err)
	}
	return nil
}

func recipient(userID string) (tele.Recipient, error) {
	raw := strings.TrimPrefix(userID, userIDPrefix)
	chatID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("not a telegram user id: %q", userID)
	}
	return tele.ChatID(chatID), nil
}

// splitText chunks a message under Telegram's length limit, preferring
// newline boundaries.
func splitText(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	var chunks []string
	for len(text) > 0 {
		if len(text) <= maxLen {
			chunks = append(chunks, text)
			break
		}

		cut := maxLen
		if idx := strings.LastIndex(text[:maxLen], "\n"); idx > maxLen/3 {
			cut = idx
		}

		chunks = append(chunks, text[:cut])
		text = strings.TrimSpace(text[cut:])
	}
	return chunks
}
