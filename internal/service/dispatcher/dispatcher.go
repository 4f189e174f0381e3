// Package dispatcher classifies every inbound chat message against the
// user's conversational context and a fixed, priority-ordered rule set,
// then runs the first matching handler. It owns no I/O of its own: the
// transports deliver messages in, the adapters and the Messenger carry
// everything out.
package dispatcher

import (
	"context"
	"sync"

	"github.com/sandevgo/caliando/internal/core"
	"github.com/sandevgo/caliando/internal/session"
	"github.com/sandevgo/caliando/pkg/log"
	"github.com/sandevgo/caliando/pkg/textnorm"
)

// Searcher is the semantic search backend boundary.
type Searcher interface {
	Search(ctx context.Context, query string) ([]core.Candidate, error)
}

// Catalog is the detail/price/sayings boundary.
type Catalog interface {
	Detail(ctx context.Context, sourceKind string, referenceID int64) (*core.Detail, error)
	Price(ctx context.Context, referenceID int64) (string, error)
	Saying(ctx context.Context, index int) (core.Saying, int, error)
}

// Dictionary is the definition lookup boundary.
type Dictionary interface {
	Meaning(ctx context.Context, term string) (string, error)
}

// Events is the live-events lookup boundary.
type Events interface {
	LiveEvents(ctx context.Context, query string) ([]core.LiveEvent, error)
}

// Enricher optionally rewrites a templated answer; callers always keep
// the plain template as fallback.
type Enricher interface {
	Enrich(ctx context.Context, userMessage string, contextDocs []string) (string, error)
}

type Dispatcher struct {
	sessions *session.Manager
	out      core.Messenger
	search   Searcher
	catalog  Catalog
	dict     Dictionary
	events   Events
	enrich   Enricher // nil when not configured

	rules []rule

	// baseCtx carries the process logger into timer callbacks, which
	// outlive the webhook request that armed them.
	baseCtx context.Context

	// One mutex per user serializes near-simultaneous messages from the
	// same user so they are handled strictly in arrival order.
	locks sync.Map
}

// Config holds the dispatcher's collaborators. Enrich may be nil.
type Config struct {
	Sessions  *session.Manager
	Messenger core.Messenger
	Search    Searcher
	Catalog   Catalog
	Dict      Dictionary
	Events    Events
	Enrich    Enricher
}

func New(ctx context.Context, cfg Config) *Dispatcher {
	d := &Dispatcher{
		sessions: cfg.Sessions,
		out:      cfg.Messenger,
		search:   cfg.Search,
		catalog:  cfg.Catalog,
		dict:     cfg.Dict,
		events:   cfg.Events,
		enrich:   cfg.Enrich,
		baseCtx:  ctx,
	}
	d.rules = d.buildRules()
	return d
}

func (d *Dispatcher) userLock(userID string) *sync.Mutex {
	v, _ := d.locks.LoadOrStore(userID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// HandleMessage processes one inbound message end to end: cancel the
// user's inactivity timers, run the first matching rule, re-arm the
// timers. Transports call it from their own goroutine and never wait on
// the outcome.
func (d *Dispatcher) HandleMessage(ctx context.Context, msg core.InboundMessage) {
	logger := log.FromCtx(ctx)

	mu := d.userLock(msg.UserID)
	mu.Lock()
	defer mu.Unlock()

	d.sessions.CancelTimers(msg.UserID)
	defer d.armTimers(msg.UserID)

	text := textnorm.Normalize(msg.Text)
	snap := d.sessions.Get(msg.UserID)

	for _, r := range d.rules {
		if !r.match(snap, msg, text) {
			continue
		}
		logger.Debug().Str("rule", r.name).Str("user", msg.UserID).Msg("dispatching")
		if err := r.handle(ctx, msg.UserID, msg, text); err != nil {
			logger.Error().Err(err).Str("rule", r.name).Str("user", msg.UserID).Msg("handler failed")
			d.sendText(ctx, msg.UserID, replyError)
		}
		return
	}
}

// armTimers schedules the two-stage inactivity pair. The close callback
// takes the user lock so it cannot interleave with an in-flight message.
func (d *Dispatcher) armTimers(userID string) {
	d.sessions.Arm(userID,
		func() {
			d.sendText(d.baseCtx, userID, replyInactivityNudge)
		},
		func() {
			mu := d.userLock(userID)
			mu.Lock()
			defer mu.Unlock()
			d.sendText(d.baseCtx, userID, replyFarewell)
			d.sessions.Reset(userID)
		},
	)
}

// sendText delivers best-effort; a lost outbound message is logged and
// never escalated.
func (d *Dispatcher) sendText(ctx context.Context, userID, text string) {
	if err := d.out.SendText(ctx, userID, text); err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("user", userID).Msg("failed to send message")
	}
}

func (d *Dispatcher) sendButtons(ctx context.Context, userID, prompt string, options []core.ButtonOption) {
	if err := d.out.SendButtons(ctx, userID, prompt, options); err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("user", userID).Msg("failed to send buttons")
	}
}
