package dispatcher

import (
	"context"
	"regexp"
	"strings"

	"github.com/sandevgo/caliando/internal/core"
	"github.com/sandevgo/caliando/internal/session"
)

// Button payload IDs offered in the main menu.
const (
	buttonLiveEvents = "VER_EVENTOS"
	buttonDictionary = "DICCIONARIO"
	buttonSaying     = "DICHO"
)

// foodTerms short-circuit requests the bot deliberately does not serve.
var foodTerms = []string{
	"comida", "comer", "culinario",
	"restaurante", "restaurantes", "barcito", "almuerzo", "cena", "desayuno", "aperitivo",
	"pizzeria", "pizza", "hamburguesa", "antojito",
	"taco", "postre", "helado",
	"bebida", "vino", "foodtruck",
	"antojitos", "snack", "degustacion",
}

var greetings = []string{"hola", "buenas", "hey", "holi", "buenos dias", "buenas tardes"}

// exitWords leave a sticky context (dictionary, sayings) back to the menu.
var exitWords = []string{"salir", "menu", "volver", "inicio"}

var (
	relativeEventsRe = regexp.MustCompile(`eventos?\s+(hoy|este fin de semana|finde)`)
	cheaperRe        = regexp.MustCompile(`mas\s+barat[oa]s?`)
	pricierRe        = regexp.MustCompile(`mas\s+car[oa]s?`)
)

const showMore = "ver mas"

// rule pairs a predicate with its handler. Rules are evaluated top to
// bottom on (session snapshot, message, normalized text); the first
// match wins, so the order below is the priority order.
type rule struct {
	name   string
	match  func(s session.Session, msg core.InboundMessage, text string) bool
	handle func(ctx context.Context, userID string, msg core.InboundMessage, text string) error
}

func (d *Dispatcher) buildRules() []rule {
	return []rule{
		{
			name: "button",
			match: func(_ session.Session, msg core.InboundMessage, _ string) bool {
				return msg.Kind == core.KindButton
			},
			handle: d.handleButton,
		},
		{
			name: "food_filter",
			match: func(_ session.Session, _ core.InboundMessage, text string) bool {
				return containsAny(text, foodTerms)
			},
			handle: func(ctx context.Context, userID string, _ core.InboundMessage, _ string) error {
				d.sendText(ctx, userID, replyFoodDecline)
				return nil
			},
		},
		{
			name: "greeting",
			match: func(_ session.Session, _ core.InboundMessage, text string) bool {
				return containsAny(text, greetings)
			},
			handle: d.handleGreeting,
		},
		{
			name: "context_exit",
			match: func(s session.Session, _ core.InboundMessage, text string) bool {
				if s.Context != session.ContextDictionary && s.Context != session.ContextSayings {
					return false
				}
				return containsAny(text, exitWords)
			},
			handle: d.handleExit,
		},
		{
			name: "dictionary_command",
			match: func(_ session.Session, _ core.InboundMessage, text string) bool {
				return strings.HasPrefix(text, "diccionario")
			},
			handle: func(ctx context.Context, userID string, _ core.InboundMessage, _ string) error {
				return d.enterDictionary(ctx, userID)
			},
		},
		{
			name: "saying_command",
			match: func(s session.Session, _ core.InboundMessage, text string) bool {
				return s.Context != session.ContextSayings && (text == "dicho" || text == "dichos" || text == "un dicho")
			},
			handle: func(ctx context.Context, userID string, _ core.InboundMessage, _ string) error {
				return d.enterSayings(ctx, userID)
			},
		},
		{
			name: "dictionary_body",
			match: func(s session.Session, _ core.InboundMessage, _ string) bool {
				return s.Context == session.ContextDictionary
			},
			handle: d.handleDictionaryBody,
		},
		{
			name: "sayings_body",
			match: func(s session.Session, _ core.InboundMessage, _ string) bool {
				return s.Context == session.ContextSayings
			},
			handle: d.handleSayingsBody,
		},
		{
			name: "events_now_body",
			match: func(s session.Session, _ core.InboundMessage, text string) bool {
				return s.Context == session.ContextEventsNow && text == showMore
			},
			handle: d.handleEventsMore,
		},
		{
			name: "relative_events",
			match: func(_ session.Session, _ core.InboundMessage, text string) bool {
				return relativeEventsRe.MatchString(text)
			},
			handle: d.handleRelativeEvents,
		},
		{
			name: "price_query",
			match: func(s session.Session, _ core.InboundMessage, text string) bool {
				if s.Context != session.ContextResults {
					return false
				}
				return cheaperRe.MatchString(text) || pricierRe.MatchString(text)
			},
			handle: d.handlePriceQuery,
		},
		{
			name: "results_body",
			match: func(s session.Session, _ core.InboundMessage, _ string) bool {
				return s.Context == session.ContextResults
			},
			handle: d.handleResultsBody,
		},
		{
			name: "free_text_search",
			match: func(_ session.Session, _ core.InboundMessage, text string) bool {
				return text != ""
			},
			handle: func(ctx context.Context, userID string, _ core.InboundMessage, text string) error {
				return d.handleSearch(ctx, userID, text)
			},
		},
	}
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
