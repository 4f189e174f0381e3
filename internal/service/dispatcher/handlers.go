package dispatcher

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/caliando/internal/core"
	"github.com/sandevgo/caliando/internal/match"
	"github.com/sandevgo/caliando/internal/rank"
	"github.com/sandevgo/caliando/internal/session"
	"github.com/sandevgo/caliando/pkg/log"
)

func (d *Dispatcher) handleButton(ctx context.Context, userID string, msg core.InboundMessage, _ string) error {
	switch msg.ButtonID {
	case buttonLiveEvents:
		return d.enterLiveEvents(ctx, userID)
	case buttonDictionary:
		return d.enterDictionary(ctx, userID)
	case buttonSaying:
		return d.enterSayings(ctx, userID)
	}
	// Unknown payloads (old menus, other apps) are ignored silently.
	log.FromCtx(ctx).Debug().Str("button", msg.ButtonID).Msg("ignoring unknown button payload")
	return nil
}

func (d *Dispatcher) handleGreeting(ctx context.Context, userID string, _ core.InboundMessage, _ string) error {
	d.sessions.Reset(userID)
	d.sendButtons(ctx, userID, replyMenu, menuButtons())
	return nil
}

// handleExit leaves a sticky context. When the exit phrase itself names
// the events domain ("ya no, muéstrame eventos"), it chains straight
// into the live-events flow instead of dropping the user at the menu.
func (d *Dispatcher) handleExit(ctx context.Context, userID string, _ core.InboundMessage, text string) error {
	d.sessions.Reset(userID)
	if strings.Contains(text, "evento") {
		return d.enterLiveEvents(ctx, userID)
	}
	d.sendButtons(ctx, userID, replyMenu, menuButtons())
	return nil
}

// --- live events -----------------------------------------------------

func (d *Dispatcher) enterLiveEvents(ctx context.Context, userID string) error {
	d.sessions.Reset(userID)
	d.sendText(ctx, userID, replySearchingEvents)

	events, err := d.events.LiveEvents(ctx, "eventos en vivo")
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("live events lookup failed")
		d.sendText(ctx, userID, replyError)
		return nil
	}
	if len(events) == 0 {
		d.sendText(ctx, userID, replyNoEventsNearby)
		return nil
	}

	d.sessions.SetContext(userID, session.ContextEventsNow)
	d.sessions.Mutate(userID, func(s *session.Session) {
		s.Events = &session.EventsCache{Items: events}
	})

	page := events
	if len(page) > session.PageSize {
		page = page[:session.PageSize]
	}
	d.sendText(ctx, userID, formatEvents(replyLiveEventsHeader, page))
	return nil
}

func (d *Dispatcher) handleEventsMore(ctx context.Context, userID string, _ core.InboundMessage, _ string) error {
	var page []core.LiveEvent
	d.sessions.Mutate(userID, func(s *session.Session) {
		if s.Events == nil {
			return
		}
		start := (s.Events.PageIndex + 1) * session.PageSize
		if start >= len(s.Events.Items) {
			return
		}
		end := start + session.PageSize
		if end > len(s.Events.Items) {
			end = len(s.Events.Items)
		}
		page = s.Events.Items[start:end]
		s.Events.PageIndex++
	})

	if len(page) == 0 {
		d.sendText(ctx, userID, replyNoMoreResults)
		return nil
	}
	d.sendText(ctx, userID, formatEvents(replyMoreEventsHeader, page))
	return nil
}

// handleRelativeEvents answers "eventos hoy" style queries in one shot,
// without touching the user's context.
func (d *Dispatcher) handleRelativeEvents(ctx context.Context, userID string, _ core.InboundMessage, text string) error {
	when := relativeEventsRe.FindStringSubmatch(text)[1]
	d.sendText(ctx, userID, fmt.Sprintf(replySearchingEventsWhen, when))

	events, err := d.events.LiveEvents(ctx, "eventos "+when)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("live events lookup failed")
		d.sendText(ctx, userID, replyError)
		return nil
	}
	if len(events) == 0 {
		d.sendText(ctx, userID, replyNoEventsFound)
		return nil
	}
	d.sendText(ctx, userID, formatEvents(fmt.Sprintf(replyEventsWhenHeader, when), events))
	return nil
}

// --- dictionary ------------------------------------------------------

func (d *Dispatcher) enterDictionary(ctx context.Context, userID string) error {
	d.sessions.Reset(userID)
	d.sessions.SetContext(userID, session.ContextDictionary)
	d.sendText(ctx, userID, replyDictionaryWelcome)
	return nil
}

func (d *Dispatcher) handleDictionaryBody(ctx context.Context, userID string, _ core.InboundMessage, text string) error {
	if text == showMore {
		return d.dictionaryNextPage(ctx, userID)
	}
	if text == "" {
		d.sendText(ctx, userID, replyDictionaryWelcome)
		return nil
	}

	meaning, err := d.dict.Meaning(ctx, text)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("term", text).Msg("dictionary lookup failed")
		d.sendText(ctx, userID, replyError)
		return nil
	}
	if meaning == "" {
		d.sendText(ctx, userID, fmt.Sprintf(replyNoMeaning, text))
		return nil
	}

	pages := chunkText(meaning, session.DictionaryPageLen)
	d.sessions.Mutate(userID, func(s *session.Session) {
		s.Dictionary = &session.DictionaryState{Pages: pages}
	})

	d.sendText(ctx, userID, fmt.Sprintf(replyMeaning, text, pages[0]))
	if len(pages) > 1 {
		d.sendText(ctx, userID, replyMoreHint)
	}
	return nil
}

func (d *Dispatcher) dictionaryNextPage(ctx context.Context, userID string) error {
	var (
		page    string
		hasMore bool
		served  bool
	)
	d.sessions.Mutate(userID, func(s *session.Session) {
		if s.Dictionary == nil {
			return
		}
		next := s.Dictionary.PageIndex + 1
		if next >= len(s.Dictionary.Pages) {
			return
		}
		s.Dictionary.PageIndex = next
		page = s.Dictionary.Pages[next]
		hasMore = next < len(s.Dictionary.Pages)-1
		served = true
	})

	if !served {
		d.sendText(ctx, userID, replyNoMorePages)
		return nil
	}
	d.sendText(ctx, userID, page)
	if hasMore {
		d.sendText(ctx, userID, replyMoreHint)
	}
	return nil
}

// --- sayings ---------------------------------------------------------

func (d *Dispatcher) enterSayings(ctx context.Context, userID string) error {
	d.sessions.Reset(userID)
	d.sessions.SetContext(userID, session.ContextSayings)
	return d.sendSaying(ctx, userID, 0)
}

func (d *Dispatcher) handleSayingsBody(ctx context.Context, userID string, _ core.InboundMessage, text string) error {
	if text == "otro dicho" || text == "otro" || text == showMore {
		next := d.sessions.Get(userID).SayingIndex + 1
		return d.sendSaying(ctx, userID, next)
	}
	d.sendText(ctx, userID, replySayingNudge)
	return nil
}

func (d *Dispatcher) sendSaying(ctx context.Context, userID string, index int) error {
	saying, total, err := d.catalog.Saying(ctx, index)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("saying lookup failed")
		d.sendText(ctx, userID, replyError)
		return nil
	}
	if total == 0 {
		d.sendText(ctx, userID, replyNoSayings)
		return nil
	}
	d.sessions.Mutate(userID, func(s *session.Session) {
		s.SayingIndex = index
	})
	d.sendText(ctx, userID, fmt.Sprintf(replySaying, saying.Phrase, saying.Meaning))
	return nil
}

// --- results: pricing, pagination, selection, search -----------------

func (d *Dispatcher) handlePriceQuery(ctx context.Context, userID string, _ core.InboundMessage, text string) error {
	snap := d.sessions.Get(userID)
	if snap.Results == nil {
		d.sendText(ctx, userID, replyNoActiveSearch)
		return nil
	}

	var subset []core.Candidate
	for _, c := range snap.Results.Items {
		if rank.ComparableSource(c.SourceKind) {
			subset = append(subset, c)
		}
	}
	if len(subset) == 0 {
		d.sendText(ctx, userID, replyNoComparablePrices)
		return nil
	}

	entries := make([]rank.Entry, 0, len(subset))
	for _, c := range subset {
		price, err := d.catalog.Price(ctx, c.ReferenceID)
		if err != nil {
			log.FromCtx(ctx).Error().Err(err).Int64("ref", c.ReferenceID).Msg("price fetch failed")
			d.sendText(ctx, userID, replyError)
			return nil
		}
		entries = append(entries, rank.Entry{Candidate: c, PriceText: price})
	}

	ascending := cheaperRe.MatchString(text)
	ranked := rank.Rank(entries, ascending, rank.DefaultLimit)

	header := replyPricierHeader
	if ascending {
		header = replyCheaperHeader
	}
	var b strings.Builder
	b.WriteString(header)
	for _, e := range ranked {
		priceText := e.PriceText
		if priceText == "" {
			priceText = "—"
		}
		fmt.Fprintf(&b, "• %s (%s)\n", e.Candidate.Name, priceText)
	}
	d.sendText(ctx, userID, strings.TrimRight(b.String(), "\n"))
	return nil
}

func (d *Dispatcher) handleResultsBody(ctx context.Context, userID string, _ core.InboundMessage, text string) error {
	if text == showMore {
		page, active := d.sessions.NextPage(userID)
		if !active {
			d.sendText(ctx, userID, replyNoActiveSearch)
			return nil
		}
		if len(page) == 0 {
			d.sendText(ctx, userID, replyNoMoreResults)
			return nil
		}
		d.sendText(ctx, userID, formatCandidates(replyMoreResultsHeader, page))
		return nil
	}

	snap := d.sessions.Get(userID)
	if snap.Results != nil {
		if chosen, ok := match.Resolve(snap.Results.Items, text); ok {
			return d.showDetail(ctx, userID, chosen, text)
		}
	}
	// No candidate matched: treat the reply as a brand-new query.
	return d.handleSearch(ctx, userID, text)
}

func (d *Dispatcher) showDetail(ctx context.Context, userID string, chosen core.Candidate, userText string) error {
	detail, err := d.catalog.Detail(ctx, chosen.SourceKind, chosen.ReferenceID)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Int64("ref", chosen.ReferenceID).Msg("detail fetch failed")
		d.sendText(ctx, userID, replyError)
		return nil
	}
	if detail == nil {
		d.sendText(ctx, userID, fmt.Sprintf(replyNoDetail, chosen.Name))
		return nil
	}

	plain := formatDetail(detail)
	d.sendText(ctx, userID, d.maybeEnrich(ctx, userText, plain))
	// The user stays in Results so they can keep filtering the list.
	return nil
}

// maybeEnrich runs the answer through the LLM prettifier when one is
// configured; the plain template is the answer of record on any failure.
func (d *Dispatcher) maybeEnrich(ctx context.Context, userText, plain string) string {
	if d.enrich == nil {
		return plain
	}
	enriched, err := d.enrich.Enrich(ctx, userText, []string{plain})
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("enrichment failed, using plain template")
		return plain
	}
	return enriched
}

func (d *Dispatcher) handleSearch(ctx context.Context, userID, query string) error {
	results, err := d.search.Search(ctx, query)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("query", query).Msg("semantic search failed")
		d.sendText(ctx, userID, replyError)
		return nil
	}
	if len(results) == 0 {
		// Context stays as it was; the user can just try another phrase.
		d.sendText(ctx, userID, replyNothingFound)
		return nil
	}

	d.sessions.SetContext(userID, session.ContextResults)
	d.sessions.StoreResults(userID, results)
	d.sendText(ctx, userID, formatCandidates(replyResultsHeader, session.FirstPage(results)))
	return nil
}
