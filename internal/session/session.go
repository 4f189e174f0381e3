package session

import "github.com/sandevgo/caliando/internal/core"

// Context is the active conversational state for a user. Exactly one is
// active at a time; sub-state (result cache, dictionary pages, saying
// cursor) is only meaningful while its matching context is active.
type Context string

const (
	ContextStart      Context = "start"
	ContextDictionary Context = "dictionary"
	ContextResults    Context = "results"
	ContextSayings    Context = "sayings"
	ContextEventsNow  Context = "events_now"
)

// PageSize is how many cached items a single reply lists.
const PageSize = 5

// DictionaryPageLen is the chunk size definitions are split into before
// paging them out.
const DictionaryPageLen = 800

// ResultCache holds the most recent ranked candidate list and the page
// cursor. PageIndex*PageSize is the first index already shown; the next
// "show more" serves the following page.
type ResultCache struct {
	Items     []core.Candidate
	PageIndex int
}

// DictionaryState holds a chunked definition and the page cursor.
type DictionaryState struct {
	Pages     []string
	PageIndex int
}

// EventsCache holds the live-events list for the EventsNow context.
type EventsCache struct {
	Items     []core.LiveEvent
	PageIndex int
}

// Session is the per-user conversational record. Candidates are
// immutable once cached for a turn; a new query replaces the whole
// cache rather than merging.
type Session struct {
	Context     Context
	Results     *ResultCache
	Dictionary  *DictionaryState
	Events      *EventsCache
	SayingIndex int
}

func newSession() *Session {
	return &Session{Context: ContextStart}
}

// clearSubState drops every piece of context-scoped sub-state. Called on
// reset and on every context switch so no stale cache survives a
// transition.
func (s *Session) clearSubState() {
	s.Results = nil
	s.Dictionary = nil
	s.Events = nil
	s.SayingIndex = 0
}
