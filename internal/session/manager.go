package session

import (
	"sync"
	"time"

	"github.com/sandevgo/caliando/internal/core"
)

// Manager owns every per-user conversational record and its inactivity
// timers behind one narrow interface. Nothing here is persisted: a
// process restart wipes all sessions, which is the deliberate tradeoff
// for zero operational storage.
//
// All exported methods are safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	timers   map[string]*timerPair
	lastGen  uint64

	sched      Scheduler
	warnDelay  time.Duration
	closeDelay time.Duration
}

type timerPair struct {
	gen     uint64
	warning Handle
	closing Handle
}

// Config holds Manager construction parameters. CloseDelay must be
// strictly greater than WarnDelay.
type Config struct {
	Scheduler  Scheduler
	WarnDelay  time.Duration
	CloseDelay time.Duration
}

func NewManager(cfg Config) *Manager {
	sched := cfg.Scheduler
	if sched == nil {
		sched = NewWallScheduler()
	}
	return &Manager{
		sessions:   make(map[string]*Session),
		timers:     make(map[string]*timerPair),
		sched:      sched,
		warnDelay:  cfg.WarnDelay,
		closeDelay: cfg.CloseDelay,
	}
}

// Get returns a snapshot of the user's session, creating a fresh Start
// session when none exists. Slices in the snapshot are shared with the
// stored record and must be treated as read-only; mutations go through
// Mutate and the paginator methods.
func (m *Manager) Get(userID string) Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.getLocked(userID)
}

func (m *Manager) getLocked(userID string) *Session {
	s, ok := m.sessions[userID]
	if !ok {
		s = newSession()
		m.sessions[userID] = s
	}
	return s
}

// Reset returns the user to a fresh Start session: context Start, all
// sub-state cleared, inactivity timers cancelled. This is the only way
// sub-state is ever cleared outside of an explicit context switch.
func (m *Manager) Reset(userID string) {
	m.mu.Lock()
	s := m.getLocked(userID)
	s.Context = ContextStart
	s.clearSubState()
	m.cancelTimersLocked(userID)
	m.mu.Unlock()
}

// SetContext switches the active context and drops the sub-state of
// every other context, so a transition can never leave a stale cache
// behind.
func (m *Manager) SetContext(userID string, ctx Context) {
	m.mu.Lock()
	s := m.getLocked(userID)
	if s.Context != ctx {
		s.clearSubState()
	}
	s.Context = ctx
	m.mu.Unlock()
}

// Mutate runs fn against the live session record under the store lock.
func (m *Manager) Mutate(userID string, fn func(*Session)) {
	m.mu.Lock()
	fn(m.getLocked(userID))
	m.mu.Unlock()
}

// StoreResults replaces the user's result cache with a fresh list and
// rewinds the page cursor. The previous list is discarded, never merged.
func (m *Manager) StoreResults(userID string, items []core.Candidate) {
	m.mu.Lock()
	s := m.getLocked(userID)
	s.Results = &ResultCache{Items: items}
	m.mu.Unlock()
}

// NextPage serves the next page of the cached result list and advances
// the cursor only when the page is non-empty. ok is false when the user
// has no active result cache at all; an empty page with ok true means
// the list is exhausted.
func (m *Manager) NextPage(userID string) (page []core.Candidate, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.getLocked(userID)
	if s.Results == nil {
		return nil, false
	}
	start := (s.Results.PageIndex + 1) * PageSize
	page = slicePage(s.Results.Items, start, PageSize)
	if len(page) > 0 {
		s.Results.PageIndex++
	}
	return page, true
}

// FirstPage returns the opening page of a candidate list.
func FirstPage(items []core.Candidate) []core.Candidate {
	return slicePage(items, 0, PageSize)
}

func slicePage(items []core.Candidate, start, size int) []core.Candidate {
	if start >= len(items) {
		return nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
