package session

// Inactivity timers. Every inbound message cancels and re-arms the pair,
// so an active conversation never auto-closes mid-exchange. The warning
// fires first and keeps the session alive; the close callback is
// expected to send a farewell and then Reset the user.
//
// A generation counter guards against late firings: when a timer goes
// off after its pair was replaced by a newer Arm, the callback is
// silently dropped. This keeps "arm twice in quick succession" at
// exactly one warning and one close.

// Arm schedules the warning and close callbacks for the user, cancelling
// any previously armed pair first. Callbacks run outside the store lock.
func (m *Manager) Arm(userID string, onWarning, onClose func()) {
	m.mu.Lock()
	m.cancelTimersLocked(userID)

	m.lastGen++
	gen := m.lastGen
	pair := &timerPair{gen: gen}

	pair.warning = m.sched.ScheduleOnce(m.warnDelay, func() {
		if m.claim(userID, gen, false) {
			onWarning()
		}
	})
	pair.closing = m.sched.ScheduleOnce(m.closeDelay, func() {
		if m.claim(userID, gen, true) {
			onClose()
		}
	})
	m.timers[userID] = pair
	m.mu.Unlock()
}

// CancelTimers stops both timers for the user; no-op when none are armed.
func (m *Manager) CancelTimers(userID string) {
	m.mu.Lock()
	m.cancelTimersLocked(userID)
	m.mu.Unlock()
}

func (m *Manager) cancelTimersLocked(userID string) {
	pair, ok := m.timers[userID]
	if !ok {
		return
	}
	pair.warning.Stop()
	pair.closing.Stop()
	delete(m.timers, userID)
}

// claim verifies a firing timer still belongs to the current pair. The
// close firing retires the whole pair so a later Stop is a no-op.
func (m *Manager) claim(userID string, gen uint64, isClose bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	pair, ok := m.timers[userID]
	if !ok || pair.gen != gen {
		return false
	}
	if isClose {
		delete(m.timers, userID)
	}
	return true
}
