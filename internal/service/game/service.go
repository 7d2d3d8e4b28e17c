package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// SessionManager keeps the live sessions, loading each from the store the
// first time its id is seen.
type SessionManager struct {
	Session map[string]*Session // sessionID → Session
	mu      sync.RWMutex
	store   StateStore
	opts    Options
	logger  *log.Logger
}

func NewSessionManager(store StateStore, opts Options) *SessionManager {
	opts = opts.withDefaults()
	return &SessionManager{
		Session: make(map[string]*Session),
		store:   store,
		opts:    opts,
		logger:  opts.Logger,
	}
}

// Get returns the session for id, loading it on first use. A store failure
// is logged and the session starts from the defaults.
func (sm *SessionManager) Get(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id is empty")
	}

	sm.mu.RLock()
	session, exists := sm.Session[sessionID]
	sm.mu.RUnlock()
	if exists {
		return session, nil
	}

	// load outside the lock so a slow store only delays this player
	session = NewSession(sessionID, sm.store, sm.opts)
	if err := session.Load(ctx); err != nil {
		sm.logger.Warn("loading stored state failed, using defaults", "session", shortID(sessionID), "err", err)
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if existing, exists := sm.Session[sessionID]; exists {
		// another request loaded it first
		session.Close()
		return existing, nil
	}
	sm.Session[sessionID] = session
	sm.logger.Debug("session opened", "session", shortID(sessionID))
	return session, nil
}

func (sm *SessionManager) Len() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.Session)
}

// CleanupIdleSessions drops sessions nobody is watching that have not
// changed for idleFor. Their stored state stays, so they come back on the
// next request.
func (sm *SessionManager) CleanupIdleSessions(idleFor time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	count := 0
	now := time.Now()
	for id, session := range sm.Session {
		lastActive, listeners := session.idleSince()
		if listeners > 0 || now.Sub(lastActive) < idleFor {
			continue
		}
		session.Close()
		delete(sm.Session, id)
		count++
	}

	if count > 0 {
		sm.logger.Info("memory cleanup", "removed", count, "remaining", len(sm.Session))
	}
	return count
}

// Close stops the timers of every live session.
func (sm *SessionManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for _, session := range sm.Session {
		session.Close()
	}
}
