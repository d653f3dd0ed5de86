// Package stores provides concrete cache store implementations
package stores

import (
	"sync"
	"time"

	"github.com/roulettesim/roulettesim-go/internal/domain/entities/session"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/observability/logging"
)

// SessionsStore keeps live visitor sessions in memory. The persisted copy in
// the visitor-state store is the durable one; this is the hot path.
type SessionsStore struct {
	sessions map[string]*session.Session
	ttl      time.Duration
	mu       sync.RWMutex
	logger   *logging.ChanneledLogger
}

// NewSessionsStore creates a new sessions cache store.
func NewSessionsStore(ttl time.Duration, logger *logging.ChanneledLogger) *SessionsStore {
	if logger != nil {
		logger.Cache().Info("Initializing sessions cache store", "ttl", ttl)
	}
	return &SessionsStore{
		sessions: make(map[string]*session.Session),
		ttl:      ttl,
		logger:   logger,
	}
}

// Get returns the cached session when present and not expired.
func (ss *SessionsStore) Get(sessionID string) (*session.Session, bool) {
	start := time.Now()
	ss.mu.RLock()
	sess, found := ss.sessions[sessionID]
	ss.mu.RUnlock()

	if found && ss.ttl > 0 && time.Since(sess.LastActivity) > ss.ttl {
		ss.mu.Lock()
		delete(ss.sessions, sessionID)
		ss.mu.Unlock()
		found = false
	}

	if ss.logger != nil {
		ss.logger.LogCacheOperation("get", "session:"+sessionID, found, time.Since(start))
	}
	if !found {
		return nil, false
	}
	return sess, true
}

// Set stores or replaces a session.
func (ss *SessionsStore) Set(sess *session.Session) {
	ss.mu.Lock()
	ss.sessions[sess.SessionID] = sess
	ss.mu.Unlock()
}

// Remove evicts a session, e.g. on consent withdrawal.
func (ss *SessionsStore) Remove(sessionID string) {
	ss.mu.Lock()
	delete(ss.sessions, sessionID)
	ss.mu.Unlock()
}

// Count returns the number of live sessions.
func (ss *SessionsStore) Count() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return len(ss.sessions)
}
