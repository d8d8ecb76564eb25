package drilldown

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

type session struct {
	state    *State
	lastSeen time.Time
}

// Store keeps per-admin drill-down sessions in memory. Sessions idle past
// the TTL are dropped by a janitor goroutine owned by the store; callers
// Start it once and Stop it on shutdown.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	interval time.Duration
	logger   *zap.Logger
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewStore creates a session store with the given idle TTL and janitor
// sweep interval.
func NewStore(ttl, interval time.Duration, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &Store{
		sessions: make(map[string]*session),
		ttl:      ttl,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

// Get returns the session state for the user, creating it on first use,
// and refreshes its idle timer.
func (s *Store) Get(userID string) *State {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		sess = &session{state: &State{}}
		s.sessions[userID] = sess
	}
	sess.lastSeen = time.Now()
	return sess.state
}

// Update runs fn against the user's session state under the store lock,
// so selection changes and guarded data applies are atomic per session.
func (s *Store) Update(userID string, fn func(*State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		sess = &session{state: &State{}}
		s.sessions[userID] = sess
	}
	sess.lastSeen = time.Now()
	return fn(sess.state)
}

// Drop removes the user's session outright.
func (s *Store) Drop(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Start launches the janitor goroutine.
func (s *Store) Start() {
	go s.janitor()
}

// Stop terminates the janitor. Safe to call more than once.
func (s *Store) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

func (s *Store) janitor() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.sweep(time.Now())
		}
	}
}

func (s *Store) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expired := 0
	for userID, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, userID)
			expired++
		}
	}
	if expired > 0 {
		s.logger.Debug("expired drilldown sessions", zap.Int("count", expired))
	}
}
