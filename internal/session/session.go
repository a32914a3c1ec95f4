// Package session keeps per-visitor table state in memory.
//
// Each visitor gets a Session identified by a random ID stored in a
// cookie. A Session mounts its own instance of every listing it touches,
// so two visitors never share search, sort, page or selection state.
// Idle sessions are dropped by a background sweeper; nothing survives a
// restart.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/JonMunkholm/bizdash/internal/logging"
	"github.com/JonMunkholm/bizdash/internal/tables"
	"github.com/google/uuid"
)

// ErrUnknownTable is returned when an intent names an unregistered table.
var ErrUnknownTable = errors.New("unknown table")

// maxNotices bounds the pending notice queue of one session.
const maxNotices = 20

// Session is one visitor's mounted tables and pending notices.
type Session struct {
	ID string

	mu       sync.Mutex // Serializes intents on this session's tables
	tables   map[string]tables.Handle
	notices  []tables.Notice
	lastSeen time.Time
}

// Notify queues a notice for the next response. Oldest notices are
// dropped once the queue is full. Table hooks call it from inside
// WithTable, while the session is locked.
func (s *Session) Notify(n tables.Notice) {
	s.notices = append(s.notices, n)
	if over := len(s.notices) - maxNotices; over > 0 {
		s.notices = s.notices[over:]
	}
}

// DrainNotices returns and clears the pending notices.
func (s *Session) DrainNotices() []tables.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.notices
	s.notices = nil
	return out
}

// Options configures a Manager.
type Options struct {
	TTL   time.Duration
	Env   tables.Env // Template for mounted tables; Notify is set per session
	Clock func() time.Time
}

// Manager owns every live session.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	env      tables.Env
	now      func() time.Time
}

// NewManager creates an empty Manager.
func NewManager(opts Options) *Manager {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      opts.TTL,
		env:      opts.Env,
		now:      opts.Clock,
	}
}

// Resolve returns the live session with the given ID, or a new session
// when the ID is empty, unknown or expired. created reports the latter.
func (m *Manager) Resolve(id string) (s *Session, created bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if s, ok := m.sessions[id]; ok {
		if now.Sub(s.lastSeen) < m.ttl {
			s.lastSeen = now
			return s, false
		}
		delete(m.sessions, id)
	}

	s = &Session{
		ID:       uuid.NewString(),
		tables:   make(map[string]tables.Handle),
		lastSeen: now,
	}
	m.sessions[s.ID] = s
	return s, true
}

// Len returns the number of sessions, expired ones included until swept.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// WithTable runs fn on the session's instance of the table with the given
// key, mounting and loading it on first use. Calls on one session are
// serialized.
func (m *Manager) WithTable(ctx context.Context, s *Session, key string, fn func(tables.Handle) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.tables[key]
	if !ok {
		mounted, err := m.mount(ctx, key, s.Notify)
		if err != nil {
			return err
		}
		s.tables[key] = mounted
		h = mounted

		logging.FromContext(ctx).Debug("table mounted", "table", key)
	}

	return fn(h)
}

// Mount returns a loaded instance of the table that belongs to no
// session. Its hook notices are discarded.
func (m *Manager) Mount(ctx context.Context, key string) (tables.Handle, error) {
	return m.mount(ctx, key, nil)
}

func (m *Manager) mount(ctx context.Context, key string, notify func(tables.Notice)) (tables.Handle, error) {
	def, found := tables.Get(key)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, key)
	}

	env := m.env
	env.Notify = notify
	h, err := def.Mount(env)
	if err != nil {
		return nil, err
	}
	if err := h.Refresh(ctx); err != nil {
		return nil, err
	}
	return h, nil
}

// Sweep drops sessions idle for longer than the TTL and returns how many
// were removed.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for id, s := range m.sessions {
		if now.Sub(s.lastSeen) >= m.ttl {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// StartSweeper sweeps every interval until ctx is cancelled.
func (m *Manager) StartSweeper(ctx context.Context, interval time.Duration) {
	slog.Info("session sweeper started", "interval", interval, "ttl", m.ttl)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session sweeper stopped")
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				slog.Debug("expired sessions removed", "count", n, "remaining", m.Len())
			}
		}
	}
}
