package session

import (
	"time"

	"github.com/Velocidex/ttlcache/v2"
	"github.com/google/uuid"

	"github.com/unireport/viewer/internal/application"
)

// Manager owns the live sessions. Entries expire after idleTTL without a
// touch so abandoned sessions do not pin documents in memory; the size
// limit evicts the oldest session when too many are open at once.
type Manager struct {
	cache *ttlcache.Cache
	clock application.Clock
}

func NewManager(clock application.Clock, idleTTL time.Duration, maxSessions int) *Manager {
	cache := ttlcache.NewCache()
	if idleTTL > 0 {
		_ = cache.SetTTL(idleTTL)
	}
	if maxSessions > 0 {
		cache.SetCacheSizeLimit(maxSessions)
	}
	return &Manager{cache: cache, clock: clock}
}

// Create opens a fresh session.
func (m *Manager) Create() *Session {
	s := newSession(uuid.New().String(), m.clock.Now())
	_ = m.cache.Set(s.id, s)
	return s
}

// Get returns a live session, extending its idle deadline.
func (m *Manager) Get(id string) (*Session, error) {
	value, err := m.cache.Get(id)
	if err != nil {
		return nil, ErrNotFound
	}
	s, ok := value.(*Session)
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Count reports the number of live sessions.
func (m *Manager) Count() int {
	return m.cache.Count()
}

// Close stops the expiry loop.
func (m *Manager) Close() {
	_ = m.cache.Close()
}
