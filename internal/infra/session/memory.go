package session

import (
	"context"
	"sync"
	"time"

	"github.com/xavierca1/gym-leadbot/internal/entity"
	"github.com/xavierca1/gym-leadbot/pkg/logger"
)

// MemoryStore keeps sessions in process. Entries idle for longer than ttl
// start over in MENU.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

type memoryEntry struct {
	mu       sync.Mutex
	session  entity.Session
	lastUsed time.Time
	inFlight int
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *MemoryStore) Update(_ context.Context, phone string, fn func(*entity.Session) error) (*entity.Session, error) {
	e := s.acquire(phone)
	defer s.release(e)

	e.mu.Lock()
	defer e.mu.Unlock()

	working := e.session
	if err := fn(&working); err != nil {
		return nil, err
	}
	e.session = working
	e.lastUsed = s.now()

	out := working
	return &out, nil
}

func (s *MemoryStore) Get(_ context.Context, phone string) (*entity.Session, error) {
	s.mu.Lock()
	e, ok := s.sessions[phone]
	s.mu.Unlock()
	if !ok {
		return entity.NewSession(phone), nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if s.expired(e) {
		return entity.NewSession(phone), nil
	}
	out := e.session
	return &out, nil
}

func (s *MemoryStore) acquire(phone string) *memoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[phone]
	if !ok || (e.inFlight == 0 && s.expired(e)) {
		e = &memoryEntry{session: *entity.NewSession(phone), lastUsed: s.now()}
		s.sessions[phone] = e
	}
	e.inFlight++
	return e
}

func (s *MemoryStore) release(e *memoryEntry) {
	s.mu.Lock()
	e.inFlight--
	s.mu.Unlock()
}

func (s *MemoryStore) expired(e *memoryEntry) bool {
	return s.ttl > 0 && s.now().Sub(e.lastUsed) > s.ttl
}

// Sweep drops idle expired entries and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for phone, e := range s.sessions {
		if e.inFlight == 0 && s.expired(e) {
			delete(s.sessions, phone)
			removed++
		}
	}
	return removed
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweeper is an in-process store that drops its own expired entries.
type Sweeper interface {
	Sweep() int
}

// StartJanitor sweeps every store every interval until ctx is done.
func StartJanitor(ctx context.Context, interval time.Duration, stores ...Sweeper) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := 0
			for _, st := range stores {
				removed += st.Sweep()
			}
			if removed > 0 {
				logger.Debug().Int("removed", removed).Msg("expired entries swept")
			}
		}
	}
}
