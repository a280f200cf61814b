// Package session ties an identity's mirror to the store's push subscriptions.
package session

import (
	"sync"
	"time"

	"github.com/osse101/GiftMarket_Go/internal/domain"
	"github.com/osse101/GiftMarket_Go/internal/mirror"
	"github.com/osse101/GiftMarket_Go/internal/repository"
)

// Session is one open identity. Operations on it are serialised with Lock/Unlock.
type Session struct {
	Identity int64
	Profile  domain.Profile
	Mirror   *mirror.Mirror
	OpenedAt time.Time

	mu        sync.Mutex
	unsubs    []repository.Unsubscribe
	closeOnce sync.Once
	closed    chan struct{}
}

func newSession(identity int64, profile domain.Profile, m *mirror.Mirror) *Session {
	return &Session{
		Identity: identity,
		Profile:  profile,
		Mirror:   m,
		OpenedAt: time.Now(),
		closed:   make(chan struct{}),
	}
}

// Anonymous is true for the placeholder session used without a Telegram identity
func (s *Session) Anonymous() bool {
	return s.Identity == 0
}

// Lock serialises engine operations on this session
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the operation lock
func (s *Session) Unlock() { s.mu.Unlock() }

// Done is closed once the session has been closed
func (s *Session) Done() <-chan struct{} {
	return s.closed
}

// close releases every subscription. Safe to call more than once.
func (s *Session) close() {
	s.closeOnce.Do(func() {
		for _, unsub := range s.unsubs {
			unsub()
		}
		s.unsubs = nil
		close(s.closed)
	})
}
