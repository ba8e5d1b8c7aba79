package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrPendingNotFound indicates no pending login exists for the id.
	ErrPendingNotFound = errors.New("pending login not found")
	// ErrPendingExpired indicates the pending login outlived its TTL.
	ErrPendingExpired = errors.New("pending login expired")
	// ErrTooManyAttempts indicates the attempt budget was exhausted.
	ErrTooManyAttempts = errors.New("too many verification attempts")
)

type pendingLogin struct {
	userID    string
	expiresAt time.Time
	attempts  int
}

// PendingStore tracks partially authenticated logins (external identity
// confirmed, two-factor code still outstanding). Entries are single use,
// expire on a wall clock TTL, and carry a bounded attempt counter.
type PendingStore struct {
	entries     map[string]*pendingLogin
	mu          sync.Mutex
	ttl         time.Duration
	maxAttempts int
	done        chan struct{}
	closeOnce   sync.Once
}

// NewPendingStore creates a store and starts its cleanup goroutine.
func NewPendingStore(ttl time.Duration, maxAttempts int) *PendingStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	s := &PendingStore{
		entries:     make(map[string]*pendingLogin),
		ttl:         ttl,
		maxAttempts: maxAttempts,
		done:        make(chan struct{}),
	}
	go s.cleanup()
	return s
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (s *PendingStore) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

func (s *PendingStore) cleanup() {
	ticker := time.NewTicker(s.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			now := time.Now()
			for id, entry := range s.entries {
				if now.After(entry.expiresAt) {
					delete(s.entries, id)
				}
			}
			s.mu.Unlock()
		}
	}
}

// Create registers a pending login for the user and returns its session id.
func (s *PendingStore) Create(userID string) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.entries[id] = &pendingLogin{
		userID:    userID,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()
	return id
}

// Peek returns the user bound to a live pending login without consuming it.
func (s *PendingStore) Peek(id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return "", ErrPendingNotFound
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, id)
		return "", ErrPendingExpired
	}
	return entry.userID, nil
}

// Fail records a wrong code. Once the attempt budget is spent the entry is
// removed and ErrTooManyAttempts is returned.
func (s *PendingStore) Fail(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return ErrPendingNotFound
	}
	entry.attempts++
	if entry.attempts >= s.maxAttempts {
		delete(s.entries, id)
		return ErrTooManyAttempts
	}
	return nil
}

// Claim consumes a live pending login, returning the bound user id. The
// entry is removed so a session id can never be redeemed twice.
func (s *PendingStore) Claim(id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return "", ErrPendingNotFound
	}
	delete(s.entries, id)
	if time.Now().After(entry.expiresAt) {
		return "", ErrPendingExpired
	}
	return entry.userID, nil
}
