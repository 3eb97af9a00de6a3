package mem

import (
	"sync"
	"time"
)

// ResetTokenStore hands out single-use password reset tokens. A token is
// bound to one email, expires after its TTL and is gone after one read.
type ResetTokenStore interface {
	Set(token, email string, ttl time.Duration)
	Consume(token string) string
}

type tokenEntry struct {
	email     string
	expiresAt time.Time
}

// ResetTokens is the in-process implementation. Reset tokens live for
// minutes and are worthless after use, so they never touch the database;
// a restart simply voids outstanding ones.
type ResetTokens struct {
	mu   sync.Mutex
	data map[string]tokenEntry
}

func NewResetTokens() *ResetTokens {
	return &ResetTokens{data: make(map[string]tokenEntry)}
}

func (s *ResetTokens) Set(token, email string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[token] = tokenEntry{email: email, expiresAt: time.Now().Add(ttl)}
}

// Consume returns the email bound to token, or "" when the token is unknown
// or expired. The entry is removed either way.
func (s *ResetTokens) Consume(token string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[token]
	if !ok {
		return ""
	}
	delete(s.data, token)
	if time.Now().After(e.expiresAt) {
		return ""
	}
	return e.email
}
