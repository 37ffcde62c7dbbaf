package memcache

import (
	"sync"
	"time"
)

// MemberCache keeps upstream member profiles for a short TTL so the matches
// listing does not refetch every profile on every request. Authorization
// checks (sendGift) never read from here; they always hit the live API.
type MemberCache interface {
	Get(memberID string) (interface{}, bool)
	Set(memberID string, profile interface{}, ttl time.Duration)
}

type entry struct {
	profile   interface{}
	expiresAt time.Time
}

type Members struct {
	mu   sync.RWMutex
	data map[string]entry
}

func NewMembers() *Members {
	return &Members{
		data: make(map[string]entry),
	}
}

func (s *Members) Get(memberID string) (interface{}, bool) {
	s.mu.RLock()
	e, ok := s.data[memberID]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.data, memberID) // cleanup expired
		s.mu.Unlock()
		return nil, false
	}
	return e.profile, true
}

func (s *Members) Set(memberID string, profile interface{}, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[memberID] = entry{
		profile:   profile,
		expiresAt: time.Now().Add(ttl),
	}
}
