package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Marketplace-api/internal/application/ports"
)

var (
	_ ports.StateStore  = (*StateStore)(nil)
	_ ports.RateLimiter = (*RateLimiter)(nil)
)

// StateStore states OAuth en memoria de un solo proceso. Se usa cuando no hay Redis.
type StateStore struct {
	mu     sync.Mutex
	states map[string]time.Time
}

func NewStateStore() *StateStore {
	return &StateStore{states: make(map[string]time.Time)}
}

func (s *StateStore) Save(_ context.Context, state string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := time.Now()
	for k, exp := range s.states {
		if t.After(exp) {
			delete(s.states, k)
		}
	}
	s.states[state] = t.Add(ttl)
	return nil
}

func (s *StateStore) Consume(_ context.Context, state string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.states[state]
	if !ok {
		return false, nil
	}
	delete(s.states, state)
	return time.Now().Before(exp), nil
}

type window struct {
	count int
	reset time.Time
}

// RateLimiter ventana fija por clave en memoria.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{windows: make(map[string]*window)}
}

func (l *RateLimiter) Allow(_ context.Context, key string, limit int, d time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	t := time.Now()
	w, ok := l.windows[key]
	if !ok || t.After(w.reset) {
		w = &window{reset: t.Add(d)}
		l.windows[key] = w
	}
	w.count++
	return w.count <= limit, nil
}
