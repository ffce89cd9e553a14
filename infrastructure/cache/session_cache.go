package cache

import (
	"sync"
	"time"
)

type sessionEntry[T any] struct {
	value    T
	lastSeen time.Time
}

// PageSessionCache stores per-page-session state by token and evicts idle entries.
type PageSessionCache[T any] struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry[T]
	idleTTL  time.Duration
	onEvict  func(T)
	now      func() time.Time
}

func NewPageSessionCache[T any](idleTTL time.Duration) *PageSessionCache[T] {
	return &PageSessionCache[T]{
		sessions: make(map[string]*sessionEntry[T]),
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// OnEvict registers a callback run for every session dropped for idleness.
func (c *PageSessionCache[T]) OnEvict(fn func(T)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEvict = fn
}

func (c *PageSessionCache[T]) AddSession(token string, value T) {
	c.mu.Lock()
	now := c.now()
	evicted := c.sweep(now)
	c.sessions[token] = &sessionEntry[T]{value: value, lastSeen: now}
	onEvict := c.onEvict
	c.mu.Unlock()

	if onEvict != nil {
		for _, v := range evicted {
			onEvict(v)
		}
	}
}

// FindSessionBySessionToken returns the live session and refreshes its idle timer.
func (c *PageSessionCache[T]) FindSessionBySessionToken(token string) (T, bool) {
	c.mu.Lock()
	var zero T
	entry, ok := c.sessions[token]
	if !ok {
		c.mu.Unlock()
		return zero, false
	}
	now := c.now()
	if c.idleTTL > 0 && now.Sub(entry.lastSeen) > c.idleTTL {
		delete(c.sessions, token)
		onEvict := c.onEvict
		c.mu.Unlock()
		if onEvict != nil {
			onEvict(entry.value)
		}
		return zero, false
	}
	entry.lastSeen = now
	c.mu.Unlock()
	return entry.value, true
}

func (c *PageSessionCache[T]) DeleteSessionBySessionToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, token)
}

func (c *PageSessionCache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions)
}

func (c *PageSessionCache[T]) sweep(now time.Time) []T {
	if c.idleTTL <= 0 {
		return nil
	}
	var evicted []T
	for token, entry := range c.sessions {
		if now.Sub(entry.lastSeen) > c.idleTTL {
			evicted = append(evicted, entry.value)
			delete(c.sessions, token)
		}
	}
	return evicted
}
