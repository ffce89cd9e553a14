package cache

import (
	"testing"
	"time"
)

func TestPageSessionCache_FindRefreshesIdleTimer(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := NewPageSessionCache[string](10 * time.Minute)
	c.now = func() time.Time { return now }

	c.AddSession("tok", "state")

	now = now.Add(8 * time.Minute)
	if _, ok := c.FindSessionBySessionToken("tok"); !ok {
		t.Fatalf("expected session to be live")
	}
	now = now.Add(8 * time.Minute)
	v, ok := c.FindSessionBySessionToken("tok")
	if !ok || v != "state" {
		t.Fatalf("expected session kept alive by previous lookup, got %q %v", v, ok)
	}
}

func TestPageSessionCache_EvictsIdleSessions(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := NewPageSessionCache[string](time.Minute)
	c.now = func() time.Time { return now }

	var evicted []string
	c.OnEvict(func(v string) { evicted = append(evicted, v) })

	c.AddSession("a", "first")
	now = now.Add(2 * time.Minute)
	if _, ok := c.FindSessionBySessionToken("a"); ok {
		t.Fatalf("expected idle session to be evicted")
	}
	if len(evicted) != 1 || evicted[0] != "first" {
		t.Fatalf("expected eviction callback for first, got %v", evicted)
	}

	c.AddSession("b", "second")
	now = now.Add(2 * time.Minute)
	c.AddSession("c", "third")
	if c.Len() != 1 {
		t.Fatalf("expected sweep on add to leave 1 session, got %d", c.Len())
	}
	if len(evicted) != 2 || evicted[1] != "second" {
		t.Fatalf("expected eviction callback for second, got %v", evicted)
	}
}

func TestPageSessionCache_Delete(t *testing.T) {
	c := NewPageSessionCache[int](0)
	c.AddSession("tok", 1)
	c.DeleteSessionBySessionToken("tok")
	if _, ok := c.FindSessionBySessionToken("tok"); ok {
		t.Fatalf("expected deleted session to be gone")
	}
}
