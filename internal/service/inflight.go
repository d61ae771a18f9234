package service

import "sync"

// InflightGuard tracks write operations currently in flight so that an
// identical concurrent submission can be rejected immediately instead of
// producing a duplicate. Keys are per-operation, per-user.
//
// This intentionally fails fast rather than coalescing: the second caller
// gets an error, not the first caller's result.
type InflightGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

// NewInflightGuard returns an empty guard.
func NewInflightGuard() *InflightGuard {
	return &InflightGuard{active: make(map[string]struct{})}
}

// Begin marks key as in flight. It returns false if the key is already
// active, in which case the caller must not proceed and must not call End.
func (g *InflightGuard) Begin(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.active[key]; ok {
		return false
	}
	g.active[key] = struct{}{}
	return true
}

// End releases key. Safe to call via defer after a successful Begin.
func (g *InflightGuard) End(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, key)
}
