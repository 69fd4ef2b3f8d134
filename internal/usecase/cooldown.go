package usecase

import (
	"sync"
	"time"
)

// Cooldown is a per-key minimum interval between allowed calls. It bounds
// how often order listing hits storage when the UI re-requests rapidly;
// not a correctness mechanism, just load shedding.
type Cooldown struct {
	mu       sync.Mutex
	interval time.Duration
	last     map[string]time.Time
	now      func() time.Time
}

func NewCooldown(interval time.Duration) *Cooldown {
	return &Cooldown{
		interval: interval,
		last:     make(map[string]time.Time),
		now:      time.Now,
	}
}

// Allow reports whether key may proceed, and if so starts its window.
func (c *Cooldown) Allow(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if prev, ok := c.last[key]; ok && now.Sub(prev) < c.interval {
		return false
	}
	c.last[key] = now
	return true
}

// Reset forgets key so the next Allow passes immediately.
func (c *Cooldown) Reset(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.last, key)
}
