package dispatch

import (
	"sync"
	"time"
)

// Cooldowns tracks the last successful use of each command per user.
// Entries expire lazily.
type Cooldowns struct {
	mu       sync.Mutex
	lastUsed map[string]time.Time
}

// NewCooldowns creates an empty tracker
func NewCooldowns() *Cooldowns {
	return &Cooldowns{
		lastUsed: make(map[string]time.Time),
	}
}

// Remaining reports how long the user must still wait before running cmd
func (c *Cooldowns) Remaining(cmd *Command, userID string, now time.Time) (time.Duration, bool) {
	if cmd.Cooldown <= 0 {
		return 0, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := cooldownKey(cmd, userID)
	last, ok := c.lastUsed[key]
	if !ok {
		return 0, false
	}

	remaining := last.Add(cmd.Cooldown).Sub(now)
	if remaining <= 0 {
		delete(c.lastUsed, key)
		return 0, false
	}
	return remaining, true
}

// Record starts the cooldown for the user
func (c *Cooldowns) Record(cmd *Command, userID string, now time.Time) {
	if cmd.Cooldown <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastUsed[cooldownKey(cmd, userID)] = now
}

// Len returns the number of tracked entries, including expired ones not yet swept
func (c *Cooldowns) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lastUsed)
}

func cooldownKey(cmd *Command, userID string) string {
	return cmd.Name + ":" + userID
}
