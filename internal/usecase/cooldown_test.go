package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCooldownAllowWithinInterval(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	c := NewCooldown(5 * time.Second)
	c.now = func() time.Time { return now }

	assert.True(t, c.Allow("alice"))
	assert.False(t, c.Allow("alice"))

	now = now.Add(4 * time.Second)
	assert.False(t, c.Allow("alice"))

	now = now.Add(time.Second)
	assert.True(t, c.Allow("alice"))
}

func TestCooldownKeysAreIndependent(t *testing.T) {
	c := NewCooldown(time.Minute)
	assert.True(t, c.Allow("alice"))
	assert.True(t, c.Allow("bob"))
	assert.False(t, c.Allow("alice"))
}

func TestCooldownReset(t *testing.T) {
	c := NewCooldown(time.Minute)
	assert.True(t, c.Allow("alice"))
	assert.False(t, c.Allow("alice"))

	c.Reset("alice")
	assert.True(t, c.Allow("alice"))
}
