package memcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMembersSetGet(t *testing.T) {
	cache := NewMembers()

	_, ok := cache.Get("member-1")
	assert.False(t, ok)

	cache.Set("member-1", "profile-1", time.Minute)

	got, ok := cache.Get("member-1")
	assert.True(t, ok)
	assert.Equal(t, "profile-1", got)
}

func TestMembersExpiry(t *testing.T) {
	cache := NewMembers()
	cache.Set("member-1", "profile-1", -time.Second)

	_, ok := cache.Get("member-1")
	assert.False(t, ok)
}

func TestMembersOverwrite(t *testing.T) {
	cache := NewMembers()
	cache.Set("member-1", "old", time.Minute)
	cache.Set("member-1", "new", time.Minute)

	got, ok := cache.Get("member-1")
	assert.True(t, ok)
	assert.Equal(t, "new", got)
}
