package dedupe_test

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/DeafMist/disaster-radar/internal/dedupe"
)

func TestCacheSeenDuplicate(t *testing.T) {
	cache := dedupe.NewCache(10, time.Minute, nil)
	require.False(t, cache.IsSeen("post-1"))
	cache.MarkSeen("post-1")
	require.True(t, cache.IsSeen("post-1"))
}

func TestCacheTTLExpiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cache := dedupe.NewCache(10, time.Minute, clock)

	cache.MarkSeen("post-2")
	clock.Advance(59 * time.Second)
	require.True(t, cache.IsSeen("post-2"))

	clock.Advance(2 * time.Second)
	require.False(t, cache.IsSeen("post-2"))
}

func TestCacheExpiredEntriesCompacted(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cache := dedupe.NewCache(10, time.Minute, clock)

	cache.MarkSeen("old")
	clock.Advance(2 * time.Minute)
	cache.MarkSeen("new")

	require.Equal(t, 1, cache.Len())
	require.True(t, cache.IsSeen("new"))
}

func TestCacheCapacityEvictsOldest(t *testing.T) {
	cache := dedupe.NewCache(1, time.Minute, nil)
	cache.MarkSeen("first")
	cache.MarkSeen("second")

	require.False(t, cache.IsSeen("first"))
	require.True(t, cache.IsSeen("second"))
}

func TestCacheRemarkKeepsKey(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cache := dedupe.NewCache(2, time.Minute, clock)

	cache.MarkSeen("a")
	clock.Advance(time.Second)
	cache.MarkSeen("b")
	clock.Advance(time.Second)
	cache.MarkSeen("a")
	clock.Advance(time.Second)
	cache.MarkSeen("c")

	require.True(t, cache.IsSeen("a"))
	require.True(t, cache.IsSeen("c"))
	require.False(t, cache.IsSeen("b"))
}
