package memory

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendbook/search-backend/internal/domain"
)

func TestVectorCacheHitAndMiss(t *testing.T) {
	cache := NewVectorCache(4, time.Minute)

	results := []domain.RankedResult{
		{Rank: 0, CandidateID: "c1", ProductID: "p1", FinalDistance: 0.1},
		{Rank: 1, CandidateID: "c2", ProductID: "p2", FinalDistance: 0.4},
	}
	cache.Set("key-a", results)

	got, ok := cache.Get("key-a")
	require.True(t, ok)
	assert.Equal(t, results, got)

	_, ok = cache.Get("key-b")
	assert.False(t, ok)
}

func TestVectorCacheEvictsOldestWhenFull(t *testing.T) {
	cache := NewVectorCache(2, time.Minute)

	for i := 0; i < 3; i++ {
		cache.Set(fmt.Sprintf("key-%d", i), []domain.RankedResult{{CandidateID: fmt.Sprintf("c%d", i)}})
	}

	_, ok := cache.Get("key-0")
	assert.False(t, ok, "oldest entry should have been evicted")

	_, ok = cache.Get("key-2")
	assert.True(t, ok)
}

func TestVectorCacheExpiresEntries(t *testing.T) {
	cache := NewVectorCache(4, 30*time.Millisecond)

	cache.Set("key", []domain.RankedResult{{CandidateID: "c1"}})
	time.Sleep(60 * time.Millisecond)

	_, ok := cache.Get("key")
	assert.False(t, ok)
}
