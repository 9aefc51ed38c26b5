package rerank

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoClusterGallery() ([]float32, [][]float32) {
	query := []float32{0.98, 0.05}
	gallery := [][]float32{
		{1.00, 0.02},
		{0.97, 0.08},
		{0.99, 0.04},
		{0.03, 0.99},
		{0.05, 0.97},
	}
	return query, gallery
}

func TestRankTwoClusters(t *testing.T) {
	query, gallery := twoClusterGallery()

	positions := Rank(query, gallery, Params{K1: 3, K2: 2, Lambda: 0.3})
	require.Len(t, positions, len(gallery))

	// Три кандидата из кластера запроса строго впереди двух дальних.
	for i, pos := range positions {
		if i < 3 {
			assert.Less(t, pos.Index, 3, "position %d", i)
		} else {
			assert.GreaterOrEqual(t, pos.Index, 3, "position %d", i)
		}
	}
}

func TestRankDistancesNonDecreasing(t *testing.T) {
	query, gallery := twoClusterGallery()

	positions := Rank(query, gallery, DefaultParams())
	for i := 1; i < len(positions); i++ {
		assert.LessOrEqual(t, positions[i-1].FinalDistance, positions[i].FinalDistance)
	}
}

func TestRankDeterminism(t *testing.T) {
	query, gallery := twoClusterGallery()
	params := Params{K1: 3, K2: 2, Lambda: 0.3}

	first := Rank(query, gallery, params)
	second := Rank(query, gallery, params)

	require.Equal(t, first, second)
}

func TestRankLambdaOneIsCosineOrder(t *testing.T) {
	query, gallery := twoClusterGallery()

	positions := Rank(query, gallery, Params{K1: 3, K2: 2, Lambda: 1})

	expected := make([]int, len(gallery))
	for i := range expected {
		expected[i] = i
	}
	sort.SliceStable(expected, func(a, b int) bool {
		return cosineDistance(query, gallery[expected[a]]) < cosineDistance(query, gallery[expected[b]])
	})

	got := make([]int, len(positions))
	for i, pos := range positions {
		got[i] = pos.Index
	}
	assert.Equal(t, expected, got)
}

func TestRankSelfMatchIsMinimum(t *testing.T) {
	query, gallery := twoClusterGallery()
	gallery = append(gallery, append([]float32(nil), query...)) // точная копия запроса

	positions := Rank(query, gallery, Params{K1: 3, K2: 2, Lambda: 0.3})

	selfIdx := len(gallery) - 1
	var selfDistance float64
	found := false
	for _, pos := range positions {
		if pos.Index == selfIdx {
			selfDistance = pos.FinalDistance
			found = true
		}
	}
	require.True(t, found)

	const eps = 1e-9
	for _, pos := range positions {
		assert.LessOrEqual(t, selfDistance, pos.FinalDistance+eps)
	}
}

func TestRankEmptyGallery(t *testing.T) {
	positions := Rank([]float32{1, 0}, nil, DefaultParams())
	assert.Empty(t, positions)
}

func TestRankTinyGallery(t *testing.T) {
	query := []float32{1, 0}

	// Глубины больше размера галереи зажимаются, паники нет.
	positions := Rank(query, [][]float32{{0.9, 0.1}}, DefaultParams())
	require.Len(t, positions, 1)
	assert.Equal(t, 0, positions[0].Index)

	positions = Rank(query, [][]float32{{0.9, 0.1}, {0, 1}}, DefaultParams())
	require.Len(t, positions, 2)
	assert.Equal(t, 0, positions[0].Index)
}

func TestRankInputNotModified(t *testing.T) {
	query, gallery := twoClusterGallery()
	queryCopy := append([]float32(nil), query...)
	galleryCopy := make([][]float32, len(gallery))
	for i := range gallery {
		galleryCopy[i] = append([]float32(nil), gallery[i]...)
	}

	Rank(query, gallery, DefaultParams())

	assert.Equal(t, queryCopy, query)
	assert.Equal(t, galleryCopy, gallery)
}
