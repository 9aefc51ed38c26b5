package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendbook/search-backend/internal/domain"
	"github.com/trendbook/search-backend/internal/rerank"
)

func TestBuildConfidenceMapAnchorsFirstOccurrence(t *testing.T) {
	ranked := []domain.RankedResult{
		{Rank: 1, CandidateID: "c1", ProductID: "p1", FinalDistance: 0.1},
		{Rank: 2, CandidateID: "c2", ProductID: "p2", FinalDistance: 0.3},
		{Rank: 3, CandidateID: "c3", ProductID: "p1", FinalDistance: 0.6},
	}

	conf, ids := BuildConfidenceMap(ranked)

	assert.Equal(t, []string{"p1", "p2"}, ids)
	require.Contains(t, conf, "p1")
	assert.Equal(t, 0, conf["p1"].FirstRank)
	assert.InDelta(t, 1.0/1.1, conf["p1"].Confidence, 1e-12, "later occurrence must not override the anchor")
	assert.Equal(t, 1, conf["p2"].FirstRank)
}

func TestBuildConfidenceMapSkipsCandidatesWithoutProduct(t *testing.T) {
	ranked := []domain.RankedResult{
		{Rank: 1, CandidateID: "c1", ProductID: "", FinalDistance: 0.05},
		{Rank: 2, CandidateID: "c2", ProductID: "p1", FinalDistance: 0.2},
	}

	conf, ids := BuildConfidenceMap(ranked)

	assert.Equal(t, []string{"p1"}, ids)
	assert.Len(t, conf, 1)
	// Кандидат без продукта занимает позицию, но якорем не становится.
	assert.Equal(t, 1, conf["p1"].FirstRank)
}

func TestBuildConfidenceMapFormula(t *testing.T) {
	conf, _ := BuildConfidenceMap([]domain.RankedResult{
		{Rank: 1, CandidateID: "c1", ProductID: "p1", FinalDistance: 0},
		{Rank: 2, CandidateID: "c2", ProductID: "p2", FinalDistance: 1},
	})

	assert.InDelta(t, 1.0, conf["p1"].Confidence, 1e-12)
	assert.InDelta(t, 0.5, conf["p2"].Confidence, 1e-12)
}

func TestAssembleRankingMapsCandidateIdentities(t *testing.T) {
	candidates := []domain.Candidate{
		{ID: "far", Vector: []float32{0, 1}, ProductID: "p-far", ImageID: "img-far", AnnScore: 0.2},
		{ID: "near", Vector: []float32{1, 0}, ProductID: "p-near", ImageID: "img-near", AnnScore: 0.9},
		{ID: "mid", Vector: []float32{0.7, 0.7}, ProductID: "p-mid", ImageID: "img-mid", AnnScore: 0.5},
	}

	ranked := AssembleRanking([]float32{1, 0}, candidates, rerank.Params{K1: 2, K2: 1, Lambda: 0.3})

	require.Len(t, ranked, 3)
	assert.Equal(t, "near", ranked[0].CandidateID)
	assert.Equal(t, "p-near", ranked[0].ProductID)
	assert.Equal(t, "img-near", ranked[0].ImageID)

	for i, r := range ranked {
		assert.Equal(t, i+1, r.Rank)
	}
	assert.Equal(t, "far", ranked[2].CandidateID)
}

func TestAssembleRankingEmptyInput(t *testing.T) {
	assert.Nil(t, AssembleRanking([]float32{1, 0}, nil, rerank.DefaultParams()))
}
