package usecase

import (
	"github.com/trendbook/search-backend/internal/domain"
	"github.com/trendbook/search-backend/internal/rerank"
)

// AssembleRanking прогоняет кандидатов через ре-ранжирование и раскладывает
// уточнённый порядок обратно на идентичности кандидатов.
func AssembleRanking(query []float32, candidates []domain.Candidate, params rerank.Params) []domain.RankedResult {
	if len(candidates) == 0 {
		return nil
	}

	gallery := make([][]float32, len(candidates))
	for i, c := range candidates {
		gallery[i] = c.Vector
	}

	positions := rerank.Rank(query, gallery, params)

	ranked := make([]domain.RankedResult, len(positions))
	for i, pos := range positions {
		c := candidates[pos.Index]
		ranked[i] = domain.RankedResult{
			Rank:          i + 1,
			CandidateID:   c.ID,
			ProductID:     c.ProductID,
			ImageID:       c.ImageID,
			FinalDistance: pos.FinalDistance,
			AnnScore:      c.AnnScore,
		}
	}

	return ranked
}

// BuildConfidenceMap сворачивает ранжирование в карту уверенности по продуктам.
// Несколько кандидатов (разные изображения) могут указывать на один продукт:
// якорем становится только первое (лучшее) вхождение, остальные игнорируются.
// Кандидаты без product_id в карту не попадают, но из ранжирования не удаляются.
// Возвращает также список уникальных product_id в порядке первого вхождения.
func BuildConfidenceMap(ranked []domain.RankedResult) (map[string]ConfidenceEntry, []string) {
	confidence := make(map[string]ConfidenceEntry, len(ranked))
	ids := make([]string, 0, len(ranked))

	for i, r := range ranked {
		if r.ProductID == "" {
			continue
		}
		if _, ok := confidence[r.ProductID]; ok {
			continue
		}

		confidence[r.ProductID] = ConfidenceEntry{
			FirstRank:  i,
			Confidence: 1.0 / (1.0 + r.FinalDistance),
		}
		ids = append(ids, r.ProductID)
	}

	return confidence, ids
}
