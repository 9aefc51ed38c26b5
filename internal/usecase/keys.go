package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"
)

// ResultCacheKey — стабильный ключ полного ответа поиска.
func ResultCacheKey(detectionID, gender, currency string) string {
	return hashKey(map[string]any{
		"detection_id": detectionID,
		"gender":       gender,
		"currency":     currency,
	})
}

// VectorCacheKey — стабильный ключ ранжирования по идентичности запроса.
// Вектор округляется до 5 знаков, чтобы ключ не плыл на шуме сериализации.
func VectorCacheKey(vector []float32, label string, genderMatch []string) string {
	rounded := make([]float64, len(vector))
	for i, v := range vector {
		rounded[i] = math.Round(float64(v)*1e5) / 1e5
	}

	if genderMatch == nil {
		genderMatch = []string{}
	}

	return hashKey(map[string]any{
		"vector": rounded,
		"label":  label,
		"gender": genderMatch,
	})
}

func hashKey(base map[string]any) string {
	data, _ := json.Marshal(base) // ключи map сериализуются отсортированными
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
