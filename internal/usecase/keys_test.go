package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultCacheKeyIsStable(t *testing.T) {
	a := ResultCacheKey("det-1", "female", "DKK")
	b := ResultCacheKey("det-1", "female", "DKK")
	assert.Equal(t, a, b)

	assert.NotEqual(t, a, ResultCacheKey("det-1", "male", "DKK"))
	assert.NotEqual(t, a, ResultCacheKey("det-1", "female", "EUR"))
	assert.NotEqual(t, a, ResultCacheKey("det-2", "female", "DKK"))
}

func TestVectorCacheKeyToleratesFloatNoise(t *testing.T) {
	base := []float32{0.123456789, 0.987654321}
	noisy := []float32{0.12345680, 0.98765431} // различие за пятым знаком

	a := VectorCacheKey(base, "dress", []string{"unisex", "female"})
	b := VectorCacheKey(noisy, "dress", []string{"unisex", "female"})
	assert.Equal(t, a, b)
}

func TestVectorCacheKeyDependsOnFilters(t *testing.T) {
	vec := []float32{0.1, 0.2}

	base := VectorCacheKey(vec, "dress", []string{"unisex", "female"})
	assert.NotEqual(t, base, VectorCacheKey(vec, "shoes", []string{"unisex", "female"}))
	assert.NotEqual(t, base, VectorCacheKey(vec, "dress", []string{"unisex", "male"}))
	assert.NotEqual(t, base, VectorCacheKey(vec, "dress", nil))
}

func TestGenderMatchSet(t *testing.T) {
	assert.Nil(t, GenderMatchSet(GenderWildcard))
	assert.Equal(t, []string{"unisex"}, GenderMatchSet(""))
	assert.Equal(t, []string{"unisex", "female"}, GenderMatchSet("female"))
}
