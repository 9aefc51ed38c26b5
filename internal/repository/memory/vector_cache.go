// Package memory содержит in-process кэши без внешних зависимостей по данным.
package memory

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/trendbook/search-backend/internal/domain"
)

// VectorCache — LRU-кэш результатов ре-ранжирования с ограниченной ёмкостью
// и TTL. Потокобезопасен, вытесняет самые старые записи при переполнении.
type VectorCache struct {
	lru *expirable.LRU[string, []domain.RankedResult]
}

func NewVectorCache(size int, ttl time.Duration) *VectorCache {
	return &VectorCache{
		lru: expirable.NewLRU[string, []domain.RankedResult](size, nil, ttl),
	}
}

func (c *VectorCache) Get(key string) ([]domain.RankedResult, bool) {
	return c.lru.Get(key)
}

func (c *VectorCache) Set(key string, results []domain.RankedResult) {
	c.lru.Add(key, results)
}
