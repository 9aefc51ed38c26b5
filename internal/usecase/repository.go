package usecase

import (
	"context"

	"github.com/trendbook/search-backend/internal/domain"
)

// CandidateRepository — граница ANN-индекса: выборка ближайших кандидатов
// под категориальным фильтром и чтение сохранённых векторов.
type CandidateRepository interface {
	// SearchCandidates возвращает до top-k кандидатов в порядке нативного
	// score индекса. genderMatch == nil снимает фильтр по полу целиком.
	SearchCandidates(ctx context.Context, vector []float32, label string, genderMatch []string) ([]domain.Candidate, error)
	GetImageVector(ctx context.Context, imageID string) ([]float32, error)
}

type DetectionRepository interface {
	GetDetection(ctx context.Context, id string) (*domain.Detection, error)
}

// CatalogRepository — граница хранилища каталога.
type CatalogRepository interface {
	GetProductsByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	GetBrands(ctx context.Context) ([]string, error)
	GetPrimaryImageID(ctx context.Context, productID string) (string, error)
}

type RetailerRepository interface {
	GetActiveRetailers(ctx context.Context, market string) ([]domain.Retailer, error)
}

type RatesRepository interface {
	// GetRates возвращает курсы валют к базовой валюте.
	GetRates(ctx context.Context) (map[string]float64, error)
}

type LikeRepository interface {
	Like(ctx context.Context, userID, productID string) error
	Unlike(ctx context.Context, userID, productID string) error
	GetLikedProductIDs(ctx context.Context, userID string) ([]string, error)
	CountLikes(ctx context.Context, userID string) (int, error)
}

type SearchRepository interface {
	Save(ctx context.Context, search *domain.Search) (*domain.Search, error)
	GetByID(ctx context.Context, id string) (*domain.Search, error)
	GetRecent(ctx context.Context, userID string, limit int) ([]domain.Search, error)
}

// ResultCacheRepository кэширует готовый ответ поиска целиком (короткий TTL).
type ResultCacheRepository interface {
	GetSearchRes(ctx context.Context, key string) (*SearchRes, error)
	SetSearchRes(ctx context.Context, key string, res *SearchRes) error
}

// RankedCache — in-process кэш ре-ранжированных кандидатов, ограниченный
// ёмкостью и TTL. Конкурентные промахи по одному ключу допускают повторное
// вычисление: пересчёт идемпотентен.
type RankedCache interface {
	Get(key string) ([]domain.RankedResult, bool)
	Set(key string, results []domain.RankedResult)
}
