package usecase

import (
	"time"

	"github.com/trendbook/search-backend/internal/domain"
)

// GenderWildcard — значение пола, снимающее фильтр по полу.
const GenderWildcard = "all"

// SEARCH USECASE

// SearchDetectionReq — запрос поиска похожих товаров по детекции.
type SearchDetectionReq struct {
	DetectionID string
	Gender      string
	Currency    string
}

// SimilarProductsReq — запрос товаров, похожих на существующий товар каталога.
type SimilarProductsReq struct {
	ProductID string
	Label     string
	Gender    string
	Currency  string
}

// SearchRes — итоговый упорядоченный список товаров.
type SearchRes struct {
	Products []domain.AggregatedProduct `json:"products"`
}

// ConfidenceEntry — якорь уверенности продукта: первое (лучшее) вхождение
// среди ре-ранжированных кандидатов.
type ConfidenceEntry struct {
	FirstRank  int     // нулевая нумерация по позиции в ранжировании
	Confidence float64 // 1 / (1 + final_distance), в (0, 1]
}

// MANAGE USECASE

type GetFiltersReq struct {
	Market   string
	Gender   string
	Currency string
}

// FilterOption — один пункт меню фильтров.
type FilterOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Icon  string `json:"icon,omitempty"`
}

// FilterGroup — группа фильтров для клиента.
type FilterGroup struct {
	Key         string         `json:"key"`
	Label       string         `json:"label"`
	MultiSelect bool           `json:"multiSelect"`
	Selected    []string       `json:"selected,omitempty"`
	Options     []FilterOption `json:"options"`
}

type GetFiltersRes struct {
	Filters []FilterGroup `json:"filters"`
}

type GetDetailsReq struct {
	UserID string
}

// SearchPreview — превью сохранённого поиска для профиля.
type SearchPreview struct {
	ID       string `json:"id"`
	ImageURL string `json:"image_url"`
}

type GetDetailsRes struct {
	SearchesCount      int             `json:"searchesCount"`
	Searches           []SearchPreview `json:"searches"`
	LikedProductsCount int             `json:"likedProductsCount"`
}

type GetSearchReq struct {
	SearchID string
}

// DetectionInfo — детекция в составе сохранённого поиска.
type DetectionInfo struct {
	ID         string    `json:"id"`
	Label      string    `json:"label"`
	Confidence float64   `json:"confidence"`
	BBox       []float64 `json:"bbox"`
}

type GetSearchRes struct {
	ID         string          `json:"id"`
	ImageURL   string          `json:"image_url"`
	Detections []DetectionInfo `json:"detections"`
}

// SaveSearchReq — запрос внешнего vision-пайплайна на сохранение поиска
// вместе с его детекциями.
type SaveSearchReq struct {
	UserID     string         `json:"user_id"`
	StorageKey string         `json:"s3_key"`
	Detections []NewDetection `json:"detections"`
}

type NewDetection struct {
	Label      string    `json:"label"`
	Gender     string    `json:"gender"`
	Confidence float64   `json:"confidence"`
	BBox       []float64 `json:"bbox"`
	Embedding  []float32 `json:"embedding"`
}

type SaveSearchRes struct {
	SearchID string `json:"search_id"`
}

type LikeReq struct {
	UserID    string
	ProductID string
}

type GetLikedReq struct {
	UserID   string
	Currency string
}

// INFRASTRUCTURE

// SearchPerformedEvent — аналитическое событие выполненного поиска.
type SearchPerformedEvent struct {
	DetectionID  string    `json:"detection_id"`
	Label        string    `json:"label"`
	Gender       string    `json:"gender"`
	ProductCount int       `json:"product_count"`
	Timestamp    time.Time `json:"timestamp"`
}

// MAPPERS

func NewSearchRes(products []domain.AggregatedProduct) *SearchRes {
	return &SearchRes{Products: products}
}

func NewSearchDetectionReq(detectionID, gender, currency string) *SearchDetectionReq {
	return &SearchDetectionReq{
		DetectionID: detectionID,
		Gender:      gender,
		Currency:    currency,
	}
}

func NewSimilarProductsReq(productID, label, gender, currency string) *SimilarProductsReq {
	return &SimilarProductsReq{
		ProductID: productID,
		Label:     label,
		Gender:    gender,
		Currency:  currency,
	}
}

func NewSearchPerformedEvent(detectionID, label, gender string, productCount int) *SearchPerformedEvent {
	return &SearchPerformedEvent{
		DetectionID:  detectionID,
		Label:        label,
		Gender:       gender,
		ProductCount: productCount,
		Timestamp:    time.Now().UTC(),
	}
}

// GenderMatchSet строит множество значений пола для фильтра индекса:
// всегда включает unisex, добавляет пол вызывающего, если он задан.
// Для GenderWildcard возвращает nil — фильтр по полу снимается целиком
// (а не вырождается в unisex-only).
func GenderMatchSet(gender string) []string {
	if gender == GenderWildcard {
		return nil
	}

	match := []string{"unisex"}
	if gender != "" {
		match = append(match, gender)
	}

	return match
}
