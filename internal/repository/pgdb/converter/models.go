package converter

import "time"

// DetectionModel представляет запись таблицы detections в PostgreSQL.
type DetectionModel struct {
	ID         string    `db:"id"`
	SearchID   string    `db:"search_id"`
	Label      string    `db:"label"`
	Gender     string    `db:"gender"`
	Confidence float64   `db:"confidence"`
	BBox       []float64 `db:"bbox"`
	Embedding  []float32 `db:"embedding"`
}

// SearchModel представляет запись таблицы searches в PostgreSQL.
type SearchModel struct {
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	StorageKey string    `db:"s3_key"`
	CreatedAt  time.Time `db:"created_at"`
}

// RetailerModel представляет запись таблицы retailers в PostgreSQL.
type RetailerModel struct {
	ID     string `db:"id"`
	Name   string `db:"name"`
	Domain string `db:"domain"`
	Logo   string `db:"bf_logo"`
}

// ProductModel представляет базовую запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID    string `db:"id"`
	Brand string `db:"brand"`
}

// ProductImageModel представляет запись таблицы product_images в PostgreSQL.
type ProductImageModel struct {
	ProductID  string `db:"product_id"`
	StorageKey string `db:"s3_key"`
	Sort       int    `db:"sort"`
}

// ListingModel представляет строку листинга с присоединёнными ритейлером и вариантом.
type ListingModel struct {
	ID           string   `db:"id"`
	ProductID    string   `db:"product_id"`
	Price        *float64 `db:"price"`
	ComparePrice *float64 `db:"compare_price"`
	Currency     string   `db:"currency"`
	InStock      bool     `db:"in_stock"`
	AffiliateURL string   `db:"affiliate_url"`
	VariantSize  *string  `db:"size"`
	Retailer     RetailerModel
}
