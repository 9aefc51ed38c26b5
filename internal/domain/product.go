package domain

// Retailer описывает магазин-поставщик листингов
type Retailer struct {
	ID     string
	Name   string
	Domain string
	Logo   string
}

// ProductImage описывает изображение продукта в объектном хранилище
type ProductImage struct {
	StorageKey string
	Sort       int
}

// ListingRecord — сырой листинг продукта у конкретного ритейлера (строка каталога).
type ListingRecord struct {
	ID           string
	Retailer     Retailer
	Price        *float64
	ComparePrice *float64
	Currency     string
	InStock      bool
	AffiliateURL string
	VariantSize  string
}

// Product — сырая строка каталога с вложенными изображениями и листингами.
type Product struct {
	ID       string
	Brand    string
	Images   []ProductImage
	Listings []ListingRecord
}

// RetailerListing — каноническая запись по одному ритейлеру после агрегации:
// первая выжившая цена плюс собранные размеры остальных листингов.
type RetailerListing struct {
	ID               string   `json:"id"`
	ShopID           string   `json:"shop_id"`
	Name             string   `json:"name"`
	Domain           string   `json:"domain"`
	Logo             string   `json:"logo"`
	Price            float64  `json:"price"`
	ComparePrice     *float64 `json:"compare_price"`
	OriginalCurrency string   `json:"original_currency"`
	Currency         string   `json:"currency"`
	Link             string   `json:"link"`
	Sizes            []string `json:"sizes"`
}

// AggregatedProduct — итоговая запись продукта в ответе поиска.
// Инвариант: Listings не пуст, каждый листинг был in-stock с ненулевой ценой.
type AggregatedProduct struct {
	ID         string            `json:"id"`
	Brand      string            `json:"brand"`
	FromPrice  float64           `json:"from_price"`
	Currency   string            `json:"currency"`
	Listings   []RetailerListing `json:"listings"`
	Images     []string          `json:"images"`
	Confidence *float64          `json:"confidence"`
	Index      int               `json:"index"`
}
