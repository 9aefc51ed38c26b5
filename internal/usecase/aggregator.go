package usecase

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/trendbook/search-backend/internal/domain"
	"github.com/trendbook/search-backend/pkg/logger"
)

// ProductAggregator сворачивает сырые строки каталога в итоговый список
// товаров: отфильтрованные листинги, одна каноническая запись на ритейлера,
// цены в целевой валюте, порядок по уверенности.
type ProductAggregator struct {
	converter CurrencyConverter
	images    ImageURLResolver
	logger    logger.Logger
}

func NewProductAggregator(converter CurrencyConverter, images ImageURLResolver, logger logger.Logger) *ProductAggregator {
	return &ProductAggregator{
		converter: converter,
		images:    images,
		logger:    logger,
	}
}

// Aggregate обрабатывает продукты в порядке входа; при наличии карты
// уверенности порядок заменяется убыванием уверенности. Продукты без
// единого пригодного листинга не попадают в результат.
func (a *ProductAggregator) Aggregate(products []domain.Product, conf map[string]ConfidenceEntry, currency string) []domain.AggregatedProduct {
	ordered := products
	if conf != nil {
		ordered = make([]domain.Product, len(products))
		copy(ordered, products)
		sort.SliceStable(ordered, func(i, j int) bool {
			return confidenceOf(conf, ordered[i].ID) > confidenceOf(conf, ordered[j].ID)
		})
	}

	result := make([]domain.AggregatedProduct, 0, len(ordered))
	for _, product := range ordered {
		listings, fromPrice := a.aggregateListings(product, currency)
		if len(listings) == 0 {
			// Нет ни одного листинга в наличии с ценой — продукт не публикуется.
			continue
		}

		aggregated := domain.AggregatedProduct{
			ID:        product.ID,
			Brand:     product.Brand,
			FromPrice: fromPrice,
			Currency:  currency,
			Listings:  listings,
			Images:    a.imageURLs(product.Images),
			Index:     len(result),
		}

		if conf != nil {
			c := roundTo(confidenceOf(conf, product.ID), 10)
			aggregated.Confidence = &c
		}

		result = append(result, aggregated)
	}

	return result
}

// aggregateListings отбирает листинги в наличии с ценой и группирует их по
// ритейлеру. Первый выживший листинг ритейлера становится каноническим,
// последующие добавляют только свой размер: их цена не пересматривается.
// Возвращает канонические записи и минимальную каноническую цену.
func (a *ProductAggregator) aggregateListings(product domain.Product, currency string) ([]domain.RetailerListing, float64) {
	byRetailer := make(map[string]int) // retailer id -> позиция канонической записи
	canonical := make([]domain.RetailerListing, 0, len(product.Listings))
	fromPrice := 0.0

	for _, listing := range product.Listings {
		if !listing.InStock || listing.Price == nil {
			// Листинги без наличия или цены не участвуют ни в цене, ни в размерах.
			continue
		}

		if pos, ok := byRetailer[listing.Retailer.ID]; ok {
			if listing.VariantSize != "" {
				canonical[pos].Sizes = append(canonical[pos].Sizes, listing.VariantSize)
			}
			continue
		}

		converted, err := a.convertPrice(*listing.Price, listing.Currency, currency)
		if err != nil {
			a.logger.Warnf(
				"skipping listing %s: currency conversion %s->%s failed: %v",
				listing.ID, listing.Currency, currency, err,
			)
			continue
		}

		var comparePrice *float64
		if listing.ComparePrice != nil {
			compare, err := a.convertPrice(*listing.ComparePrice, listing.Currency, currency)
			if err != nil {
				a.logger.Warnf(
					"skipping listing %s: compare price conversion %s->%s failed: %v",
					listing.ID, listing.Currency, currency, err,
				)
				continue
			}
			comparePrice = &compare
		}

		entry := domain.RetailerListing{
			ID:               listing.ID,
			ShopID:           listing.Retailer.ID,
			Name:             listing.Retailer.Name,
			Domain:           listing.Retailer.Domain,
			Logo:             listing.Retailer.Logo,
			Price:            converted,
			ComparePrice:     comparePrice,
			OriginalCurrency: listing.Currency,
			Currency:         currency,
			Link:             listing.AffiliateURL,
			Sizes:            []string{},
		}
		if listing.VariantSize != "" {
			entry.Sizes = append(entry.Sizes, listing.VariantSize)
		}

		byRetailer[listing.Retailer.ID] = len(canonical)
		canonical = append(canonical, entry)

		// from_price обновляется один раз на каноническую запись.
		if len(canonical) == 1 || converted < fromPrice {
			fromPrice = converted
		}
	}

	return canonical, fromPrice
}

func (a *ProductAggregator) convertPrice(amount float64, from, to string) (float64, error) {
	converted, err := a.converter.Convert(amount, from, to)
	if err != nil {
		return 0, err
	}

	return roundTo(converted, 2), nil
}

// imageURLs сортирует изображения по явному ключу порядка, отбрасывает записи
// без ключа хранилища и резолвит публичные ссылки.
func (a *ProductAggregator) imageURLs(images []domain.ProductImage) []string {
	sorted := make([]domain.ProductImage, len(images))
	copy(sorted, images)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Sort < sorted[j].Sort
	})

	urls := make([]string, 0, len(sorted))
	for _, img := range sorted {
		if img.StorageKey == "" {
			continue
		}
		urls = append(urls, a.images.PublicURL(img.StorageKey))
	}

	return urls
}

func confidenceOf(conf map[string]ConfidenceEntry, productID string) float64 {
	if entry, ok := conf[productID]; ok {
		return entry.Confidence
	}

	return 0
}

func roundTo(value float64, places int32) float64 {
	rounded, _ := decimal.NewFromFloat(value).Round(places).Float64()
	return rounded
}
