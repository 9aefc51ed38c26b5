// Package converter преобразует модели PostgreSQL в доменные сущности.
// Конвертеры написаны вручную: генерируемого кода в репозитории нет.
package converter

import "github.com/trendbook/search-backend/internal/domain"

type DetectionConverter struct{}

func NewDetectionConverter() DetectionConverter {
	return DetectionConverter{}
}

func (DetectionConverter) ToEntity(model *DetectionModel) *domain.Detection {
	return &domain.Detection{
		ID:         model.ID,
		SearchID:   model.SearchID,
		Label:      model.Label,
		Gender:     model.Gender,
		Confidence: model.Confidence,
		BBox:       model.BBox,
		Embedding:  model.Embedding,
	}
}

func (c DetectionConverter) ToArrEntity(models []DetectionModel) []domain.Detection {
	entities := make([]domain.Detection, 0, len(models))
	for i := range models {
		entities = append(entities, *c.ToEntity(&models[i]))
	}

	return entities
}

type SearchConverter struct {
	detections DetectionConverter
}

func NewSearchConverter() SearchConverter {
	return SearchConverter{detections: NewDetectionConverter()}
}

func (c SearchConverter) ToEntity(model *SearchModel, detections []DetectionModel) *domain.Search {
	return &domain.Search{
		ID:         model.ID,
		UserID:     model.UserID,
		StorageKey: model.StorageKey,
		CreatedAt:  model.CreatedAt,
		Detections: c.detections.ToArrEntity(detections),
	}
}

type RetailerConverter struct{}

func NewRetailerConverter() RetailerConverter {
	return RetailerConverter{}
}

func (RetailerConverter) ToEntity(model *RetailerModel) domain.Retailer {
	return domain.Retailer{
		ID:     model.ID,
		Name:   model.Name,
		Domain: model.Domain,
		Logo:   model.Logo,
	}
}

type ProductConverter struct {
	retailer RetailerConverter
}

func NewProductConverter() ProductConverter {
	return ProductConverter{retailer: NewRetailerConverter()}
}

// ToEntity собирает доменный продукт из базовой записи, её изображений и листингов.
func (c ProductConverter) ToEntity(model *ProductModel, images []ProductImageModel, listings []ListingModel) domain.Product {
	product := domain.Product{
		ID:       model.ID,
		Brand:    model.Brand,
		Images:   make([]domain.ProductImage, 0, len(images)),
		Listings: make([]domain.ListingRecord, 0, len(listings)),
	}

	for _, img := range images {
		product.Images = append(product.Images, domain.ProductImage{
			StorageKey: img.StorageKey,
			Sort:       img.Sort,
		})
	}

	for _, l := range listings {
		size := ""
		if l.VariantSize != nil {
			size = *l.VariantSize
		}
		product.Listings = append(product.Listings, domain.ListingRecord{
			ID:           l.ID,
			Retailer:     c.retailer.ToEntity(&l.Retailer),
			Price:        l.Price,
			ComparePrice: l.ComparePrice,
			Currency:     l.Currency,
			InStock:      l.InStock,
			AffiliateURL: l.AffiliateURL,
			VariantSize:  size,
		})
	}

	return product
}
