package pgdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"

	"github.com/trendbook/search-backend/internal/domain"
	"github.com/trendbook/search-backend/internal/repository/pgdb/converter"
	"github.com/trendbook/search-backend/pkg/e"
)

// CatalogRepo отвечает за чтение товаров, изображений и листингов из PostgreSQL.
type CatalogRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewCatalogRepo(pool *pgxpool.Pool) *CatalogRepo {
	return &CatalogRepo{
		pool: pool,
		conv: converter.NewProductConverter(),
	}
}

// GetProductsByIDs загружает товары с изображениями и листингами одним проходом
// по трём запросам. Порядок результата не гарантируется.
func (c *CatalogRepo) GetProductsByIDs(ctx context.Context, productIDs []string) ([]domain.Product, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	bases, err := c.productBases(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	images, err := c.productImages(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	listings, err := c.productListings(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(bases))
	for i := range bases {
		id := bases[i].ID
		products = append(products, c.conv.ToEntity(&bases[i], images[id], listings[id]))
	}

	return products, nil
}

func (c *CatalogRepo) productBases(ctx context.Context, productIDs []string) ([]converter.ProductModel, error) {
	query := `
		SELECT id, COALESCE(brand, '')
		FROM products
		WHERE id = ANY($1)`

	rows, err := c.pool.Query(ctx, query, productIDs)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	var models []converter.ProductModel
	for rows.Next() {
		var m converter.ProductModel
		if err = rows.Scan(&m.ID, &m.Brand); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		models = append(models, m)
	}
	if err = rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return models, nil
}

func (c *CatalogRepo) productImages(ctx context.Context, productIDs []string) (map[string][]converter.ProductImageModel, error) {
	query := `
		SELECT product_id, s3_key, sort
		FROM product_images
		WHERE product_id = ANY($1) AND s3_key IS NOT NULL
		ORDER BY product_id, sort`

	rows, err := c.pool.Query(ctx, query, productIDs)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	images := make(map[string][]converter.ProductImageModel)
	for rows.Next() {
		var m converter.ProductImageModel
		if err = rows.Scan(&m.ProductID, &m.StorageKey, &m.Sort); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		images[m.ProductID] = append(images[m.ProductID], m)
	}
	if err = rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return images, nil
}

func (c *CatalogRepo) productListings(ctx context.Context, productIDs []string) (map[string][]converter.ListingModel, error) {
	query := `
		SELECT l.id, l.product_id, l.price, l.compare_price, l.currency, l.in_stock,
		       COALESCE(l.affiliate_url, ''), v.size,
		       r.id, r.name, r.domain, COALESCE(r.bf_logo, '')
		FROM listings l
		JOIN retailers r ON r.id = l.retailer_id
		LEFT JOIN listing_variants v ON v.listing_id = l.id
		WHERE l.product_id = ANY($1)
		ORDER BY l.product_id, l.id`

	rows, err := c.pool.Query(ctx, query, productIDs)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	listings := make(map[string][]converter.ListingModel)
	for rows.Next() {
		var m converter.ListingModel
		err = rows.Scan(
			&m.ID,
			&m.ProductID,
			&m.Price,
			&m.ComparePrice,
			&m.Currency,
			&m.InStock,
			&m.AffiliateURL,
			&m.VariantSize,
			&m.Retailer.ID,
			&m.Retailer.Name,
			&m.Retailer.Domain,
			&m.Retailer.Logo,
		)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		listings[m.ProductID] = append(listings[m.ProductID], m)
	}
	if err = rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return listings, nil
}

// GetBrands возвращает отсортированный список уникальных брендов каталога.
func (c *CatalogRepo) GetBrands(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT brand
		FROM products
		WHERE brand IS NOT NULL AND brand <> ''
		ORDER BY brand`

	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	var brands []string
	for rows.Next() {
		var brand string
		if err = rows.Scan(&brand); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		brands = append(brands, brand)
	}
	if err = rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return brands, nil
}

// GetPrimaryImageID возвращает идентификатор первого по сортировке изображения товара.
func (c *CatalogRepo) GetPrimaryImageID(ctx context.Context, productID string) (string, error) {
	query := `
		SELECT id
		FROM product_images
		WHERE product_id = $1 AND s3_key IS NOT NULL
		ORDER BY sort
		LIMIT 1`

	var imageID string
	err := c.pool.QueryRow(ctx, query, productID).Scan(&imageID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", e.ErrNoProductEmbedding
		}

		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return imageID, nil
}
