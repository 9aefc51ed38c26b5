package pgdb

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"

	"github.com/trendbook/search-backend/pkg/e"
)

// LikeRepo отвечает за избранные товары пользователей в PostgreSQL.
type LikeRepo struct {
	pool *pgxpool.Pool
}

func NewLikeRepo(pool *pgxpool.Pool) *LikeRepo {
	return &LikeRepo{pool: pool}
}

// Like добавляет товар в избранное. Повторный лайк не является ошибкой.
func (l *LikeRepo) Like(ctx context.Context, userID, productID string) error {
	query := `
		INSERT INTO liked_products (user_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, product_id) DO NOTHING`

	if _, err := l.pool.Exec(ctx, query, userID, productID); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Unlike убирает товар из избранного.
func (l *LikeRepo) Unlike(ctx context.Context, userID, productID string) error {
	query := `
		DELETE FROM liked_products
		WHERE user_id = $1 AND product_id = $2`

	if _, err := l.pool.Exec(ctx, query, userID, productID); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// GetLikedProductIDs возвращает избранные товары пользователя, новые первыми.
func (l *LikeRepo) GetLikedProductIDs(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT product_id
		FROM liked_products
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := l.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	var productIDs []string
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		productIDs = append(productIDs, id)
	}
	if err = rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return productIDs, nil
}

// CountLikes возвращает количество товаров в избранном пользователя.
func (l *LikeRepo) CountLikes(ctx context.Context, userID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM liked_products
		WHERE user_id = $1`

	var count int
	if err := l.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return count, nil
}
