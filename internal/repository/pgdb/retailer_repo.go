package pgdb

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"

	"github.com/trendbook/search-backend/internal/domain"
	"github.com/trendbook/search-backend/internal/repository/pgdb/converter"
	"github.com/trendbook/search-backend/pkg/e"
)

// RetailerRepo отвечает за чтение активных ритейлеров из PostgreSQL.
type RetailerRepo struct {
	pool *pgxpool.Pool
	conv converter.RetailerConverter
}

func NewRetailerRepo(pool *pgxpool.Pool) *RetailerRepo {
	return &RetailerRepo{
		pool: pool,
		conv: converter.NewRetailerConverter(),
	}
}

// GetActiveRetailers возвращает ритейлеров со статусом ACTIVE, работающих
// на указанном рынке, в алфавитном порядке.
func (r *RetailerRepo) GetActiveRetailers(ctx context.Context, market string) ([]domain.Retailer, error) {
	marketFilter, err := json.Marshal([]string{market})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		SELECT id, name, domain, COALESCE(bf_logo, '')
		FROM retailers
		WHERE status = 'ACTIVE' AND markets @> $1::jsonb
		ORDER BY name`

	rows, err := r.pool.Query(ctx, query, marketFilter)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	var retailers []domain.Retailer
	for rows.Next() {
		var m converter.RetailerModel
		if err = rows.Scan(&m.ID, &m.Name, &m.Domain, &m.Logo); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		retailers = append(retailers, r.conv.ToEntity(&m))
	}
	if err = rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return retailers, nil
}
