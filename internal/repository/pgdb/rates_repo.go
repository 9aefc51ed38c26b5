package pgdb

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"

	"github.com/trendbook/search-backend/pkg/e"
)

// RatesRepo отвечает за чтение курсов валют из PostgreSQL.
type RatesRepo struct {
	pool *pgxpool.Pool
}

func NewRatesRepo(pool *pgxpool.Pool) *RatesRepo {
	return &RatesRepo{pool: pool}
}

// GetRates возвращает курсы валют относительно базовой валюты.
func (r *RatesRepo) GetRates(ctx context.Context) (map[string]float64, error) {
	query := `
		SELECT currency, rate
		FROM exchange_rates`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	rates := make(map[string]float64)
	for rows.Next() {
		var (
			currency string
			rate     float64
		)
		if err = rows.Scan(&currency, &rate); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		rates[currency] = rate
	}
	if err = rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if len(rates) == 0 {
		return nil, e.ErrNoRates
	}

	return rates, nil
}
