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
	"github.com/trendbook/search-backend/pkg/tr"
)

// SearchRepo отвечает за сохранение и чтение поисков пользователей в PostgreSQL.
type SearchRepo struct {
	pool *pgxpool.Pool
	conv converter.SearchConverter
}

func NewSearchRepo(pool *pgxpool.Pool) *SearchRepo {
	return &SearchRepo{
		pool: pool,
		conv: converter.NewSearchConverter(),
	}
}

// Save сохраняет поиск вместе с детекциями в рамках транзакции из контекста.
func (s *SearchRepo) Save(ctx context.Context, search *domain.Search) (*domain.Search, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	searchQuery := `
		INSERT INTO searches (id, user_id, s3_key, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err = tx.QueryRow(ctx, searchQuery, search.ID, search.UserID, search.StorageKey, search.CreatedAt).
		Scan(&search.CreatedAt)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	detectionQuery := `
		INSERT INTO detections (id, search_id, label, gender, confidence, bbox, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for i := range search.Detections {
		d := &search.Detections[i]
		d.SearchID = search.ID
		_, err = tx.Exec(ctx, detectionQuery, d.ID, search.ID, d.Label, d.Gender, d.Confidence, d.BBox, d.Embedding)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	return search, nil
}

// GetByID возвращает поиск с детекциями без эмбеддингов.
func (s *SearchRepo) GetByID(ctx context.Context, searchID string) (*domain.Search, error) {
	searchQuery := `
		SELECT id, user_id, s3_key, created_at
		FROM searches
		WHERE id = $1`

	var model converter.SearchModel
	err := s.pool.QueryRow(ctx, searchQuery, searchID).Scan(
		&model.ID,
		&model.UserID,
		&model.StorageKey,
		&model.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrSearchNotFound
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	detections, err := s.searchDetections(ctx, searchID)
	if err != nil {
		return nil, err
	}

	return s.conv.ToEntity(&model, detections), nil
}

// GetRecent возвращает последние поиски пользователя, новые первыми.
func (s *SearchRepo) GetRecent(ctx context.Context, userID string, limit int) ([]domain.Search, error) {
	query := `
		SELECT id, user_id, s3_key, created_at
		FROM searches
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := s.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	var searches []domain.Search
	for rows.Next() {
		var model converter.SearchModel
		if err = rows.Scan(&model.ID, &model.UserID, &model.StorageKey, &model.CreatedAt); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		searches = append(searches, *s.conv.ToEntity(&model, nil))
	}
	if err = rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return searches, nil
}

func (s *SearchRepo) searchDetections(ctx context.Context, searchID string) ([]converter.DetectionModel, error) {
	query := `
		SELECT id, search_id, label, gender, confidence, bbox
		FROM detections
		WHERE search_id = $1
		ORDER BY confidence DESC`

	rows, err := s.pool.Query(ctx, query, searchID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	var models []converter.DetectionModel
	for rows.Next() {
		var m converter.DetectionModel
		if err = rows.Scan(&m.ID, &m.SearchID, &m.Label, &m.Gender, &m.Confidence, &m.BBox); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		models = append(models, m)
	}
	if err = rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return models, nil
}
