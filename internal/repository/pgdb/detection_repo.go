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

// DetectionRepo отвечает за чтение детекций из PostgreSQL.
type DetectionRepo struct {
	pool *pgxpool.Pool
	conv converter.DetectionConverter
}

func NewDetectionRepo(pool *pgxpool.Pool) *DetectionRepo {
	return &DetectionRepo{
		pool: pool,
		conv: converter.NewDetectionConverter(),
	}
}

// GetDetection возвращает детекцию вместе с её эмбеддингом.
func (d *DetectionRepo) GetDetection(ctx context.Context, detectionID string) (*domain.Detection, error) {
	query := `
		SELECT id, search_id, label, gender, confidence, bbox, embedding
		FROM detections
		WHERE id = $1`

	var model converter.DetectionModel
	err := d.pool.QueryRow(ctx, query, detectionID).Scan(
		&model.ID,
		&model.SearchID,
		&model.Label,
		&model.Gender,
		&model.Confidence,
		&model.BBox,
		&model.Embedding,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrDetectionNotFound
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return d.conv.ToEntity(&model), nil
}
