package qdrant

import (
	"context"
	"crypto/md5"

	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"github.com/qdrant/go-client/qdrant"
	"github.com/trendbook/search-backend/internal/cfg"
	"github.com/trendbook/search-backend/internal/domain"
	"github.com/trendbook/search-backend/pkg/e"
)

// CandidateRepo — граница ANN-индекса поверх Qdrant.
type CandidateRepo struct {
	client *qdrant.Client
	cfg    *cfg.QdrantCfg
	topK   uint64
}

func NewCandidateRepo(client *qdrant.Client, cfg *cfg.QdrantCfg, topK uint64) *CandidateRepo {
	return &CandidateRepo{
		client: client,
		cfg:    cfg,
		topK:   topK,
	}
}

// SearchCandidates возвращает ближайших кандидатов под фильтром метки и пола,
// с полными векторами и полезной нагрузкой. Порядок — нативный score индекса,
// только затравочный. Пустой genderMatch снимает условие по полу.
// Таймаут применяется здесь; повторы — забота вызывающего.
func (q *CandidateRepo) SearchCandidates(ctx context.Context, vector []float32, label string, genderMatch []string) ([]domain.Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, q.cfg.SearchTimeout)
	defer cancel()

	must := []*qdrant.Condition{
		qdrant.NewMatch("label", label),
	}
	if len(genderMatch) > 0 {
		must = append(must, qdrant.NewMatchKeywords("generalized_gender", genderMatch...))
	}

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.cfg.QdrantCollectionName,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(q.topK),
		Filter:         &qdrant.Filter{Must: must},
		WithPayload:    qdrant.NewWithPayload(true),
		WithVectors:    qdrant.NewWithVectors(true),
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	candidates := make([]domain.Candidate, 0, len(points))
	for _, point := range points {
		candidates = append(candidates, *domain.NewCandidate(
			point.GetId().GetUuid(),
			point.GetVectors().GetVector().GetData(),
			point.GetPayload()["product_id"].GetStringValue(),
			point.GetPayload()["image_id"].GetStringValue(),
			point.GetScore(),
		))
	}

	return candidates, nil
}

// GetImageVector читает сохранённый вектор изображения каталога.
func (q *CandidateRepo) GetImageVector(ctx context.Context, imageID string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, q.cfg.SearchTimeout)
	defer cancel()

	points, err := q.client.Get(ctx, &qdrant.GetPoints{
		CollectionName: q.cfg.QdrantCollectionName,
		Ids:            []*qdrant.PointId{qdrant.NewIDUUID(PointID(imageID))},
		WithVectors:    qdrant.NewWithVectors(true),
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if len(points) == 0 {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrNoProductEmbedding)
	}

	vector := points[0].GetVectors().GetVector().GetData()
	if len(vector) == 0 {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrNoProductEmbedding)
	}

	return vector, nil
}

// PointID детерминированно выводит id точки из id изображения: md5-байты
// как UUID. Так же точки нумерует пайплайн индексации.
func PointID(imageID string) string {
	sum := md5.Sum([]byte(imageID))
	id, err := uuid.FromBytes(sum[:])
	if err != nil {
		return imageID
	}

	return id.String()
}
