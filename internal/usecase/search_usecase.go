package usecase

import (
	"context"
	"time"

	"github.com/trendbook/search-backend/internal/cfg"
	"github.com/trendbook/search-backend/internal/domain"
	"github.com/trendbook/search-backend/internal/rerank"
	"github.com/trendbook/search-backend/pkg/e"
	"github.com/trendbook/search-backend/pkg/logger"
)

// SearchUseCase реализует поисковый конвейер:
// детекция -> кандидаты из индекса -> ре-ранжирование -> каталог -> агрегация.
type SearchUseCase struct {
	detectionRepo DetectionRepository
	candidateRepo CandidateRepository
	catalogRepo   CatalogRepository
	aggregator    *ProductAggregator
	resultCache   ResultCacheRepository
	rankedCache   RankedCache
	producer      EventProducer
	logger        logger.Logger
	cfg           *cfg.SearchCfg
}

func NewSearchUC(
	detectionRepo DetectionRepository,
	candidateRepo CandidateRepository,
	catalogRepo CatalogRepository,
	aggregator *ProductAggregator,
	resultCache ResultCacheRepository,
	rankedCache RankedCache,
	producer EventProducer,
	logger logger.Logger,
	cfg *cfg.SearchCfg,
) *SearchUseCase {
	return &SearchUseCase{
		detectionRepo: detectionRepo,
		candidateRepo: candidateRepo,
		catalogRepo:   catalogRepo,
		aggregator:    aggregator,
		resultCache:   resultCache,
		rankedCache:   rankedCache,
		producer:      producer,
		logger:        logger,
		cfg:           cfg,
	}
}

// SearchDetection возвращает товары, похожие на детекцию пользователя.
// Попадание в кэш результата пропускает конвейер целиком.
func (u *SearchUseCase) SearchDetection(ctx context.Context, req *SearchDetectionReq) (*SearchRes, error) {
	const op = "SearchUseCase.SearchDetection"

	if req.DetectionID == "" {
		return nil, e.Wrap(op, e.ErrMissingFields)
	}

	currency := u.currencyOrDefault(req.Currency)

	cacheKey := ResultCacheKey(req.DetectionID, req.Gender, currency)
	if cached, err := u.resultCache.GetSearchRes(ctx, cacheKey); err != nil {
		u.logger.Warnf("result cache lookup failed: %v", e.Wrap(op, err))
	} else if cached != nil {
		return cached, nil
	}

	detection, err := u.detectionRepo.GetDetection(ctx, req.DetectionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	ranked, err := u.rankedCandidates(ctx, detection.Embedding, detection.Label, GenderMatchSet(req.Gender))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	confidence, productIDs := BuildConfidenceMap(ranked)

	products, err := u.fetchProducts(ctx, productIDs)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	res := NewSearchRes(u.aggregator.Aggregate(products, confidence, currency))

	u.cacheResult(cacheKey, res)
	u.publishSearchEvent(req.DetectionID, detection.Label, req.Gender, len(res.Products))

	return res, nil
}

// SimilarProducts ищет товары, похожие на товар каталога: затравкой служит
// сохранённый вектор основного изображения товара. Порядок ранжирования
// сохраняется, уверенность к ответу не прикрепляется.
func (u *SearchUseCase) SimilarProducts(ctx context.Context, req *SimilarProductsReq) (*SearchRes, error) {
	const op = "SearchUseCase.SimilarProducts"

	if req.ProductID == "" || req.Label == "" {
		return nil, e.Wrap(op, e.ErrMissingFields)
	}

	currency := u.currencyOrDefault(req.Currency)

	imageID, err := u.catalogRepo.GetPrimaryImageID(ctx, req.ProductID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	vector, err := u.candidateRepo.GetImageVector(ctx, imageID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	ranked, err := u.rankedCandidates(ctx, vector, req.Label, GenderMatchSet(req.Gender))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	_, productIDs := BuildConfidenceMap(ranked)

	// Сам товар-затравка из выдачи исключается.
	filtered := productIDs[:0]
	for _, id := range productIDs {
		if id != req.ProductID {
			filtered = append(filtered, id)
		}
	}

	products, err := u.fetchProducts(ctx, filtered)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	ordered := orderByFirstOccurrence(products, filtered)

	return NewSearchRes(u.aggregator.Aggregate(ordered, nil, currency)), nil
}

// rankedCandidates возвращает ре-ранжированных кандидатов, пользуясь
// in-process кэшем ранжирований по идентичности запроса.
func (u *SearchUseCase) rankedCandidates(ctx context.Context, vector []float32, label string, genderMatch []string) ([]domain.RankedResult, error) {
	if len(vector) == 0 {
		return nil, e.ErrEmptyQueryVector
	}

	key := VectorCacheKey(vector, label, genderMatch)
	if ranked, ok := u.rankedCache.Get(key); ok {
		return ranked, nil
	}

	candidates, err := u.candidateRepo.SearchCandidates(ctx, vector, label, genderMatch)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		return nil, nil
	}

	ranked := AssembleRanking(vector, candidates, rerank.Params{
		K1:     u.cfg.K1,
		K2:     u.cfg.K2,
		Lambda: u.cfg.Lambda,
	})

	u.rankedCache.Set(key, ranked)

	return ranked, nil
}

func (u *SearchUseCase) fetchProducts(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	return u.catalogRepo.GetProductsByIDs(ctx, ids)
}

// cacheResult фоновым образом кэширует готовый ответ; ошибка записи не
// влияет на ответ пользователю.
func (u *SearchUseCase) cacheResult(key string, res *SearchRes) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := u.resultCache.SetSearchRes(bgCtx, key, res); err != nil {
			u.logger.Warnf("failed to cache search result in background: %v", err)
		}
	}()
}

func (u *SearchUseCase) publishSearchEvent(detectionID, label, gender string, productCount int) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		event := NewSearchPerformedEvent(detectionID, label, gender, productCount)
		if err := u.producer.SearchPerformed(bgCtx, event); err != nil {
			u.logger.Warnf("failed to publish search event: %v", err)
		}
	}()
}

func (u *SearchUseCase) currencyOrDefault(currency string) string {
	if currency == "" {
		return u.cfg.DefaultCurrency
	}

	return currency
}

// orderByFirstOccurrence выстраивает строки каталога в порядке списка ids.
func orderByFirstOccurrence(products []domain.Product, ids []string) []domain.Product {
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	ordered := make([]domain.Product, 0, len(products))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}

	return ordered
}
