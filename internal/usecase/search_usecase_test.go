package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendbook/search-backend/internal/cfg"
	"github.com/trendbook/search-backend/internal/domain"
	"github.com/trendbook/search-backend/pkg/e"
	"github.com/trendbook/search-backend/pkg/logger"
)

type mockDetectionRepo struct {
	detection *domain.Detection
	err       error
	calls     int
}

func (m *mockDetectionRepo) GetDetection(_ context.Context, _ string) (*domain.Detection, error) {
	m.calls++
	return m.detection, m.err
}

type mockCandidateRepo struct {
	candidates  []domain.Candidate
	vector      []float32
	err         error
	searchCalls int
}

func (m *mockCandidateRepo) SearchCandidates(_ context.Context, _ []float32, _ string, _ []string) ([]domain.Candidate, error) {
	m.searchCalls++
	return m.candidates, m.err
}

func (m *mockCandidateRepo) GetImageVector(_ context.Context, _ string) ([]float32, error) {
	return m.vector, m.err
}

type mockCatalogRepo struct {
	products       []domain.Product
	brands         []string
	primaryImageID string
	err            error
	requestedIDs   []string
}

func (m *mockCatalogRepo) GetProductsByIDs(_ context.Context, ids []string) ([]domain.Product, error) {
	m.requestedIDs = ids
	return m.products, m.err
}

func (m *mockCatalogRepo) GetBrands(_ context.Context) ([]string, error) { return m.brands, m.err }

func (m *mockCatalogRepo) GetPrimaryImageID(_ context.Context, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.primaryImageID, nil
}

type mockResultCache struct {
	mu     sync.Mutex
	cached *SearchRes
	stored map[string]*SearchRes
}

func (m *mockResultCache) GetSearchRes(_ context.Context, _ string) (*SearchRes, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cached, nil
}

func (m *mockResultCache) SetSearchRes(_ context.Context, key string, res *SearchRes) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stored == nil {
		m.stored = make(map[string]*SearchRes)
	}
	m.stored[key] = res
	return nil
}

type mockRankedCache struct {
	mu      sync.Mutex
	entries map[string][]domain.RankedResult
}

func (m *mockRankedCache) Get(key string) ([]domain.RankedResult, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ranked, ok := m.entries[key]
	return ranked, ok
}

func (m *mockRankedCache) Set(key string, ranked []domain.RankedResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries == nil {
		m.entries = make(map[string][]domain.RankedResult)
	}
	m.entries[key] = ranked
}

type mockProducer struct {
	mu     sync.Mutex
	events []*SearchPerformedEvent
}

func (m *mockProducer) SearchPerformed(_ context.Context, event *SearchPerformedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

type searchFixture struct {
	detectionRepo *mockDetectionRepo
	candidateRepo *mockCandidateRepo
	catalogRepo   *mockCatalogRepo
	resultCache   *mockResultCache
	rankedCache   *mockRankedCache
	producer      *mockProducer
	uc            *SearchUseCase
}

func newSearchFixture() *searchFixture {
	f := &searchFixture{
		detectionRepo: &mockDetectionRepo{},
		candidateRepo: &mockCandidateRepo{},
		catalogRepo:   &mockCatalogRepo{},
		resultCache:   &mockResultCache{},
		rankedCache:   &mockRankedCache{},
		producer:      &mockProducer{},
	}

	f.uc = NewSearchUC(
		f.detectionRepo,
		f.candidateRepo,
		f.catalogRepo,
		NewProductAggregator(stubConverter{}, stubResolver{}, logger.NewSlogLogger()),
		f.resultCache,
		f.rankedCache,
		f.producer,
		logger.NewSlogLogger(),
		&cfg.SearchCfg{TopK: 150, K1: 3, K2: 2, Lambda: 0.3, DefaultCurrency: "DKK"},
	)

	return f
}

func inStockProduct(id string) domain.Product {
	return domain.Product{
		ID: id,
		Listings: []domain.ListingRecord{
			{ID: id + "-l", Retailer: retailer("r1"), Price: ptr(100.0), Currency: "DKK", InStock: true},
		},
	}
}

func TestSearchDetectionRequiresDetectionID(t *testing.T) {
	f := newSearchFixture()

	_, err := f.uc.SearchDetection(context.Background(), &SearchDetectionReq{})
	assert.ErrorIs(t, err, e.ErrMissingFields)
}

func TestSearchDetectionResultCacheHitSkipsPipeline(t *testing.T) {
	f := newSearchFixture()
	cached := &SearchRes{Products: []domain.AggregatedProduct{{ID: "p1"}}}
	f.resultCache.cached = cached

	got, err := f.uc.SearchDetection(context.Background(), &SearchDetectionReq{DetectionID: "det-1"})
	require.NoError(t, err)
	assert.Same(t, cached, got)
	assert.Zero(t, f.detectionRepo.calls)
	assert.Zero(t, f.candidateRepo.searchCalls)
}

func TestSearchDetectionNotFound(t *testing.T) {
	f := newSearchFixture()
	f.detectionRepo.err = e.ErrDetectionNotFound

	_, err := f.uc.SearchDetection(context.Background(), &SearchDetectionReq{DetectionID: "missing"})
	assert.ErrorIs(t, err, e.ErrDetectionNotFound)
}

func TestSearchDetectionEmptyCandidates(t *testing.T) {
	f := newSearchFixture()
	f.detectionRepo.detection = &domain.Detection{
		ID: "det-1", Label: "dress", Embedding: []float32{1, 0},
	}

	got, err := f.uc.SearchDetection(context.Background(), &SearchDetectionReq{DetectionID: "det-1"})
	require.NoError(t, err)
	assert.Empty(t, got.Products)
}

func TestSearchDetectionFullPipeline(t *testing.T) {
	f := newSearchFixture()
	f.detectionRepo.detection = &domain.Detection{
		ID: "det-1", Label: "dress", Gender: "female", Embedding: []float32{1, 0},
	}
	f.candidateRepo.candidates = []domain.Candidate{
		{ID: "c-far", Vector: []float32{0, 1}, ProductID: "p-far", AnnScore: 0.1},
		{ID: "c-near", Vector: []float32{0.99, 0.01}, ProductID: "p-near", AnnScore: 0.9},
	}
	f.catalogRepo.products = []domain.Product{inStockProduct("p-far"), inStockProduct("p-near")}

	got, err := f.uc.SearchDetection(context.Background(), &SearchDetectionReq{DetectionID: "det-1", Currency: "DKK"})
	require.NoError(t, err)
	require.Len(t, got.Products, 2)

	assert.Equal(t, "p-near", got.Products[0].ID)
	assert.Equal(t, 0, got.Products[0].Index)
	require.NotNil(t, got.Products[0].Confidence)
	require.NotNil(t, got.Products[1].Confidence)
	assert.Greater(t, *got.Products[0].Confidence, *got.Products[1].Confidence)

	assert.ElementsMatch(t, []string{"p-near", "p-far"}, f.catalogRepo.requestedIDs)
}

func TestSearchDetectionUsesRankedCache(t *testing.T) {
	f := newSearchFixture()
	f.detectionRepo.detection = &domain.Detection{
		ID: "det-1", Label: "dress", Embedding: []float32{1, 0},
	}

	key := VectorCacheKey([]float32{1, 0}, "dress", GenderMatchSet(""))
	f.rankedCache.Set(key, []domain.RankedResult{
		{Rank: 1, CandidateID: "c1", ProductID: "p1", FinalDistance: 0.2},
	})
	f.catalogRepo.products = []domain.Product{inStockProduct("p1")}

	got, err := f.uc.SearchDetection(context.Background(), &SearchDetectionReq{DetectionID: "det-1"})
	require.NoError(t, err)
	require.Len(t, got.Products, 1)
	assert.Zero(t, f.candidateRepo.searchCalls, "ranked cache hit must skip the index")
}

func TestSearchDetectionSurfacesIndexFailure(t *testing.T) {
	f := newSearchFixture()
	f.detectionRepo.detection = &domain.Detection{
		ID: "det-1", Label: "dress", Embedding: []float32{1, 0},
	}
	f.candidateRepo.err = fmt.Errorf("index unavailable")

	_, err := f.uc.SearchDetection(context.Background(), &SearchDetectionReq{DetectionID: "det-1"})
	assert.Error(t, err)
}

func TestSimilarProductsExcludesSeedProduct(t *testing.T) {
	f := newSearchFixture()
	f.catalogRepo.primaryImageID = "img-seed"
	f.candidateRepo.vector = []float32{1, 0}
	f.candidateRepo.candidates = []domain.Candidate{
		{ID: "c-seed", Vector: []float32{1, 0}, ProductID: "p-seed", AnnScore: 1.0},
		{ID: "c-other", Vector: []float32{0.9, 0.1}, ProductID: "p-other", AnnScore: 0.8},
	}
	f.catalogRepo.products = []domain.Product{inStockProduct("p-other")}

	got, err := f.uc.SimilarProducts(context.Background(), &SimilarProductsReq{ProductID: "p-seed", Label: "dress"})
	require.NoError(t, err)
	require.Len(t, got.Products, 1)
	assert.Equal(t, "p-other", got.Products[0].ID)
	assert.Nil(t, got.Products[0].Confidence)
	assert.Equal(t, []string{"p-other"}, f.catalogRepo.requestedIDs)
}

func TestSimilarProductsRequiresProductAndLabel(t *testing.T) {
	f := newSearchFixture()

	_, err := f.uc.SimilarProducts(context.Background(), &SimilarProductsReq{ProductID: "p1"})
	assert.ErrorIs(t, err, e.ErrMissingFields)

	_, err = f.uc.SimilarProducts(context.Background(), &SimilarProductsReq{Label: "dress"})
	assert.ErrorIs(t, err, e.ErrMissingFields)
}

func TestSimilarProductsMissingEmbedding(t *testing.T) {
	f := newSearchFixture()
	f.catalogRepo.err = e.ErrNoProductEmbedding

	_, err := f.uc.SimilarProducts(context.Background(), &SimilarProductsReq{ProductID: "p1", Label: "dress"})
	assert.ErrorIs(t, err, e.ErrNoProductEmbedding)
}
