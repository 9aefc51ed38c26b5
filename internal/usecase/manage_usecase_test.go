package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendbook/search-backend/internal/cfg"
	"github.com/trendbook/search-backend/internal/domain"
	"github.com/trendbook/search-backend/pkg/e"
	"github.com/trendbook/search-backend/pkg/logger"
)

type mockSearchRepo struct {
	search   *domain.Search
	recent   []domain.Search
	err      error
	recentID string
}

func (m *mockSearchRepo) Save(_ context.Context, search *domain.Search) (*domain.Search, error) {
	return search, m.err
}

func (m *mockSearchRepo) GetByID(_ context.Context, _ string) (*domain.Search, error) {
	return m.search, m.err
}

func (m *mockSearchRepo) GetRecent(_ context.Context, userID string, _ int) ([]domain.Search, error) {
	m.recentID = userID
	return m.recent, m.err
}

type mockLikeRepo struct {
	likedIDs []string
	count    int
	err      error
	likes    [][2]string
	unlikes  [][2]string
}

func (m *mockLikeRepo) Like(_ context.Context, userID, productID string) error {
	m.likes = append(m.likes, [2]string{userID, productID})
	return m.err
}

func (m *mockLikeRepo) Unlike(_ context.Context, userID, productID string) error {
	m.unlikes = append(m.unlikes, [2]string{userID, productID})
	return m.err
}

func (m *mockLikeRepo) GetLikedProductIDs(_ context.Context, _ string) ([]string, error) {
	return m.likedIDs, m.err
}

func (m *mockLikeRepo) CountLikes(_ context.Context, _ string) (int, error) {
	return m.count, m.err
}

type mockRetailerRepo struct {
	retailers []domain.Retailer
	market    string
	err       error
}

func (m *mockRetailerRepo) GetActiveRetailers(_ context.Context, market string) ([]domain.Retailer, error) {
	m.market = market
	return m.retailers, m.err
}

type manageFixture struct {
	searchRepo   *mockSearchRepo
	likeRepo     *mockLikeRepo
	retailerRepo *mockRetailerRepo
	catalogRepo  *mockCatalogRepo
	uc           *ManageUseCase
}

func newManageFixture() *manageFixture {
	f := &manageFixture{
		searchRepo:   &mockSearchRepo{},
		likeRepo:     &mockLikeRepo{},
		retailerRepo: &mockRetailerRepo{},
		catalogRepo:  &mockCatalogRepo{},
	}

	log := logger.NewSlogLogger()
	f.uc = NewManageUC(
		f.searchRepo,
		f.likeRepo,
		f.retailerRepo,
		f.catalogRepo,
		nil,
		stubResolver{},
		NewProductAggregator(stubConverter{}, stubResolver{}, log),
		log,
		&cfg.SearchCfg{DefaultCurrency: "DKK"},
	)

	return f
}

func TestGetFiltersBuildsGroups(t *testing.T) {
	f := newManageFixture()
	f.catalogRepo.brands = []string{"Acme", "", "Blanco"}
	f.retailerRepo.retailers = []domain.Retailer{
		{ID: "r1", Name: "zalando", Logo: "zalando.png"},
	}

	res, err := f.uc.GetFilters(context.Background(), &GetFiltersReq{Market: "dk", Gender: "female"})
	require.NoError(t, err)
	require.Len(t, res.Filters, 3)
	assert.Equal(t, "dk", f.retailerRepo.market)

	brands := res.Filters[0]
	assert.Equal(t, "brand", brands.Key)
	require.Len(t, brands.Options, 2)
	assert.Equal(t, "Acme", brands.Options[0].Value)

	gender := res.Filters[1]
	assert.Equal(t, "gender", gender.Key)
	assert.Equal(t, []string{"female"}, gender.Selected)

	shops := res.Filters[2]
	assert.Equal(t, "lister", shops.Key)
	require.Len(t, shops.Options, 1)
	assert.Equal(t, "ZALANDO", shops.Options[0].Label)
	assert.Equal(t, "r1", shops.Options[0].Value)
}

func TestGetFiltersWildcardGenderHasNoSelection(t *testing.T) {
	f := newManageFixture()

	res, err := f.uc.GetFilters(context.Background(), &GetFiltersReq{Gender: GenderWildcard})
	require.NoError(t, err)
	assert.Nil(t, res.Filters[1].Selected)
}

func TestGetDetailsRequiresUser(t *testing.T) {
	f := newManageFixture()

	_, err := f.uc.GetDetails(context.Background(), &GetDetailsReq{})
	assert.ErrorIs(t, err, e.ErrMissingFields)
}

func TestGetDetailsBuildsPreviews(t *testing.T) {
	f := newManageFixture()
	f.searchRepo.recent = []domain.Search{
		{ID: "s1", StorageKey: "uploads/a.jpg"},
		{ID: "s2", StorageKey: "uploads/b.jpg"},
	}
	f.likeRepo.count = 7

	res, err := f.uc.GetDetails(context.Background(), &GetDetailsReq{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "u1", f.searchRepo.recentID)
	assert.Equal(t, 2, res.SearchesCount)
	assert.Equal(t, 7, res.LikedProductsCount)
	assert.Equal(t, "s1", res.Searches[0].ID)
	assert.Equal(t, "https://cdn.test/images/uploads/a.jpg", res.Searches[0].ImageURL)
}

func TestGetSearchMapsDetections(t *testing.T) {
	f := newManageFixture()
	f.searchRepo.search = &domain.Search{
		ID:         "s1",
		StorageKey: "uploads/a.jpg",
		Detections: []domain.Detection{
			{ID: "d1", Label: "dress", Confidence: 0.92, BBox: []float64{1, 2, 3, 4}},
		},
	}

	res, err := f.uc.GetSearch(context.Background(), &GetSearchReq{SearchID: "s1"})
	require.NoError(t, err)
	assert.Equal(t, "s1", res.ID)
	require.Len(t, res.Detections, 1)
	assert.Equal(t, "dress", res.Detections[0].Label)
	assert.Equal(t, []float64{1, 2, 3, 4}, res.Detections[0].BBox)
}

func TestGetSearchRequiresID(t *testing.T) {
	f := newManageFixture()

	_, err := f.uc.GetSearch(context.Background(), &GetSearchReq{})
	assert.ErrorIs(t, err, e.ErrMissingFields)
}

func TestGetSearchNotFound(t *testing.T) {
	f := newManageFixture()
	f.searchRepo.err = e.ErrSearchNotFound

	_, err := f.uc.GetSearch(context.Background(), &GetSearchReq{SearchID: "missing"})
	assert.ErrorIs(t, err, e.ErrSearchNotFound)
}

func TestSaveSearchValidation(t *testing.T) {
	f := newManageFixture()
	ctx := context.Background()

	detection := NewDetection{Label: "dress", Embedding: []float32{0.1}}

	cases := []struct {
		name string
		req  *SaveSearchReq
		want error
	}{
		{
			name: "missing user",
			req:  &SaveSearchReq{StorageKey: "k", Detections: []NewDetection{detection}},
			want: e.ErrMissingFields,
		},
		{
			name: "missing storage key",
			req:  &SaveSearchReq{UserID: "u1", Detections: []NewDetection{detection}},
			want: e.ErrMissingFields,
		},
		{
			name: "no detections",
			req:  &SaveSearchReq{UserID: "u1", StorageKey: "k"},
			want: e.ErrNoDetections,
		},
		{
			name: "empty embedding",
			req: &SaveSearchReq{
				UserID:     "u1",
				StorageKey: "k",
				Detections: []NewDetection{{Label: "dress"}},
			},
			want: e.ErrEmptyQueryVector,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.SaveSearch(ctx, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLikeRequiresBothIDs(t *testing.T) {
	f := newManageFixture()
	ctx := context.Background()

	assert.ErrorIs(t, f.uc.LikeProduct(ctx, &LikeReq{UserID: "u1"}), e.ErrMissingFields)
	assert.ErrorIs(t, f.uc.UnlikeProduct(ctx, &LikeReq{ProductID: "p1"}), e.ErrMissingFields)
	assert.Empty(t, f.likeRepo.likes)
	assert.Empty(t, f.likeRepo.unlikes)
}

func TestLikeUnlikeDelegate(t *testing.T) {
	f := newManageFixture()
	ctx := context.Background()

	require.NoError(t, f.uc.LikeProduct(ctx, &LikeReq{UserID: "u1", ProductID: "p1"}))
	require.NoError(t, f.uc.UnlikeProduct(ctx, &LikeReq{UserID: "u1", ProductID: "p1"}))

	assert.Equal(t, [][2]string{{"u1", "p1"}}, f.likeRepo.likes)
	assert.Equal(t, [][2]string{{"u1", "p1"}}, f.likeRepo.unlikes)
}

func TestGetLikedProductsEmptyWithoutLikes(t *testing.T) {
	f := newManageFixture()

	res, err := f.uc.GetLikedProducts(context.Background(), &GetLikedReq{UserID: "u1"})
	require.NoError(t, err)
	assert.Empty(t, res.Products)
	assert.Nil(t, f.catalogRepo.requestedIDs)
}

func TestGetLikedProductsAggregatesWithoutConfidence(t *testing.T) {
	f := newManageFixture()
	f.likeRepo.likedIDs = []string{"p1"}
	f.catalogRepo.products = []domain.Product{{
		ID: "p1",
		Listings: []domain.ListingRecord{
			{ID: "l1", Retailer: retailer("r1"), Price: ptr(100.0), Currency: "DKK", InStock: true},
		},
	}}

	res, err := f.uc.GetLikedProducts(context.Background(), &GetLikedReq{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, f.catalogRepo.requestedIDs)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "p1", res.Products[0].ID)
	assert.Nil(t, res.Products[0].Confidence)
}

func TestGetLikedProductsRequiresUser(t *testing.T) {
	f := newManageFixture()

	_, err := f.uc.GetLikedProducts(context.Background(), &GetLikedReq{})
	assert.ErrorIs(t, err, e.ErrMissingFields)
}

func TestGetLikedProductsSurfacesRepoError(t *testing.T) {
	f := newManageFixture()
	f.likeRepo.err = errors.New("connection reset")

	_, err := f.uc.GetLikedProducts(context.Background(), &GetLikedReq{UserID: "u1"})
	assert.Error(t, err)
}
