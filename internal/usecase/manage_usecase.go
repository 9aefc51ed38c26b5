package usecase

import (
	"context"
	"strings"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/trendbook/search-backend/internal/cfg"
	"github.com/trendbook/search-backend/internal/domain"
	"github.com/trendbook/search-backend/pkg/e"
	"github.com/trendbook/search-backend/pkg/logger"
)

const recentSearchesLimit = 24

// ManageUseCase обслуживает сопутствующие операции: меню фильтров, профиль,
// сохранённые поиски и избранные товары.
type ManageUseCase struct {
	searchRepo   SearchRepository
	likeRepo     LikeRepository
	retailerRepo RetailerRepository
	catalogRepo  CatalogRepository
	dbPool       transaction.Transactional
	images       ImageURLResolver
	aggregator   *ProductAggregator
	logger       logger.Logger
	cfg          *cfg.SearchCfg
}

func NewManageUC(
	searchRepo SearchRepository,
	likeRepo LikeRepository,
	retailerRepo RetailerRepository,
	catalogRepo CatalogRepository,
	dbPool transaction.Transactional,
	images ImageURLResolver,
	aggregator *ProductAggregator,
	logger logger.Logger,
	cfg *cfg.SearchCfg,
) *ManageUseCase {
	return &ManageUseCase{
		searchRepo:   searchRepo,
		likeRepo:     likeRepo,
		retailerRepo: retailerRepo,
		catalogRepo:  catalogRepo,
		dbPool:       dbPool,
		images:       images,
		aggregator:   aggregator,
		logger:       logger,
		cfg:          cfg,
	}
}

// GetFilters собирает меню фильтров: бренды, пол и активные магазины рынка.
func (m *ManageUseCase) GetFilters(ctx context.Context, req *GetFiltersReq) (*GetFiltersRes, error) {
	const op = "ManageUseCase.GetFilters"

	brands, err := m.catalogRepo.GetBrands(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	retailers, err := m.retailerRepo.GetActiveRetailers(ctx, req.Market)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	filters := []FilterGroup{
		brandFilterGroup(brands),
		genderFilterGroup(req.Gender),
		retailerFilterGroup(retailers),
	}

	return &GetFiltersRes{Filters: filters}, nil
}

// GetDetails возвращает сводку профиля: последние поиски и счётчик избранного.
func (m *ManageUseCase) GetDetails(ctx context.Context, req *GetDetailsReq) (*GetDetailsRes, error) {
	const op = "ManageUseCase.GetDetails"

	if req.UserID == "" {
		return nil, e.Wrap(op, e.ErrMissingFields)
	}

	searches, err := m.searchRepo.GetRecent(ctx, req.UserID, recentSearchesLimit)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	likedCount, err := m.likeRepo.CountLikes(ctx, req.UserID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	previews := make([]SearchPreview, 0, len(searches))
	for _, s := range searches {
		previews = append(previews, SearchPreview{
			ID:       s.ID,
			ImageURL: m.images.PublicURL(s.StorageKey),
		})
	}

	return &GetDetailsRes{
		SearchesCount:      len(previews),
		Searches:           previews,
		LikedProductsCount: likedCount,
	}, nil
}

// GetSearch возвращает сохранённый поиск вместе с его детекциями.
func (m *ManageUseCase) GetSearch(ctx context.Context, req *GetSearchReq) (*GetSearchRes, error) {
	const op = "ManageUseCase.GetSearch"

	if req.SearchID == "" {
		return nil, e.Wrap(op, e.ErrMissingFields)
	}

	search, err := m.searchRepo.GetByID(ctx, req.SearchID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	detections := make([]DetectionInfo, 0, len(search.Detections))
	for _, d := range search.Detections {
		detections = append(detections, DetectionInfo{
			ID:         d.ID,
			Label:      d.Label,
			Confidence: d.Confidence,
			BBox:       d.BBox,
		})
	}

	return &GetSearchRes{
		ID:         search.ID,
		ImageURL:   m.images.PublicURL(search.StorageKey),
		Detections: detections,
	}, nil
}

// SaveSearch транзакционно сохраняет поиск и его детекции.
func (m *ManageUseCase) SaveSearch(ctx context.Context, req *SaveSearchReq) (*SaveSearchRes, error) {
	const op = "ManageUseCase.SaveSearch"

	if err := m.validateSaveSearch(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, m.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	detections := make([]domain.Detection, 0, len(req.Detections))
	for _, d := range req.Detections {
		gender := d.Gender
		if gender == "" {
			gender = "unisex"
		}
		detections = append(detections, domain.Detection{
			Label:      d.Label,
			Gender:     gender,
			Confidence: d.Confidence,
			BBox:       d.BBox,
			Embedding:  d.Embedding,
		})
	}

	search, err := m.searchRepo.Save(ctx, domain.NewSearch(req.UserID, req.StorageKey, detections))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return &SaveSearchRes{SearchID: search.ID}, nil
}

func (m *ManageUseCase) LikeProduct(ctx context.Context, req *LikeReq) error {
	const op = "ManageUseCase.LikeProduct"

	if req.UserID == "" || req.ProductID == "" {
		return e.Wrap(op, e.ErrMissingFields)
	}

	return m.likeRepo.Like(ctx, req.UserID, req.ProductID)
}

func (m *ManageUseCase) UnlikeProduct(ctx context.Context, req *LikeReq) error {
	const op = "ManageUseCase.UnlikeProduct"

	if req.UserID == "" || req.ProductID == "" {
		return e.Wrap(op, e.ErrMissingFields)
	}

	return m.likeRepo.Unlike(ctx, req.UserID, req.ProductID)
}

// GetLikedProducts возвращает избранные товары пользователя, собранные тем же
// агрегатором, что и поисковая выдача, без уверенности.
func (m *ManageUseCase) GetLikedProducts(ctx context.Context, req *GetLikedReq) (*SearchRes, error) {
	const op = "ManageUseCase.GetLikedProducts"

	if req.UserID == "" {
		return nil, e.Wrap(op, e.ErrMissingFields)
	}

	ids, err := m.likeRepo.GetLikedProductIDs(ctx, req.UserID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if len(ids) == 0 {
		return NewSearchRes(nil), nil
	}

	products, err := m.catalogRepo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	currency := req.Currency
	if currency == "" {
		currency = m.cfg.DefaultCurrency
	}

	return NewSearchRes(m.aggregator.Aggregate(products, nil, currency)), nil
}

func (m *ManageUseCase) validateSaveSearch(req *SaveSearchReq) error {
	if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.StorageKey) == "" {
		return e.ErrMissingFields
	}

	if len(req.Detections) == 0 {
		return e.ErrNoDetections
	}

	for _, d := range req.Detections {
		if len(d.Embedding) == 0 {
			return e.ErrEmptyQueryVector
		}
	}

	return nil
}

func brandFilterGroup(brands []string) FilterGroup {
	options := make([]FilterOption, 0, len(brands))
	for _, brand := range brands {
		if brand == "" {
			continue
		}
		options = append(options, FilterOption{Label: brand, Value: brand})
	}

	return FilterGroup{
		Key:         "brand",
		Label:       "Brand",
		MultiSelect: true,
		Options:     options,
	}
}

func genderFilterGroup(gender string) FilterGroup {
	group := FilterGroup{
		Key:         "gender",
		Label:       "Gender",
		MultiSelect: true,
		Options: []FilterOption{
			{Label: "Woman", Value: "female"},
			{Label: "Man", Value: "male"},
			{Label: "Boy", Value: "boy"},
			{Label: "Girl", Value: "girl"},
		},
	}
	if gender != "" && gender != GenderWildcard {
		group.Selected = []string{gender}
	}

	return group
}

func retailerFilterGroup(retailers []domain.Retailer) FilterGroup {
	options := make([]FilterOption, 0, len(retailers))
	for _, r := range retailers {
		if r.Name == "" {
			continue
		}
		options = append(options, FilterOption{
			Label: strings.ToUpper(r.Name),
			Value: r.ID,
			Icon:  r.Logo,
		})
	}

	return FilterGroup{
		Key:         "lister",
		Label:       "Shop",
		MultiSelect: true,
		Options:     options,
	}
}
