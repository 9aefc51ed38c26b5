package usecase

import "context"

type SearchUC interface {
	SearchDetection(ctx context.Context, req *SearchDetectionReq) (*SearchRes, error)
	SimilarProducts(ctx context.Context, req *SimilarProductsReq) (*SearchRes, error)
}

type ManageUC interface {
	GetFilters(ctx context.Context, req *GetFiltersReq) (*GetFiltersRes, error)
	GetDetails(ctx context.Context, req *GetDetailsReq) (*GetDetailsRes, error)
	GetSearch(ctx context.Context, req *GetSearchReq) (*GetSearchRes, error)
	SaveSearch(ctx context.Context, req *SaveSearchReq) (*SaveSearchRes, error)
	LikeProduct(ctx context.Context, req *LikeReq) error
	UnlikeProduct(ctx context.Context, req *LikeReq) error
	GetLikedProducts(ctx context.Context, req *GetLikedReq) (*SearchRes, error)
}
