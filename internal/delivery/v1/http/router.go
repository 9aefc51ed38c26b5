package http

import (
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/trendbook/search-backend/docs" // Импорт сгенерированных файлов
	"github.com/trendbook/search-backend/internal/usecase"
	"github.com/trendbook/search-backend/pkg/logger"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(searchUC usecase.SearchUC, manageUC usecase.ManageUC, legalDocsDir string) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		registerSearchRoutes(v1, NewSearchHandler(searchUC, r.logger))
		registerManageRoutes(v1, NewManageHandler(manageUC, r.logger))
		registerLegalRoutes(v1, NewLegalHandler(legalDocsDir, r.logger))
	})
}

func registerSearchRoutes(router chi.Router, h *SearchHandler) {
	router.Get("/search-detection", h.searchDetection)
	router.Get("/similar-products", h.similarProducts)
}

func registerManageRoutes(router chi.Router, h *ManageHandler) {
	router.Get("/filters", h.getFilters)
	router.Get("/details", h.getDetails)
	router.Get("/likes", h.getLikedProducts)

	router.Route("/searches", func(s chi.Router) {
		s.Post("/", h.saveSearch)
		s.Get("/{id}", h.getSearch)
	})

	router.Route("/products", func(p chi.Router) {
		p.Post("/{id}/like", h.likeProduct)
		p.Delete("/{id}/like", h.unlikeProduct)
	})
}

func registerLegalRoutes(router chi.Router, h *LegalHandler) {
	router.Get("/legal/{doc}", h.getDocument)
}
