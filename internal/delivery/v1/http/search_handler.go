package http

import (
	"net/http"

	"github.com/trendbook/search-backend/internal/usecase"
	"github.com/trendbook/search-backend/pkg/logger"
)

type SearchHandler struct {
	searchUsecase usecase.SearchUC
	logger        logger.Logger
}

func NewSearchHandler(searchUsecase usecase.SearchUC, logger logger.Logger) *SearchHandler {
	return &SearchHandler{searchUsecase: searchUsecase, logger: logger}
}

// searchDetection
//
//	@Summary		Поиск товаров по детекции
//	@Description	Возвращает товары, визуально похожие на объект детекции, после ре-ранжирования
//	@Tags			search
//	@Produce		json
//	@Param			detection_id	query		string	true	"ID детекции"
//	@Param			gender			query		string	false	"Пол (all снимает фильтр)"
//	@Param			currency		query		string	false	"Валюта цен"
//	@Success		200				{object}	usecase.SearchRes
//	@Failure		400				{object}	ErrorResponse
//	@Failure		404				{object}	ErrorResponse
//	@Router			/search-detection [get]
func (h *SearchHandler) searchDetection(w http.ResponseWriter, r *http.Request) {
	detectionID, err := requireQuery(r, "detection_id")
	if err != nil {
		h.logger.Warnf("%d: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	req := usecase.NewSearchDetectionReq(
		detectionID,
		r.URL.Query().Get("gender"),
		r.URL.Query().Get("currency"),
	)

	res, err := h.searchUsecase.SearchDetection(r.Context(), req)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, res)
}

// similarProducts
//
//	@Summary		Похожие товары
//	@Description	Возвращает товары, похожие на существующий товар каталога
//	@Tags			search
//	@Produce		json
//	@Param			product_id	query		string	true	"ID товара"
//	@Param			label		query		string	true	"Категория товара"
//	@Param			gender		query		string	false	"Пол (all снимает фильтр)"
//	@Param			currency	query		string	false	"Валюта цен"
//	@Success		200			{object}	usecase.SearchRes
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Router			/similar-products [get]
func (h *SearchHandler) similarProducts(w http.ResponseWriter, r *http.Request) {
	productID, err := requireQuery(r, "product_id")
	if err != nil {
		h.logger.Warnf("%d: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	label, err := requireQuery(r, "label")
	if err != nil {
		h.logger.Warnf("%d: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	req := usecase.NewSimilarProductsReq(
		productID,
		label,
		r.URL.Query().Get("gender"),
		r.URL.Query().Get("currency"),
	)

	res, err := h.searchUsecase.SimilarProducts(r.Context(), req)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, res)
}
