package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/trendbook/search-backend/internal/usecase"
	"github.com/trendbook/search-backend/pkg/e"
	"github.com/trendbook/search-backend/pkg/logger"
)

type ManageHandler struct {
	manageUsecase usecase.ManageUC
	logger        logger.Logger
}

func NewManageHandler(manageUsecase usecase.ManageUC, logger logger.Logger) *ManageHandler {
	return &ManageHandler{manageUsecase: manageUsecase, logger: logger}
}

// getFilters
//
//	@Summary		Доступные фильтры
//	@Description	Возвращает группы фильтров: бренды, пол, ритейлеры рынка
//	@Tags			manage
//	@Produce		json
//	@Param			market		query		string	false	"Рынок (ISO-код страны)"
//	@Param			gender		query		string	false	"Выбранный пол"
//	@Success		200			{object}	usecase.GetFiltersRes
//	@Failure		500			{object}	ErrorResponse
//	@Router			/filters [get]
func (h *ManageHandler) getFilters(w http.ResponseWriter, r *http.Request) {
	req := &usecase.GetFiltersReq{
		Market:   r.URL.Query().Get("market"),
		Gender:   r.URL.Query().Get("gender"),
		Currency: r.URL.Query().Get("currency"),
	}

	res, err := h.manageUsecase.GetFilters(r.Context(), req)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, res)
}

// getDetails
//
//	@Summary		Профиль пользователя
//	@Description	Возвращает последние поиски и количество избранных товаров
//	@Tags			manage
//	@Produce		json
//	@Param			user_id	query		string	true	"ID пользователя"
//	@Success		200		{object}	usecase.GetDetailsRes
//	@Failure		400		{object}	ErrorResponse
//	@Router			/details [get]
func (h *ManageHandler) getDetails(w http.ResponseWriter, r *http.Request) {
	userID, err := requireQuery(r, "user_id")
	if err != nil {
		h.logger.Warnf("%d: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	res, err := h.manageUsecase.GetDetails(r.Context(), &usecase.GetDetailsReq{UserID: userID})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, res)
}

// getSearch
//
//	@Summary		Сохранённый поиск
//	@Description	Возвращает исходное изображение поиска и его детекции
//	@Tags			manage
//	@Produce		json
//	@Param			id	path		string	true	"ID поиска"
//	@Success		200	{object}	usecase.GetSearchRes
//	@Failure		404	{object}	ErrorResponse
//	@Router			/searches/{id} [get]
func (h *ManageHandler) getSearch(w http.ResponseWriter, r *http.Request) {
	searchID := chi.URLParam(r, "id")

	res, err := h.manageUsecase.GetSearch(r.Context(), &usecase.GetSearchReq{SearchID: searchID})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, res)
}

// saveSearch
//
//	@Summary		Сохранение поиска
//	@Description	Сохраняет поиск vision-пайплайна вместе с детекциями и эмбеддингами
//	@Tags			manage
//	@Accept			json
//	@Produce		json
//	@Param			request	body		usecase.SaveSearchReq	true	"Поиск с детекциями"
//	@Success		201		{object}	usecase.SaveSearchRes
//	@Failure		400		{object}	ErrorResponse
//	@Router			/searches [post]
func (h *ManageHandler) saveSearch(w http.ResponseWriter, r *http.Request) {
	var req usecase.SaveSearchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	res, err := h.manageUsecase.SaveSearch(r.Context(), &req)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, res)
}

// likeProduct
//
//	@Summary		Добавить товар в избранное
//	@Tags			manage
//	@Produce		json
//	@Param			id		path		string	true	"ID товара"
//	@Param			user_id	query		string	true	"ID пользователя"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Router			/products/{id}/like [post]
func (h *ManageHandler) likeProduct(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, h.manageUsecase.LikeProduct)
}

// unlikeProduct
//
//	@Summary		Убрать товар из избранного
//	@Tags			manage
//	@Produce		json
//	@Param			id		path		string	true	"ID товара"
//	@Param			user_id	query		string	true	"ID пользователя"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Router			/products/{id}/like [delete]
func (h *ManageHandler) unlikeProduct(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, h.manageUsecase.UnlikeProduct)
}

// getLikedProducts
//
//	@Summary		Избранные товары
//	@Description	Возвращает избранные товары пользователя в виде готовых карточек
//	@Tags			manage
//	@Produce		json
//	@Param			user_id		query		string	true	"ID пользователя"
//	@Param			currency	query		string	false	"Валюта цен"
//	@Success		200			{object}	usecase.SearchRes
//	@Failure		400			{object}	ErrorResponse
//	@Router			/likes [get]
func (h *ManageHandler) getLikedProducts(w http.ResponseWriter, r *http.Request) {
	userID, err := requireQuery(r, "user_id")
	if err != nil {
		h.logger.Warnf("%d: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	req := &usecase.GetLikedReq{
		UserID:   userID,
		Currency: r.URL.Query().Get("currency"),
	}

	res, err := h.manageUsecase.GetLikedProducts(r.Context(), req)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, res)
}

func (h *ManageHandler) toggleLike(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, req *usecase.LikeReq) error) {
	userID, err := requireQuery(r, "user_id")
	if err != nil {
		h.logger.Warnf("%d: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	req := &usecase.LikeReq{
		UserID:    userID,
		ProductID: chi.URLParam(r, "id"),
	}

	if err := op(r.Context(), req); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
