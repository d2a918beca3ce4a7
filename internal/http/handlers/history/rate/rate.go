// Package rate реализует HTTP-обработчик прикрепления оценки и отзыва
// к записи истории покупок.
package rate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/wifi-access-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/wifi-access-portal/internal/http/response"
	"github.com/magabrotheeeer/wifi-access-portal/internal/lib/sl"
	"github.com/magabrotheeeer/wifi-access-portal/internal/models"
)

// Handler обрабатывает HTTP-запросы оценки покупки.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики оценки.
type Service interface {
	Rate(ctx context.Context, id int, userUID string, rating int, review string) (*models.HistoryEntry, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Оценить покупку
// @Description Прикрепляет оценку 1..5 и отзыв к записи истории покупок.
// @Tags History
// @Accept  json
// @Produce  json
// @Param id path int true "ID записи истории"
// @Param request body models.DummyRating true "Оценка и отзыв"
// @Success 200 {object} map[string]any "Оценка сохранена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /user-plan-history/{id}/rate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.history.rate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	var req models.DummyRating
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	entry, err := h.service.Rate(r.Context(), id, userUID, req.Rating, req.Review)
	if err != nil {
		log.Error("failed to rate history entry", sl.Err(err))
		response.AppError(w, r, err)
		return
	}

	log.Info("success to rate history entry", slog.Int("id", entry.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":     entry.ID,
		"rating": *entry.Rating,
	}))
}
