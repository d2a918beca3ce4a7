// Package list реализует HTTP-обработчик истории покупок пользователя.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/wifi-access-portal/internal/http/response"
	"github.com/magabrotheeeer/wifi-access-portal/internal/lib/sl"
	"github.com/magabrotheeeer/wifi-access-portal/internal/models"
)

// Handler обрабатывает HTTP-запросы истории покупок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики истории.
type Service interface {
	ListForUser(ctx context.Context, userUID string) ([]*models.HistoryEntry, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary История покупок пользователя
// @Description Возвращает записи истории с оценками и отзывами, если они выставлены.
// @Tags History
// @Produce  json
// @Param userUID path string true "UID пользователя"
// @Success 200 {object} map[string]any "История покупок"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /user-plan-history/{userUID} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.history.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID := chi.URLParam(r, "userUID")
	if userUID == "" {
		log.Error("user uid is empty")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid user uid"))
		return
	}

	entries, err := h.service.ListForUser(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list history", sl.Err(err))
		response.AppError(w, r, err)
		return
	}

	items := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		item := map[string]any{
			"id":            e.ID,
			"plan_id":       e.PlanID,
			"plan_name":     e.PlanName,
			"purchase_date": e.PurchaseDate.Format(time.RFC3339),
		}
		if e.Rating != nil {
			item["rating"] = *e.Rating
		}
		if e.Review != nil {
			item["review"] = *e.Review
		}
		items = append(items, item)
	}

	log.Info("history listed", slog.Int("count", len(items)))
	render.JSON(w, r, response.StatusOKWithData(items))
}
