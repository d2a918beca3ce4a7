// Package list реализует HTTP-обработчик списка подписок пользователя
// с данными тарифного плана.
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

// Handler обрабатывает HTTP-запросы списка подписок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка подписок.
type Service interface {
	ListForUser(ctx context.Context, userUID string) ([]*models.SubscriptionInfo, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Подписки пользователя
// @Description Возвращает все подписки пользователя с данными плана.
// @Tags Subscriptions
// @Produce  json
// @Param userUID path string true "UID пользователя"
// @Success 200 {object} map[string]any "Список подписок"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /subscriptions/{userUID} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.list"

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
		log.Error("failed to list subscriptions", sl.Err(err))
		response.AppError(w, r, err)
		return
	}

	items := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		items = append(items, map[string]any{
			"id":               e.ID,
			"plan_id":          e.PlanID,
			"plan_name":        e.PlanName,
			"price_cents":      e.PriceCents,
			"duration_minutes": e.DurationMinutes,
			"status":           e.Status,
			"purchased_at":     e.PurchasedAt.Format(time.RFC3339),
			"ends_at":          e.EndsAt.Format(time.RFC3339),
		})
	}

	log.Info("subscriptions listed", slog.Int("count", len(items)))
	render.JSON(w, r, response.StatusOKWithData(items))
}
