// Package show реализует HTTP-обработчик сводки пользователя:
// действующие подписки с остатком времени и общее число покупок.
package show

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/wifi-access-portal/internal/http/response"
	"github.com/magabrotheeeer/wifi-access-portal/internal/lib/sl"
	"github.com/magabrotheeeer/wifi-access-portal/internal/models"
)

// Handler обрабатывает HTTP-запросы сводки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики сводки.
type Service interface {
	Dashboard(ctx context.Context, userUID string) (*models.DashboardSummary, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводка пользователя
// @Description Возвращает действующие подписки с остатком времени. Активность пересчитывается по текущему времени.
// @Tags Dashboard
// @Produce  json
// @Param userUID path string true "UID пользователя"
// @Success 200 {object} models.DashboardSummary "Сводка"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /dashboard/{userUID} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.show"

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

	summary, err := h.service.Dashboard(r.Context(), userUID)
	if err != nil {
		log.Error("failed to build dashboard", sl.Err(err))
		response.AppError(w, r, err)
		return
	}

	log.Info("dashboard built", slog.Int("active", len(summary.ActiveSubscriptions)))
	render.JSON(w, r, response.StatusOKWithData(summary))
}
