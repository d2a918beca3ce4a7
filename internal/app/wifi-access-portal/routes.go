// Package wifiaccessportal предоставляет маршруты основного приложения.
package wifiaccessportal

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/magabrotheeeer/wifi-access-portal/docs"
	"github.com/magabrotheeeer/wifi-access-portal/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/wifi-access-portal/internal/http/handlers/auth/register"
	dashboardshow "github.com/magabrotheeeer/wifi-access-portal/internal/http/handlers/dashboard/show"
	historylist "github.com/magabrotheeeer/wifi-access-portal/internal/http/handlers/history/list"
	historyrate "github.com/magabrotheeeer/wifi-access-portal/internal/http/handlers/history/rate"
	planlist "github.com/magabrotheeeer/wifi-access-portal/internal/http/handlers/plan/list"
	"github.com/magabrotheeeer/wifi-access-portal/internal/http/handlers/subscription/create"
	sublist "github.com/magabrotheeeer/wifi-access-portal/internal/http/handlers/subscription/list"
	subremove "github.com/magabrotheeeer/wifi-access-portal/internal/http/handlers/subscription/remove"
	userremove "github.com/magabrotheeeer/wifi-access-portal/internal/http/handlers/user/remove"
	userupdate "github.com/magabrotheeeer/wifi-access-portal/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/wifi-access-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/wifi-access-portal/internal/lib/jwt"
	authservice "github.com/magabrotheeeer/wifi-access-portal/internal/services/auth"
	historyservice "github.com/magabrotheeeer/wifi-access-portal/internal/services/history"
	planservice "github.com/magabrotheeeer/wifi-access-portal/internal/services/plan"
	subservice "github.com/magabrotheeeer/wifi-access-portal/internal/services/subscription"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker,
	authService *authservice.AuthService,
	planService *planservice.PlanService,
	subscriptionService *subservice.SubscriptionService,
	historyService *historyservice.HistoryService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки
	r.Post("/register", register.New(logger, authService).ServeHTTP)
	r.Post("/login", login.New(logger, authService).ServeHTTP)
	r.Get("/plans", planlist.New(logger, planService).ServeHTTP)

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
		r.Use(middlewarectx.CheckUserMiddleware(logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Post("/subscriptions", create.New(logger, subscriptionService).ServeHTTP)
		r.Get("/subscriptions/{userUID}", sublist.New(logger, subscriptionService).ServeHTTP)
		r.Delete("/subscriptions/{id}", subremove.New(logger, subscriptionService).ServeHTTP)
		r.Get("/dashboard/{userUID}", dashboardshow.New(logger, subscriptionService).ServeHTTP)
		r.Get("/user-plan-history/{userUID}", historylist.New(logger, historyService).ServeHTTP)
		r.Post("/user-plan-history/{id}/rate", historyrate.New(logger, historyService).ServeHTTP)
		r.Put("/users/{userUID}", userupdate.New(logger, authService).ServeHTTP)
		r.Delete("/users/{userUID}", userremove.New(logger, authService).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
