// Package wifiaccessportal собирает приложение портала Wi-Fi доступа:
// хранилище, кеш, сервисы и HTTP-сервер. Все зависимости создаются
// один раз при старте и передаются явно, без глобального состояния.
package wifiaccessportal

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/wifi-access-portal/internal/cache"
	"github.com/magabrotheeeer/wifi-access-portal/internal/config"
	"github.com/magabrotheeeer/wifi-access-portal/internal/lib/jwt"
	"github.com/magabrotheeeer/wifi-access-portal/internal/migrations"
	authservice "github.com/magabrotheeeer/wifi-access-portal/internal/services/auth"
	historyservice "github.com/magabrotheeeer/wifi-access-portal/internal/services/history"
	planservice "github.com/magabrotheeeer/wifi-access-portal/internal/services/plan"
	subservice "github.com/magabrotheeeer/wifi-access-portal/internal/services/subscription"
	"github.com/magabrotheeeer/wifi-access-portal/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и ресурсы приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New инициализирует хранилище, применяет миграции, наполняет каталог
// планов и собирает HTTP-сервер с маршрутами.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	planService := planservice.NewPlanService(db, cacheRedis, logger)
	subscriptionService := subservice.NewSubscriptionService(db, logger)
	historyService := historyservice.NewHistoryService(db, logger)

	if err := planService.Seed(ctx); err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker,
		authService, planService, subscriptionService, historyService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и корректно останавливает его
// при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}
