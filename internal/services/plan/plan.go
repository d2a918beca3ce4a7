// Package services содержит бизнес-логику каталога тарифных планов.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/wifi-access-portal/internal/lib/apperr"
	"github.com/magabrotheeeer/wifi-access-portal/internal/lib/sl"
	"github.com/magabrotheeeer/wifi-access-portal/internal/models"
)

const catalogCacheKey = "plans:catalog"

// PlanRepository определяет методы для работы с планами в хранилище.
type PlanRepository interface {
	// ListPlans возвращает каталог планов в стабильном порядке.
	ListPlans(ctx context.Context) ([]*models.Plan, error)
	// SeedPlans идемпотентно добавляет стартовый набор планов.
	SeedPlans(ctx context.Context, plans []models.Plan) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// PlanService отдаёт каталог планов, кешируя его: каталог —
// почти неизменяемые справочные данные.
type PlanService struct {
	repo  PlanRepository
	cache Cache
	log   *slog.Logger
}

// NewPlanService создает новый экземпляр PlanService.
func NewPlanService(repo PlanRepository, cache Cache, log *slog.Logger) *PlanService {
	return &PlanService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// DefaultPlans — стартовый каталог планов доступа.
// Цены заданы в минорных единицах валюты.
func DefaultPlans() []models.Plan {
	return []models.Plan{
		{Name: "Basic", PriceCents: 500, DurationMinutes: 60},
		{Name: "Premium", PriceCents: 1500, DurationMinutes: 300},
		{Name: "Daily Pass", PriceCents: 5000, DurationMinutes: 1440},
	}
}

// Seed наполняет каталог стартовыми планами при первом запуске.
// Повторный запуск не создаёт дубликатов.
func (s *PlanService) Seed(ctx context.Context) error {
	if err := s.repo.SeedPlans(ctx, DefaultPlans()); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to seed plans", err)
	}
	if err := s.cache.Invalidate(catalogCacheKey); err != nil {
		s.log.Warn("failed to invalidate plan catalog cache", sl.Err(err))
	}
	return nil
}

// List возвращает каталог планов, используя кеш или репозиторий.
func (s *PlanService) List(ctx context.Context) ([]*models.Plan, error) {
	var cached []*models.Plan
	found, err := s.cache.Get(catalogCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read plan catalog cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	plans, err := s.repo.ListPlans(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list plans", err)
	}
	if err := s.cache.Set(catalogCacheKey, plans, time.Hour); err != nil {
		s.log.Warn("failed to cache plan catalog", sl.Err(err))
	}
	return plans, nil
}
