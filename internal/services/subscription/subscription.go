// Package services содержит бизнес-логику жизненного цикла подписок:
// покупку с запретом пересечения окон доступа, отмену и сводку по активным.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/wifi-access-portal/internal/lib/apperr"
	"github.com/magabrotheeeer/wifi-access-portal/internal/lib/timeleft"
	"github.com/magabrotheeeer/wifi-access-portal/internal/models"
	"github.com/magabrotheeeer/wifi-access-portal/internal/storage/repository"
)

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// GetPlan возвращает тарифный план по ID.
	GetPlan(ctx context.Context, id int) (*models.Plan, error)
	// PurchaseEntry атомарно создаёт подписку и запись истории либо
	// возвращает действующую подписку во втором значении.
	PurchaseEntry(ctx context.Context, userUID string, plan models.Plan, now time.Time) (*models.Subscription, *models.Subscription, error)
	// CancelEntry переводит подписку в статус cancelled.
	CancelEntry(ctx context.Context, id int, userUID string) (*models.Subscription, error)
	// ListEntriesByUser возвращает подписки пользователя с данными плана.
	ListEntriesByUser(ctx context.Context, userUID string) ([]*models.SubscriptionInfo, error)
	// ListActiveEntries возвращает действующие подписки на момент now.
	ListActiveEntries(ctx context.Context, userUID string, now time.Time) ([]*models.SubscriptionInfo, error)
}

// SubscriptionService реализует бизнес-правила подписок.
// У пользователя в любой момент времени может действовать не более
// одной подписки: правило навязывается транзакцией покупки.
type SubscriptionService struct {
	repo SubscriptionRepository
	log  *slog.Logger
	now  func() time.Time
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// Purchase покупает план для пользователя. Если у пользователя уже есть
// действующая подписка, возвращается ошибка конфликта с остатком времени
// в человекочитаемом виде, и никакие записи не создаются.
func (s *SubscriptionService) Purchase(ctx context.Context, userUID string, planID int) (*models.Subscription, error) {
	if _, err := s.repo.GetUser(ctx, userUID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "user not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to purchase plan", err)
	}
	plan, err := s.repo.GetPlan(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "plan not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to purchase plan", err)
	}

	now := s.now().UTC()
	created, existing, err := s.repo.PurchaseEntry(ctx, userUID, *plan, now)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "user not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to purchase plan", err)
	}
	if existing != nil {
		remaining := timeleft.Format(existing.EndsAt.Sub(now))
		s.log.Info("purchase rejected, active subscription exists",
			slog.String("user_uid", userUID), slog.Int("subscription_id", existing.ID))
		return nil, apperr.New(apperr.KindConflict,
			fmt.Sprintf("you already have an active subscription, try again in %s", remaining))
	}

	s.log.Info("created new subscription",
		slog.Int("id", created.ID), slog.String("user_uid", userUID),
		slog.Int("plan_id", planID))
	return created, nil
}

// Cancel переводит подписку пользователя в статус cancelled.
// Статус терминальный, повторная отмена уже отменённой подписки безвредна.
// После отмены слот освобождается и новую покупку можно совершить сразу,
// не дожидаясь естественного истечения.
func (s *SubscriptionService) Cancel(ctx context.Context, id int, userUID string) (*models.Subscription, error) {
	sub, err := s.repo.CancelEntry(ctx, id, userUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "subscription not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to cancel subscription", err)
	}
	s.log.Info("cancelled subscription", slog.Int("id", id))
	return sub, nil
}

// ListForUser возвращает все подписки пользователя с данными плана.
func (s *SubscriptionService) ListForUser(ctx context.Context, userUID string) ([]*models.SubscriptionInfo, error) {
	entries, err := s.repo.ListEntriesByUser(ctx, userUID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list subscriptions", err)
	}
	return entries, nil
}

// Dashboard возвращает сводку пользователя: действующие подписки
// с остатком времени и общее число покупок. Активность пересчитывается
// по предикату статус+ends_at, сохранённый флаг не используется.
func (s *SubscriptionService) Dashboard(ctx context.Context, userUID string) (*models.DashboardSummary, error) {
	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "user not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to build dashboard", err)
	}

	now := s.now().UTC()
	active, err := s.repo.ListActiveEntries(ctx, userUID, now)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to build dashboard", err)
	}
	all, err := s.repo.ListEntriesByUser(ctx, userUID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to build dashboard", err)
	}

	summary := &models.DashboardSummary{
		Username:            user.Username,
		ActiveSubscriptions: []models.ActiveEntry{},
		TotalPurchases:      len(all),
	}
	for _, sub := range active {
		summary.ActiveSubscriptions = append(summary.ActiveSubscriptions, models.ActiveEntry{
			SubscriptionID: sub.ID,
			PlanName:       sub.PlanName,
			EndsAt:         sub.EndsAt.Format(time.RFC3339),
			RemainingTime:  timeleft.Format(sub.EndsAt.Sub(now)),
		})
	}
	return summary, nil
}
