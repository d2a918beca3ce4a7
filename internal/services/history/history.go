// Package services содержит бизнес-логику истории покупок:
// просмотр и прикрепление оценок к завершённым покупкам.
package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/magabrotheeeer/wifi-access-portal/internal/lib/apperr"
	"github.com/magabrotheeeer/wifi-access-portal/internal/models"
	"github.com/magabrotheeeer/wifi-access-portal/internal/storage/repository"
)

// Границы шкалы оценки.
const (
	minRating = 1
	maxRating = 5
)

// HistoryRepository определяет методы для работы с историей покупок.
type HistoryRepository interface {
	// ListHistoryByUser возвращает историю покупок пользователя.
	ListHistoryByUser(ctx context.Context, userUID string) ([]*models.HistoryEntry, error)
	// GetHistoryEntry возвращает запись истории по ID.
	GetHistoryEntry(ctx context.Context, id int) (*models.HistoryEntry, error)
	// RateHistoryEntry прикрепляет оценку и отзыв к записи.
	RateHistoryEntry(ctx context.Context, id, rating int, review string) (int, error)
}

// HistoryService реализует операции над историей покупок.
// Записи истории создаются только транзакцией покупки; здесь они
// читаются и дополняются оценкой постфактум.
type HistoryService struct {
	repo HistoryRepository
	log  *slog.Logger
}

// NewHistoryService создает новый экземпляр HistoryService.
func NewHistoryService(repo HistoryRepository, log *slog.Logger) *HistoryService {
	return &HistoryService{
		repo: repo,
		log:  log,
	}
}

// ListForUser возвращает историю покупок пользователя.
func (s *HistoryService) ListForUser(ctx context.Context, userUID string) ([]*models.HistoryEntry, error) {
	entries, err := s.repo.ListHistoryByUser(ctx, userUID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list history", err)
	}
	return entries, nil
}

// Rate прикрепляет оценку и отзыв к записи истории пользователя.
// Оценка вне шкалы 1..5 отклоняется, чужая запись неотличима от отсутствующей.
func (s *HistoryService) Rate(ctx context.Context, id int, userUID string, rating int, review string) (*models.HistoryEntry, error) {
	if rating < minRating || rating > maxRating {
		return nil, apperr.New(apperr.KindValidation, "rating must be between 1 and 5")
	}

	entry, err := s.repo.GetHistoryEntry(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "history entry not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to rate history entry", err)
	}
	if entry.UserUID != userUID {
		return nil, apperr.New(apperr.KindNotFound, "history entry not found")
	}

	count, err := s.repo.RateHistoryEntry(ctx, id, rating, review)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to rate history entry", err)
	}
	if count == 0 {
		return nil, apperr.New(apperr.KindNotFound, "history entry not found")
	}
	s.log.Info("rated history entry", slog.Int("id", id), slog.Int("rating", rating))
	return s.repo.GetHistoryEntry(ctx, id)
}
