package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/wifi-access-portal/internal/models"
)

// ListHistoryByUser возвращает историю покупок пользователя с названиями планов.
func (s *Storage) ListHistoryByUser(ctx context.Context, userUID string) ([]*models.HistoryEntry, error) {
	const op = "storage.ListHistoryByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT h.id, h.user_uid, h.plan_id, p.name, h.purchase_date, h.rating, h.review
			  FROM user_plan_history h
			  JOIN plans p ON h.plan_id = p.id
			  WHERE h.user_uid = $1
			  ORDER BY h.id`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.HistoryEntry
	for rows.Next() {
		var item models.HistoryEntry
		var rating sql.NullInt64
		var review sql.NullString
		if err := rows.Scan(&item.ID, &item.UserUID, &item.PlanID, &item.PlanName,
			&item.PurchaseDate, &rating, &review); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if rating.Valid {
			r := int(rating.Int64)
			item.Rating = &r
		}
		if review.Valid {
			item.Review = &review.String
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RateHistoryEntry прикрепляет оценку и отзыв к записи истории
// и возвращает количество изменённых строк.
func (s *Storage) RateHistoryEntry(ctx context.Context, id, rating int, review string) (int, error) {
	const op = "storage.RateHistoryEntry"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE user_plan_history
			  SET rating = $1, review = $2
			  WHERE id = $3`
	result, err := s.DB.ExecContext(ctx, query, rating, review, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// GetHistoryEntry возвращает запись истории по ID.
func (s *Storage) GetHistoryEntry(ctx context.Context, id int) (*models.HistoryEntry, error) {
	const op = "storage.GetHistoryEntry"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT h.id, h.user_uid, h.plan_id, p.name, h.purchase_date, h.rating, h.review
			  FROM user_plan_history h
			  JOIN plans p ON h.plan_id = p.id
			  WHERE h.id = $1`
	var item models.HistoryEntry
	var rating sql.NullInt64
	var review sql.NullString
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&item.ID, &item.UserUID, &item.PlanID, &item.PlanName,
		&item.PurchaseDate, &rating, &review); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if rating.Valid {
		r := int(rating.Int64)
		item.Rating = &r
	}
	if review.Valid {
		item.Review = &review.String
	}
	return &item, nil
}
