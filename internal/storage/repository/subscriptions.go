package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/wifi-access-portal/internal/models"
)

// PurchaseEntry выполняет покупку плана в одной транзакции:
// блокирует строку пользователя, проверяет отсутствие действующей подписки
// и вставляет подписку вместе с записью истории. Блокировка строки
// сериализует конкурирующие покупки одного пользователя, поэтому проверка
// и вставка не подвержены гонке между чтением и записью.
//
// Если действующая подписка найдена, возвращается она во втором значении,
// никакие строки при этом не записываются.
func (s *Storage) PurchaseEntry(ctx context.Context, userUID string, plan models.Plan, now time.Time) (*models.Subscription, *models.Subscription, error) {
	const op = "storage.PurchaseEntry"
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var lockedUID string
	if err := tx.QueryRowContext(ctx,
		`SELECT uid FROM users WHERE uid = $1 FOR UPDATE`, userUID).Scan(&lockedUID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	var existing models.Subscription
	err = tx.QueryRowContext(ctx,
		`SELECT id, user_uid, plan_id, status, purchased_at, ends_at
		 FROM subscriptions
		 WHERE user_uid = $1
		   AND status = $2
		   AND ends_at > $3
		 ORDER BY ends_at DESC
		 LIMIT 1`,
		userUID, models.StatusActive, now).Scan(
		&existing.ID, &existing.UserUID, &existing.PlanID,
		&existing.Status, &existing.PurchasedAt, &existing.EndsAt)
	if err == nil {
		return nil, &existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	created := models.Subscription{
		UserUID:     userUID,
		PlanID:      plan.ID,
		Status:      models.StatusActive,
		PurchasedAt: now,
		EndsAt:      now.Add(plan.Duration()),
	}
	if err := tx.QueryRowContext(ctx,
		`INSERT INTO subscriptions (user_uid, plan_id, status, purchased_at, ends_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		created.UserUID, created.PlanID, created.Status,
		created.PurchasedAt, created.EndsAt).Scan(&created.ID); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO user_plan_history (user_uid, plan_id, purchase_date)
		 VALUES ($1, $2, $3)`,
		userUID, plan.ID, now); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil, nil
}

// CancelEntry переводит подписку пользователя в статус cancelled
// и возвращает обновлённую запись. Подписка чужого пользователя
// неотличима от отсутствующей.
func (s *Storage) CancelEntry(ctx context.Context, id int, userUID string) (*models.Subscription, error) {
	const op = "storage.CancelEntry"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET status = $1
			  WHERE id = $2 AND user_uid = $3
			  RETURNING id, user_uid, plan_id, status, purchased_at, ends_at`
	var result models.Subscription
	row := s.DB.QueryRowContext(ctx, query, models.StatusCancelled, id, userUID)
	if err := row.Scan(&result.ID, &result.UserUID, &result.PlanID,
		&result.Status, &result.PurchasedAt, &result.EndsAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListEntriesByUser возвращает все подписки пользователя с данными плана.
func (s *Storage) ListEntriesByUser(ctx context.Context, userUID string) ([]*models.SubscriptionInfo, error) {
	const op = "storage.ListEntriesByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT s.id, s.user_uid, s.plan_id, s.status, s.purchased_at, s.ends_at,
			      p.name, p.price_cents, p.duration_minutes
			  FROM subscriptions s
			  JOIN plans p ON s.plan_id = p.id
			  WHERE s.user_uid = $1
			  ORDER BY s.id`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.SubscriptionInfo
	for rows.Next() {
		var item models.SubscriptionInfo
		if err := rows.Scan(&item.ID, &item.UserUID, &item.PlanID, &item.Status,
			&item.PurchasedAt, &item.EndsAt,
			&item.PlanName, &item.PriceCents, &item.DurationMinutes); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListActiveEntries возвращает действующие подписки пользователя
// на момент now, вычисляя активность заново по статусу и ends_at.
func (s *Storage) ListActiveEntries(ctx context.Context, userUID string, now time.Time) ([]*models.SubscriptionInfo, error) {
	const op = "storage.ListActiveEntries"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT s.id, s.user_uid, s.plan_id, s.status, s.purchased_at, s.ends_at,
			      p.name, p.price_cents, p.duration_minutes
			  FROM subscriptions s
			  JOIN plans p ON s.plan_id = p.id
			  WHERE s.user_uid = $1
			    AND s.status = $2
			    AND s.ends_at > $3
			  ORDER BY s.ends_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID, models.StatusActive, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.SubscriptionInfo
	for rows.Next() {
		var item models.SubscriptionInfo
		if err := rows.Scan(&item.ID, &item.UserUID, &item.PlanID, &item.Status,
			&item.PurchasedAt, &item.EndsAt,
			&item.PlanName, &item.PriceCents, &item.DurationMinutes); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
