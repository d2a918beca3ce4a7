package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/wifi-access-portal/internal/models"
)

// ListPlans возвращает каталог тарифных планов в стабильном порядке.
func (s *Storage) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	const op = "storage.ListPlans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price_cents, duration_minutes
			  FROM plans
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Plan
	for rows.Next() {
		var item models.Plan
		if err := rows.Scan(&item.ID, &item.Name, &item.PriceCents, &item.DurationMinutes); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetPlan возвращает тарифный план по ID.
func (s *Storage) GetPlan(ctx context.Context, id int) (*models.Plan, error) {
	const op = "storage.GetPlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price_cents, duration_minutes
			  FROM plans
			  WHERE id = $1`
	var result models.Plan
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&result.ID, &result.Name, &result.PriceCents, &result.DurationMinutes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// SeedPlans добавляет стартовый набор планов. Повторный вызов не создаёт
// дубликатов: конфликт по уникальному имени плана игнорируется.
func (s *Storage) SeedPlans(ctx context.Context, plans []models.Plan) error {
	const op = "storage.SeedPlans"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO plans (name, price_cents, duration_minutes)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (name) DO NOTHING`
	for _, p := range plans {
		if _, err := s.DB.ExecContext(ctx, query, p.Name, p.PriceCents, p.DurationMinutes); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}
