package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"spendwise/internal/common"
	"spendwise/internal/model"
)

// UpsertBudget sets the budget for a category name, replacing any prior row
// under that name regardless of its previous type. The budgets table keys on
// the name alone; this mirrors the historical INSERT OR REPLACE behavior and
// is documented in DESIGN.md.
func (s *SQLiteStorage) UpsertBudget(ctx context.Context, budget *model.Budget) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return upsertBudget(ctx, s.db, budget)
}

// GetBudget returns the budget row matching the normalized (name, type)
// pair, or ErrBudgetNotFound when no such row exists.
func (s *SQLiteStorage) GetBudget(ctx context.Context, name string, categoryType model.CategoryType) (*model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return getBudget(ctx, s.db, name, categoryType)
}

func upsertBudget(ctx context.Context, q querier, budget *model.Budget) error {
	if err := validateBudget(budget); err != nil {
		return err
	}

	name := model.Normalize(budget.CategoryName)
	query := `
		INSERT OR REPLACE INTO budgets (category_name, budget_value, category_type)
		VALUES (?, ?, ?)`

	if _, err := q.ExecContext(ctx, query, name, budget.Value, string(budget.Type)); err != nil {
		return fmt.Errorf("failed to upsert budget: %w", err)
	}

	slog.Info("budget set", "category", name, "type", budget.Type, "value", budget.Value)
	return nil
}

func getBudget(ctx context.Context, q querier, name string, categoryType model.CategoryType) (*model.Budget, error) {
	name = model.Normalize(name)
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}
	if err := validateCategoryType(categoryType); err != nil {
		return nil, err
	}

	query := `
		SELECT category_name, budget_value, category_type
		FROM budgets
		WHERE LOWER(TRIM(category_name)) = ? AND LOWER(TRIM(category_type)) = ?`

	var budget model.Budget
	err := q.QueryRowContext(ctx, query, name, string(categoryType)).Scan(
		&budget.CategoryName, &budget.Value, &budget.Type,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q (%s)", common.ErrBudgetNotFound, name, categoryType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query budget: %w", err)
	}

	return &budget, nil
}
