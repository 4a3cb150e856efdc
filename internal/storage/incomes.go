package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"spendwise/internal/common"
	"spendwise/internal/model"
	"spendwise/internal/service"
)

// CreateIncome appends a new income record and returns it with its assigned
// identifier.
func (s *SQLiteStorage) CreateIncome(ctx context.Context, income *model.Income) (*model.Income, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return createIncome(ctx, s.db, income)
}

// GetIncomeByID returns one income record, or ErrIncomeNotFound.
func (s *SQLiteStorage) GetIncomeByID(ctx context.Context, id int64) (*model.Income, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return getIncomeByID(ctx, s.db, id)
}

// UpdateIncomeAmount overwrites the amount of one income record.
func (s *SQLiteStorage) UpdateIncomeAmount(ctx context.Context, id int64, amount float64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return updateIncomeAmount(ctx, s.db, id, amount)
}

// CountIncomeBySource counts rows whose normalized source matches.
func (s *SQLiteStorage) CountIncomeBySource(ctx context.Context, source string) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	return countIncomeBySource(ctx, s.db, source)
}

// DeleteIncomeBySource removes all rows whose normalized source matches.
func (s *SQLiteStorage) DeleteIncomeBySource(ctx context.Context, source string) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	return deleteIncomeBySource(ctx, s.db, source)
}

// ListIncome returns income records matching the filter, oldest first.
func (s *SQLiteStorage) ListIncome(ctx context.Context, filter service.IncomeFilter) ([]model.Income, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return listIncome(ctx, s.db, filter)
}

func createIncome(ctx context.Context, q querier, income *model.Income) (*model.Income, error) {
	if err := validateIncome(income); err != nil {
		return nil, err
	}

	query := `INSERT INTO incomes (source, amount, date) VALUES (?, ?, ?)`
	result, err := q.ExecContext(ctx, query, model.Normalize(income.Source), income.Amount, income.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to create income: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get income ID: %w", err)
	}

	created := *income
	created.ID = id
	created.Source = model.Normalize(income.Source)

	slog.Info("income recorded",
		"id", id,
		"date", created.Date,
		"source", created.Source,
		"amount", created.Amount)
	return &created, nil
}

func getIncomeByID(ctx context.Context, q querier, id int64) (*model.Income, error) {
	query := `SELECT id, source, amount, date, created_at FROM incomes WHERE id = ?`

	var income model.Income
	err := q.QueryRowContext(ctx, query, id).Scan(
		&income.ID, &income.Source, &income.Amount, &income.Date, &income.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", common.ErrIncomeNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query income: %w", err)
	}
	return &income, nil
}

func updateIncomeAmount(ctx context.Context, q querier, id int64, amount float64) error {
	if err := validateAmount(amount); err != nil {
		return err
	}

	result, err := q.ExecContext(ctx, `UPDATE incomes SET amount = ? WHERE id = ?`, amount, id)
	if err != nil {
		return fmt.Errorf("failed to update income: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", common.ErrIncomeNotFound, id)
	}

	slog.Info("income amount updated", "id", id, "amount", amount)
	return nil
}

func countIncomeBySource(ctx context.Context, q querier, source string) (int64, error) {
	source = model.Normalize(source)
	if err := validateString(source, "source"); err != nil {
		return 0, err
	}

	var count int64
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM incomes WHERE LOWER(TRIM(source)) = ?`, source,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count income: %w", err)
	}
	return count, nil
}

func deleteIncomeBySource(ctx context.Context, q querier, source string) (int64, error) {
	source = model.Normalize(source)
	if err := validateString(source, "source"); err != nil {
		return 0, err
	}

	result, err := q.ExecContext(ctx,
		`DELETE FROM incomes WHERE LOWER(TRIM(source)) = ?`, source)
	if err != nil {
		return 0, fmt.Errorf("failed to delete income: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return deleted, nil
}

func listIncome(ctx context.Context, q querier, filter service.IncomeFilter) ([]model.Income, error) {
	query := `SELECT id, source, amount, date, created_at FROM incomes`
	var args []any

	if filter.Source != "" {
		query += ` WHERE LOWER(TRIM(source)) = ?`
		args = append(args, model.Normalize(filter.Source))
	}
	query += ` ORDER BY date, id`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query income: %w", err)
	}
	defer rows.Close()

	var incomes []model.Income
	for rows.Next() {
		var income model.Income
		if err := rows.Scan(&income.ID, &income.Source, &income.Amount, &income.Date, &income.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		incomes = append(incomes, income)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating income: %w", err)
	}

	slog.Debug("retrieved income records", "count", len(incomes))
	return incomes, nil
}
