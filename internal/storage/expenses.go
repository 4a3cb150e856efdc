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

// CreateExpense appends a new expense record and returns it with its
// assigned identifier.
func (s *SQLiteStorage) CreateExpense(ctx context.Context, expense *model.Expense) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return createExpense(ctx, s.db, expense)
}

// GetExpenseByID returns one expense record, or ErrExpenseNotFound.
func (s *SQLiteStorage) GetExpenseByID(ctx context.Context, id int64) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return getExpenseByID(ctx, s.db, id)
}

// UpdateExpenseAmount overwrites the amount of one expense record; the date
// and category are left untouched.
func (s *SQLiteStorage) UpdateExpenseAmount(ctx context.Context, id int64, amount float64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return updateExpenseAmount(ctx, s.db, id, amount)
}

// CountExpensesByCategory counts rows whose normalized category matches.
func (s *SQLiteStorage) CountExpensesByCategory(ctx context.Context, category string) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	return countExpensesByCategory(ctx, s.db, category)
}

// DeleteExpensesByCategory removes all rows whose normalized category
// matches, as a single statement, and returns the number removed.
func (s *SQLiteStorage) DeleteExpensesByCategory(ctx context.Context, category string) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	return deleteExpensesByCategory(ctx, s.db, category)
}

// ListExpenses returns expense records matching the filter, oldest first.
func (s *SQLiteStorage) ListExpenses(ctx context.Context, filter service.ExpenseFilter) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return listExpenses(ctx, s.db, filter)
}

func createExpense(ctx context.Context, q querier, expense *model.Expense) (*model.Expense, error) {
	if err := validateExpense(expense); err != nil {
		return nil, err
	}

	query := `INSERT INTO expenses (date, category, amount) VALUES (?, ?, ?)`
	result, err := q.ExecContext(ctx, query, expense.Date, model.Normalize(expense.Category), expense.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get expense ID: %w", err)
	}

	created := *expense
	created.ID = id
	created.Category = model.Normalize(expense.Category)

	slog.Info("expense recorded",
		"id", id,
		"date", created.Date,
		"category", created.Category,
		"amount", created.Amount)
	return &created, nil
}

func getExpenseByID(ctx context.Context, q querier, id int64) (*model.Expense, error) {
	query := `SELECT id, date, category, amount, created_at FROM expenses WHERE id = ?`

	var expense model.Expense
	err := q.QueryRowContext(ctx, query, id).Scan(
		&expense.ID, &expense.Date, &expense.Category, &expense.Amount, &expense.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", common.ErrExpenseNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query expense: %w", err)
	}
	return &expense, nil
}

func updateExpenseAmount(ctx context.Context, q querier, id int64, amount float64) error {
	if err := validateAmount(amount); err != nil {
		return err
	}

	result, err := q.ExecContext(ctx, `UPDATE expenses SET amount = ? WHERE id = ?`, amount, id)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", common.ErrExpenseNotFound, id)
	}

	slog.Info("expense amount updated", "id", id, "amount", amount)
	return nil
}

func countExpensesByCategory(ctx context.Context, q querier, category string) (int64, error) {
	category = model.Normalize(category)
	if err := validateString(category, "category"); err != nil {
		return 0, err
	}

	var count int64
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM expenses WHERE LOWER(TRIM(category)) = ?`, category,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count expenses: %w", err)
	}
	return count, nil
}

func deleteExpensesByCategory(ctx context.Context, q querier, category string) (int64, error) {
	category = model.Normalize(category)
	if err := validateString(category, "category"); err != nil {
		return 0, err
	}

	result, err := q.ExecContext(ctx,
		`DELETE FROM expenses WHERE LOWER(TRIM(category)) = ?`, category)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expenses: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return deleted, nil
}

func listExpenses(ctx context.Context, q querier, filter service.ExpenseFilter) ([]model.Expense, error) {
	query := `SELECT id, date, category, amount, created_at FROM expenses`
	var args []any

	switch {
	case filter.Category != "":
		query += ` WHERE LOWER(TRIM(category)) = ?`
		args = append(args, model.Normalize(filter.Category))
	case filter.Date != "":
		if err := validateDate(filter.Date); err != nil {
			return nil, err
		}
		query += ` WHERE date = ?`
		args = append(args, filter.Date)
	}
	query += ` ORDER BY date, id`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []model.Expense
	for rows.Next() {
		var expense model.Expense
		if err := rows.Scan(&expense.ID, &expense.Date, &expense.Category, &expense.Amount, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	slog.Debug("retrieved expenses", "count", len(expenses))
	return expenses, nil
}
