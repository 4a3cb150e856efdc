package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"spendwise/internal/model"
	"spendwise/internal/service"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage implements the service.Storage interface using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// querier is satisfied by both *sql.DB and *sql.Tx, letting each entity's
// query helpers serve the plain and transactional surfaces alike.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// BeginTx starts a new database transaction.
func (s *SQLiteStorage) BeginTx(ctx context.Context) (service.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	return &sqliteTransaction{tx: tx}, nil
}

// sqliteTransaction wraps sql.Tx to implement service.Transaction. Entity
// operations delegate to the same helpers as SQLiteStorage, executed against
// the transaction.
type sqliteTransaction struct {
	tx *sql.Tx
}

func (t *sqliteTransaction) Commit() error {
	return t.tx.Commit()
}

func (t *sqliteTransaction) Rollback() error {
	return t.tx.Rollback()
}

func (t *sqliteTransaction) Migrate(_ context.Context) error {
	// Migrations should not be run within a transaction
	return fmt.Errorf("migrations cannot be run within a transaction")
}

func (t *sqliteTransaction) BeginTx(_ context.Context) (service.Transaction, error) {
	// Nested transactions not supported
	return nil, fmt.Errorf("nested transactions not supported")
}

func (t *sqliteTransaction) Close() error {
	// Transactions should be committed or rolled back, not closed
	return fmt.Errorf("transactions must be committed or rolled back, not closed")
}

// Category operations within a transaction.

func (t *sqliteTransaction) CreateCategory(ctx context.Context, name string, categoryType model.CategoryType, description string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return createCategory(ctx, t.tx, name, categoryType, description)
}

func (t *sqliteTransaction) CategoryExists(ctx context.Context, name string, categoryType model.CategoryType) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	return categoryExists(ctx, t.tx, name, categoryType)
}

func (t *sqliteTransaction) GetCategory(ctx context.Context, name string, categoryType model.CategoryType) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return getCategory(ctx, t.tx, name, categoryType)
}

func (t *sqliteTransaction) ListCategories(ctx context.Context, categoryType model.CategoryType) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return listCategories(ctx, t.tx, categoryType)
}

// Budget operations within a transaction.

func (t *sqliteTransaction) UpsertBudget(ctx context.Context, budget *model.Budget) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return upsertBudget(ctx, t.tx, budget)
}

func (t *sqliteTransaction) GetBudget(ctx context.Context, name string, categoryType model.CategoryType) (*model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return getBudget(ctx, t.tx, name, categoryType)
}

// Expense operations within a transaction.

func (t *sqliteTransaction) CreateExpense(ctx context.Context, expense *model.Expense) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return createExpense(ctx, t.tx, expense)
}

func (t *sqliteTransaction) GetExpenseByID(ctx context.Context, id int64) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return getExpenseByID(ctx, t.tx, id)
}

func (t *sqliteTransaction) UpdateExpenseAmount(ctx context.Context, id int64, amount float64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return updateExpenseAmount(ctx, t.tx, id, amount)
}

func (t *sqliteTransaction) CountExpensesByCategory(ctx context.Context, category string) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	return countExpensesByCategory(ctx, t.tx, category)
}

func (t *sqliteTransaction) DeleteExpensesByCategory(ctx context.Context, category string) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	return deleteExpensesByCategory(ctx, t.tx, category)
}

func (t *sqliteTransaction) ListExpenses(ctx context.Context, filter service.ExpenseFilter) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return listExpenses(ctx, t.tx, filter)
}

// Income operations within a transaction.

func (t *sqliteTransaction) CreateIncome(ctx context.Context, income *model.Income) (*model.Income, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return createIncome(ctx, t.tx, income)
}

func (t *sqliteTransaction) GetIncomeByID(ctx context.Context, id int64) (*model.Income, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return getIncomeByID(ctx, t.tx, id)
}

func (t *sqliteTransaction) UpdateIncomeAmount(ctx context.Context, id int64, amount float64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return updateIncomeAmount(ctx, t.tx, id, amount)
}

func (t *sqliteTransaction) CountIncomeBySource(ctx context.Context, source string) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	return countIncomeBySource(ctx, t.tx, source)
}

func (t *sqliteTransaction) DeleteIncomeBySource(ctx context.Context, source string) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	return deleteIncomeBySource(ctx, t.tx, source)
}

func (t *sqliteTransaction) ListIncome(ctx context.Context, filter service.IncomeFilter) ([]model.Income, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return listIncome(ctx, t.tx, filter)
}

// Goal operations within a transaction.

func (t *sqliteTransaction) CreateGoal(ctx context.Context, goal *model.Goal) (*model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return createGoal(ctx, t.tx, goal)
}

func (t *sqliteTransaction) GetGoalByName(ctx context.Context, name string) (*model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return getGoalByName(ctx, t.tx, name)
}

func (t *sqliteTransaction) AddToGoal(ctx context.Context, name string, amount float64) (*model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return addToGoal(ctx, t.tx, name, amount)
}

// Aggregation within a transaction.

func (t *sqliteTransaction) TotalExpenses(ctx context.Context) (float64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	return totalExpenses(ctx, t.tx)
}

func (t *sqliteTransaction) TotalIncome(ctx context.Context) (float64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	return totalIncome(ctx, t.tx)
}

func (t *sqliteTransaction) PeriodTotals(ctx context.Context, period model.Period, refDate string) (*service.PeriodSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return periodTotals(ctx, t.tx, period, refDate)
}

func (t *sqliteTransaction) SumExpensesByCategory(ctx context.Context) (map[string]float64, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return sumExpensesByCategory(ctx, t.tx)
}

func (t *sqliteTransaction) SumIncomeBySource(ctx context.Context) (map[string]float64, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return sumIncomeBySource(ctx, t.tx)
}

func (t *sqliteTransaction) MonthlyExpenseTrend(ctx context.Context) ([]service.TrendPoint, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return monthlyExpenseTrend(ctx, t.tx)
}
