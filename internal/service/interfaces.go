// Package service defines the storage contracts and the consistency engine
// that enforces spendwise's category, budget, and goal rules.
package service

import (
	"context"

	"spendwise/internal/model"
)

// ExpenseFilter narrows an expense listing. Zero-value fields are ignored;
// the zero filter lists everything.
type ExpenseFilter struct {
	Category string
	Date     string
}

// IncomeFilter narrows an income listing by source.
type IncomeFilter struct {
	Source string
}

// PeriodSummary aggregates income, expenses, and their balance for one
// calendar month or year.
type PeriodSummary struct {
	Period   model.Period
	Bucket   string
	Income   float64
	Expenses float64
	Balance  float64
}

// TrendPoint is one month's expense total in a spending trend.
type TrendPoint struct {
	Month string
	Total float64
}

// GoalProgress reports how far a savings goal has come.
type GoalProgress struct {
	Name      string
	Target    float64
	Saved     float64
	Remaining float64
	Completed bool
}

// ConfirmFunc answers a yes/no question on behalf of the user. The core
// never prompts on its own; callers inject an interactive prompter, a flag
// value, or a test stub.
type ConfirmFunc func(ctx context.Context, question string) (bool, error)

// AutoConfirm answers yes to every question. Used by --yes flags.
func AutoConfirm(_ context.Context, _ string) (bool, error) {
	return true, nil
}

// Storage defines the contract for the persistence layer.
type Storage interface {
	// Category registry operations
	CreateCategory(ctx context.Context, name string, categoryType model.CategoryType, description string) (*model.Category, error)
	CategoryExists(ctx context.Context, name string, categoryType model.CategoryType) (bool, error)
	GetCategory(ctx context.Context, name string, categoryType model.CategoryType) (*model.Category, error)
	ListCategories(ctx context.Context, categoryType model.CategoryType) ([]model.Category, error)

	// Budget ledger operations
	UpsertBudget(ctx context.Context, budget *model.Budget) error
	GetBudget(ctx context.Context, name string, categoryType model.CategoryType) (*model.Budget, error)

	// Expense record operations
	CreateExpense(ctx context.Context, expense *model.Expense) (*model.Expense, error)
	GetExpenseByID(ctx context.Context, id int64) (*model.Expense, error)
	UpdateExpenseAmount(ctx context.Context, id int64, amount float64) error
	CountExpensesByCategory(ctx context.Context, category string) (int64, error)
	DeleteExpensesByCategory(ctx context.Context, category string) (int64, error)
	ListExpenses(ctx context.Context, filter ExpenseFilter) ([]model.Expense, error)

	// Income record operations
	CreateIncome(ctx context.Context, income *model.Income) (*model.Income, error)
	GetIncomeByID(ctx context.Context, id int64) (*model.Income, error)
	UpdateIncomeAmount(ctx context.Context, id int64, amount float64) error
	CountIncomeBySource(ctx context.Context, source string) (int64, error)
	DeleteIncomeBySource(ctx context.Context, source string) (int64, error)
	ListIncome(ctx context.Context, filter IncomeFilter) ([]model.Income, error)

	// Savings goal operations
	CreateGoal(ctx context.Context, goal *model.Goal) (*model.Goal, error)
	GetGoalByName(ctx context.Context, name string) (*model.Goal, error)
	AddToGoal(ctx context.Context, name string, amount float64) (*model.Goal, error)

	// Aggregation operations
	TotalExpenses(ctx context.Context) (float64, error)
	TotalIncome(ctx context.Context) (float64, error)
	PeriodTotals(ctx context.Context, period model.Period, refDate string) (*PeriodSummary, error)
	SumExpensesByCategory(ctx context.Context) (map[string]float64, error)
	SumIncomeBySource(ctx context.Context) (map[string]float64, error)
	MonthlyExpenseTrend(ctx context.Context) ([]TrendPoint, error)

	// Database management
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit() error
	Rollback() error
	// Include all Storage methods for use within the transaction
	Storage
}
