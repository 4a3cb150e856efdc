package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"spendwise/internal/common"
	"spendwise/internal/model"
)

// Tracker is the budget/category/goal consistency engine. Every mutating
// operation normalizes its inputs, validates them, and routes missing-category
// decisions through an injected ConfirmFunc so the engine stays testable
// without simulated standard input.
type Tracker struct {
	store Storage
}

// NewTracker creates a tracker backed by the given storage.
func NewTracker(store Storage) *Tracker {
	return &Tracker{store: store}
}

// AddCategory registers a new category in the namespace selected by
// categoryType. The description is optional.
func (t *Tracker) AddCategory(ctx context.Context, name string, categoryType model.CategoryType, description string) (*model.Category, error) {
	name = model.Normalize(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category", common.ErrEmptyName)
	}
	if !categoryType.Valid() {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidCategoryType, categoryType)
	}
	return t.store.CreateCategory(ctx, name, categoryType, description)
}

// CategoryExists reports whether the normalized name is registered in the
// given namespace.
func (t *Tracker) CategoryExists(ctx context.Context, name string, categoryType model.CategoryType) (bool, error) {
	name = model.Normalize(name)
	if name == "" {
		return false, fmt.Errorf("%w: category", common.ErrEmptyName)
	}
	if !categoryType.Valid() {
		return false, fmt.Errorf("%w: %q", common.ErrInvalidCategoryType, categoryType)
	}
	return t.store.CategoryExists(ctx, name, categoryType)
}

// ListCategories returns all categories in one namespace, ordered by name.
func (t *Tracker) ListCategories(ctx context.Context, categoryType model.CategoryType) ([]model.Category, error) {
	if !categoryType.Valid() {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidCategoryType, categoryType)
	}
	return t.store.ListCategories(ctx, categoryType)
}

// SetBudget upserts the budget for a category name. The budgets table keys
// on the name alone, so the latest call wins regardless of the prior type.
// When the category is unregistered, confirm decides whether to create it;
// declining yields ErrBudgetNotSet and no mutation.
func (t *Tracker) SetBudget(ctx context.Context, name string, value float64, categoryType model.CategoryType, confirm ConfirmFunc) error {
	name = model.Normalize(name)
	if name == "" {
		return fmt.Errorf("%w: category", common.ErrEmptyName)
	}
	if value <= 0 {
		return fmt.Errorf("%w: budget %.2f", common.ErrInvalidAmount, value)
	}
	if !categoryType.Valid() {
		return fmt.Errorf("%w: %q", common.ErrInvalidCategoryType, categoryType)
	}

	budget := &model.Budget{CategoryName: name, Type: categoryType, Value: value}

	exists, err := t.store.CategoryExists(ctx, name, categoryType)
	if err != nil {
		return err
	}
	if exists {
		return t.store.UpsertBudget(ctx, budget)
	}

	ok, err := t.askToCreate(ctx, name, categoryType, confirm)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: category %q (%s) does not exist", common.ErrBudgetNotSet, name, categoryType)
	}

	// Category creation and budget upsert commit together.
	tx, err := t.store.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.CreateCategory(ctx, name, categoryType, ""); err != nil {
		return err
	}
	if err := tx.UpsertBudget(ctx, budget); err != nil {
		return err
	}
	return tx.Commit()
}

// GetBudget returns the budget for a registered category.
// ErrCategoryNotFound means the category itself is unregistered;
// ErrBudgetNotFound means it is registered but has no budget row yet.
func (t *Tracker) GetBudget(ctx context.Context, name string, categoryType model.CategoryType) (*model.Budget, error) {
	name = model.Normalize(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category", common.ErrEmptyName)
	}
	if !categoryType.Valid() {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidCategoryType, categoryType)
	}

	exists, err := t.store.CategoryExists(ctx, name, categoryType)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %q (%s)", common.ErrCategoryNotFound, name, categoryType)
	}
	return t.store.GetBudget(ctx, name, categoryType)
}

// RemainingBudget returns total income minus total expenses across all
// records.
func (t *Tracker) RemainingBudget(ctx context.Context) (float64, error) {
	income, err := t.store.TotalIncome(ctx)
	if err != nil {
		return 0, err
	}
	expenses, err := t.store.TotalExpenses(ctx)
	if err != nil {
		return 0, err
	}
	return income - expenses, nil
}

// RecordExpense validates and appends a new expense record. A missing
// category is offered for creation through confirm; declining yields
// ErrNotRecorded and no row is written.
func (t *Tracker) RecordExpense(ctx context.Context, date, category string, amount float64, confirm ConfirmFunc) (*model.Expense, error) {
	category = model.Normalize(category)
	if category == "" {
		return nil, fmt.Errorf("%w: category", common.ErrEmptyName)
	}
	if !model.ValidDate(date) {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidDate, date)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: %.2f", common.ErrInvalidAmount, amount)
	}

	expense := &model.Expense{Date: date, Category: category, Amount: amount}

	exists, err := t.store.CategoryExists(ctx, category, model.CategoryTypeExpense)
	if err != nil {
		return nil, err
	}
	if exists {
		return t.store.CreateExpense(ctx, expense)
	}

	ok, err := t.askToCreate(ctx, category, model.CategoryTypeExpense, confirm)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: category %q (expense) does not exist", common.ErrNotRecorded, category)
	}

	tx, err := t.store.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.CreateCategory(ctx, category, model.CategoryTypeExpense, ""); err != nil {
		return nil, err
	}
	created, err := tx.CreateExpense(ctx, expense)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return created, nil
}

// RecordIncome validates and appends a new income record against the income
// namespace. Symmetric with RecordExpense.
func (t *Tracker) RecordIncome(ctx context.Context, date, source string, amount float64, confirm ConfirmFunc) (*model.Income, error) {
	source = model.Normalize(source)
	if source == "" {
		return nil, fmt.Errorf("%w: source", common.ErrEmptyName)
	}
	if !model.ValidDate(date) {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidDate, date)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: %.2f", common.ErrInvalidAmount, amount)
	}

	income := &model.Income{Date: date, Source: source, Amount: amount}

	exists, err := t.store.CategoryExists(ctx, source, model.CategoryTypeIncome)
	if err != nil {
		return nil, err
	}
	if exists {
		return t.store.CreateIncome(ctx, income)
	}

	ok, err := t.askToCreate(ctx, source, model.CategoryTypeIncome, confirm)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: category %q (income) does not exist", common.ErrNotRecorded, source)
	}

	tx, err := t.store.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.CreateCategory(ctx, source, model.CategoryTypeIncome, ""); err != nil {
		return nil, err
	}
	created, err := tx.CreateIncome(ctx, income)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateExpenseAmount overwrites the amount of one expense record. The date
// and category are immutable through this path.
func (t *Tracker) UpdateExpenseAmount(ctx context.Context, id int64, amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: %.2f", common.ErrInvalidAmount, amount)
	}
	return t.store.UpdateExpenseAmount(ctx, id, amount)
}

// UpdateIncomeAmount overwrites the amount of one income record.
func (t *Tracker) UpdateIncomeAmount(ctx context.Context, id int64, amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: %.2f", common.ErrInvalidAmount, amount)
	}
	return t.store.UpdateIncomeAmount(ctx, id, amount)
}

// DeleteExpensesByCategory removes every expense row whose normalized
// category matches, as one atomic statement. ErrNothingToDelete when no row
// matches; ErrDeleteCanceled when confirm declines.
func (t *Tracker) DeleteExpensesByCategory(ctx context.Context, category string, confirm ConfirmFunc) (int64, error) {
	category = model.Normalize(category)
	if category == "" {
		return 0, fmt.Errorf("%w: category", common.ErrEmptyName)
	}

	count, err := t.store.CountExpensesByCategory(ctx, category)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, fmt.Errorf("%w: no expenses under %q", common.ErrNothingToDelete, category)
	}

	if confirm != nil {
		question := fmt.Sprintf("Delete all %d expense(s) under %q?", count, category)
		ok, err := confirm(ctx, question)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, fmt.Errorf("%w: expenses under %q kept", common.ErrDeleteCanceled, category)
		}
	}

	deleted, err := t.store.DeleteExpensesByCategory(ctx, category)
	if err != nil {
		return 0, err
	}
	slog.Info("deleted expenses by category", "category", category, "rows", deleted)
	return deleted, nil
}

// DeleteIncomeBySource removes every income row under one source.
// Symmetric with DeleteExpensesByCategory.
func (t *Tracker) DeleteIncomeBySource(ctx context.Context, source string, confirm ConfirmFunc) (int64, error) {
	source = model.Normalize(source)
	if source == "" {
		return 0, fmt.Errorf("%w: source", common.ErrEmptyName)
	}

	count, err := t.store.CountIncomeBySource(ctx, source)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, fmt.Errorf("%w: no income under %q", common.ErrNothingToDelete, source)
	}

	if confirm != nil {
		question := fmt.Sprintf("Delete all %d income record(s) under %q?", count, source)
		ok, err := confirm(ctx, question)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, fmt.Errorf("%w: income under %q kept", common.ErrDeleteCanceled, source)
		}
	}

	deleted, err := t.store.DeleteIncomeBySource(ctx, source)
	if err != nil {
		return 0, err
	}
	slog.Info("deleted income by source", "source", source, "rows", deleted)
	return deleted, nil
}

// ListExpenses returns expense records matching the filter. The filter's
// category is normalized; its date must be valid when set. An empty result
// is a success, not an error.
func (t *Tracker) ListExpenses(ctx context.Context, filter ExpenseFilter) ([]model.Expense, error) {
	filter.Category = model.Normalize(filter.Category)
	if filter.Date != "" && !model.ValidDate(filter.Date) {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidDate, filter.Date)
	}
	return t.store.ListExpenses(ctx, filter)
}

// ListIncome returns income records matching the filter.
func (t *Tracker) ListIncome(ctx context.Context, filter IncomeFilter) ([]model.Income, error) {
	filter.Source = model.Normalize(filter.Source)
	return t.store.ListIncome(ctx, filter)
}

// CreateGoal registers a savings goal with zero progress. The end date must
// fall strictly after the start date.
func (t *Tracker) CreateGoal(ctx context.Context, name string, target float64, startDate, endDate string) (*model.Goal, error) {
	name = model.Normalize(name)
	if name == "" {
		return nil, fmt.Errorf("%w: goal", common.ErrEmptyName)
	}
	if target <= 0 {
		return nil, fmt.Errorf("%w: target %.2f", common.ErrInvalidAmount, target)
	}
	if !model.ValidDate(startDate) {
		return nil, fmt.Errorf("%w: start %q", common.ErrInvalidDate, startDate)
	}
	if !model.ValidDate(endDate) {
		return nil, fmt.Errorf("%w: end %q", common.ErrInvalidDate, endDate)
	}

	start, _ := time.Parse(model.DateLayout, startDate)
	end, _ := time.Parse(model.DateLayout, endDate)
	if !end.After(start) {
		return nil, fmt.Errorf("%w: %s..%s", common.ErrInvalidDateRange, startDate, endDate)
	}

	return t.store.CreateGoal(ctx, &model.Goal{
		Name:         name,
		StartDate:    startDate,
		EndDate:      endDate,
		TargetAmount: target,
	})
}

// GoalProgress reports target, saved, and remaining amounts for one goal.
func (t *Tracker) GoalProgress(ctx context.Context, name string) (*GoalProgress, error) {
	name = model.Normalize(name)
	if name == "" {
		return nil, fmt.Errorf("%w: goal", common.ErrEmptyName)
	}
	goal, err := t.store.GetGoalByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return &GoalProgress{
		Name:      goal.Name,
		Target:    goal.TargetAmount,
		Saved:     goal.SavedSoFar,
		Remaining: goal.Remaining(),
		Completed: goal.Completed(),
	}, nil
}

// ContributeToGoal adds amount to a goal's cumulative savings as a single
// in-store increment, so concurrent contributions cannot lose an update.
// Returns the updated progress.
func (t *Tracker) ContributeToGoal(ctx context.Context, name string, amount float64) (*GoalProgress, error) {
	name = model.Normalize(name)
	if name == "" {
		return nil, fmt.Errorf("%w: goal", common.ErrEmptyName)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: %.2f", common.ErrInvalidAmount, amount)
	}

	goal, err := t.store.AddToGoal(ctx, name, amount)
	if err != nil {
		return nil, err
	}
	slog.Info("goal contribution saved",
		"goal", goal.Name,
		"amount", amount,
		"saved_so_far", goal.SavedSoFar)
	return &GoalProgress{
		Name:      goal.Name,
		Target:    goal.TargetAmount,
		Saved:     goal.SavedSoFar,
		Remaining: goal.Remaining(),
		Completed: goal.Completed(),
	}, nil
}

// TotalIncome sums all income records; no rows yields 0.
func (t *Tracker) TotalIncome(ctx context.Context) (float64, error) {
	return t.store.TotalIncome(ctx)
}

// TotalExpenses sums all expense records; no rows yields 0.
func (t *Tracker) TotalExpenses(ctx context.Context) (float64, error) {
	return t.store.TotalExpenses(ctx)
}

// PeriodSummary buckets records sharing refDate's calendar month or year and
// returns their income, expense, and balance totals.
func (t *Tracker) PeriodSummary(ctx context.Context, period model.Period, refDate string) (*PeriodSummary, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidPeriod, period)
	}
	if !model.ValidDate(refDate) {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidDate, refDate)
	}
	return t.store.PeriodTotals(ctx, period, refDate)
}

// ExpensesByCategory returns one total per distinct normalized category.
func (t *Tracker) ExpensesByCategory(ctx context.Context) (map[string]float64, error) {
	return t.store.SumExpensesByCategory(ctx)
}

// IncomeBySource returns one total per distinct normalized source.
func (t *Tracker) IncomeBySource(ctx context.Context) (map[string]float64, error) {
	return t.store.SumIncomeBySource(ctx)
}

// MonthlyExpenseTrend returns per-month expense totals in ascending
// year-month order.
func (t *Tracker) MonthlyExpenseTrend(ctx context.Context) ([]TrendPoint, error) {
	return t.store.MonthlyExpenseTrend(ctx)
}

// askToCreate routes the missing-category decision through confirm. A nil
// confirm always declines.
func (t *Tracker) askToCreate(ctx context.Context, name string, categoryType model.CategoryType, confirm ConfirmFunc) (bool, error) {
	if confirm == nil {
		return false, nil
	}
	question := fmt.Sprintf("Category %q (%s) does not exist. Create it?", name, categoryType)
	return confirm(ctx, question)
}
