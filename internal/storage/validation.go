// Package storage provides the data persistence layer for spendwise.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"spendwise/internal/common"
	"spendwise/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateAmount rejects non-positive currency amounts before they reach a
// write.
func validateAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: %.2f", common.ErrInvalidAmount, amount)
	}
	return nil
}

// validateDate rejects text that is not a real YYYY-MM-DD calendar date.
func validateDate(date string) error {
	if !model.ValidDate(date) {
		return fmt.Errorf("%w: %q", common.ErrInvalidDate, date)
	}
	return nil
}

// validateCategoryType enforces the {income, expense} discriminator before a
// write, mirroring the CHECK constraint on the budgets table.
func validateCategoryType(t model.CategoryType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", common.ErrInvalidCategoryType, t)
	}
	return nil
}

// validateExpense validates a single expense record.
func validateExpense(expense *model.Expense) error {
	if expense == nil {
		return fmt.Errorf("%w: expense", ErrNilParameter)
	}
	if err := validateString(expense.Category, "category"); err != nil {
		return err
	}
	if err := validateDate(expense.Date); err != nil {
		return err
	}
	return validateAmount(expense.Amount)
}

// validateIncome validates a single income record.
func validateIncome(income *model.Income) error {
	if income == nil {
		return fmt.Errorf("%w: income", ErrNilParameter)
	}
	if err := validateString(income.Source, "source"); err != nil {
		return err
	}
	if err := validateDate(income.Date); err != nil {
		return err
	}
	return validateAmount(income.Amount)
}

// validateGoal validates a savings goal ahead of creation.
func validateGoal(goal *model.Goal) error {
	if goal == nil {
		return fmt.Errorf("%w: goal", ErrNilParameter)
	}
	if err := validateString(goal.Name, "name"); err != nil {
		return err
	}
	if err := validateDate(goal.StartDate); err != nil {
		return err
	}
	if err := validateDate(goal.EndDate); err != nil {
		return err
	}
	if goal.EndDate <= goal.StartDate {
		return fmt.Errorf("%w: %s..%s", common.ErrInvalidDateRange, goal.StartDate, goal.EndDate)
	}
	return validateAmount(goal.TargetAmount)
}

// validateBudget validates a budget row ahead of an upsert.
func validateBudget(budget *model.Budget) error {
	if budget == nil {
		return fmt.Errorf("%w: budget", ErrNilParameter)
	}
	if err := validateString(budget.CategoryName, "categoryName"); err != nil {
		return err
	}
	if err := validateCategoryType(budget.Type); err != nil {
		return err
	}
	return validateAmount(budget.Value)
}
