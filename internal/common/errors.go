// Package common provides shared utilities and types used across the application.
package common

import "errors"

// Validation errors. Always recoverable: the operation is a no-op and the
// caller may retry with corrected input.
var (
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrInvalidDate         = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidCategoryType = errors.New("category type must be 'income' or 'expense'")
	ErrInvalidPeriod       = errors.New("period must be 'monthly' or 'annually'")
	ErrEmptyName           = errors.New("name cannot be empty")
)

// Not-found errors. Recoverable; the caller decides the fallback.
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrBudgetNotFound   = errors.New("no budget set")
	ErrExpenseNotFound  = errors.New("expense not found")
	ErrIncomeNotFound   = errors.New("income record not found")
	ErrGoalNotFound     = errors.New("goal not found")
)

// Duplicate and constraint errors. Reported without mutation.
var (
	ErrDuplicateCategory = errors.New("category already exists")
	ErrDuplicateGoal     = errors.New("goal already exists")
	ErrInvalidDateRange  = errors.New("end date must be after start date")
)

// Declined-confirmation outcomes. The operation was a deliberate no-op, not
// a failure: the caller declined to create a missing category or to confirm
// a bulk deletion.
var (
	ErrBudgetNotSet    = errors.New("budget not set")
	ErrNotRecorded     = errors.New("record not saved")
	ErrNothingToDelete = errors.New("no matching records to delete")
	ErrDeleteCanceled  = errors.New("deletion canceled")
)
