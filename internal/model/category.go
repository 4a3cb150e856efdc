// Package model defines the core domain entities for spendwise.
package model

import (
	"strings"
	"time"
)

// CategoryType selects which category namespace an operation targets.
type CategoryType string

const (
	// CategoryTypeIncome represents categories for income records.
	CategoryTypeIncome CategoryType = "income"
	// CategoryTypeExpense represents categories for expense records.
	CategoryTypeExpense CategoryType = "expense"
)

// Valid reports whether the category type is one of the two known namespaces.
func (t CategoryType) Valid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

// ParseCategoryType normalizes a raw type token and reports whether it names
// a known namespace.
func ParseCategoryType(s string) (CategoryType, bool) {
	t := CategoryType(Normalize(s))
	return t, t.Valid()
}

// Category is a named bucket under which expense or income records are
// classified. The income and expense namespaces are fully independent: the
// same name may exist in both.
type Category struct {
	CreatedAt   time.Time
	Name        string
	Description string
	Type        CategoryType
}

// Normalize trims surrounding whitespace and lowercases a name so that
// "Food", " food " and "FOOD" denote the same entity. Applied at every
// entity boundary before comparison or storage.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
