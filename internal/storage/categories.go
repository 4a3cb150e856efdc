package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"spendwise/internal/common"
	"spendwise/internal/model"
)

// categoryTable maps a namespace to its backing table. The income and
// expense namespaces are fully independent tables, so the same name may
// exist in both.
func categoryTable(categoryType model.CategoryType) string {
	if categoryType == model.CategoryTypeIncome {
		return "income_categories"
	}
	return "expense_categories"
}

// CreateCategory registers a new category in the namespace selected by
// categoryType. Returns ErrDuplicateCategory if the normalized name is
// already present in that namespace.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, name string, categoryType model.CategoryType, description string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return createCategory(ctx, s.db, name, categoryType, description)
}

// CategoryExists reports whether the normalized name is registered in the
// given namespace.
func (s *SQLiteStorage) CategoryExists(ctx context.Context, name string, categoryType model.CategoryType) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	return categoryExists(ctx, s.db, name, categoryType)
}

// GetCategory returns one category by normalized name and namespace.
func (s *SQLiteStorage) GetCategory(ctx context.Context, name string, categoryType model.CategoryType) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return getCategory(ctx, s.db, name, categoryType)
}

// ListCategories returns all categories in one namespace, ordered by name.
func (s *SQLiteStorage) ListCategories(ctx context.Context, categoryType model.CategoryType) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return listCategories(ctx, s.db, categoryType)
}

func createCategory(ctx context.Context, q querier, name string, categoryType model.CategoryType, description string) (*model.Category, error) {
	name = model.Normalize(name)
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}
	if err := validateCategoryType(categoryType); err != nil {
		return nil, err
	}

	exists, err := categoryExists(ctx, q, name, categoryType)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %q (%s)", common.ErrDuplicateCategory, name, categoryType)
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (name, description, created_at) VALUES (?, ?, ?)`,
		categoryTable(categoryType))

	now := time.Now()
	if _, err := q.ExecContext(ctx, query, name, description, now); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	slog.Info("created category", "name", name, "type", categoryType)
	return &model.Category{
		Name:        name,
		Description: description,
		Type:        categoryType,
		CreatedAt:   now,
	}, nil
}

func categoryExists(ctx context.Context, q querier, name string, categoryType model.CategoryType) (bool, error) {
	name = model.Normalize(name)
	if err := validateString(name, "name"); err != nil {
		return false, err
	}
	if err := validateCategoryType(categoryType); err != nil {
		return false, err
	}

	query := fmt.Sprintf(
		`SELECT 1 FROM %s WHERE LOWER(TRIM(name)) = ?`,
		categoryTable(categoryType))

	var one int
	err := q.QueryRowContext(ctx, query, name).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query category: %w", err)
	}
	return true, nil
}

func getCategory(ctx context.Context, q querier, name string, categoryType model.CategoryType) (*model.Category, error) {
	name = model.Normalize(name)
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}
	if err := validateCategoryType(categoryType); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT name, description, created_at FROM %s WHERE LOWER(TRIM(name)) = ?`,
		categoryTable(categoryType))

	var (
		cat  model.Category
		desc sql.NullString
	)
	err := q.QueryRowContext(ctx, query, name).Scan(&cat.Name, &desc, &cat.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q (%s)", common.ErrCategoryNotFound, name, categoryType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	cat.Description = desc.String
	cat.Type = categoryType
	return &cat, nil
}

func listCategories(ctx context.Context, q querier, categoryType model.CategoryType) ([]model.Category, error) {
	if err := validateCategoryType(categoryType); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT name, description, created_at FROM %s ORDER BY name`,
		categoryTable(categoryType))

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var (
			cat  model.Category
			desc sql.NullString
		)
		if err := rows.Scan(&cat.Name, &desc, &cat.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		cat.Description = desc.String
		cat.Type = categoryType
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "type", categoryType, "count", len(categories))
	return categories, nil
}
