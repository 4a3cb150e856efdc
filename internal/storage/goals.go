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

// CreateGoal registers a new saving goal. Goal names are unique; creating a
// second goal under an existing normalized name returns ErrDuplicateGoal.
func (s *SQLiteStorage) CreateGoal(ctx context.Context, goal *model.Goal) (*model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return createGoal(ctx, s.db, goal)
}

// GetGoalByName returns the goal with the given normalized name, or
// ErrGoalNotFound.
func (s *SQLiteStorage) GetGoalByName(ctx context.Context, name string) (*model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return getGoalByName(ctx, s.db, name)
}

// AddToGoal increments the goal's saved amount by a single UPDATE statement
// and returns the updated row. The increment happens entirely inside SQLite,
// so concurrent contributions cannot lose updates.
func (s *SQLiteStorage) AddToGoal(ctx context.Context, name string, amount float64) (*model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return addToGoal(ctx, s.db, name, amount)
}

func createGoal(ctx context.Context, q querier, goal *model.Goal) (*model.Goal, error) {
	if err := validateGoal(goal); err != nil {
		return nil, err
	}

	name := model.Normalize(goal.Name)

	existing, err := getGoalByName(ctx, q, name)
	if err != nil && !errors.Is(err, common.ErrGoalNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %q", common.ErrDuplicateGoal, name)
	}

	query := `
		INSERT INTO saving_goals (name, start_date, end_date, target_amount, saved_so_far)
		VALUES (?, ?, ?, ?, ?)`

	result, err := q.ExecContext(ctx, query,
		name, goal.StartDate, goal.EndDate, goal.TargetAmount, goal.SavedSoFar)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get goal ID: %w", err)
	}

	created := *goal
	created.ID = id
	created.Name = name

	slog.Info("goal created",
		"name", name,
		"target", created.TargetAmount,
		"start", created.StartDate,
		"end", created.EndDate)
	return &created, nil
}

func getGoalByName(ctx context.Context, q querier, name string) (*model.Goal, error) {
	name = model.Normalize(name)
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, start_date, end_date, target_amount, saved_so_far
		FROM saving_goals
		WHERE LOWER(TRIM(name)) = ?`

	var goal model.Goal
	err := q.QueryRowContext(ctx, query, name).Scan(
		&goal.ID, &goal.Name, &goal.StartDate, &goal.EndDate, &goal.TargetAmount, &goal.SavedSoFar,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", common.ErrGoalNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query goal: %w", err)
	}
	return &goal, nil
}

func addToGoal(ctx context.Context, q querier, name string, amount float64) (*model.Goal, error) {
	name = model.Normalize(name)
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	result, err := q.ExecContext(ctx,
		`UPDATE saving_goals SET saved_so_far = saved_so_far + ? WHERE LOWER(TRIM(name)) = ?`,
		amount, name)
	if err != nil {
		return nil, fmt.Errorf("failed to add to goal: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: %q", common.ErrGoalNotFound, name)
	}

	goal, err := getGoalByName(ctx, q, name)
	if err != nil {
		return nil, err
	}

	slog.Info("goal contribution recorded",
		"name", name,
		"amount", amount,
		"saved", goal.SavedSoFar)
	return goal, nil
}
