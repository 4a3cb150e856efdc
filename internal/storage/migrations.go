package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a fatal
// error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS expenses (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					date TEXT NOT NULL,
					category TEXT NOT NULL,
					amount REAL NOT NULL,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_expenses_date ON expenses(date)`,
				`CREATE INDEX idx_expenses_category ON expenses(category)`,

				`CREATE TABLE IF NOT EXISTS incomes (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					source TEXT NOT NULL,
					amount REAL NOT NULL,
					date TEXT NOT NULL,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_incomes_date ON incomes(date)`,
				`CREATE INDEX idx_incomes_source ON incomes(source)`,

				`CREATE TABLE IF NOT EXISTS budgets (
					category_name TEXT PRIMARY KEY,
					budget_value REAL NOT NULL,
					category_type TEXT NOT NULL
						CHECK(category_type IN ('income', 'expense'))
				)`,

				`CREATE TABLE IF NOT EXISTS saving_goals (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT NOT NULL,
					start_date TEXT NOT NULL,
					end_date TEXT NOT NULL,
					target_amount REAL NOT NULL,
					saved_so_far REAL NOT NULL DEFAULT 0
				)`,

				`CREATE TABLE IF NOT EXISTS income_categories (
					name TEXT PRIMARY KEY,
					description TEXT,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS expense_categories (
					name TEXT PRIMARY KEY,
					description TEXT,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Enforce unique goal names",
		Up: func(tx *sql.Tx) error {
			// Goal progress is looked up by name, so duplicates would make
			// contributions ambiguous. Rebuild the table with a UNIQUE
			// constraint, keeping the lowest id per name.
			queries := []string{
				`CREATE TABLE saving_goals_new (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT UNIQUE NOT NULL,
					start_date TEXT NOT NULL,
					end_date TEXT NOT NULL,
					target_amount REAL NOT NULL,
					saved_so_far REAL NOT NULL DEFAULT 0
				)`,
				`INSERT INTO saving_goals_new
					(id, name, start_date, end_date, target_amount, saved_so_far)
				 SELECT MIN(id), name, start_date, end_date, target_amount, saved_so_far
				 FROM saving_goals GROUP BY name`,
				`DROP TABLE saving_goals`,
				`ALTER TABLE saving_goals_new RENAME TO saving_goals`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query '%s': %w", query, err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Add year-month expression indexes for period reports",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE INDEX IF NOT EXISTS idx_expenses_year_month
					ON expenses(strftime('%Y-%m', date))`,
				`CREATE INDEX IF NOT EXISTS idx_incomes_year_month
					ON incomes(strftime('%Y-%m', date))`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query '%s': %w", query, err)
				}
			}
			return nil
		},
	},
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	// Get current version
	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	// Apply migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		// Update version
		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	// Verify we're at the expected schema version
	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
