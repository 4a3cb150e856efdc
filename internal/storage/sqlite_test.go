package storage

import (
	"context"
	"path/filepath"
	"testing"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func TestMigrate(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	var version int
	if err := store.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("Failed to read schema version: %v", err)
	}
	if version != ExpectedSchemaVersion {
		t.Errorf("Expected schema version %d, got %d", ExpectedSchemaVersion, version)
	}

	// Re-running migrations must be a no-op.
	if err := store.Migrate(ctx); err != nil {
		t.Errorf("Second migration run failed: %v", err)
	}
}

func TestMigrateCreatesTables(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	tables := []string{
		"expenses", "incomes", "budgets",
		"saving_goals", "income_categories", "expense_categories",
	}

	for _, table := range tables {
		var name string
		err := store.db.QueryRowContext(ctx,
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("Expected table %q to exist: %v", table, err)
		}
	}
}

func TestBeginTxRollback(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	tx, err := store.BeginTx(ctx)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}

	if _, err := tx.CreateCategory(ctx, "transient", "expense", ""); err != nil {
		t.Fatalf("Failed to create category in transaction: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Failed to roll back: %v", err)
	}

	exists, err := store.CategoryExists(ctx, "transient", "expense")
	if err != nil {
		t.Fatalf("Failed to check category: %v", err)
	}
	if exists {
		t.Error("Rolled-back category should not exist")
	}
}

func TestBeginTxCommit(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	tx, err := store.BeginTx(ctx)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}

	if _, err := tx.CreateCategory(ctx, "durable", "expense", ""); err != nil {
		t.Fatalf("Failed to create category in transaction: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}

	exists, err := store.CategoryExists(ctx, "durable", "expense")
	if err != nil {
		t.Fatalf("Failed to check category: %v", err)
	}
	if !exists {
		t.Error("Committed category should exist")
	}
}

func TestTransactionRefusesNesting(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	tx, err := store.BeginTx(ctx)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.BeginTx(ctx); err == nil {
		t.Error("Expected nested BeginTx to fail")
	}
	if err := tx.Migrate(ctx); err == nil {
		t.Error("Expected Migrate inside transaction to fail")
	}
	if err := tx.Close(); err == nil {
		t.Error("Expected Close on transaction to fail")
	}
}
