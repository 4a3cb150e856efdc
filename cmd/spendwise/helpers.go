package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"spendwise/internal/cli"
	"spendwise/internal/config"
	"spendwise/internal/service"
	"spendwise/internal/storage"

	"github.com/spf13/viper"
)

// initTracker opens the configured database, runs migrations, and wraps it in
// the consistency engine. Callers own the returned Storage and must Close it.
func initTracker(ctx context.Context) (*service.Tracker, service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/spendwise/spendwise.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return service.NewTracker(store), store, nil
}

// confirmFunc selects how yes/no questions get answered: --yes flags skip the
// terminal entirely, otherwise the interactive prompter reads stdin.
func confirmFunc(assumeYes bool) service.ConfirmFunc {
	if assumeYes {
		return service.AutoConfirm
	}
	return cli.NewPrompter(os.Stdin, os.Stdout).Confirm
}

// parseAmount converts a positional amount argument.
func parseAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return amount, nil
}

// parseID converts a positional record identifier argument.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", raw, err)
	}
	return id, nil
}
