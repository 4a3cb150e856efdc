package storage

import (
	"context"
	"errors"
	"testing"

	"spendwise/internal/common"
	"spendwise/internal/model"
	"spendwise/internal/service"
)

func mustCreateExpense(t *testing.T, store *SQLiteStorage, date, category string, amount float64) *model.Expense {
	t.Helper()
	created, err := store.CreateExpense(context.Background(), &model.Expense{
		Date: date, Category: category, Amount: amount,
	})
	if err != nil {
		t.Fatalf("Failed to create expense: %v", err)
	}
	return created
}

func TestCreateExpense(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	created := mustCreateExpense(t, store, "2024-03-15", " Food ", 12.50)

	if created.ID == 0 {
		t.Error("Expected assigned ID")
	}
	if created.Category != "food" {
		t.Errorf("Expected normalized category, got %q", created.Category)
	}

	got, err := store.GetExpenseByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Failed to get expense: %v", err)
	}
	if got.Amount != 12.50 || got.Date != "2024-03-15" {
		t.Errorf("Stored expense mismatch: %+v", got)
	}
}

func TestCreateExpenseValidation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	tests := []struct {
		name    string
		expense *model.Expense
		wantErr error
	}{
		{
			name:    "zero amount",
			expense: &model.Expense{Date: "2024-03-15", Category: "food", Amount: 0},
			wantErr: common.ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			expense: &model.Expense{Date: "2024-03-15", Category: "food", Amount: -5},
			wantErr: common.ErrInvalidAmount,
		},
		{
			name:    "impossible date",
			expense: &model.Expense{Date: "2024-02-30", Category: "food", Amount: 10},
			wantErr: common.ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.CreateExpense(ctx, tt.expense); !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestUpdateExpenseAmount(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	created := mustCreateExpense(t, store, "2024-03-15", "food", 10)

	if err := store.UpdateExpenseAmount(ctx, created.ID, 25.75); err != nil {
		t.Fatalf("Failed to update expense: %v", err)
	}

	got, err := store.GetExpenseByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("Failed to get expense: %v", err)
	}
	if got.Amount != 25.75 {
		t.Errorf("Expected amount 25.75, got %v", got.Amount)
	}
	if got.Date != "2024-03-15" || got.Category != "food" {
		t.Error("Update must not touch date or category")
	}

	if err := store.UpdateExpenseAmount(ctx, 9999, 10); !errors.Is(err, common.ErrExpenseNotFound) {
		t.Errorf("Expected ErrExpenseNotFound for unknown id, got %v", err)
	}
}

func TestDeleteExpensesByCategory(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	mustCreateExpense(t, store, "2024-03-01", "food", 10)
	mustCreateExpense(t, store, "2024-03-02", "Food", 20)
	mustCreateExpense(t, store, "2024-03-03", "rent", 800)

	deleted, err := store.DeleteExpensesByCategory(ctx, " FOOD ")
	if err != nil {
		t.Fatalf("Failed to delete expenses: %v", err)
	}
	if deleted != 2 {
		t.Errorf("Expected 2 deletions, got %d", deleted)
	}

	// Other categories untouched.
	remaining, err := store.ListExpenses(ctx, service.ExpenseFilter{})
	if err != nil {
		t.Fatalf("Failed to list expenses: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Category != "rent" {
		t.Errorf("Expected only rent to survive, got %+v", remaining)
	}
}

func TestCountExpensesByCategory(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	mustCreateExpense(t, store, "2024-03-01", "food", 10)
	mustCreateExpense(t, store, "2024-03-02", "food", 20)

	count, err := store.CountExpensesByCategory(ctx, "food")
	if err != nil {
		t.Fatalf("Failed to count expenses: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected count 2, got %d", count)
	}

	count, err = store.CountExpensesByCategory(ctx, "travel")
	if err != nil {
		t.Fatalf("Failed to count expenses: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected count 0 for unknown category, got %d", count)
	}
}

func TestListExpensesFilters(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	mustCreateExpense(t, store, "2024-03-02", "food", 20)
	mustCreateExpense(t, store, "2024-03-01", "food", 10)
	mustCreateExpense(t, store, "2024-03-01", "rent", 800)

	t.Run("no filter lists all oldest first", func(t *testing.T) {
		expenses, err := store.ListExpenses(ctx, service.ExpenseFilter{})
		if err != nil {
			t.Fatalf("Failed to list: %v", err)
		}
		if len(expenses) != 3 {
			t.Fatalf("Expected 3 expenses, got %d", len(expenses))
		}
		if expenses[0].Date != "2024-03-01" || expenses[2].Date != "2024-03-02" {
			t.Errorf("Expected date ordering, got %+v", expenses)
		}
	})

	t.Run("category filter", func(t *testing.T) {
		expenses, err := store.ListExpenses(ctx, service.ExpenseFilter{Category: " Food "})
		if err != nil {
			t.Fatalf("Failed to list: %v", err)
		}
		if len(expenses) != 2 {
			t.Errorf("Expected 2 food expenses, got %d", len(expenses))
		}
	})

	t.Run("date filter", func(t *testing.T) {
		expenses, err := store.ListExpenses(ctx, service.ExpenseFilter{Date: "2024-03-01"})
		if err != nil {
			t.Fatalf("Failed to list: %v", err)
		}
		if len(expenses) != 2 {
			t.Errorf("Expected 2 expenses on 2024-03-01, got %d", len(expenses))
		}
	})

	t.Run("invalid date filter", func(t *testing.T) {
		if _, err := store.ListExpenses(ctx, service.ExpenseFilter{Date: "not-a-date"}); !errors.Is(err, common.ErrInvalidDate) {
			t.Errorf("Expected ErrInvalidDate, got %v", err)
		}
	})
}
