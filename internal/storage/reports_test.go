package storage

import (
	"context"
	"errors"
	"testing"

	"spendwise/internal/common"
	"spendwise/internal/model"
)

func TestTotalsEmptyDatabase(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	expenses, err := store.TotalExpenses(ctx)
	if err != nil {
		t.Fatalf("Failed to total expenses: %v", err)
	}
	if expenses != 0 {
		t.Errorf("Expected 0 expenses, got %v", expenses)
	}

	income, err := store.TotalIncome(ctx)
	if err != nil {
		t.Fatalf("Failed to total income: %v", err)
	}
	if income != 0 {
		t.Errorf("Expected 0 income, got %v", income)
	}
}

func TestTotals(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	mustCreateExpense(t, store, "2024-03-01", "food", 10.25)
	mustCreateExpense(t, store, "2024-04-01", "rent", 800)
	mustCreateIncome(t, store, "2024-03-25", "salary", 2500)

	expenses, err := store.TotalExpenses(ctx)
	if err != nil {
		t.Fatalf("Failed to total expenses: %v", err)
	}
	if expenses != 810.25 {
		t.Errorf("Expected 810.25, got %v", expenses)
	}

	income, err := store.TotalIncome(ctx)
	if err != nil {
		t.Fatalf("Failed to total income: %v", err)
	}
	if income != 2500 {
		t.Errorf("Expected 2500, got %v", income)
	}
}

func TestPeriodTotalsMonthly(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	mustCreateExpense(t, store, "2024-03-01", "food", 100)
	mustCreateExpense(t, store, "2024-03-31", "rent", 800)
	// Adjacent months must stay out of the bucket.
	mustCreateExpense(t, store, "2024-02-29", "food", 50)
	mustCreateExpense(t, store, "2024-04-01", "food", 60)
	mustCreateIncome(t, store, "2024-03-25", "salary", 2500)
	mustCreateIncome(t, store, "2024-04-25", "salary", 2500)

	summary, err := store.PeriodTotals(ctx, model.PeriodMonthly, "2024-03-15")
	if err != nil {
		t.Fatalf("Failed to compute period totals: %v", err)
	}

	if summary.Bucket != "2024-03" {
		t.Errorf("Expected bucket 2024-03, got %q", summary.Bucket)
	}
	if summary.Expenses != 900 {
		t.Errorf("Expected expenses 900, got %v", summary.Expenses)
	}
	if summary.Income != 2500 {
		t.Errorf("Expected income 2500, got %v", summary.Income)
	}
	if summary.Balance != 1600 {
		t.Errorf("Expected balance 1600, got %v", summary.Balance)
	}
}

func TestPeriodTotalsAnnual(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	mustCreateExpense(t, store, "2024-01-15", "food", 100)
	mustCreateExpense(t, store, "2024-12-31", "food", 200)
	mustCreateExpense(t, store, "2023-12-31", "food", 999)
	mustCreateIncome(t, store, "2024-06-01", "salary", 5000)

	summary, err := store.PeriodTotals(ctx, model.PeriodAnnual, "2024-07-04")
	if err != nil {
		t.Fatalf("Failed to compute period totals: %v", err)
	}

	if summary.Bucket != "2024" {
		t.Errorf("Expected bucket 2024, got %q", summary.Bucket)
	}
	if summary.Expenses != 300 {
		t.Errorf("Expected expenses 300, got %v", summary.Expenses)
	}
	if summary.Balance != 4700 {
		t.Errorf("Expected balance 4700, got %v", summary.Balance)
	}
}

func TestPeriodTotalsInvalidInputs(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	if _, err := store.PeriodTotals(ctx, "weekly", "2024-03-15"); !errors.Is(err, common.ErrInvalidPeriod) {
		t.Errorf("Expected ErrInvalidPeriod, got %v", err)
	}
	if _, err := store.PeriodTotals(ctx, model.PeriodMonthly, "2024-02-30"); !errors.Is(err, common.ErrInvalidDate) {
		t.Errorf("Expected ErrInvalidDate, got %v", err)
	}
}

func TestSumExpensesByCategory(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	mustCreateExpense(t, store, "2024-03-01", "food", 10)
	mustCreateExpense(t, store, "2024-03-02", "Food", 20)
	mustCreateExpense(t, store, "2024-03-03", "rent", 800)

	sums, err := store.SumExpensesByCategory(ctx)
	if err != nil {
		t.Fatalf("Failed to sum by category: %v", err)
	}
	if len(sums) != 2 {
		t.Fatalf("Expected 2 categories, got %d: %v", len(sums), sums)
	}
	if sums["food"] != 30 {
		t.Errorf("Expected food total 30, got %v", sums["food"])
	}
	if sums["rent"] != 800 {
		t.Errorf("Expected rent total 800, got %v", sums["rent"])
	}
}

func TestSumIncomeBySource(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	mustCreateIncome(t, store, "2024-03-01", "salary", 2500)
	mustCreateIncome(t, store, "2024-04-01", "salary", 2500)
	mustCreateIncome(t, store, "2024-03-15", "freelance", 400)

	sums, err := store.SumIncomeBySource(ctx)
	if err != nil {
		t.Fatalf("Failed to sum by source: %v", err)
	}
	if sums["salary"] != 5000 {
		t.Errorf("Expected salary total 5000, got %v", sums["salary"])
	}
	if sums["freelance"] != 400 {
		t.Errorf("Expected freelance total 400, got %v", sums["freelance"])
	}
}

func TestMonthlyExpenseTrend(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	// Inserted out of order; trend must come back chronological.
	mustCreateExpense(t, store, "2024-03-10", "food", 30)
	mustCreateExpense(t, store, "2024-01-05", "food", 10)
	mustCreateExpense(t, store, "2024-01-20", "rent", 800)
	mustCreateExpense(t, store, "2023-12-31", "food", 5)

	points, err := store.MonthlyExpenseTrend(ctx)
	if err != nil {
		t.Fatalf("Failed to compute trend: %v", err)
	}

	want := []struct {
		month string
		total float64
	}{
		{"2023-12", 5},
		{"2024-01", 810},
		{"2024-03", 30},
	}

	if len(points) != len(want) {
		t.Fatalf("Expected %d points, got %d: %+v", len(want), len(points), points)
	}
	for i, w := range want {
		if points[i].Month != w.month || points[i].Total != w.total {
			t.Errorf("Point %d: expected %s=%v, got %s=%v",
				i, w.month, w.total, points[i].Month, points[i].Total)
		}
	}
}

func TestMonthlyExpenseTrendEmpty(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	points, err := store.MonthlyExpenseTrend(context.Background())
	if err != nil {
		t.Fatalf("Failed to compute trend: %v", err)
	}
	if len(points) != 0 {
		t.Errorf("Expected no points, got %+v", points)
	}
}
