package storage

import (
	"context"
	"fmt"
	"log/slog"

	"spendwise/internal/common"
	"spendwise/internal/model"
	"spendwise/internal/service"
)

// TotalExpenses returns the sum of all expense amounts, 0 when none exist.
func (s *SQLiteStorage) TotalExpenses(ctx context.Context) (float64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	return totalExpenses(ctx, s.db)
}

// TotalIncome returns the sum of all income amounts, 0 when none exist.
func (s *SQLiteStorage) TotalIncome(ctx context.Context) (float64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	return totalIncome(ctx, s.db)
}

// PeriodTotals sums income and expenses over the calendar bucket containing
// refDate and returns the balance alongside.
func (s *SQLiteStorage) PeriodTotals(ctx context.Context, period model.Period, refDate string) (*service.PeriodSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return periodTotals(ctx, s.db, period, refDate)
}

// SumExpensesByCategory groups all expenses by their stored category.
func (s *SQLiteStorage) SumExpensesByCategory(ctx context.Context) (map[string]float64, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return sumExpensesByCategory(ctx, s.db)
}

// SumIncomeBySource groups all income by its stored source.
func (s *SQLiteStorage) SumIncomeBySource(ctx context.Context) (map[string]float64, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return sumIncomeBySource(ctx, s.db)
}

// MonthlyExpenseTrend returns per-month expense totals in chronological
// order. Months with no expenses do not appear.
func (s *SQLiteStorage) MonthlyExpenseTrend(ctx context.Context) ([]service.TrendPoint, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return monthlyExpenseTrend(ctx, s.db)
}

func totalExpenses(ctx context.Context, q querier) (float64, error) {
	return sumAll(ctx, q, "expenses")
}

func totalIncome(ctx context.Context, q querier) (float64, error) {
	return sumAll(ctx, q, "incomes")
}

func sumAll(ctx context.Context, q querier, table string) (float64, error) {
	query := fmt.Sprintf(`SELECT COALESCE(SUM(amount), 0) FROM %s`, table)

	var total float64
	if err := q.QueryRowContext(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum %s: %w", table, err)
	}
	return total, nil
}

func sumExpensesByCategory(ctx context.Context, q querier) (map[string]float64, error) {
	return sumGrouped(ctx, q, `SELECT category, SUM(amount) FROM expenses GROUP BY category`)
}

func sumIncomeBySource(ctx context.Context, q querier) (map[string]float64, error) {
	return sumGrouped(ctx, q, `SELECT source, SUM(amount) FROM incomes GROUP BY source`)
}

// periodFormat maps a bucketing mode to the strftime pattern whose output
// equals Period.Truncate of a stored date.
func periodFormat(period model.Period) (string, error) {
	switch period {
	case model.PeriodMonthly:
		return "%Y-%m", nil
	case model.PeriodAnnual:
		return "%Y", nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrInvalidPeriod, period)
	}
}

func periodTotals(ctx context.Context, q querier, period model.Period, refDate string) (*service.PeriodSummary, error) {
	format, err := periodFormat(period)
	if err != nil {
		return nil, err
	}
	if err := validateDate(refDate); err != nil {
		return nil, err
	}

	bucket := period.Truncate(refDate)
	summary := &service.PeriodSummary{Period: period, Bucket: bucket}

	incomeQuery := fmt.Sprintf(
		`SELECT COALESCE(SUM(amount), 0) FROM incomes WHERE strftime('%s', date) = ?`, format)
	if err := q.QueryRowContext(ctx, incomeQuery, bucket).Scan(&summary.Income); err != nil {
		return nil, fmt.Errorf("failed to sum period income: %w", err)
	}

	expenseQuery := fmt.Sprintf(
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE strftime('%s', date) = ?`, format)
	if err := q.QueryRowContext(ctx, expenseQuery, bucket).Scan(&summary.Expenses); err != nil {
		return nil, fmt.Errorf("failed to sum period expenses: %w", err)
	}

	summary.Balance = summary.Income - summary.Expenses

	slog.Debug("computed period totals",
		"period", period,
		"bucket", bucket,
		"income", summary.Income,
		"expenses", summary.Expenses)
	return summary, nil
}

func sumGrouped(ctx context.Context, q querier, query string) (map[string]float64, error) {
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query grouped sums: %w", err)
	}
	defer rows.Close()

	sums := make(map[string]float64)
	for rows.Next() {
		var (
			key   string
			total float64
		)
		if err := rows.Scan(&key, &total); err != nil {
			return nil, fmt.Errorf("failed to scan grouped sum: %w", err)
		}
		sums[key] = total
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating grouped sums: %w", err)
	}
	return sums, nil
}

func monthlyExpenseTrend(ctx context.Context, q querier) ([]service.TrendPoint, error) {
	query := `
		SELECT strftime('%Y-%m', date) AS month, SUM(amount)
		FROM expenses
		GROUP BY month
		ORDER BY month`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense trend: %w", err)
	}
	defer rows.Close()

	var points []service.TrendPoint
	for rows.Next() {
		var point service.TrendPoint
		if err := rows.Scan(&point.Month, &point.Total); err != nil {
			return nil, fmt.Errorf("failed to scan trend point: %w", err)
		}
		points = append(points, point)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense trend: %w", err)
	}
	return points, nil
}
