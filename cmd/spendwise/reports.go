package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"spendwise/internal/cli"
	"spendwise/internal/model"

	"github.com/spf13/cobra"
)

func reportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Summaries and spending trends",
	}

	cmd.AddCommand(summaryReportCmd())
	cmd.AddCommand(byCategoryReportCmd())
	cmd.AddCommand(bySourceReportCmd())
	cmd.AddCommand(trendReportCmd())

	return cmd
}

func summaryReportCmd() *cobra.Command {
	var (
		periodValue string
		refDate     string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Income, expenses, and balance for one period",
		Long:  `Sum income and expenses over the calendar month or year containing the reference date. The reference date defaults to today.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			period, ok := model.ParsePeriod(periodValue)
			if !ok {
				return fmt.Errorf("invalid period %q (want monthly or annually)", periodValue)
			}
			if refDate == "" {
				refDate = time.Now().Format(model.DateLayout)
			}

			tracker, store, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			summary, err := tracker.PeriodSummary(ctx, period, refDate)
			if err != nil {
				return fmt.Errorf("failed to compute summary: %w", err)
			}

			fmt.Println(cli.FormatTitle(cli.ChartIcon + " Summary for " + summary.Bucket))
			fmt.Printf("Income:   %s\n", cli.FormatAmount(summary.Income))
			fmt.Printf("Expenses: %s\n", cli.FormatAmount(summary.Expenses))
			fmt.Printf("Balance:  %s\n", cli.FormatSignedAmount(summary.Balance))
			return nil
		},
	}

	cmd.Flags().StringVarP(&periodValue, "period", "p", "monthly", "bucketing period (monthly, annually)")
	cmd.Flags().StringVarP(&refDate, "date", "d", "", "reference date YYYY-MM-DD (default today)")
	return cmd
}

// printSums renders a key/total map in ascending key order.
func printSums(keyHeader string, sums map[string]float64) {
	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "%s\t%s\n",
		cli.BoldStyle.Render(keyHeader),
		cli.BoldStyle.Render("Total"))
	for _, k := range keys {
		fmt.Fprintf(w, "%s\t%s\n", k, cli.FormatAmount(sums[k]))
	}
}

func byCategoryReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "by-category",
		Short: "Total expenses per category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			tracker, store, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			sums, err := tracker.ExpensesByCategory(ctx)
			if err != nil {
				return fmt.Errorf("failed to sum expenses: %w", err)
			}
			if len(sums) == 0 {
				fmt.Println(cli.InfoStyle.Render("No expenses found."))
				return nil
			}

			printSums("Category", sums)
			return nil
		},
	}
}

func bySourceReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "by-source",
		Short: "Total income per source",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			tracker, store, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			sums, err := tracker.IncomeBySource(ctx)
			if err != nil {
				return fmt.Errorf("failed to sum income: %w", err)
			}
			if len(sums) == 0 {
				fmt.Println(cli.InfoStyle.Render("No income records found."))
				return nil
			}

			printSums("Source", sums)
			return nil
		},
	}
}

func trendReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trend",
		Short: "Monthly expense totals in chronological order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			tracker, store, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			points, err := tracker.MonthlyExpenseTrend(ctx)
			if err != nil {
				return fmt.Errorf("failed to compute trend: %w", err)
			}
			if len(points) == 0 {
				fmt.Println(cli.InfoStyle.Render("No expenses found."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\n",
				cli.BoldStyle.Render("Month"),
				cli.BoldStyle.Render("Expenses"))
			for _, p := range points {
				fmt.Fprintf(w, "%s\t%s\n", p.Month, cli.FormatAmount(p.Total))
			}

			return nil
		},
	}
}
