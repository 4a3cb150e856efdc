package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"spendwise/internal/cli"
	"spendwise/internal/service"

	"github.com/spf13/cobra"
)

func expensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Record and manage expenses",
	}

	cmd.AddCommand(addExpenseCmd())
	cmd.AddCommand(listExpensesCmd())
	cmd.AddCommand(updateExpenseCmd())
	cmd.AddCommand(deleteExpensesCmd())

	return cmd
}

func addExpenseCmd() *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "add <date> <category> <amount>",
		Short: "Record a new expense",
		Long:  `Record an expense on a YYYY-MM-DD date against an expense category. If the category is not registered yet, you are asked whether to create it; declining leaves the ledger untouched.`,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := parseAmount(args[2])
			if err != nil {
				return err
			}

			tracker, store, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			expense, err := tracker.RecordExpense(ctx, args[0], args[1], amount, confirmFunc(assumeYes))
			if err != nil {
				return fmt.Errorf("failed to record expense: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Recorded expense #%d: %s on %s (%s)",
				expense.ID, cli.FormatAmount(expense.Amount), expense.Date, expense.Category)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "create missing categories without asking")
	return cmd
}

func listExpensesCmd() *cobra.Command {
	var filter service.ExpenseFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		Long:  `List expense records oldest first, optionally narrowed to one category or one date.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			tracker, store, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			expenses, err := tracker.ListExpenses(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to list expenses: %w", err)
			}

			if len(expenses) == 0 {
				fmt.Println(cli.InfoStyle.Render("No expenses found."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Date"),
				cli.BoldStyle.Render("Category"),
				cli.BoldStyle.Render("Amount"))
			for _, e := range expenses {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
					e.ID, e.Date, e.Category, cli.FormatAmount(e.Amount))
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&filter.Category, "category", "c", "", "only expenses in this category")
	cmd.Flags().StringVarP(&filter.Date, "date", "d", "", "only expenses on this YYYY-MM-DD date")
	return cmd
}

func updateExpenseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> <amount>",
		Short: "Update the amount of an expense",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			tracker, store, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := tracker.UpdateExpenseAmount(ctx, id, amount); err != nil {
				return fmt.Errorf("failed to update expense: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Updated expense #%d to %s", id, cli.FormatAmount(amount))))
			return nil
		},
	}
}

func deleteExpensesCmd() *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "delete <category>",
		Short: "Delete all expenses in a category",
		Long:  `Delete every expense record under one category, after confirmation. The category registration itself is kept.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			tracker, store, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			deleted, err := tracker.DeleteExpensesByCategory(ctx, args[0], confirmFunc(assumeYes))
			if err != nil {
				return fmt.Errorf("failed to delete expenses: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Deleted %d expense(s) under %q", deleted, args[0])))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "delete without asking")
	return cmd
}
