package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"spendwise/internal/cli"
	"spendwise/internal/service"

	"github.com/spf13/cobra"
)

func incomeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "income",
		Short: "Record and manage income",
	}

	cmd.AddCommand(addIncomeCmd())
	cmd.AddCommand(listIncomeCmd())
	cmd.AddCommand(updateIncomeCmd())
	cmd.AddCommand(deleteIncomeCmd())

	return cmd
}

func addIncomeCmd() *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "add <date> <source> <amount>",
		Short: "Record new income",
		Long:  `Record income on a YYYY-MM-DD date against an income category. If the source category is not registered yet, you are asked whether to create it; declining leaves the ledger untouched.`,
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

			income, err := tracker.RecordIncome(ctx, args[0], args[1], amount, confirmFunc(assumeYes))
			if err != nil {
				return fmt.Errorf("failed to record income: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Recorded income #%d: %s on %s (%s)",
				income.ID, cli.FormatAmount(income.Amount), income.Date, income.Source)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "create missing categories without asking")
	return cmd
}

func listIncomeCmd() *cobra.Command {
	var filter service.IncomeFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List income records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			tracker, store, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			incomes, err := tracker.ListIncome(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to list income: %w", err)
			}

			if len(incomes) == 0 {
				fmt.Println(cli.InfoStyle.Render("No income records found."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Date"),
				cli.BoldStyle.Render("Source"),
				cli.BoldStyle.Render("Amount"))
			for _, in := range incomes {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
					in.ID, in.Date, in.Source, cli.FormatAmount(in.Amount))
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&filter.Source, "source", "s", "", "only income from this source")
	return cmd
}

func updateIncomeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> <amount>",
		Short: "Update the amount of an income record",
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

			if err := tracker.UpdateIncomeAmount(ctx, id, amount); err != nil {
				return fmt.Errorf("failed to update income: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Updated income #%d to %s", id, cli.FormatAmount(amount))))
			return nil
		},
	}
}

func deleteIncomeCmd() *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "delete <source>",
		Short: "Delete all income from a source",
		Long:  `Delete every income record under one source, after confirmation. The category registration itself is kept.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			tracker, store, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			deleted, err := tracker.DeleteIncomeBySource(ctx, args[0], confirmFunc(assumeYes))
			if err != nil {
				return fmt.Errorf("failed to delete income: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Deleted %d income record(s) under %q", deleted, args[0])))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "delete without asking")
	return cmd
}
