package main

import (
	"fmt"

	"spendwise/internal/cli"
	"spendwise/internal/model"

	"github.com/spf13/cobra"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Set and inspect category budgets",
	}

	cmd.AddCommand(setBudgetCmd())
	cmd.AddCommand(getBudgetCmd())
	cmd.AddCommand(remainingBudgetCmd())

	return cmd
}

func setBudgetCmd() *cobra.Command {
	var (
		typeValue string
		assumeYes bool
	)

	cmd := &cobra.Command{
		Use:   "set <category> <amount>",
		Short: "Set the budget for a category",
		Long:  `Set the budget for a category, replacing any existing budget stored under that name. If the category is not registered yet, you are asked whether to create it.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			categoryType, ok := model.ParseCategoryType(typeValue)
			if !ok {
				return fmt.Errorf("invalid category type %q (want income or expense)", typeValue)
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

			if err := tracker.SetBudget(ctx, args[0], amount, categoryType, confirmFunc(assumeYes)); err != nil {
				return fmt.Errorf("failed to set budget: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Budget for %q (%s) set to %s", args[0], categoryType, cli.FormatAmount(amount))))
			return nil
		},
	}

	categoryTypeFlag(cmd, &typeValue)
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "create missing categories without asking")
	return cmd
}

func getBudgetCmd() *cobra.Command {
	var typeValue string

	cmd := &cobra.Command{
		Use:   "get <category>",
		Short: "Show the budget for a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			categoryType, ok := model.ParseCategoryType(typeValue)
			if !ok {
				return fmt.Errorf("invalid category type %q (want income or expense)", typeValue)
			}

			tracker, store, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			budget, err := tracker.GetBudget(ctx, args[0], categoryType)
			if err != nil {
				return fmt.Errorf("failed to get budget: %w", err)
			}

			fmt.Printf("%s: %s\n",
				cli.BoldStyle.Render(budget.CategoryName),
				cli.FormatAmount(budget.Value))
			return nil
		},
	}

	categoryTypeFlag(cmd, &typeValue)
	return cmd
}

func remainingBudgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remaining",
		Short: "Show total income minus total expenses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			tracker, store, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			remaining, err := tracker.RemainingBudget(ctx)
			if err != nil {
				return fmt.Errorf("failed to compute remaining budget: %w", err)
			}

			fmt.Printf("Remaining budget: %s\n", cli.FormatSignedAmount(remaining))
			return nil
		},
	}
}
