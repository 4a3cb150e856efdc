package main

import (
	"fmt"

	"spendwise/internal/cli"
	"spendwise/internal/service"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/spf13/cobra"
)

func goalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Track savings goals",
	}

	cmd.AddCommand(createGoalCmd())
	cmd.AddCommand(goalProgressCmd())
	cmd.AddCommand(contributeGoalCmd())

	return cmd
}

func createGoalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name> <target> <start-date> <end-date>",
		Short: "Create a savings goal",
		Long:  `Create a savings goal with a target amount and a date window. The end date must fall after the start date.`,
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			target, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			tracker, store, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			goal, err := tracker.CreateGoal(ctx, args[0], target, args[2], args[3])
			if err != nil {
				return fmt.Errorf("failed to create goal: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Created goal %q: %s by %s",
				goal.Name, cli.FormatAmount(goal.TargetAmount), goal.EndDate)))
			return nil
		},
	}
}

func goalProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress <name>",
		Short: "Show progress toward a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			tracker, store, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			prog, err := tracker.GoalProgress(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get goal progress: %w", err)
			}

			printGoalProgress(prog)
			return nil
		},
	}
}

func contributeGoalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contribute <name> <amount>",
		Short: "Add a contribution to a goal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			tracker, store, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			prog, err := tracker.ContributeToGoal(ctx, args[0], amount)
			if err != nil {
				return fmt.Errorf("failed to contribute to goal: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Added %s to %q", cli.FormatAmount(amount), prog.Name)))
			printGoalProgress(prog)
			return nil
		},
	}
}

// printGoalProgress renders a static progress bar and the numbers behind it.
func printGoalProgress(prog *service.GoalProgress) {
	bar := progress.New(progress.WithDefaultGradient())
	pct := 0.0
	if prog.Target > 0 {
		pct = prog.Saved / prog.Target
	}
	if pct > 1 {
		pct = 1
	}

	fmt.Println(cli.FormatTitle(cli.GoalIcon + " " + prog.Name))
	fmt.Println(bar.ViewAs(pct))
	fmt.Printf("Saved %s of %s (%s remaining)\n",
		cli.FormatAmount(prog.Saved),
		cli.FormatAmount(prog.Target),
		cli.FormatAmount(prog.Remaining))
	if prog.Completed {
		fmt.Println(cli.FormatSuccess("Goal reached!"))
	}
}
