package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"spendwise/internal/cli"
	"spendwise/internal/model"

	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage income and expense categories",
		Long:  `List and add the categories that expenses and income are recorded against. Income and expense categories are independent namespaces.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())

	return cmd
}

// categoryTypeFlag wires the shared --type flag and parses its value.
func categoryTypeFlag(cmd *cobra.Command, value *string) {
	cmd.Flags().StringVarP(value, "type", "t", "expense", "category namespace (income, expense)")
}

func listCategoriesCmd() *cobra.Command {
	var typeValue string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories in one namespace",
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			categories, err := tracker.ListCategories(ctx, categoryType)
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}

			if len(categories) == 0 {
				fmt.Println(cli.InfoStyle.Render(fmt.Sprintf(
					"No %s categories found. Use 'spendwise categories add' to create one.", categoryType)))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\n",
				cli.BoldStyle.Render("Name"),
				cli.BoldStyle.Render("Description"))
			for _, cat := range categories {
				desc := cat.Description
				if desc == "" {
					desc = cli.SubtleStyle.Render("(no description)")
				}
				fmt.Fprintf(w, "%s\t%s\n", cat.Name, desc)
			}

			return nil
		},
	}

	categoryTypeFlag(cmd, &typeValue)
	return cmd
}

func addCategoryCmd() *cobra.Command {
	var (
		typeValue   string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Long:  `Register a new category in the income or expense namespace. Names are lowercased and trimmed before storage.`,
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

			category, err := tracker.AddCategory(ctx, args[0], categoryType, description)
			if err != nil {
				return fmt.Errorf("failed to add category: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Created %s category %q", category.Type, category.Name)))
			return nil
		},
	}

	categoryTypeFlag(cmd, &typeValue)
	cmd.Flags().StringVarP(&description, "description", "d", "", "optional description")
	return cmd
}
