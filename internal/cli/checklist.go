package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pablasso/kts/internal/checklist"
	"github.com/pablasso/kts/internal/config"
)

func newChecklistCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Show and edit the inspection checklist",
		Long: `Show and edit the categories and items inspected in every session.

Renaming keeps the ids stored sessions refer to. Deleting an item hides it from
the detail view of older sessions.`,
	}

	edit := func(use, short string, nargs int, fn func(cats []checklist.Category, args []string) ([]checklist.Category, string, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.ExactArgs(nargs),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(opts, func(app *config.App) error {
					ctx := context.Background()
					updated, msg, err := fn(app.Storage.GetChecklist(ctx), args)
					if err != nil {
						return err
					}
					if err := app.Storage.SetChecklist(ctx, updated); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), msg)
					return nil
				})
			},
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show categories and items",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(opts, func(app *config.App) error {
					w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
					fmt.Fprintln(w, "CATEGORY\tITEM\tID")
					for _, c := range app.Storage.GetChecklist(context.Background()) {
						fmt.Fprintf(w, "%s\t\t%s\n", c.Name, c.ID)
						for _, it := range c.Items {
							fmt.Fprintf(w, "\t%s\t%s\n", it.Name, it.ID)
						}
					}
					return w.Flush()
				})
			},
		},
		edit("add-category <name>", "Add a category", 1, func(cats []checklist.Category, args []string) ([]checklist.Category, string, error) {
			updated, c, err := checklist.AddCategory(cats, args[0])
			return updated, fmt.Sprintf("Added category %q (%s).", c.Name, c.ID), err
		}),
		edit("rename-category <category-id> <name>", "Rename a category", 2, func(cats []checklist.Category, args []string) ([]checklist.Category, string, error) {
			updated, err := checklist.Rename(cats, checklist.CategoryTarget{CategoryID: args[0]}, args[1])
			return updated, fmt.Sprintf("Renamed %s.", args[0]), err
		}),
		edit("delete-category <category-id>", "Delete a category and its items", 1, func(cats []checklist.Category, args []string) ([]checklist.Category, string, error) {
			updated, err := checklist.DeleteCategory(cats, args[0])
			return updated, fmt.Sprintf("Deleted %s.", args[0]), err
		}),
		edit("add-item <category-id> <name>", "Add an item to a category", 2, func(cats []checklist.Category, args []string) ([]checklist.Category, string, error) {
			updated, it, err := checklist.AddItem(cats, args[0], args[1])
			return updated, fmt.Sprintf("Added item %q (%s).", it.Name, it.ID), err
		}),
		edit("rename-item <category-id> <item-id> <name>", "Rename an item", 3, func(cats []checklist.Category, args []string) ([]checklist.Category, string, error) {
			updated, err := checklist.Rename(cats, checklist.ItemTarget{CategoryID: args[0], ItemID: args[1]}, args[2])
			return updated, fmt.Sprintf("Renamed %s.", args[1]), err
		}),
		edit("delete-item <category-id> <item-id>", "Delete an item", 2, func(cats []checklist.Category, args []string) ([]checklist.Category, string, error) {
			updated, err := checklist.DeleteItem(cats, args[0], args[1])
			return updated, fmt.Sprintf("Deleted %s.", args[1]), err
		}),
	)
	return cmd
}
