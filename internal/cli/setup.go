package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pablasso/kts/internal/checklist"
	"github.com/pablasso/kts/internal/config"
)

func newSetupCmd(opts *globalOptions) *cobra.Command {
	var (
		squadName string
		soldiers  []string
	)

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Define the squad and its soldiers",
		Long: `Define the squad name and roster. Each --soldier takes "Name" or "Name:Role".

Running setup again replaces the roster. Stored sessions keep the roster they were run with.`,
		Example: `  kts setup --squad "2 Alfa" --soldier "Ola Nordmann:Lagfører" --soldier "Kari Nordmann"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			squad, err := buildRoster(squadName, soldiers)
			if err != nil {
				return err
			}
			return withApp(opts, func(app *config.App) error {
				ctx := context.Background()
				if err := app.Storage.SetSquadSettings(ctx, squad); err != nil {
					return err
				}
				if err := app.Storage.SetSetupComplete(ctx, true); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Squad %q set up with %d soldier(s).\n", strings.TrimSpace(squad.SquadName), len(squad.Soldiers))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&squadName, "squad", "", "squad name")
	cmd.Flags().StringArrayVar(&soldiers, "soldier", nil, `soldier as "Name" or "Name:Role" (repeatable)`)
	return cmd
}

// buildRoster creates a roster with one soldier per --soldier entry and validates it.
func buildRoster(squadName string, entries []string) (checklist.SquadSettings, error) {
	squad, err := checklist.NewRoster(squadName, len(entries))
	if err != nil {
		return checklist.SquadSettings{}, err
	}
	for i, entry := range entries {
		squad.Soldiers[i].Name, squad.Soldiers[i].Role = parseSoldier(entry)
	}
	squad = squad.Normalize()
	if err := squad.Validate(); err != nil {
		return checklist.SquadSettings{}, err
	}
	return squad, nil
}

// parseSoldier splits "Name:Role" on the last colon.
func parseSoldier(entry string) (name, role string) {
	if i := strings.LastIndex(entry, ":"); i >= 0 {
		return strings.TrimSpace(entry[:i]), strings.TrimSpace(entry[i+1:])
	}
	return strings.TrimSpace(entry), ""
}

func newResetCmd(opts *globalOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the squad, checklist and all sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset deletes all data; pass --yes to confirm")
			}
			return withApp(opts, func(app *config.App) error {
				if err := app.Storage.ClearAll(context.Background()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "All data deleted.")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}
