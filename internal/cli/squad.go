package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pablasso/kts/internal/checklist"
	"github.com/pablasso/kts/internal/config"
)

func newSquadCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "squad",
		Short: "Show and edit the squad roster",
	}

	var role string
	addCmd := &cobra.Command{
		Use:   "add-soldier <name>",
		Short: "Add a soldier to the squad",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editSquad(opts, cmd, func(s checklist.SquadSettings) (checklist.SquadSettings, string, error) {
				updated, sol, err := s.AddSoldier(args[0], role)
				if err != nil {
					return s, "", err
				}
				return updated, fmt.Sprintf("Added %s (%s).", sol.Label(), sol.ID), nil
			})
		},
	}
	addCmd.Flags().StringVar(&role, "role", "", "soldier role")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the squad roster",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(opts, func(app *config.App) error {
					squad, err := requireSquad(app)
					if err != nil {
						return err
					}
					out := cmd.OutOrStdout()
					fmt.Fprintf(out, "Squad: %s\n\n", squad.SquadName)
					w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tNAME\tROLE")
					for _, s := range squad.Soldiers {
						fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, s.Name, s.Role)
					}
					return w.Flush()
				})
			},
		},
		&cobra.Command{
			Use:   "rename <name>",
			Short: "Rename the squad",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return editSquad(opts, cmd, func(s checklist.SquadSettings) (checklist.SquadSettings, string, error) {
					updated, err := s.Rename(args[0])
					return updated, fmt.Sprintf("Squad renamed to %q.", updated.SquadName), err
				})
			},
		},
		addCmd,
		&cobra.Command{
			Use:   "remove-soldier <soldier-id>",
			Short: "Remove a soldier from the squad",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return editSquad(opts, cmd, func(s checklist.SquadSettings) (checklist.SquadSettings, string, error) {
					updated, err := s.RemoveSoldier(args[0])
					return updated, fmt.Sprintf("Removed %s.", args[0]), err
				})
			},
		},
		&cobra.Command{
			Use:   "set-role <soldier-id> <role>",
			Short: "Change a soldier's role",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return editSquad(opts, cmd, func(s checklist.SquadSettings) (checklist.SquadSettings, string, error) {
					sol, ok := s.FindSoldier(args[0])
					if !ok {
						return s, "", fmt.Errorf("%w: soldier %q", checklist.ErrNotFound, args[0])
					}
					updated, err := s.UpdateSoldier(sol.ID, sol.Name, args[1])
					return updated, fmt.Sprintf("Updated %s.", sol.ID), err
				})
			},
		},
	)
	return cmd
}

func requireSquad(app *config.App) (*checklist.SquadSettings, error) {
	squad := app.Storage.GetSquadSettings(context.Background())
	if squad == nil {
		return nil, fmt.Errorf("%w: no squad set up; run `kts setup` first", checklist.ErrConfiguration)
	}
	return squad, nil
}

// editSquad loads the squad, applies fn and saves the result.
func editSquad(opts *globalOptions, cmd *cobra.Command, fn func(checklist.SquadSettings) (checklist.SquadSettings, string, error)) error {
	return withApp(opts, func(app *config.App) error {
		squad, err := requireSquad(app)
		if err != nil {
			return err
		}
		updated, msg, err := fn(*squad)
		if err != nil {
			return err
		}
		if err := app.Storage.SetSquadSettings(context.Background(), updated); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	})
}
