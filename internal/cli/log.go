package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pablasso/kts/internal/checklist"
	"github.com/pablasso/kts/internal/config"
	"github.com/pablasso/kts/internal/report"
	"github.com/pablasso/kts/internal/sessionlog"
)

func newLogCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Review and correct finished inspections",
	}

	var copyText bool
	exportCmd := &cobra.Command{
		Use:   "export <session-id>",
		Short: "Print a session as shareable text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *config.App) error {
				ctx := context.Background()
				s, err := app.Sessions.FindByID(ctx, args[0])
				if err != nil {
					return err
				}
				text := report.Session(s, app.Storage.GetChecklist(ctx))
				fmt.Fprint(cmd.OutOrStdout(), text)
				if !copyText {
					return nil
				}
				if sessionlog.MissingCount(s) == 0 {
					return fmt.Errorf("session %s has no missing items to copy", s.ID)
				}
				if err := report.Copy(text); err != nil {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), "Copied to clipboard.")
				return nil
			})
		},
	}
	exportCmd.Flags().BoolVar(&copyText, "copy", false, "also copy the text to the clipboard")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List finished sessions, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(opts, func(app *config.App) error {
					return printSessions(cmd.OutOrStdout(), app.Sessions.All(context.Background()))
				})
			},
		},
		&cobra.Command{
			Use:   "show <session-id>",
			Short: "Show the missing items of a session",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(opts, func(app *config.App) error {
					ctx := context.Background()
					s, err := app.Sessions.FindByID(ctx, args[0])
					if err != nil {
						return err
					}
					return printSession(cmd.OutOrStdout(), s, app.Storage.GetChecklist(ctx))
				})
			},
		},
		&cobra.Command{
			Use:   "resolve <session-id> <category-id> <item-id> <soldier-id>",
			Short: "Mark a missing item as OK",
			Args:  cobra.ExactArgs(4),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(opts, func(app *config.App) error {
					s, err := app.Sessions.MarkResolved(context.Background(), args[0], args[1], args[2], args[3])
					if err != nil {
						return err
					}
					if err := app.Journal.ItemResolved(args[0], args[1], args[2], args[3]); err != nil {
						app.Logger.Warn("failed to write journal", "error", err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Marked OK. %d missing item(s) left in %s.\n", sessionlog.MissingCount(s), s.ID)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "describe <session-id> <category-id> <item-id> <soldier-id> <text>",
			Short: "Set the description of a missing item",
			Args:  cobra.ExactArgs(5),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(opts, func(app *config.App) error {
					if _, err := app.Sessions.UpdateItemDescription(context.Background(), args[0], args[1], args[2], args[3], args[4]); err != nil {
						return err
					}
					if err := app.Journal.DescriptionEdited(args[0], args[1], args[2], args[3]); err != nil {
						app.Logger.Warn("failed to write journal", "error", err)
					}
					fmt.Fprintln(cmd.OutOrStdout(), "Description saved.")
					return nil
				})
			},
		},
		exportCmd,
	)
	return cmd
}

func printSessions(out io.Writer, sessions []checklist.Session) error {
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions yet.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tSQUAD\tSOLDIERS\tMISSING\tDURATION\tAGE")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s %s\t%s\t%d\t%d\t%s\t%s\n",
			s.ID,
			s.Date, s.Time,
			s.SquadName,
			len(s.Soldiers),
			sessionlog.MissingCount(s),
			s.Duration,
			formatAge(time.UnixMilli(s.Timestamp)),
		)
	}
	return w.Flush()
}

func printSession(out io.Writer, s checklist.Session, categories []checklist.Category) error {
	fmt.Fprintf(out, "Session %s\n", s.ID)
	fmt.Fprintf(out, "Squad:    %s\n", s.SquadName)
	fmt.Fprintf(out, "Date:     %s %s\n", s.Date, s.Time)
	fmt.Fprintf(out, "Duration: %s\n\n", s.Duration)

	rows := sessionlog.SessionMissingItems(s, categories)
	if len(rows) == 0 {
		fmt.Fprintln(out, "No missing items.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOLDIER\tCATEGORY\tITEM\tDESCRIPTION\tREF")
	for _, row := range rows {
		for _, item := range row.MissingItems {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				row.Soldier.Label(),
				item.CategoryName,
				item.ItemName,
				item.Description,
				strings.Join([]string{item.CategoryID, item.ItemID, row.Soldier.ID}, " "),
			)
		}
	}
	return w.Flush()
}

// formatAge returns a human-readable relative time string.
func formatAge(t time.Time) string {
	if time.Since(t) < time.Minute {
		return "just now"
	}
	return humanize.Time(t)
}

func newJournalCmd(opts *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show recent inspection events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *config.App) error {
				events, err := app.Journal.Read()
				if err != nil {
					return err
				}
				if limit > 0 && len(events) > limit {
					events = events[len(events)-limit:]
				}
				if len(events) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No events yet.")
					return nil
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "TIME\tEVENT\tSESSION")
				for _, e := range events {
					fmt.Fprintf(w, "%s\t%s\t%v\n", e.Timestamp.Local().Format("2006-01-02 15:04"), e.Event, e.Data["session_id"])
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of events to show (0 for all)")
	return cmd
}
