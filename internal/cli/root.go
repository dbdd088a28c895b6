// Package cli implements the kts command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/pablasso/kts/internal/config"
	"github.com/pablasso/kts/internal/tui"
	"github.com/pablasso/kts/internal/version"
)

// runTUI opens the terminal UI; tests replace it.
var runTUI = tui.Run

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	dataDir string
	backend string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "kts",
		Short: "Equipment inspection for a squad",
		Long: `kts runs equipment inspections (KTS) for a squad and keeps a log of the results.

Run without a command to open the terminal UI.`,
		Version:      version.String(),
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, runTUI)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "data directory (default $KTS_DATA_DIR or ~/.kts)")
	cmd.PersistentFlags().StringVar(&opts.backend, "backend", "", "storage backend: file|sqlite (default $KTS_BACKEND or file)")

	cmd.AddCommand(
		newSetupCmd(opts),
		newSquadCmd(opts),
		newChecklistCmd(opts),
		newLogCmd(opts),
		newJournalCmd(opts),
		newResetCmd(opts),
	)
	return cmd
}

// withApp loads configuration, applies flag overrides and opens the data
// directory for the duration of fn.
func withApp(opts *globalOptions, fn func(*config.App) error) (err error) {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.dataDir != "" {
		cfg.DataDir = opts.dataDir
	}
	if opts.backend != "" {
		cfg.Backend = opts.backend
	}

	app, err := config.Open(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(app)
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
