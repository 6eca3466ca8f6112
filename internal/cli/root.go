package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"tudu-cli/internal/config"
	"tudu-cli/internal/format"
	"tudu-cli/internal/store"
	"tudu-cli/internal/tui"
)

type App struct {
	Dir        string
	PrettyJSON bool

	cfg    config.Config
	logger *log.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "tudu",
		Short:        "tudu (local-first) to-do list CLI + TUI",
		SilenceUsage: true,
		Example: `  # Start the interactive TUI
  tudu

  # Scriptable commands
  tudu add Buy milk
  tudu list
  tudu done 1756710000000
  tudu status`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if app.Dir != "" {
			cfg.Dir = app.Dir
		}
		app.cfg = cfg
		app.logger = log.NewWithOptions(os.Stderr, log.Options{
			Level:  parseLevel(cfg.LogLevel),
			Prefix: "tudu",
		})
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", os.Getenv("TUDU_DIR"), "Path to the data dir (default: config/user config dir)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newRmCmd(app))
	cmd.AddCommand(newMoveCmd(app))
	cmd.AddCommand(newStatusCmd(app))
	cmd.AddCommand(newResetCmd(app))

	return cmd
}

func parseLevel(s string) log.Level {
	lvl, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

func runTUI(app *App) error {
	s := store.Store{Dir: app.cfg.Dir}
	db, err := s.Open(context.Background())
	if err != nil {
		// The TUI still starts with a not-ready store: reads stay silent,
		// writes alert. Matches the error taxonomy for store-open failure.
		app.logger.Error("open task database", "err", err)
		db = nil
	}
	defer db.Close()
	return tui.Run(app.cfg, s, db)
}

func openDB(app *App) (store.Store, *store.DB, error) {
	s := store.Store{Dir: app.cfg.Dir}
	db, err := s.Open(context.Background())
	if err != nil {
		return s, nil, fmt.Errorf("open task database: %w", err)
	}
	return s, db, nil
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
