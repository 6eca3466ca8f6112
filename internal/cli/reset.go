package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tudu-cli/internal/store"
)

func newResetCmd(app *App) *cobra.Command {
	var yes bool
	var all bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all tasks, app state and caches (irreversible)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				fmt.Fprint(cmd.OutOrStdout(), "This permanently deletes every task, all app state and caches. Continue? [y/N] ")
				line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				switch strings.ToLower(strings.TrimSpace(line)) {
				case "y", "yes":
				default:
					return writeErr(cmd, errors.New("reset aborted"))
				}
			}

			s := store.Store{Dir: app.cfg.Dir}
			if err := s.Reset(store.ResetOptions{AllDatabases: all}); err != nil {
				return writeErr(cmd, err)
			}
			app.logger.Info("reset complete", "dir", s.Dir, "all", all)
			return writeOut(cmd, app, map[string]any{"reset": true, "all": all})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&all, "all", false, "Also sweep every *.sqlite database under the data dir")
	return cmd
}
