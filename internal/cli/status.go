package cli

import (
	"github.com/spf13/cobra"
)

type statusPayload struct {
	Count      int     `json:"count"`
	UsedBytes  int64   `json:"usedBytes"`
	QuotaBytes int64   `json:"quotaBytes"`
	Percent    float64 `json:"percent"`
	Warn       bool    `json:"warn"`
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show task count and storage usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, db, err := openDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()

			count, err := db.Count(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}

			// Usage estimation is best-effort; a walk error degrades to
			// whatever was counted before it, never to a failed command.
			usage, _ := s.EstimateUsage(app.cfg.QuotaBytes)
			if usage.OverThreshold() {
				app.logger.Warn("storage usage high; consider `tudu reset`",
					"used", usage.UsedBytes, "quota", usage.QuotaBytes)
			}
			return writeOut(cmd, app, statusPayload{
				Count:      count,
				UsedBytes:  usage.UsedBytes,
				QuotaBytes: usage.QuotaBytes,
				Percent:    usage.Percent(),
				Warn:       usage.OverThreshold(),
			})
		},
	}
}
