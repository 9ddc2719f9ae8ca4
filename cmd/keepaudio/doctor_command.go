package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"keepaudio/internal/deps"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external binaries and TMDB configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			rows := make([][]string, 0, len(statuses)+1)
			for _, status := range statuses {
				detail := status.Detail
				if detail == "" {
					detail = status.Description
				}
				rows = append(rows, []string{status.Name, status.Command, yesNo(status.Available), detail})
			}
			rows = append(rows, []string{"TMDB API key", "-", yesNo(cfg.Configured()), "Required to resolve movies"})

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out, []string{"Check", "Command", "OK", "Detail"}, rows, nil))

			missing := deps.Missing(statuses)
			if len(missing) > 0 {
				return fmt.Errorf("%d required dependencies missing", len(missing))
			}
			if !cfg.Configured() {
				return fmt.Errorf("TMDB API key not configured")
			}
			return nil
		},
	}
}
