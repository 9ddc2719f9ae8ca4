package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"keepaudio/internal/workflow"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "Run the file-test hook on every video file under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			lockPath := filepath.Join(cfg.Paths.LockDir, "scan.lock")
			lock := flock.New(lockPath)
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire scan lock: %w", err)
			}
			if !locked {
				return errors.New("another scan is already running")
			}
			defer func() { _ = lock.Unlock() }()

			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return err
			}
			processor, cleanup, err := ctx.newProcessor(cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			root := args[0]
			results, err := processor.Scan(cmd.Context(), root)
			if err != nil {
				return fmt.Errorf("scan %s: %w", root, err)
			}

			if jsonOutput {
				payload := make([]evaluationJSON, 0, len(results))
				for _, result := range results {
					payload = append(payload, newEvaluationJSON(result))
				}
				return writeJSON(cmd, payload)
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "No video files found")
				return nil
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"File", "Movie", "Lang", "Remove", "Outcome", "Queued"},
				scanRows(root, results),
				nil))
			fmt.Fprintln(out, scanSummary(results))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func scanRows(root string, results []workflow.ScanResult) [][]string {
	rows := make([][]string, 0, len(results))
	for _, result := range results {
		eval := result.Evaluation
		name := eval.Path
		if rel, err := filepath.Rel(root, eval.Path); err == nil {
			name = rel
		}
		movie, lang := "-", "-"
		if eval.Movie != nil {
			movie = eval.Movie.String()
			lang = eval.Movie.OriginalLanguage
		}
		remove := strings.Join(eval.Plan.Distinct(), ",")
		if remove == "" {
			remove = "-"
		}
		outcome := eval.Outcome.String()
		if len(result.Data.Issues) > 0 {
			outcome = "issue"
		}
		rows = append(rows, []string{name, movie, lang, remove, outcome, yesNo(result.Data.AddFileToPendingTasks)})
	}
	return rows
}

func scanSummary(results []workflow.ScanResult) string {
	var queued, issues int
	for _, result := range results {
		if result.Data.AddFileToPendingTasks {
			queued++
		}
		if len(result.Data.Issues) > 0 {
			issues++
		}
	}
	return fmt.Sprintf("%d files, %d queued, %d with issues", len(results), queued, issues)
}
