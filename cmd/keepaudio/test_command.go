package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"keepaudio/internal/language"
	"keepaudio/internal/textutil"
	"keepaudio/internal/workflow"
)

func newTestCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "test <file>",
		Short: "Run the file-test hook on one file and show the decision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return err
			}
			processor, cleanup, err := ctx.newProcessor(cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			result := processor.Inspect(cmd.Context(), args[0])
			if jsonOutput {
				return writeJSON(cmd, newEvaluationJSON(result))
			}
			renderEvaluation(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func renderEvaluation(out io.Writer, result workflow.ScanResult) {
	eval := result.Evaluation
	fmt.Fprintf(out, "File:              %s\n", eval.Path)
	if eval.Movie != nil {
		fmt.Fprintf(out, "Movie:             %s\n", eval.Movie.String())
		fmt.Fprintf(out, "Original language: %s (%s)\n", eval.Movie.OriginalLanguage, language.DisplayName(eval.Movie.OriginalLanguage))
	} else {
		fmt.Fprintln(out, "Movie:             -")
	}
	fmt.Fprintf(out, "Outcome:           %s\n", eval.Outcome)
	fmt.Fprintf(out, "Queued:            %s\n", yesNo(result.Data.AddFileToPendingTasks))
	for _, issue := range result.Data.Issues {
		fmt.Fprintf(out, "Issue:             %s\n", issue.Message)
	}
	if eval.Err != nil {
		fmt.Fprintf(out, "Reason:            %v\n", eval.Err)
	}
	if remove := eval.Plan.Distinct(); len(remove) > 0 {
		fmt.Fprintf(out, "Remove languages:  %s\n", strings.Join(remove, ", "))
	}

	if len(eval.Plan.Decisions) == 0 {
		return
	}
	rows := make([][]string, 0, len(eval.Plan.Decisions))
	for _, d := range eval.Plan.Decisions {
		rows = append(rows, []string{
			strconv.Itoa(d.Index),
			textutil.Ternary(d.Language == "", "-", d.Language),
			d.Summary,
			textutil.Ternary(d.Remove, "remove", "keep"),
			d.Reason,
		})
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTable(out,
		[]string{"#", "Language", "Stream", "Action", "Reason"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft}))
}
