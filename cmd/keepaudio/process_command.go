package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"keepaudio/internal/fileutil"
	"keepaudio/internal/logging"
	"keepaudio/internal/services"
	"keepaudio/internal/workflow"
)

// stderrTailLines bounds the ffmpeg output kept for error messages.
const stderrTailLines = 20

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "process <input> [output]",
		Short: "Run the worker hook and strip unwanted audio streams",
		Long: "Run the worker hook on a file. When audio streams need removal, ffmpeg copies\n" +
			"the file without them and the result replaces the output path (the input by default).",
		Args: cobra.RangeArgs(1, 2),
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

			input, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve input path: %w", err)
			}
			output := input
			if len(args) > 1 {
				if output, err = filepath.Abs(args[1]); err != nil {
					return fmt.Errorf("resolve output path: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			if dryRun {
				data := processor.Process(cmd.Context(), workflow.WorkerData{
					FileIn:           input,
					FileOut:          output,
					OriginalFilePath: input,
				})
				return reportWorkerResult(out, data, true)
			}

			tmp, err := reserveTempOutput(output)
			if err != nil {
				return err
			}
			keepTmp := false
			defer func() {
				if !keepTmp {
					_ = os.Remove(tmp)
				}
			}()

			data := processor.Process(cmd.Context(), workflow.WorkerData{
				FileIn:           input,
				FileOut:          tmp,
				OriginalFilePath: input,
			})
			if len(data.ExecCommand) == 0 {
				return reportWorkerResult(out, data, false)
			}
			if err := runCommand(cmd.Context(), logger, data); err != nil {
				return err
			}
			if err := fileutil.ReplaceFile(tmp, output); err != nil {
				return fmt.Errorf("replace %s: %w", output, err)
			}
			keepTmp = true
			fmt.Fprintf(out, "Wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the ffmpeg command without running it")
	return cmd
}

func reportWorkerResult(out io.Writer, data workflow.WorkerData, printCommand bool) error {
	for _, issue := range data.Issues {
		fmt.Fprintf(out, "Issue: %s\n", issue.Message)
	}
	if len(data.ExecCommand) == 0 {
		fmt.Fprintln(out, "No audio streams need removal")
		return nil
	}
	if printCommand {
		fmt.Fprintln(out, shellJoin(data.ExecCommand))
	}
	return nil
}

// reserveTempOutput creates an empty file next to output with the same
// extension so ffmpeg picks the same container and the final rename stays on
// one filesystem.
func reserveTempOutput(output string) (string, error) {
	dir := filepath.Dir(output)
	f, err := os.CreateTemp(dir, ".keepaudio-*"+filepath.Ext(output))
	if err != nil {
		return "", fmt.Errorf("create temporary output in %s: %w", dir, err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("close temporary output: %w", err)
	}
	return name, nil
}

func runCommand(ctx context.Context, logger *slog.Logger, data workflow.WorkerData) error {
	args := data.ExecCommand
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("ffmpeg stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return services.Wrap(services.ErrExternalTool, "cli", "process", "start ffmpeg", err)
	}

	tail, scanErr := consumeProgress(stderr, data.CommandProgressParser)
	if scanErr != nil {
		logging.WarnWithContext(logger, "ffmpeg output unreadable; progress unavailable", "ffmpeg_output_unreadable",
			logging.Error(scanErr),
			logging.String(logging.FieldErrorHint, "inspect the ffmpeg output for an oversized line"),
			logging.String(logging.FieldImpact, "progress not reported for the rest of the run"))
	}

	if err := cmd.Wait(); err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return ctx.Err()
		}
		logger.Error("ffmpeg failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "ffmpeg_failed"),
			logging.String("stderr_tail", strings.Join(tail, "\n")))
		return services.Wrap(services.ErrExternalTool, "cli", "process", "ffmpeg exited with error", err)
	}
	return nil
}

// consumeProgress feeds every ffmpeg output line to parse and returns the last
// non-progress lines. The reader is always read to EOF so ffmpeg never blocks
// on a full pipe, even after a scan error.
func consumeProgress(r io.Reader, parse workflow.ProgressFunc) ([]string, error) {
	var tail []string
	scanner := bufio.NewScanner(r)
	scanner.Split(scanProgressLines)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if parse != nil {
			if _, ok := parse(line); ok {
				continue
			}
		}
		tail = append(tail, line)
		if len(tail) > stderrTailLines {
			tail = tail[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		_, _ = io.Copy(io.Discard, r)
		return tail, err
	}
	return tail, nil
}

// scanProgressLines splits on either \n or \r; ffmpeg rewrites its stats line
// in place with carriage returns.
func scanProgressLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func shellJoin(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		if arg == "" || strings.ContainsAny(arg, " \t\n'\"\\$`*?[]#&;|<>()") {
			quoted[i] = strconv.Quote(arg)
		} else {
			quoted[i] = arg
		}
	}
	return strings.Join(quoted, " ")
}
