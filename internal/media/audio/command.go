package audio

import "strings"

// BuildCommand assembles the full ffmpeg invocation that copies input to
// output without the planned audio languages. It returns nil when the plan
// removes nothing.
func BuildCommand(ffmpegBinary, input, output string, plan RemovalPlan) []string {
	if !plan.NeedsProcessing() {
		return nil
	}
	ffmpegBinary = strings.TrimSpace(ffmpegBinary)
	if ffmpegBinary == "" {
		ffmpegBinary = "ffmpeg"
	}
	cmd := []string{ffmpegBinary, "-hide_banner", "-loglevel", "info", "-i", input}
	cmd = append(cmd, plan.Args()...)
	cmd = append(cmd, "-y", output)
	return cmd
}
