package workflow

import (
	"context"

	"keepaudio/internal/config"
	"keepaudio/internal/identification"
	"keepaudio/internal/media/audio"
	"keepaudio/internal/media/ffprobe"
)

// Issue identifiers and messages reported back to the library host.
const (
	IssueID           = "keep_original_audio_only"
	IssueNoResolution = "TMDb movie lookup returned no valid results. Cannot determine original language."
)

// Hook names recorded on every log line of an invocation.
const (
	HookFileTest = "file_test"
	HookWorker   = "worker"
)

// Issue explains why a file was not queued.
type Issue struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// FileTestData is the payload of the library file-test hook.
type FileTestData struct {
	Path                  string  `json:"path"`
	LibraryID             string  `json:"library_id,omitempty"`
	Issues                []Issue `json:"issues"`
	AddFileToPendingTasks bool    `json:"add_file_to_pending_tasks"`
}

// ProgressFunc parses one line of command output into percent complete.
type ProgressFunc func(line string) (float64, bool)

// WorkerData is the payload of the worker hook. ExecCommand is empty when the
// file needs no change.
type WorkerData struct {
	ExecCommand           []string     `json:"exec_command"`
	CommandProgressParser ProgressFunc `json:"-"`
	FileIn                string       `json:"file_in"`
	FileOut               string       `json:"file_out"`
	OriginalFilePath      string       `json:"original_file_path"`
	LibraryID             string       `json:"library_id,omitempty"`
	Repeat                bool         `json:"repeat"`
	Issues                []Issue      `json:"issues,omitempty"`
}

// Outcome is the per-file decision state.
type Outcome int

const (
	OutcomeNotProbed Outcome = iota
	OutcomeProbed
	OutcomeNeedsNoAction
	OutcomeNeedsStreamRemoval
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNotProbed:
		return "not_probed"
	case OutcomeProbed:
		return "probed"
	case OutcomeNeedsNoAction:
		return "no_action"
	case OutcomeNeedsStreamRemoval:
		return "remove_streams"
	default:
		return "unknown"
	}
}

// Settings are the per-run options the hooks act on.
type Settings struct {
	APIKey          string
	LanguagesToKeep string
	FFmpegBinary    string
}

// SettingsFromConfig copies the hook settings out of the loaded configuration.
func SettingsFromConfig(cfg *config.Config) Settings {
	if cfg == nil {
		return Settings{}
	}
	return Settings{
		APIKey:          cfg.TMDB.APIKey,
		LanguagesToKeep: cfg.Audio.LanguagesToKeep,
		FFmpegBinary:    cfg.FFmpegBinary(),
	}
}

// Prober lists the streams of a media file.
type Prober interface {
	Probe(ctx context.Context, path string) (ffprobe.Result, error)
}

// Resolver maps a file path to its catalog movie.
type Resolver interface {
	Resolve(ctx context.Context, path string) (*identification.Movie, error)
}

// Evaluation is the full decision record for one file.
type Evaluation struct {
	Path    string
	Outcome Outcome
	Probe   ffprobe.Result
	Movie   *identification.Movie
	Plan    audio.RemovalPlan
	Err     error
}

// NeedsIssue reports whether the failure should be surfaced to the user.
func (e Evaluation) NeedsIssue() bool {
	return e.Err != nil && e.Outcome == OutcomeProbed
}
