package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"keepaudio/internal/identification"
	"keepaudio/internal/logging"
	"keepaudio/internal/media/audio"
	"keepaudio/internal/services"
)

// errNoOriginalLanguage marks a resolved movie whose catalog record carries no
// original language; without it nothing can be kept safely.
var errNoOriginalLanguage = errors.New("resolved movie has no original language")

// errUnknownOriginalLanguage marks an original language missing from the
// language table. Its stream tag spellings are unknown, so no stream can be
// matched against it.
var errUnknownOriginalLanguage = errors.New("original language not in language table")

// Processor runs the file-test and worker hooks.
type Processor struct {
	settings Settings
	prober   Prober
	resolver Resolver
	logger   *slog.Logger
	newID    func() string
}

// NewProcessor wires the hooks to their collaborators.
func NewProcessor(settings Settings, prober Prober, resolver Resolver, logger *slog.Logger) *Processor {
	return &Processor{
		settings: settings,
		prober:   prober,
		resolver: resolver,
		logger:   logging.NewComponentLogger(logger, "workflow"),
		newID:    uuid.NewString,
	}
}

// Evaluate probes the file, resolves its movie and plans the audio removal.
// Every failure leaves the plan empty.
func (p *Processor) Evaluate(ctx context.Context, path string) Evaluation {
	logger := logging.WithContext(ctx, p.logger)
	eval := Evaluation{Path: path, Outcome: OutcomeNotProbed}

	if strings.TrimSpace(p.settings.APIKey) == "" {
		logger.Debug("TMDB API key not configured; skipping file")
		eval.Err = services.Wrap(services.ErrConfiguration, "workflow", "evaluate", "TMDB API key not configured", nil)
		return eval
	}

	result, err := p.prober.Probe(ctx, path)
	if err != nil {
		logger.Debug("probe failed; skipping file", logging.Error(err))
		eval.Outcome = OutcomeNeedsNoAction
		eval.Err = err
		return eval
	}
	eval.Probe = result
	eval.Outcome = OutcomeProbed
	logger.Debug("probe complete",
		logging.Int("streams", len(result.Streams)),
		logging.Int("audio_streams", result.AudioStreamCount()))

	movie, err := p.resolver.Resolve(ctx, path)
	if err == nil && movie != nil && movie.OriginalLanguage == "" {
		err = errNoOriginalLanguage
	}
	if err == nil && movie != nil && movie.OriginalLanguage3 == "" {
		err = fmt.Errorf("%w: %q", errUnknownOriginalLanguage, movie.OriginalLanguage)
	}
	if err == nil && movie == nil {
		err = identification.ErrNoMatch
	}
	if err != nil {
		eval.Err = err
		if services.IsSkippable(err) {
			eval.Outcome = OutcomeNeedsNoAction
		}
		logger.Debug("TMDB movie lookup returned no valid results", logging.Error(err))
		return eval
	}
	eval.Movie = movie

	filter := audio.NewFilter(movie.OriginalLanguage, p.settings.LanguagesToKeep, audio.WithLogger(p.logger))
	eval.Plan = filter.Plan(ctx, result.Streams)
	if eval.Plan.NeedsProcessing() {
		eval.Outcome = OutcomeNeedsStreamRemoval
	} else {
		eval.Outcome = OutcomeNeedsNoAction
	}

	attrs := append(logging.DecisionAttrs("audio_removal", eval.Outcome.String(), decisionReason(eval)),
		logging.String("movie", movie.String()),
		logging.String("original_language", movie.OriginalLanguage),
		logging.Strings("remove_languages", eval.Plan.Distinct()))
	logger.Info("audio evaluation complete", logging.Args(attrs...)...)
	return eval
}

// TestFile runs the library file-test hook: it flags the file for processing
// when audio streams need removal and records an issue when the movie cannot
// be resolved.
func (p *Processor) TestFile(ctx context.Context, data FileTestData) FileTestData {
	data, _ = p.testFile(ctx, data)
	return data
}

func (p *Processor) testFile(ctx context.Context, data FileTestData) (FileTestData, Evaluation) {
	ctx = p.hookContext(ctx, HookFileTest, data.Path)
	eval := p.Evaluate(ctx, data.Path)
	if eval.NeedsIssue() {
		data.Issues = append(data.Issues, resolutionIssue())
		return data, eval
	}
	if eval.Outcome == OutcomeNeedsStreamRemoval {
		data.AddFileToPendingTasks = true
		logging.WithContext(ctx, p.logger).Debug("file queued for processing; streams require removal")
	}
	return data, eval
}

// Process runs the worker hook: it fills ExecCommand with the ffmpeg
// invocation that drops the planned languages, or leaves it empty.
func (p *Processor) Process(ctx context.Context, data WorkerData) WorkerData {
	data.ExecCommand = nil
	data.CommandProgressParser = nil
	data.Repeat = false

	ctx = p.hookContext(ctx, HookWorker, data.FileIn)
	eval := p.Evaluate(ctx, data.FileIn)
	if eval.NeedsIssue() {
		data.Issues = append(data.Issues, resolutionIssue())
		return data
	}
	if eval.Outcome != OutcomeNeedsStreamRemoval {
		return data
	}

	data.ExecCommand = audio.BuildCommand(p.settings.FFmpegBinary, data.FileIn, data.FileOut, eval.Plan)
	data.CommandProgressParser = p.progressFunc(ctx, eval.Probe.DurationSeconds())
	return data
}

func (p *Processor) progressFunc(ctx context.Context, duration float64) ProgressFunc {
	parser := audio.NewProgressParser(duration)
	sampler := logging.NewProgressSampler(10)
	logger := logging.WithContext(ctx, p.logger)
	return func(line string) (float64, bool) {
		percent, ok := parser.Parse(line)
		if ok && sampler.ShouldLog(percent) {
			logger.Info("ffmpeg progress", logging.Float64("percent", percent))
		}
		return percent, ok
	}
}

func (p *Processor) hookContext(ctx context.Context, hook, path string) context.Context {
	if _, ok := services.RequestIDFromContext(ctx); !ok {
		ctx = services.WithRequestID(ctx, p.newID())
	}
	ctx = services.WithHook(ctx, hook)
	return services.WithFile(ctx, path)
}

func resolutionIssue() Issue {
	return Issue{ID: IssueID, Message: IssueNoResolution}
}

func decisionReason(eval Evaluation) string {
	if eval.Outcome == OutcomeNeedsStreamRemoval {
		return "audio languages outside keep-set"
	}
	for _, decision := range eval.Plan.Decisions {
		if decision.Reason == audio.ReasonOnlyAudioStream {
			return audio.ReasonOnlyAudioStream
		}
	}
	return "all audio languages kept"
}
