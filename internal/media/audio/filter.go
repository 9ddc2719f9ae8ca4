package audio

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"keepaudio/internal/language"
	"keepaudio/internal/logging"
	"keepaudio/internal/media/ffprobe"
)

// Decision reasons reported per audio stream.
const (
	ReasonOnlyAudioStream = "only audio stream"
	ReasonUntagged        = "no language or title tag"
	ReasonNoLanguage      = "no language tag"
	ReasonKept            = "language kept"
	ReasonNotKept         = "language not kept"
	ReasonUnknownOriginal = "original language not recognized"
)

// StreamDecision records what the filter decided for one audio stream.
// Language holds the tag as stored in the container.
type StreamDecision struct {
	Index    int
	Language string
	Summary  string
	Remove   bool
	Reason   string
}

// RemovalPlan lists the audio languages to strip, in stream order. A language
// appears once per matching stream, spelled exactly as the stream tags it.
type RemovalPlan struct {
	Languages []string
	Decisions []StreamDecision
}

// NeedsProcessing reports whether any stream must be removed.
func (p RemovalPlan) NeedsProcessing() bool {
	return len(p.Languages) > 0
}

// Distinct returns the plan languages without duplicates, first occurrence first.
func (p RemovalPlan) Distinct() []string {
	seen := make(map[string]struct{}, len(p.Languages))
	out := make([]string, 0, len(p.Languages))
	for _, lang := range p.Languages {
		if strings.TrimSpace(lang) == "" {
			continue
		}
		if _, ok := seen[lang]; ok {
			continue
		}
		seen[lang] = struct{}{}
		out = append(out, lang)
	}
	return out
}

// Args returns the ffmpeg mapping fragments: copy everything, then drop each
// planned language.
func (p RemovalPlan) Args() []string {
	args := []string{"-map", "0", "-c", "copy"}
	for _, lang := range p.Distinct() {
		args = append(args, "-map", "-0:a:m:language:"+lang)
	}
	return args
}

// Filter decides which audio streams fall outside the original language and
// the configured keep-list.
type Filter struct {
	original      string
	originalKnown bool
	keep          map[string]struct{}
	logger        *slog.Logger
}

// FilterOption customizes a Filter.
type FilterOption func(*Filter)

// WithLogger routes filter warnings to logger.
func WithLogger(logger *slog.Logger) FilterOption {
	return func(f *Filter) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFilter builds a filter keeping the original language plus every entry in
// the comma-separated keep-list. Each code also keeps its 2- and 3-letter
// equivalents so "en" keeps streams tagged "eng". An original language the
// table does not recognize has unknown tag spellings, so such a filter keeps
// every stream.
func NewFilter(originalLanguage, keepList string, opts ...FilterOption) Filter {
	original := strings.ToLower(strings.TrimSpace(originalLanguage))
	f := Filter{
		original:      original,
		originalKnown: language.Known(original),
		keep:          make(map[string]struct{}),
		logger:        logging.NewNop(),
	}
	codes := strings.Split(keepList, ",")
	codes = append(codes, originalLanguage)
	for _, code := range codes {
		for _, alias := range language.Equivalents(code) {
			f.keep[alias] = struct{}{}
		}
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// KeepSet returns the effective set of kept language codes, sorted.
func (f Filter) KeepSet() []string {
	out := make([]string, 0, len(f.keep))
	for code := range f.keep {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Keeps reports whether a stream language tag is in the keep-set.
func (f Filter) Keeps(lang string) bool {
	_, ok := f.keep[strings.ToLower(strings.TrimSpace(lang))]
	return ok
}

// Plan inspects the audio streams and returns the languages to remove. A file
// with a single audio stream is never changed, and streams without a title or
// language tag are never removed.
func (f Filter) Plan(ctx context.Context, streams []ffprobe.Stream) RemovalPlan {
	logger := logging.WithContext(ctx, f.logger)
	if !f.originalKnown {
		logging.WarnWithContext(logger, "original language not in language table; keeping all audio", "original_language_unknown",
			logging.String("original_language", f.original),
			logging.String(logging.FieldErrorHint, "add the language to internal/language"),
			logging.String(logging.FieldImpact, "no audio streams removed"))
	}
	audioCount := 0
	for _, stream := range streams {
		if stream.IsAudio() {
			audioCount++
		}
	}

	var plan RemovalPlan
	for _, stream := range streams {
		if !stream.IsAudio() {
			continue
		}
		lang := stream.Language()
		decision := StreamDecision{
			Index:    stream.Index,
			Language: stream.RawLanguage(),
			Summary:  StreamSummary(stream),
		}
		switch {
		case !stream.HasIdentifyingTags():
			decision.Reason = ReasonUntagged
			logging.WarnWithContext(logger, "audio stream has no language tag; ignoring", "audio_stream_untagged",
				logging.Int("stream_index", stream.Index),
				logging.String(logging.FieldErrorHint, "tag the stream language with mkvpropedit or ffmpeg"),
				logging.String(logging.FieldImpact, "stream kept"))
		case audioCount == 1:
			decision.Reason = ReasonOnlyAudioStream
		case lang == "":
			decision.Reason = ReasonNoLanguage
		case !f.originalKnown:
			decision.Reason = ReasonUnknownOriginal
		case f.Keeps(lang):
			decision.Reason = ReasonKept
		default:
			decision.Remove = true
			decision.Reason = ReasonNotKept
			plan.Languages = append(plan.Languages, decision.Language)
		}
		plan.Decisions = append(plan.Decisions, decision)
	}

	logger.Debug("audio removal plan",
		logging.Strings("keep_set", f.KeepSet()),
		logging.Strings("remove_languages", plan.Languages),
		logging.Int("audio_streams", audioCount))
	return plan
}

// OriginalLanguage returns the normalized original language the filter keeps.
func (f Filter) OriginalLanguage() string {
	return f.original
}
