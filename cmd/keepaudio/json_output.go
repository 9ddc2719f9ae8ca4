package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"keepaudio/internal/identification"
	"keepaudio/internal/media/audio"
	"keepaudio/internal/workflow"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type movieJSON struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	ReleaseYear       int    `json:"release_year,omitempty"`
	OriginalLanguage  string `json:"original_language"`
	OriginalLanguage3 string `json:"original_language3,omitempty"`
}

type streamJSON struct {
	Index    int    `json:"index"`
	Language string `json:"language,omitempty"`
	Summary  string `json:"summary"`
	Remove   bool   `json:"remove"`
	Reason   string `json:"reason"`
}

type evaluationJSON struct {
	Path            string                `json:"path"`
	Outcome         string                `json:"outcome"`
	Movie           *movieJSON            `json:"movie,omitempty"`
	Streams         []streamJSON          `json:"streams,omitempty"`
	RemoveLanguages []string              `json:"remove_languages,omitempty"`
	Error           string                `json:"error,omitempty"`
	FileTest        workflow.FileTestData `json:"file_test"`
}

func newMovieJSON(movie *identification.Movie) *movieJSON {
	if movie == nil {
		return nil
	}
	return &movieJSON{
		ID:                movie.ID,
		Title:             movie.Title,
		ReleaseYear:       movie.ReleaseYear,
		OriginalLanguage:  movie.OriginalLanguage,
		OriginalLanguage3: movie.OriginalLanguage3,
	}
}

func newEvaluationJSON(result workflow.ScanResult) evaluationJSON {
	eval := result.Evaluation
	out := evaluationJSON{
		Path:            eval.Path,
		Outcome:         eval.Outcome.String(),
		Movie:           newMovieJSON(eval.Movie),
		Streams:         streamsJSON(eval.Plan.Decisions),
		RemoveLanguages: eval.Plan.Distinct(),
		FileTest:        result.Data,
	}
	if eval.Err != nil {
		out.Error = eval.Err.Error()
	}
	return out
}

func streamsJSON(decisions []audio.StreamDecision) []streamJSON {
	if len(decisions) == 0 {
		return nil
	}
	out := make([]streamJSON, 0, len(decisions))
	for _, d := range decisions {
		out = append(out, streamJSON{
			Index:    d.Index,
			Language: d.Language,
			Summary:  d.Summary,
			Remove:   d.Remove,
			Reason:   d.Reason,
		})
	}
	return out
}
