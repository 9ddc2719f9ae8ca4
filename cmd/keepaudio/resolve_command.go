package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"keepaudio/internal/identification"
	"keepaudio/internal/language"
)

type resolveJSON struct {
	Path     string     `json:"path"`
	Years    []string   `json:"years"`
	Titles   []string   `json:"titles"`
	Queries  []string   `json:"queries"`
	CacheKey string     `json:"cache_key"`
	Movie    *movieJSON `json:"movie,omitempty"`
	Error    string     `json:"error,omitempty"`
}

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "resolve <file>",
		Short: "Show the path signals and the TMDB movie a file resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Configured() {
				return errors.New("TMDB API key not configured (set tmdb.api_key or TMDB_API_KEY)")
			}
			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return err
			}
			resolver, cleanup, err := ctx.newResolver(cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			path := args[0]
			signals := identification.ExtractSignals(path)
			movie, resolveErr := resolver.Resolve(cmd.Context(), path)

			if jsonOutput {
				payload := resolveJSON{
					Path:     path,
					Years:    signals.Years,
					Titles:   signals.Titles,
					Queries:  signals.Queries,
					CacheKey: signals.CacheKey(),
					Movie:    newMovieJSON(movie),
				}
				if resolveErr != nil {
					payload.Error = resolveErr.Error()
				}
				return writeJSON(cmd, payload)
			}

			out := cmd.OutOrStdout()
			rows := [][]string{
				{"Years", strings.Join(signals.Years, ", ")},
				{"Titles", strings.Join(signals.Titles, "\n")},
				{"Search queries", strings.Join(signals.Queries, "\n")},
			}
			if movie != nil {
				rows = append(rows,
					[]string{"Movie", movie.String()},
					[]string{"Original language", fmt.Sprintf("%s (%s)", movie.OriginalLanguage, language.DisplayName(movie.OriginalLanguage))},
				)
			}
			if resolveErr != nil {
				rows = append(rows, []string{"Error", resolveErr.Error()})
			}
			fmt.Fprintln(out, renderTable(out, []string{"Field", "Value"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
