package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"keepaudio/internal/config"
	"keepaudio/internal/logging"
	"keepaudio/internal/lookupcache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the TMDB lookup cache",
	}
	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCachePruneCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))
	return cacheCmd
}

func openLookupCache(ctx *commandContext) (*lookupcache.Cache, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	return openLookupCacheFromConfig(cfg)
}

func openLookupCacheFromConfig(cfg *config.Config) (*lookupcache.Cache, error) {
	if !cfg.Cache.Enabled {
		return nil, errors.New("lookup cache is disabled (cache.enabled = false)")
	}
	return lookupcache.Open(cfg.Cache.Path, time.Duration(cfg.Cache.TTLHours)*time.Hour, logging.NewNop())
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cached movie lookups",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := openLookupCache(ctx)
			if err != nil {
				return err
			}
			defer cache.Close()

			entries, err := cache.List(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput {
				type entryJSON struct {
					Key      string     `json:"key"`
					Movie    *movieJSON `json:"movie"`
					CachedAt time.Time  `json:"cached_at"`
				}
				payload := make([]entryJSON, 0, len(entries))
				for i := range entries {
					payload = append(payload, entryJSON{
						Key:      entries[i].Key,
						Movie:    newMovieJSON(&entries[i].Movie),
						CachedAt: entries[i].CachedAt,
					})
				}
				return writeJSON(cmd, payload)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Cache is empty")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.Key,
					entry.Movie.String(),
					entry.Movie.OriginalLanguage,
					entry.CachedAt.Local().Format("2006-01-02 15:04"),
				})
			}
			fmt.Fprintln(out, renderTable(out, []string{"Key", "Movie", "Lang", "Cached"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newCachePruneCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := openLookupCache(ctx)
			if err != nil {
				return err
			}
			defer cache.Close()

			removed, err := cache.Prune(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired entries\n", removed)
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cache entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := openLookupCache(ctx)
			if err != nil {
				return err
			}
			defer cache.Close()

			if err := cache.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", cache.Path())
			return nil
		},
	}
}
