package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"keepaudio/internal/config"
	"keepaudio/internal/identification"
	"keepaudio/internal/identification/tmdb"
	"keepaudio/internal/logging"
	"keepaudio/internal/lookupcache"
	"keepaudio/internal/media/probe"
	"keepaudio/internal/workflow"
)

type commandContext struct {
	configFlag *string
	verbose    *bool

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext(configFlag *string, verbose *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		verbose:    verbose,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = fmt.Errorf("load config: %w", err)
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) newLogger(cfg *config.Config) (*slog.Logger, error) {
	logCfg := *cfg
	if c.verbose != nil && *c.verbose {
		logCfg.Logging.Level = "debug"
	}
	logger, err := logging.NewFromConfig(&logCfg)
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}
	return logger, nil
}

// newResolver builds the TMDB-backed resolver. The returned cleanup closes the
// lookup cache when one was opened.
func (c *commandContext) newResolver(cfg *config.Config, logger *slog.Logger) (*identification.Resolver, func(), error) {
	cleanup := func() {}
	if !cfg.Configured() {
		return identification.NewResolver(nil, logger), cleanup, nil
	}
	client, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language,
		tmdb.WithTimeout(time.Duration(cfg.TMDB.TimeoutSeconds)*time.Second),
		tmdb.WithRateLimit(float64(cfg.TMDB.RequestsPerSecond)),
	)
	if err != nil {
		return nil, cleanup, fmt.Errorf("create TMDB client: %w", err)
	}

	var opts []identification.ResolverOption
	if cfg.Cache.Enabled {
		cache, err := lookupcache.Open(cfg.Cache.Path, time.Duration(cfg.Cache.TTLHours)*time.Hour, logger)
		if err != nil {
			logging.WarnWithContext(logger, "lookup cache unavailable", "lookup_cache_open_failed",
				logging.String("path", cfg.Cache.Path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check cache.path or disable the cache"),
				logging.String(logging.FieldImpact, "every hook queries TMDB"))
		} else {
			opts = append(opts, identification.WithCache(cache))
			cleanup = func() { _ = cache.Close() }
		}
	}
	return identification.NewResolver(client, logger, opts...), cleanup, nil
}

func (c *commandContext) newProcessor(cfg *config.Config, logger *slog.Logger) (*workflow.Processor, func(), error) {
	resolver, cleanup, err := c.newResolver(cfg, logger)
	if err != nil {
		return nil, cleanup, err
	}
	prober := probe.New(cfg.FFprobeBinary())
	return workflow.NewProcessor(workflow.SettingsFromConfig(cfg), prober, resolver, logger), cleanup, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
