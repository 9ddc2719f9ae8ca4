package identification

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"keepaudio/internal/identification/tmdb"
	"keepaudio/internal/logging"
	"keepaudio/internal/services"
)

var (
	// ErrNoYear means the path carried no release year, so no target year exists.
	ErrNoYear = errors.New("no release year found in path")
	// ErrNoMatch means no catalog candidate satisfied the match criteria.
	ErrNoMatch = errors.New("no catalog candidate matched")
)

// Cache stores resolved movies keyed by path signals.
type Cache interface {
	Lookup(ctx context.Context, key string) (Movie, bool, error)
	Store(ctx context.Context, key string, movie Movie) error
}

// Resolver turns a file path into at most one catalog movie.
type Resolver struct {
	searcher tmdb.Searcher
	logger   *slog.Logger
	cache    Cache
}

// ResolverOption customizes a Resolver.
type ResolverOption func(*Resolver)

// WithCache enables the lookup cache.
func WithCache(cache Cache) ResolverOption {
	return func(r *Resolver) {
		r.cache = cache
	}
}

// NewResolver constructs a Resolver around a TMDB searcher.
func NewResolver(searcher tmdb.Searcher, logger *slog.Logger, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		searcher: searcher,
		logger:   logging.NewComponentLogger(logger, "identification"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve extracts path signals, searches the catalog once per candidate title,
// keeps the closest-year record per title and returns the first one that
// satisfies MatchesCriteria.
func (r *Resolver) Resolve(ctx context.Context, path string) (*Movie, error) {
	logger := logging.WithContext(ctx, r.logger)
	signals := ExtractSignals(path)
	logger.Debug("path signals extracted",
		logging.Strings("titles", signals.Titles),
		logging.Strings("queries", signals.Queries),
		logging.Strings("years", signals.Years))

	if len(signals.Years) == 0 {
		logger.Debug("resolution skipped",
			logging.Args(logging.DecisionAttrs("movie_resolution", "failed", "no year in path")...)...)
		return nil, ErrNoYear
	}
	if r.searcher == nil {
		return nil, services.Wrap(services.ErrConfiguration, "identification", "resolve", "TMDB client unavailable", nil)
	}

	key := signals.CacheKey()
	if r.cache != nil {
		cached, ok, err := r.cache.Lookup(ctx, key)
		if err != nil {
			logging.WarnWithContext(logger, "lookup cache read failed", "lookup_cache_read_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check cache.path permissions"),
				logging.String(logging.FieldImpact, "falling back to TMDB search"))
		} else if ok {
			logger.Debug("resolved movie from cache",
				logging.Int64("tmdb_id", cached.ID),
				logging.String("title", cached.Title))
			return &cached, nil
		}
	}

	targetYear, err := strconv.Atoi(signals.Years[0])
	if err != nil {
		return nil, ErrNoYear
	}

	candidates, err := r.closestCandidates(ctx, logger, signals.Queries, targetYear)
	if err != nil {
		return nil, err
	}

	for _, candidate := range candidates {
		if !MatchesCriteria(candidate, signals) {
			logger.Debug("candidate rejected",
				logging.Int64("tmdb_id", candidate.ID),
				logging.String("title", candidate.Title),
				logging.Int("release_year", candidate.ReleaseYear))
			continue
		}
		movie := r.ensureLanguage(ctx, logger, candidate)
		attrs := append(logging.DecisionAttrs("movie_resolution", "accepted", "title or year matched"),
			logging.Int64("tmdb_id", movie.ID),
			logging.String("title", movie.Title),
			logging.Int("release_year", movie.ReleaseYear),
			logging.String("original_language", movie.OriginalLanguage))
		logger.Info("movie resolved", logging.Args(attrs...)...)
		if r.cache != nil && movie.OriginalLanguage != "" {
			if err := r.cache.Store(ctx, key, movie); err != nil {
				logging.WarnWithContext(logger, "lookup cache write failed", "lookup_cache_write_failed",
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "check cache.path permissions"),
					logging.String(logging.FieldImpact, "next hook will query TMDB again"))
			}
		}
		return &movie, nil
	}

	logger.Debug("no candidate accepted",
		logging.Int("candidates", len(candidates)),
		logging.Int("target_year", targetYear))
	return nil, ErrNoMatch
}

// closestCandidates runs one search per title and keeps, per title, the record
// whose release year is nearest the target year. Records without a year are
// ignored and ties keep the earlier record.
func (r *Resolver) closestCandidates(ctx context.Context, logger *slog.Logger, titles []string, targetYear int) ([]Movie, error) {
	var (
		candidates []Movie
		failures   []error
		succeeded  int
	)
	for _, title := range titles {
		resp, err := r.searcher.SearchMovie(ctx, title)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			failures = append(failures, err)
			logging.WarnWithContext(logger, "tmdb search failed", "tmdb_search_failed",
				logging.String("query", title),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "verify TMDB credentials and connectivity"),
				logging.String(logging.FieldImpact, "title skipped"))
			continue
		}
		succeeded++
		if resp == nil {
			continue
		}

		var (
			best     Movie
			bestDiff int
			found    bool
		)
		for _, result := range resp.Results {
			movie := NewMovie(result)
			diff, ok := movie.YearDistance(targetYear)
			if !ok {
				continue
			}
			if !found || diff < bestDiff {
				best, bestDiff, found = movie, diff, true
			}
		}
		logger.Debug("tmdb search complete",
			logging.String("query", title),
			logging.Int("results", len(resp.Results)),
			logging.Bool("candidate_found", found))
		if found {
			candidates = append(candidates, best)
		}
	}
	if succeeded == 0 && len(failures) > 0 {
		return nil, services.Wrap(services.ErrTransient, "identification", "tmdb search", "All TMDB searches failed", errors.Join(failures...))
	}
	return candidates, nil
}

// ensureLanguage fills the original language from the details endpoint when
// the search record omitted it.
func (r *Resolver) ensureLanguage(ctx context.Context, logger *slog.Logger, movie Movie) Movie {
	if movie.OriginalLanguage != "" {
		return movie
	}
	details, err := r.searcher.GetMovieDetails(ctx, movie.ID)
	if err != nil {
		logging.WarnWithContext(logger, "tmdb details lookup failed", "tmdb_details_failed",
			logging.Int64("tmdb_id", movie.ID),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "verify TMDB connectivity"))
		return movie
	}
	if details == nil || strings.TrimSpace(details.OriginalLanguage) == "" {
		return movie
	}
	return movie.WithOriginalLanguage(details.OriginalLanguage)
}
