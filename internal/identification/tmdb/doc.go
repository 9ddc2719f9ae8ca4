// Package tmdb provides the minimal TMDB API client used to resolve a movie
// from its file path.
//
// It authenticates requests and exposes movie search and movie detail
// retrieval, throttled by a token-bucket limiter. Responses are strongly typed
// so the resolver can compare release years and read the original language.
// Options allow tests to supply custom HTTP clients without modifying
// production code.
package tmdb
