// Package identification resolves the movie a video file represents from its
// path alone.
//
// ExtractSignals recovers candidate titles and release years from the parent
// folder and file stem. Resolver searches TMDB once per title, keeps the record
// closest to the earliest path year, and accepts the first record whose title
// key or release year matches the path. The accepted Movie carries the
// original language used to decide which audio streams stay.
package identification
