// Command keepaudio strips audio tracks that are not in a movie's original
// language.
//
// The movie is resolved from the file path through TMDB, its original language
// decides which audio streams stay, and ffmpeg copies the file without the
// rest. Subcommands mirror the library hooks (test, process), expose the
// resolver for troubleshooting (resolve), check a whole library (scan) and
// manage configuration, the lookup cache and external dependencies.
package main
