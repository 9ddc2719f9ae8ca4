// Package config loads, normalizes, and validates keepaudio configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// TMDB_API_KEY. A missing API key is valid configuration: it marks the tool as
// not yet configured and the hooks skip every file.
package config
