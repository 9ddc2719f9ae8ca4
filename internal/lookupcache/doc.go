// Package lookupcache stores resolved movies in SQLite, keyed by the title and
// year signals extracted from a path, with an optional time-to-live.
package lookupcache
