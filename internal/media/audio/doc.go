// Package audio decides which audio streams of a movie are stripped.
//
// A Filter keeps the movie's original language plus a configured keep-list,
// each expanded to its ISO 639-1 and 639-2 spellings. Plan walks the ffprobe
// streams and returns a RemovalPlan listing the languages to drop; files with a
// single audio stream and streams without identifying tags are never touched.
// RemovalPlan.Args and BuildCommand render the plan as ffmpeg arguments, and
// ProgressParser turns ffmpeg stats output into percent complete.
package audio
