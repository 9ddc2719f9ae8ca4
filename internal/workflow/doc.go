// Package workflow runs the two library hooks.
//
// The file-test hook probes a video file, resolves its movie through TMDB and
// flags the file when audio streams outside the original language and the
// keep-list exist. The worker hook repeats the evaluation and emits the ffmpeg
// command that copies the file without those streams. Every failure degrades
// toward leaving the audio untouched; an unresolvable movie is reported as an
// issue.
package workflow
