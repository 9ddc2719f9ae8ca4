// Package probe gates ffprobe behind a content sniff so that only video
// containers are inspected for audio streams.
package probe
