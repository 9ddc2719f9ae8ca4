package audio

import (
	"regexp"
	"strconv"
)

var progressTimePattern = regexp.MustCompile(`time=\s*(\d+):(\d{2}):(\d{2}(?:\.\d+)?)`)

// ProgressParser converts ffmpeg stats lines into percent complete using the
// probed container duration.
type ProgressParser struct {
	durationSeconds float64
	last            float64
}

// NewProgressParser returns a parser for a file of the given duration.
func NewProgressParser(durationSeconds float64) *ProgressParser {
	return &ProgressParser{durationSeconds: durationSeconds}
}

// Parse extracts progress from one line of ffmpeg output. The boolean is
// false for lines without a usable timestamp. Percent never decreases.
func (p *ProgressParser) Parse(line string) (float64, bool) {
	if p == nil || !(p.durationSeconds > 0) {
		return 0, false
	}
	match := progressTimePattern.FindStringSubmatch(line)
	if match == nil {
		return 0, false
	}
	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])
	seconds, err := strconv.ParseFloat(match[3], 64)
	if err != nil {
		return 0, false
	}
	elapsed := float64(hours*3600+minutes*60) + seconds
	percent := elapsed / p.durationSeconds * 100
	if percent > 100 {
		percent = 100
	}
	if percent < p.last {
		percent = p.last
	}
	p.last = percent
	return percent, true
}

// Percent returns the most recent percent parsed.
func (p *ProgressParser) Percent() float64 {
	if p == nil {
		return 0
	}
	return p.last
}
