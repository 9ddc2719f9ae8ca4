package probe

import (
	"context"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"keepaudio/internal/media/ffprobe"
	"keepaudio/internal/services"
)

// InspectFunc matches ffprobe.Inspect so tests can substitute a stub.
type InspectFunc func(ctx context.Context, binary, path string) (ffprobe.Result, error)

// Prober sniffs the file content and, for video files, runs ffprobe.
type Prober struct {
	binary  string
	inspect InspectFunc
}

// Option customizes a Prober.
type Option func(*Prober)

// WithInspector overrides the ffprobe invocation.
func WithInspector(fn InspectFunc) Option {
	return func(p *Prober) {
		if fn != nil {
			p.inspect = fn
		}
	}
}

// New constructs a Prober that uses the given ffprobe binary.
func New(binary string, opts ...Option) *Prober {
	p := &Prober{binary: strings.TrimSpace(binary), inspect: ffprobe.Inspect}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DetectVideo reports the detected MIME type and whether it is a video container.
// Matroska is reported by some detectors as application/x-matroska, so that
// family is accepted too.
func DetectVideo(path string) (string, bool, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", false, err
	}
	for m := mtype; m != nil; m = m.Parent() {
		value := m.String()
		if strings.HasPrefix(value, "video/") || strings.Contains(value, "matroska") {
			return mtype.String(), true, nil
		}
	}
	return mtype.String(), false, nil
}

// Probe rejects non-video content and returns the ffprobe stream listing otherwise.
func (p *Prober) Probe(ctx context.Context, path string) (ffprobe.Result, error) {
	mime, ok, err := DetectVideo(path)
	if err != nil {
		return ffprobe.Result{}, services.Wrap(services.ErrExternalTool, "probe", "detect mime", "Unable to read file content", err)
	}
	if !ok {
		return ffprobe.Result{}, services.Wrap(services.ErrExternalTool, "probe", "detect mime", fmt.Sprintf("File is not a video (%s)", mime), nil)
	}
	result, err := p.inspect(ctx, p.binary, path)
	if err != nil {
		return ffprobe.Result{}, services.Wrap(services.ErrExternalTool, "probe", "ffprobe", "ffprobe failed", err)
	}
	return result, nil
}
