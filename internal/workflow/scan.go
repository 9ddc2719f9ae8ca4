package workflow

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"keepaudio/internal/logging"
)

var videoExtensions = map[string]struct{}{
	".avi": {}, ".m2ts": {}, ".m4v": {}, ".mkv": {}, ".mov": {},
	".mp4": {}, ".mpg": {}, ".mpeg": {}, ".ts": {}, ".webm": {}, ".wmv": {},
}

// IsVideoFile reports whether the extension belongs to a common video container.
func IsVideoFile(path string) bool {
	_, ok := videoExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// ScanResult pairs a library file with its file-test outcome.
type ScanResult struct {
	Data       FileTestData
	Evaluation Evaluation
}

// Inspect runs the file-test hook on one path and keeps the evaluation.
func (p *Processor) Inspect(ctx context.Context, path string) ScanResult {
	data, eval := p.testFile(ctx, FileTestData{Path: path})
	return ScanResult{Data: data, Evaluation: eval}
}

// Scan walks root and runs the file-test hook on every video file, in
// lexical path order. Walk errors on individual entries are logged and skipped.
func (p *Processor) Scan(ctx context.Context, root string) ([]ScanResult, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logging.WarnWithContext(p.logger, "library walk error", "library_walk_failed",
				logging.String("path", path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check directory permissions"),
				logging.String(logging.FieldImpact, "entry skipped"))
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			if path == root {
				return err
			}
			return nil
		}
		if d.IsDir() || !IsVideoFile(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	results := make([]ScanResult, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, p.Inspect(ctx, path))
	}
	return results, nil
}
