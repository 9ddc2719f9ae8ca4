package ffprobe

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

const samplePayload = `{
  "streams": [
    {"index": 0, "codec_name": "hevc", "codec_type": "video", "width": 1920, "height": 1080},
    {"index": 1, "codec_name": "truehd", "codec_type": "audio", "channels": 8, "tags": {"language": "kor", "title": "Korean 7.1"}},
    {"index": 2, "codec_name": "ac3", "codec_type": "audio", "channels": 6, "tags": {"LANGUAGE": "ENG"}},
    {"index": 3, "codec_name": "aac", "codec_type": "audio", "channels": 2},
    {"index": 4, "codec_name": "subrip", "codec_type": "subtitle", "tags": {"language": "eng"}}
  ],
  "format": {"filename": "movie.mkv", "nb_streams": 5, "duration": "7920.5", "size": "1000"}
}`

func TestParse(t *testing.T) {
	result, err := Parse([]byte(samplePayload))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if result.VideoStreamCount() != 1 {
		t.Fatalf("expected 1 video stream, got %d", result.VideoStreamCount())
	}
	if result.AudioStreamCount() != 3 {
		t.Fatalf("expected 3 audio streams, got %d", result.AudioStreamCount())
	}
	audio := result.AudioStreams()
	if len(audio) != 3 || audio[0].Index != 1 || audio[2].Index != 3 {
		t.Fatalf("unexpected audio streams: %+v", audio)
	}
	if result.DurationSeconds() != 7920.5 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 1000 {
		t.Fatalf("unexpected size: %d", result.SizeBytes())
	}
	if !strings.Contains(string(result.RawJSON()), "truehd") {
		t.Fatal("expected raw payload to be retained")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse([]byte("not json")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestStreamTags(t *testing.T) {
	result, err := Parse([]byte(samplePayload))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	korean := result.Streams[1]
	if korean.Language() != "kor" || korean.Title() != "Korean 7.1" {
		t.Fatalf("unexpected tags: language=%q title=%q", korean.Language(), korean.Title())
	}
	english := result.Streams[2]
	if english.Language() != "eng" {
		t.Fatalf("expected case-insensitive language lookup, got %q", english.Language())
	}
	if !english.HasIdentifyingTags() {
		t.Fatal("expected english stream to be identifiable")
	}
	untagged := result.Streams[3]
	if untagged.HasIdentifyingTags() {
		t.Fatal("expected untagged stream to lack identifying tags")
	}
	if _, ok := untagged.Tag("language"); ok {
		t.Fatal("expected no language tag on untagged stream")
	}
}

func TestTitleOnlyStreamIsIdentifiable(t *testing.T) {
	stream := Stream{CodecType: "audio", Tags: map[string]string{"Title": "Commentary"}}
	if !stream.HasIdentifyingTags() {
		t.Fatal("expected title tag to count")
	}
	if stream.Language() != "" {
		t.Fatalf("expected empty language, got %q", stream.Language())
	}
}

func TestResultHelpersHandleInvalidNumbers(t *testing.T) {
	result := Result{
		Format: Format{
			Duration: "bad",
			Size:     "-1",
		},
	}
	if !math.IsNaN(result.DurationSeconds()) {
		t.Fatalf("expected duration NaN, got %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 0 {
		t.Fatalf("expected size 0, got %d", result.SizeBytes())
	}
}

func TestInspectRunsBinary(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stub requires a POSIX shell")
	}
	dir := t.TempDir()
	payload := filepath.Join(dir, "payload.json")
	if err := os.WriteFile(payload, []byte(samplePayload), 0o644); err != nil {
		t.Fatalf("write payload: %v", err)
	}
	stub := filepath.Join(dir, "ffprobe")
	script := "#!/bin/sh\ncat '" + payload + "'\n"
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	result, err := Inspect(context.Background(), stub, "/library/movie.mkv")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if result.AudioStreamCount() != 3 {
		t.Fatalf("expected 3 audio streams, got %d", result.AudioStreamCount())
	}
}

func TestInspectRejectsEmptyPath(t *testing.T) {
	if _, err := Inspect(context.Background(), "ffprobe", "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
