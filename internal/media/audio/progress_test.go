package audio

import (
	"math"
	"testing"
)

func TestProgressParser(t *testing.T) {
	parser := NewProgressParser(200)
	line := "frame= 1200 fps=300 q=-1.0 size=  102400kB time=00:01:40.00 bitrate=8388.6kbits/s speed=75x"
	percent, ok := parser.Parse(line)
	if !ok || math.Abs(percent-50) > 0.001 {
		t.Fatalf("Parse = %v, %v; want 50, true", percent, ok)
	}
	if _, ok := parser.Parse("Stream mapping:"); ok {
		t.Fatal("expected non-progress line to be ignored")
	}
	if _, ok := parser.Parse("size=N/A time=N/A bitrate=N/A"); ok {
		t.Fatal("expected N/A time to be ignored")
	}
	percent, _ = parser.Parse("time=00:00:10.00")
	if percent != 50 {
		t.Fatalf("expected percent to never decrease, got %v", percent)
	}
	percent, _ = parser.Parse("time=01:00:00.00")
	if percent != 100 {
		t.Fatalf("expected clamp to 100, got %v", percent)
	}
	if parser.Percent() != 100 {
		t.Fatalf("Percent = %v", parser.Percent())
	}
}

func TestProgressParserWithoutDuration(t *testing.T) {
	parser := NewProgressParser(0)
	if _, ok := parser.Parse("time=00:00:10.00"); ok {
		t.Fatal("expected no progress without duration")
	}
	var nilParser *ProgressParser
	if nilParser.Percent() != 0 {
		t.Fatal("expected nil parser percent 0")
	}
}
