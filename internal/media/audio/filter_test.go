package audio

import (
	"context"
	"slices"
	"testing"

	"keepaudio/internal/media/ffprobe"
)

func audioStream(index int, lang string) ffprobe.Stream {
	stream := ffprobe.Stream{Index: index, CodecType: "audio", CodecName: "ac3", Channels: 6}
	if lang != "" {
		stream.Tags = map[string]string{"language": lang}
	}
	return stream
}

func TestPlanRemovesLanguagesOutsideKeepSet(t *testing.T) {
	streams := []ffprobe.Stream{
		{Index: 0, CodecType: "video"},
		audioStream(1, "kor"),
		audioStream(2, "eng"),
		audioStream(3, "jpn"),
	}
	plan := NewFilter("ko", "en").Plan(context.Background(), streams)
	if !slices.Equal(plan.Languages, []string{"jpn"}) {
		t.Fatalf("plan = %v, want [jpn]", plan.Languages)
	}
	if !plan.NeedsProcessing() {
		t.Fatal("expected plan to need processing")
	}
	if len(plan.Decisions) != 3 {
		t.Fatalf("expected one decision per audio stream, got %d", len(plan.Decisions))
	}
	if !plan.Decisions[2].Remove || plan.Decisions[2].Reason != ReasonNotKept {
		t.Fatalf("unexpected decision for jpn: %+v", plan.Decisions[2])
	}
}

func TestPlanKeepsOriginalLanguageEvenWhenKeepListEmpty(t *testing.T) {
	streams := []ffprobe.Stream{audioStream(1, "fre"), audioStream(2, "eng")}
	plan := NewFilter("fr", "").Plan(context.Background(), streams)
	if !slices.Equal(plan.Languages, []string{"eng"}) {
		t.Fatalf("plan = %v, want [eng]", plan.Languages)
	}
}

func TestPlanSingleAudioStreamNeverRemoved(t *testing.T) {
	streams := []ffprobe.Stream{{Index: 0, CodecType: "video"}, audioStream(1, "deu")}
	plan := NewFilter("ko", "en").Plan(context.Background(), streams)
	if plan.NeedsProcessing() {
		t.Fatalf("expected no removal, got %v", plan.Languages)
	}
	if plan.Decisions[0].Reason != ReasonOnlyAudioStream {
		t.Fatalf("unexpected reason %q", plan.Decisions[0].Reason)
	}
}

func TestPlanSkipsUntaggedStreams(t *testing.T) {
	streams := []ffprobe.Stream{
		audioStream(1, "kor"),
		audioStream(2, ""),
		{Index: 3, CodecType: "audio", Tags: map[string]string{"title": "Director Commentary"}},
		{Index: 4, CodecType: "audio", Tags: map[string]string{"encoder": "x"}},
	}
	plan := NewFilter("ko", "").Plan(context.Background(), streams)
	if plan.NeedsProcessing() {
		t.Fatalf("expected untagged streams to be kept, got %v", plan.Languages)
	}
	reasons := []string{plan.Decisions[1].Reason, plan.Decisions[2].Reason, plan.Decisions[3].Reason}
	want := []string{ReasonUntagged, ReasonNoLanguage, ReasonUntagged}
	if !slices.Equal(reasons, want) {
		t.Fatalf("reasons = %v, want %v", reasons, want)
	}
}

func TestPlanIgnoresNonAudioStreams(t *testing.T) {
	streams := []ffprobe.Stream{
		{Index: 0, CodecType: "video", Tags: map[string]string{"language": "jpn"}},
		audioStream(1, "eng"),
		audioStream(2, "ENG"),
		{Index: 3, CodecType: "subtitle", Tags: map[string]string{"language": "jpn"}},
	}
	plan := NewFilter("en", "").Plan(context.Background(), streams)
	if plan.NeedsProcessing() {
		t.Fatalf("expected no removal, got %v", plan.Languages)
	}
}

func TestPlanDuplicateLanguages(t *testing.T) {
	streams := []ffprobe.Stream{audioStream(1, "kor"), audioStream(2, "spa"), audioStream(3, "spa")}
	plan := NewFilter("ko", "").Plan(context.Background(), streams)
	if !slices.Equal(plan.Languages, []string{"spa", "spa"}) {
		t.Fatalf("plan = %v, want [spa spa]", plan.Languages)
	}
	want := []string{"-map", "0", "-c", "copy", "-map", "-0:a:m:language:spa"}
	if !slices.Equal(plan.Args(), want) {
		t.Fatalf("Args = %v, want %v", plan.Args(), want)
	}
}

func TestKeepSetExpansion(t *testing.T) {
	filter := NewFilter("fr", " de , ,en")
	want := []string{"de", "deu", "en", "eng", "fr", "fra", "fre", "ger"}
	if got := filter.KeepSet(); !slices.Equal(got, want) {
		t.Fatalf("KeepSet = %v, want %v", got, want)
	}
	if !filter.Keeps(" GER ") {
		t.Fatal("expected bibliographic code to be kept")
	}
	if filter.OriginalLanguage() != "fr" {
		t.Fatalf("unexpected original language %q", filter.OriginalLanguage())
	}
}

func TestEmptyPlanArgs(t *testing.T) {
	var plan RemovalPlan
	want := []string{"-map", "0", "-c", "copy"}
	if !slices.Equal(plan.Args(), want) {
		t.Fatalf("Args = %v, want %v", plan.Args(), want)
	}
}

func TestStreamSummary(t *testing.T) {
	stream := ffprobe.Stream{
		CodecType: "audio", CodecName: "truehd", ChannelLayout: "7.1",
		Tags: map[string]string{"language": "kor", "title": "Korean Atmos"},
	}
	if got := StreamSummary(stream); got != "kor truehd 7.1 (Korean Atmos)" {
		t.Fatalf("StreamSummary = %q", got)
	}
	if got := StreamSummary(ffprobe.Stream{CodecType: "audio", Channels: 2}); got != "und stereo" {
		t.Fatalf("StreamSummary = %q", got)
	}
}

func TestPlanKeepsOriginalLanguageTaggedWithThreeLetterCode(t *testing.T) {
	tests := []struct {
		original string
		tag      string
	}{
		{"mt", "mlt"},
		{"ha", "hau"},
		{"ig", "ibo"},
		{"cn", "yue"},
		{"cn", "chi"},
		{"sh", "srp"},
	}
	for _, tt := range tests {
		t.Run(tt.original+"/"+tt.tag, func(t *testing.T) {
			streams := []ffprobe.Stream{audioStream(1, tt.tag), audioStream(2, "eng"), audioStream(3, "spa")}
			plan := NewFilter(tt.original, "en").Plan(context.Background(), streams)
			if !slices.Equal(plan.Languages, []string{"spa"}) {
				t.Fatalf("plan = %v, want [spa]", plan.Languages)
			}
			if plan.Decisions[0].Remove {
				t.Fatalf("original-language stream flagged for removal: %+v", plan.Decisions[0])
			}
		})
	}
}

func TestPlanUnknownOriginalLanguageKeepsEverything(t *testing.T) {
	streams := []ffprobe.Stream{audioStream(1, "eng"), audioStream(2, "qaa"), audioStream(3, "fre")}
	plan := NewFilter("xx", "en").Plan(context.Background(), streams)
	if plan.NeedsProcessing() {
		t.Fatalf("expected no removal for unrecognized original language, got %v", plan.Languages)
	}
	for _, decision := range plan.Decisions[1:] {
		if decision.Reason != ReasonUnknownOriginal {
			t.Fatalf("unexpected decision %+v", decision)
		}
	}
}

func TestPlanKeepsTagSpellingForRemoval(t *testing.T) {
	streams := []ffprobe.Stream{audioStream(1, "KOR"), audioStream(2, "JPN"), audioStream(3, "Eng"), audioStream(4, "jpn")}
	plan := NewFilter("ko", "en").Plan(context.Background(), streams)
	if !slices.Equal(plan.Languages, []string{"JPN", "jpn"}) {
		t.Fatalf("plan = %v, want [JPN jpn]", plan.Languages)
	}
	if plan.Decisions[1].Language != "JPN" {
		t.Fatalf("decision language = %q, want JPN", plan.Decisions[1].Language)
	}
	want := []string{"-map", "0", "-c", "copy", "-map", "-0:a:m:language:JPN", "-map", "-0:a:m:language:jpn"}
	if !slices.Equal(plan.Args(), want) {
		t.Fatalf("Args = %v, want %v", plan.Args(), want)
	}
}
