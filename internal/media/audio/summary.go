package audio

import (
	"fmt"
	"strconv"
	"strings"

	"keepaudio/internal/media/ffprobe"
)

// StreamSummary renders a short label such as "kor truehd 7.1 (Korean 7.1)".
func StreamSummary(stream ffprobe.Stream) string {
	parts := make([]string, 0, 4)
	if lang := stream.Language(); lang != "" {
		parts = append(parts, lang)
	} else {
		parts = append(parts, "und")
	}
	if codec := strings.TrimSpace(stream.CodecName); codec != "" {
		parts = append(parts, codec)
	}
	if layout := layoutLabel(channelCount(stream)); layout != "" {
		parts = append(parts, layout)
	}
	summary := strings.Join(parts, " ")
	if title := stream.Title(); title != "" {
		summary = fmt.Sprintf("%s (%s)", summary, title)
	}
	return summary
}

func layoutLabel(channels int) string {
	switch {
	case channels <= 0:
		return ""
	case channels >= 8:
		return "7.1"
	case channels >= 6:
		return "5.1"
	case channels == 2:
		return "stereo"
	case channels == 1:
		return "mono"
	default:
		return strconv.Itoa(channels) + "ch"
	}
}

func channelCount(stream ffprobe.Stream) int {
	if stream.Channels > 0 {
		return stream.Channels
	}
	layout := strings.ToLower(strings.TrimSpace(stream.ChannelLayout))
	switch {
	case layout == "":
		return 0
	case strings.HasPrefix(layout, "7.1"):
		return 8
	case strings.HasPrefix(layout, "6.1"):
		return 7
	case strings.HasPrefix(layout, "5.1"):
		return 6
	case strings.HasPrefix(layout, "stereo"), strings.HasPrefix(layout, "2.0"):
		return 2
	case strings.HasPrefix(layout, "mono"), strings.HasPrefix(layout, "1.0"):
		return 1
	}
	if strings.Contains(layout, ".") {
		total := 0
		for _, part := range strings.Split(layout, ".") {
			part = strings.Trim(part, "abcdefghijklmnopqrstuvwxyz ()")
			if n, err := strconv.Atoi(part); err == nil {
				total += n
			}
		}
		return total
	}
	return 0
}
