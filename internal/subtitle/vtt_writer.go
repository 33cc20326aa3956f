package subtitle

import (
	"fmt"
	"strings"
	"time"
)

// ConvertToVTT serializes cues into canonical WebVTT text. Bold, italic and
// underline survive as tags; colors, fonts and strikethrough have no WebVTT
// equivalent and are dropped.
func ConvertToVTT(cues []Cue) string {
	var sb strings.Builder
	sb.WriteString("WEBVTT\n")

	for _, cue := range cues {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			formatVTTTime(cue.Start),
			formatVTTTime(cue.End)))

		if len(cue.Spans) == 0 {
			sb.WriteString(cue.Text)
			sb.WriteString("\n")
			continue
		}
		for _, span := range cue.Spans {
			sb.WriteString(wrapVTTSpan(span))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// underline innermost, bold outermost
func wrapVTTSpan(span StyledSpan) string {
	text := span.Text
	if span.Style == nil {
		return text
	}
	if span.Style.Underline {
		text = "<u>" + text + "</u>"
	}
	if span.Style.Italic {
		text = "<i>" + text + "</i>"
	}
	if span.Style.Bold {
		text = "<b>" + text + "</b>"
	}
	return text
}

// timestamps are always full form with zero padding, hours included
func formatVTTTime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}
