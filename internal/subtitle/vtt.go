package subtitle

import (
	"regexp"
	"strings"
	"time"
)

// WebVTT parser
type VTTParser struct{}

var (
	// long HH:MM:SS.mmm and short MM:SS.mmm timestamp forms; the fraction
	// is optional and cue settings after the end timestamp are ignored
	vttTimingRegex = regexp.MustCompile(
		`(?:(\d{1,2}):)?(\d{1,2}):(\d{2})(?:[.,](\d{2,3}))?\s*-->\s*` +
			`(?:(\d{1,2}):)?(\d{1,2}):(\d{2})(?:[.,](\d{2,3}))?`,
	)

	// karaoke-style inline word timings like <00:00:02.000>
	vttInlineTimeRegex = regexp.MustCompile(`<\d{1,2}:\d{2}(?::\d{2})?[.,]\d{2,3}>`)
)

// ParseVTT parses WebVTT content into cues. Header, NOTE, STYLE and REGION
// blocks are skipped; malformed cue blocks are skipped.
func ParseVTT(content string) []Cue {
	return (VTTParser{}).Parse(content)
}

func (VTTParser) Parse(content string) []Cue {
	content = normalizeInput(content)
	if strings.TrimSpace(content) == "" {
		return nil
	}

	var cues []Cue
	index := 0
	for _, block := range splitBlocks(content) {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		first := strings.TrimSpace(lines[0])
		if first == "" ||
			strings.HasPrefix(first, "WEBVTT") ||
			strings.HasPrefix(first, "NOTE") ||
			strings.HasPrefix(first, "STYLE") ||
			strings.HasPrefix(first, "REGION") {
			continue
		}

		// the first line matching the timing pattern starts the cue;
		// anything before it is the optional cue identifier
		timingAt := -1
		var m []string
		for i, line := range lines {
			if !strings.Contains(line, "-->") {
				continue
			}
			if mm := vttTimingRegex.FindStringSubmatch(line); mm != nil {
				timingAt, m = i, mm
				break
			}
		}
		if timingAt == -1 {
			continue
		}

		start := vttClockDuration(m[1], m[2], m[3], m[4])
		end := vttClockDuration(m[5], m[6], m[7], m[8])

		raw := strings.Join(lines[timingAt+1:], "\n")
		raw = vttInlineTimeRegex.ReplaceAllString(raw, "")
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		spans := scanVTTStyling(raw)
		text := spanText(spans)
		if strings.TrimSpace(text) == "" {
			continue
		}

		index++
		cues = append(cues, Cue{
			Index: index,
			Start: start,
			End:   end,
			Text:  text,
			Spans: collapsePlainSpans(spans),
		})
	}
	return cues
}

// hours may be absent in the short MM:SS form
func vttClockDuration(hours, minutes, seconds, frac string) time.Duration {
	if hours == "" {
		hours = "0"
	}
	return clockDuration(hours, minutes, seconds, frac)
}

// walks cue text once, maintaining a stack of the currently open b/i/u tags
// and flushing a span whenever the active style set changes. Closing tags pop
// the most recent matching open tag; subtitle files in the wild close tags
// out of LIFO order. All other tags are discarded.
func scanVTTStyling(s string) []StyledSpan {
	var spans []StyledSpan
	var run strings.Builder
	var stack []string

	flush := func() {
		if run.Len() == 0 {
			return
		}
		spans = append(spans, StyledSpan{
			Text:  run.String(),
			Style: styleFromStack(stack),
		})
		run.Reset()
	}

	for i := 0; i < len(s); {
		if s[i] != '<' {
			next := strings.IndexByte(s[i:], '<')
			if next == -1 {
				run.WriteString(s[i:])
				i = len(s)
			} else {
				run.WriteString(s[i : i+next])
				i += next
			}
			continue
		}

		end := strings.IndexByte(s[i:], '>')
		if end == -1 {
			// dangling bracket, keep it as text
			run.WriteString(s[i:])
			i = len(s)
			continue
		}
		tag := s[i+1 : i+end]
		i += end + 1

		closing := strings.HasPrefix(tag, "/")
		name := vttTagName(strings.TrimPrefix(tag, "/"))
		if name != "b" && name != "i" && name != "u" {
			continue
		}

		if closing {
			for j := len(stack) - 1; j >= 0; j-- {
				if stack[j] == name {
					flush()
					stack = append(stack[:j], stack[j+1:]...)
					break
				}
			}
			continue
		}
		flush()
		stack = append(stack, name)
	}
	flush()

	return mergeSpans(spans)
}

// tag name without annotations: "c.yellow" -> "c", "v Speaker" -> "v"
func vttTagName(tag string) string {
	if i := strings.IndexAny(tag, ". \t"); i != -1 {
		tag = tag[:i]
	}
	return strings.ToLower(strings.TrimSpace(tag))
}

func styleFromStack(stack []string) *TextStyle {
	if len(stack) == 0 {
		return nil
	}
	style := &TextStyle{}
	for _, tag := range stack {
		switch tag {
		case "b":
			style.Bold = true
		case "i":
			style.Italic = true
		case "u":
			style.Underline = true
		}
	}
	return style
}
