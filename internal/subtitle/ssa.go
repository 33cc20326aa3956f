package subtitle

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SubStation Alpha parser, shared by SSA and ASS
type SSAParser struct{}

// standard field order used when no Format: line precedes the dialogue
var defaultSSAFields = []string{
	"marked", "start", "end", "style", "name",
	"marginl", "marginr", "marginv", "effect", "text",
}

// H:MM:SS.cc with centisecond precision
var ssaTimestampRegex = regexp.MustCompile(`^(\d+):(\d{2}):(\d{2})[.:](\d{2})$`)

// ParseSSA parses SSA/ASS content into cues. Malformed dialogue lines are
// skipped.
func ParseSSA(content string) []Cue {
	return (SSAParser{}).Parse(content)
}

func (SSAParser) Parse(content string) []Cue {
	content = normalizeInput(content)
	if strings.TrimSpace(content) == "" {
		return nil
	}

	fields := defaultSSAFields
	section := ""
	sawSection := false
	index := 0
	var cues []Cue

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			section = strings.ToLower(strings.Trim(trimmed, "[]"))
			sawSection = true
			continue
		}
		// the [V4+ Styles] section has its own Format: line; only the
		// events section (or a headerless minimal file) counts here
		if sawSection && section != "events" {
			continue
		}

		if after, ok := strings.CutPrefix(trimmed, "Format:"); ok {
			fields = parseSSAFormatLine(after)
			continue
		}
		after, ok := strings.CutPrefix(trimmed, "Dialogue:")
		if !ok {
			continue
		}

		cue, ok := parseSSADialogue(strings.TrimSpace(after), fields)
		if !ok {
			continue
		}
		index++
		cue.Index = index
		cues = append(cues, cue)
	}
	return cues
}

func parseSSAFormatLine(s string) []string {
	parts := strings.Split(s, ",")
	fields := make([]string, len(parts))
	for i, p := range parts {
		fields[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return fields
}

func parseSSADialogue(body string, fields []string) (Cue, bool) {
	startIdx, endIdx, textIdx := -1, -1, -1
	for i, f := range fields {
		switch f {
		case "start":
			startIdx = i
		case "end":
			endIdx = i
		case "text":
			textIdx = i
		}
	}
	if startIdx == -1 || endIdx == -1 || textIdx == -1 {
		return Cue{}, false
	}

	parts := splitDialogueFields(body, textIdx)
	if len(parts) <= textIdx {
		return Cue{}, false
	}

	start, ok := parseSSATimestamp(parts[startIdx])
	if !ok {
		return Cue{}, false
	}
	end, ok := parseSSATimestamp(parts[endIdx])
	if !ok {
		return Cue{}, false
	}

	spans := parseSSAText(parts[textIdx])
	text := spanText(spans)
	if strings.TrimSpace(text) == "" {
		return Cue{}, false
	}

	return Cue{
		Start: start,
		End:   end,
		Text:  text,
		Spans: collapsePlainSpans(spans),
	}, true
}

// splits a dialogue body on commas up to the text field, tracking brace
// depth so commas inside {\...} override blocks do not cut the text field.
// Everything from the text index onward stays joined as one field.
func splitDialogueFields(s string, textIdx int) []string {
	parts := make([]string, 0, textIdx+1)
	depth := 0
	last := 0
	for i := 0; i < len(s) && len(parts) < textIdx; i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[last:i]))
				last = i + 1
			}
		}
	}
	return append(parts, s[last:])
}

func parseSSATimestamp(ts string) (time.Duration, bool) {
	m := ssaTimestampRegex.FindStringSubmatch(strings.TrimSpace(ts))
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	sec, _ := strconv.Atoi(m[3])
	cs, _ := strconv.Atoi(m[4])
	return time.Duration(h)*time.Hour +
		time.Duration(min)*time.Minute +
		time.Duration(sec)*time.Second +
		time.Duration(cs)*10*time.Millisecond, true
}

// walks the text field splitting it into override blocks and literal runs.
// Directives inside a block mutate a running style that applies to every
// run until the next block.
func parseSSAText(raw string) []StyledSpan {
	var spans []StyledSpan
	var style TextStyle

	for i := 0; i < len(raw); {
		if raw[i] == '{' {
			end := strings.IndexByte(raw[i:], '}')
			if end == -1 {
				// unterminated block, keep the rest as text
				appendSSARun(&spans, raw[i:], style)
				break
			}
			block := raw[i+1 : i+end]
			i += end + 1
			if strings.HasPrefix(block, "\\") {
				applySSAOverrides(&style, block)
			}
			// non-directive braces are comments; both are stripped
			continue
		}

		next := strings.IndexByte(raw[i:], '{')
		var chunk string
		if next == -1 {
			chunk = raw[i:]
			i = len(raw)
		} else {
			chunk = raw[i : i+next]
			i += next
		}
		appendSSARun(&spans, chunk, style)
	}

	return mergeSpans(spans)
}

func appendSSARun(spans *[]StyledSpan, chunk string, style TextStyle) {
	chunk = resolveSSAEscapes(chunk)
	if chunk == "" {
		return
	}
	span := StyledSpan{Text: chunk}
	if style.HasFormatting() {
		copied := style
		span.Style = &copied
	}
	*spans = append(*spans, span)
}

func resolveSSAEscapes(s string) string {
	s = strings.ReplaceAll(s, `\N`, "\n")
	s = strings.ReplaceAll(s, `\n`, "\n")
	return strings.ReplaceAll(s, `\h`, " ")
}

func applySSAOverrides(style *TextStyle, block string) {
	for _, d := range strings.Split(block, "\\") {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		switch {
		case d == "i1":
			style.Italic = true
		case d == "i0":
			style.Italic = false
		case d == "u1":
			style.Underline = true
		case d == "u0":
			style.Underline = false
		case d == "s1":
			style.Strikethrough = true
		case d == "s0":
			style.Strikethrough = false
		case strings.HasPrefix(d, "1c"):
			if c := parseSSAColor(d[2:]); c != nil {
				style.Color = c
			}
		case strings.HasPrefix(d, "fs"):
			if n, err := strconv.ParseFloat(d[2:], 64); err == nil {
				style.FontSize = &n
			}
		case strings.HasPrefix(d, "fn"):
			style.FontFamily = d[2:]
		case strings.HasPrefix(d, "c"):
			if c := parseSSAColor(d[1:]); c != nil {
				style.Color = c
			}
		case strings.HasPrefix(d, "b"):
			// \b700 style weights count as bold
			if n, err := strconv.Atoi(d[1:]); err == nil {
				style.Bold = n != 0
			}
		}
	}
}

// SSA colors are &HBBGGRR& in BGR byte order; 8-digit forms carry a leading
// alpha byte with inverted meaning (0 is opaque)
func parseSSAColor(v string) *RGBA {
	v = strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(v), "&H"), "&")
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return nil
	}
	c := &RGBA{
		R: uint8(n & 0xff),
		G: uint8(n >> 8 & 0xff),
		B: uint8(n >> 16 & 0xff),
		A: 255,
	}
	if len(v) > 6 {
		c.A = 255 - uint8(n>>24&0xff)
	}
	return c
}
