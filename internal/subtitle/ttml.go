package subtitle

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TTML parser. Scans for <p> elements rather than decoding the document as
// XML so that a non-well-formed file still yields its parsable cues.
type TTMLParser struct{}

var (
	ttmlParagraphRegex = regexp.MustCompile(`(?is)<p\b([^>]*)>(.*?)</p>`)
	ttmlSpanRegex      = regexp.MustCompile(`(?is)<span\b([^>]*)>(.*?)</span>`)
	ttmlBreakRegex     = regexp.MustCompile(`(?i)<br\s*/?\s*>`)
	ttmlAttrRegex      = regexp.MustCompile(`([\w:]+)\s*=\s*"([^"]*)"|([\w:]+)\s*=\s*'([^']*)'`)
	ttmlFrameRateRegex = regexp.MustCompile(`(?i)\bttp:frameRate\s*=\s*"(\d+(?:\.\d+)?)"|\bframeRate\s*=\s*"(\d+(?:\.\d+)?)"`)
	ttmlSpaceRunRegex  = regexp.MustCompile(`[ \t]+`)

	ttmlEntityReplacer = strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&apos;", "'",
		"&#39;", "'",
		"&amp;", "&",
	)
)

// ParseTTML parses TTML content into cues. Paragraphs without a resolvable
// begin/end are skipped.
func ParseTTML(content string) []Cue {
	return (TTMLParser{}).Parse(content)
}

func (TTMLParser) Parse(content string) []Cue {
	content = normalizeInput(content)
	if strings.TrimSpace(content) == "" {
		return nil
	}

	frameRate := 25.0
	if m := ttmlFrameRateRegex.FindStringSubmatch(content); m != nil {
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		if fr, err := strconv.ParseFloat(raw, 64); err == nil && fr > 0 {
			frameRate = fr
		}
	}

	var cues []Cue
	index := 0
	for _, m := range ttmlParagraphRegex.FindAllStringSubmatch(content, -1) {
		attrs := parseTTMLAttrs(m[1])

		begin, ok := parseTTMLTime(ttmlAttr(attrs, "begin"), frameRate)
		if !ok {
			continue
		}
		end, ok := parseTTMLTime(ttmlAttr(attrs, "end"), frameRate)
		if !ok {
			dur, durOK := parseTTMLTime(ttmlAttr(attrs, "dur"), frameRate)
			if !durOK {
				continue
			}
			end = begin + dur
		}

		spans := parseTTMLBody(m[2], styleFromTTMLAttrs(attrs))
		text := spanText(spans)
		if strings.TrimSpace(text) == "" {
			continue
		}

		index++
		cues = append(cues, Cue{
			Index: index,
			Start: begin,
			End:   end,
			Text:  text,
			Spans: collapsePlainSpans(spans),
		})
	}
	return cues
}

func parseTTMLAttrs(s string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range ttmlAttrRegex.FindAllStringSubmatch(s, -1) {
		if m[1] != "" {
			attrs[strings.ToLower(m[1])] = m[2]
		} else {
			attrs[strings.ToLower(m[3])] = m[4]
		}
	}
	return attrs
}

// looks the attribute up with and without the tts: namespace prefix
func ttmlAttr(attrs map[string]string, name string) string {
	if v, ok := attrs["tts:"+name]; ok {
		return v
	}
	return attrs[name]
}

// splits paragraph markup into spans: <span> segments inherit and merge
// with the paragraph style, everything between them keeps it as-is
func parseTTMLBody(body string, base *TextStyle) []StyledSpan {
	var spans []StyledSpan
	last := 0
	for _, loc := range ttmlSpanRegex.FindAllStringSubmatchIndex(body, -1) {
		appendTTMLRun(&spans, body[last:loc[0]], base)
		attrs := parseTTMLAttrs(body[loc[2]:loc[3]])
		appendTTMLRun(&spans, body[loc[4]:loc[5]], mergeTTMLStyle(base, attrs))
		last = loc[1]
	}
	appendTTMLRun(&spans, body[last:], base)

	spans = mergeSpans(spans)
	return trimSpanEdges(spans)
}

func appendTTMLRun(spans *[]StyledSpan, chunk string, style *TextStyle) {
	chunk = ttmlBreakRegex.ReplaceAllString(chunk, "\n")
	chunk = htmlTagRegex.ReplaceAllString(chunk, "")
	chunk = ttmlEntityReplacer.Replace(chunk)
	chunk = ttmlSpaceRunRegex.ReplaceAllString(chunk, " ")
	if chunk == "" {
		return
	}
	span := StyledSpan{Text: chunk}
	if style != nil && style.HasFormatting() {
		copied := *style
		span.Style = &copied
	}
	*spans = append(*spans, span)
}

// trims leading whitespace off the first span and trailing whitespace off
// the last so the joined text comes out trimmed as well
func trimSpanEdges(spans []StyledSpan) []StyledSpan {
	for len(spans) > 0 {
		spans[0].Text = strings.TrimLeft(spans[0].Text, " \t\n")
		if spans[0].Text != "" {
			break
		}
		spans = spans[1:]
	}
	for len(spans) > 0 {
		n := len(spans) - 1
		spans[n].Text = strings.TrimRight(spans[n].Text, " \t\n")
		if spans[n].Text != "" {
			break
		}
		spans = spans[:n]
	}
	return spans
}

func styleFromTTMLAttrs(attrs map[string]string) *TextStyle {
	style := TextStyle{}
	if strings.EqualFold(ttmlAttr(attrs, "fontweight"), "bold") {
		style.Bold = true
	}
	if strings.EqualFold(ttmlAttr(attrs, "fontstyle"), "italic") {
		style.Italic = true
	}
	deco := strings.ToLower(ttmlAttr(attrs, "textdecoration"))
	if strings.Contains(deco, "underline") {
		style.Underline = true
	}
	if strings.Contains(deco, "linethrough") || strings.Contains(deco, "line-through") {
		style.Strikethrough = true
	}
	if c := parseTTMLColor(ttmlAttr(attrs, "color")); c != nil {
		style.Color = c
	}
	if c := parseTTMLColor(ttmlAttr(attrs, "backgroundcolor")); c != nil {
		style.BackgroundColor = c
	}
	if v := ttmlAttr(attrs, "fontsize"); v != "" {
		if n, err := strconv.ParseFloat(strings.TrimRight(v, "px%emt "), 64); err == nil {
			style.FontSize = &n
		}
	}
	if !style.HasFormatting() {
		return nil
	}
	return &style
}

func mergeTTMLStyle(base *TextStyle, attrs map[string]string) *TextStyle {
	span := styleFromTTMLAttrs(attrs)
	if span == nil {
		return base
	}
	if base == nil {
		return span
	}
	merged := *base
	merged.Bold = merged.Bold || span.Bold
	merged.Italic = merged.Italic || span.Italic
	merged.Underline = merged.Underline || span.Underline
	merged.Strikethrough = merged.Strikethrough || span.Strikethrough
	if span.Color != nil {
		merged.Color = span.Color
	}
	if span.BackgroundColor != nil {
		merged.BackgroundColor = span.BackgroundColor
	}
	if span.FontSize != nil {
		merged.FontSize = span.FontSize
	}
	if span.FontFamily != "" {
		merged.FontFamily = span.FontFamily
	}
	return &merged
}

var ttmlNamedColors = map[string]RGBA{
	"white":   {255, 255, 255, 255},
	"black":   {0, 0, 0, 255},
	"red":     {255, 0, 0, 255},
	"green":   {0, 128, 0, 255},
	"lime":    {0, 255, 0, 255},
	"blue":    {0, 0, 255, 255},
	"yellow":  {255, 255, 0, 255},
	"cyan":    {0, 255, 255, 255},
	"aqua":    {0, 255, 255, 255},
	"magenta": {255, 0, 255, 255},
	"fuchsia": {255, 0, 255, 255},
	"gray":    {128, 128, 128, 255},
	"grey":    {128, 128, 128, 255},
	"silver":  {192, 192, 192, 255},
	"orange":  {255, 165, 0, 255},
	"purple":  {128, 0, 128, 255},
	"pink":    {255, 192, 203, 255},
	"brown":   {165, 42, 42, 255},
	"navy":    {0, 0, 128, 255},
	"teal":    {0, 128, 128, 255},
	"maroon":  {128, 0, 0, 255},
	"olive":   {128, 128, 0, 255},
}

var ttmlRGBFuncRegex = regexp.MustCompile(
	`(?i)^rgba?\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*(?:,\s*([\d.]+)\s*)?\)$`,
)

// named color, #RRGGBB, #AARRGGBB, rgb() or rgba()
func parseTTMLColor(v string) *RGBA {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if c, ok := ttmlNamedColors[strings.ToLower(v)]; ok {
		out := c
		return &out
	}
	if hex, ok := strings.CutPrefix(v, "#"); ok {
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return nil
		}
		switch len(hex) {
		case 6:
			return &RGBA{uint8(n >> 16), uint8(n >> 8 & 0xff), uint8(n & 0xff), 255}
		case 8:
			return &RGBA{uint8(n >> 16 & 0xff), uint8(n >> 8 & 0xff), uint8(n & 0xff), uint8(n >> 24)}
		}
		return nil
	}
	if m := ttmlRGBFuncRegex.FindStringSubmatch(v); m != nil {
		r, _ := strconv.Atoi(m[1])
		g, _ := strconv.Atoi(m[2])
		b, _ := strconv.Atoi(m[3])
		a := 255.0
		if m[4] != "" {
			f, err := strconv.ParseFloat(m[4], 64)
			if err != nil {
				return nil
			}
			if f <= 1 {
				f *= 255
			}
			a = f
		}
		return &RGBA{clampByte(r), clampByte(g), clampByte(b), clampByte(int(a))}
	}
	return nil
}

func clampByte(n int) uint8 {
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}

// accepted timestamp grammars, tried in order: offset seconds ("1.5s"),
// offset milliseconds ("1500ms"), HH:MM:SS.mmm, SMPTE HH:MM:SS:FF, HH:MM:SS
func parseTTMLTime(v string, frameRate float64) (time.Duration, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}

	if ms, ok := strings.CutSuffix(v, "ms"); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(ms), 64)
		if err != nil {
			return 0, false
		}
		return time.Duration(n * float64(time.Millisecond)), true
	}
	if sec, ok := strings.CutSuffix(v, "s"); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(sec), 64)
		if err != nil {
			return 0, false
		}
		return time.Duration(n * float64(time.Second)), true
	}

	parts := strings.Split(v, ":")
	switch len(parts) {
	case 3:
		sec := parts[2]
		frac := ""
		if at := strings.IndexAny(sec, ".,"); at != -1 {
			sec, frac = sec[:at], sec[at+1:]
		}
		if !allDigits(parts[0]) || !allDigits(parts[1]) || !allDigits(sec) ||
			(frac != "" && !allDigits(frac)) {
			return 0, false
		}
		return clockDuration(parts[0], parts[1], sec, frac), true
	case 4:
		// SMPTE frame-count form; frames convert through the frame rate
		for _, p := range parts {
			if !allDigits(p) {
				return 0, false
			}
		}
		base := clockDuration(parts[0], parts[1], parts[2], "")
		frames, _ := strconv.Atoi(parts[3])
		ms := float64(frames) * 1000 / frameRate
		return base + time.Duration(ms*float64(time.Millisecond)), true
	}
	return 0, false
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
