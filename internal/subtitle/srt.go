package subtitle

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SubRip parser
type SRTParser struct{}

var (
	blockSepRegex = regexp.MustCompile(`\n[ \t]*\n+`)

	// comma or dot decimal separator, 2-3 digit millis, millis optional
	srtTimingRegex = regexp.MustCompile(
		`(\d{1,2}):(\d{2}):(\d{2})(?:[,.](\d{2,3}))?\s*-->\s*` +
			`(\d{1,2}):(\d{2}):(\d{2})(?:[,.](\d{2,3}))?`,
	)

	htmlTagRegex     = regexp.MustCompile(`<[^>]+>`)
	ssaOverrideRegex = regexp.MustCompile(`\{\\[^}]*\}`)
)

// ParseSRT parses SubRip content into cues. Malformed blocks are skipped.
func ParseSRT(content string) []Cue {
	return (SRTParser{}).Parse(content)
}

func (SRTParser) Parse(content string) []Cue {
	content = normalizeInput(content)
	if strings.TrimSpace(content) == "" {
		return nil
	}

	var cues []Cue
	for _, block := range splitBlocks(content) {
		cue, ok := parseSRTBlock(block)
		if !ok {
			continue
		}
		cues = append(cues, cue)
	}
	return cues
}

func parseSRTBlock(block string) (Cue, bool) {
	lines := strings.Split(strings.TrimSpace(block), "\n")
	if len(lines) < 2 {
		return Cue{}, false
	}

	index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return Cue{}, false
	}

	m := srtTimingRegex.FindStringSubmatch(lines[1])
	if m == nil {
		return Cue{}, false
	}
	start := clockDuration(m[1], m[2], m[3], m[4])
	end := clockDuration(m[5], m[6], m[7], m[8])

	// SRT has no native styling, but HTML and ASS override tags leak in
	text := strings.Join(lines[2:], "\n")
	text = ssaOverrideRegex.ReplaceAllString(text, "")
	text = htmlTagRegex.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	if text == "" {
		return Cue{}, false
	}

	return Cue{Index: index, Start: start, End: end, Text: text}, true
}

// splits content on runs of one or more blank lines
func splitBlocks(content string) []string {
	return blockSepRegex.Split(content, -1)
}

func clockDuration(hours, minutes, seconds, frac string) time.Duration {
	h, _ := strconv.Atoi(hours)
	m, _ := strconv.Atoi(minutes)
	s, _ := strconv.Atoi(seconds)
	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(fractionMillis(frac))*time.Millisecond
}

// a 2-digit fraction is right-padded, so "04" reads as 40ms; anything
// beyond millisecond precision is truncated
func fractionMillis(frac string) int {
	if frac == "" {
		return 0
	}
	if len(frac) > 3 {
		frac = frac[:3]
	}
	for len(frac) < 3 {
		frac += "0"
	}
	ms, err := strconv.Atoi(frac)
	if err != nil {
		return 0
	}
	return ms
}
