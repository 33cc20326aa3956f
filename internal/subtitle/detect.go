package subtitle

import (
	"fmt"
	"regexp"
	"strings"
)

// interface every format parser implements; empty or whitespace-only input
// yields an empty cue list, malformed blocks are skipped
type Parser interface {
	Parse(content string) []Cue
}

var (
	srtSignatureRegex  = regexp.MustCompile(`(?m)^\d+\s*\n\d{2}:\d{2}:\d{2}[,.]\d{3}\s*-->`)
	assScriptTypeRegex = regexp.MustCompile(`(?i)ScriptType:\s*v4\.00\+`)
)

// DetectFormat guesses the subtitle format from content alone, applying
// ordered heuristics to the BOM-stripped, trimmed input.
func DetectFormat(content string) (Format, bool) {
	c := strings.TrimSpace(strings.TrimPrefix(content, "\ufeff"))
	if c == "" {
		return "", false
	}

	if strings.HasPrefix(c, "WEBVTT") {
		return FormatVTT, true
	}
	if strings.Contains(c, "<?xml") || strings.Contains(c, "<tt ") ||
		strings.Contains(c, "<tt>") {
		return FormatTTML, true
	}
	if strings.Contains(c, "[Script Info]") || strings.Contains(c, "[Events]") {
		if assScriptTypeRegex.MatchString(c) {
			return FormatASS, true
		}
		return FormatSSA, true
	}
	if srtSignatureRegex.MatchString(c) {
		return FormatSRT, true
	}
	// minimal SSA without section headers
	if strings.Contains(c, "Dialogue:") && strings.Contains(c, "Format:") {
		return FormatSSA, true
	}
	return "", false
}

// ParserFor returns the parser handling a format; SSA and ASS share one.
func ParserFor(format Format) Parser {
	switch format {
	case FormatSRT:
		return SRTParser{}
	case FormatVTT:
		return VTTParser{}
	case FormatSSA, FormatASS:
		return SSAParser{}
	case FormatTTML:
		return TTMLParser{}
	default:
		return nil
	}
}

// Parse dispatches content to the parser for an explicitly known format.
func Parse(content string, format Format) ([]Cue, error) {
	parser := ParserFor(format)
	if parser == nil {
		return nil, fmt.Errorf("unsupported subtitle format: %q", format)
	}
	return parser.Parse(content), nil
}

// ParseAuto detects the format and parses; undetectable content yields an
// empty list rather than an error.
func ParseAuto(content string) []Cue {
	format, ok := DetectFormat(content)
	if !ok {
		return nil
	}
	cues, _ := Parse(content, format)
	return cues
}
