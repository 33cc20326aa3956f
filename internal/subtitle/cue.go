package subtitle

import (
	"path/filepath"
	"strings"
	"time"
)

// represents one timed caption unit
type Cue struct {
	Index int
	Start time.Duration
	End   time.Duration

	// plain, tag-stripped text; never empty
	Text string

	// present only when the source carried inline styling; concatenating
	// all span texts yields Text
	Spans []StyledSpan
}

// contiguous text run sharing one style within a cue
type StyledSpan struct {
	Text string

	// nil marks a plain run
	Style *TextStyle
}

// RGBA color value
type RGBA struct {
	R, G, B, A uint8
}

// inline formatting attributes for a styled span
type TextStyle struct {
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool

	Color           *RGBA
	BackgroundColor *RGBA
	FontSize        *float64
	FontFamily      string
}

// reports whether any attribute differs from the default
func (s TextStyle) HasFormatting() bool {
	return s.Bold || s.Italic || s.Underline || s.Strikethrough ||
		s.Color != nil || s.BackgroundColor != nil ||
		s.FontSize != nil || s.FontFamily != ""
}

func styleEqual(a, b *TextStyle) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Bold != b.Bold || a.Italic != b.Italic ||
		a.Underline != b.Underline || a.Strikethrough != b.Strikethrough ||
		a.FontFamily != b.FontFamily {
		return false
	}
	if !rgbaEqual(a.Color, b.Color) ||
		!rgbaEqual(a.BackgroundColor, b.BackgroundColor) {
		return false
	}
	if (a.FontSize == nil) != (b.FontSize == nil) {
		return false
	}
	if a.FontSize != nil && *a.FontSize != *b.FontSize {
		return false
	}
	return true
}

func rgbaEqual(a, b *RGBA) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// represents supported subtitle formats
type Format string

const (
	FormatSRT  Format = "srt"
	FormatVTT  Format = "vtt"
	FormatSSA  Format = "ssa"
	FormatASS  Format = "ass"
	FormatTTML Format = "ttml"
)

// subtitle format based on file extension
func FormatFromExtension(path string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".srt":
		return FormatSRT, true
	case ".vtt":
		return FormatVTT, true
	case ".ssa":
		return FormatSSA, true
	case ".ass":
		return FormatASS, true
	case ".ttml", ".dfxp", ".xml":
		return FormatTTML, true
	default:
		return "", false
	}
}

// file extension for a format
func (f Format) Extension() string {
	switch f {
	case FormatSRT:
		return ".srt"
	case FormatVTT:
		return ".vtt"
	case FormatSSA:
		return ".ssa"
	case FormatASS:
		return ".ass"
	case FormatTTML:
		return ".ttml"
	default:
		return ""
	}
}

// identifies the kind of location a subtitle source points at
type SourceKind int

const (
	SourceNetwork SourceKind = iota
	SourceFile
	SourceAsset
)

func (k SourceKind) String() string {
	switch k {
	case SourceNetwork:
		return "network"
	case SourceFile:
		return "file"
	case SourceAsset:
		return "asset"
	default:
		return "unknown"
	}
}

// describes where subtitle content comes from
type Source struct {
	Kind SourceKind

	// network sources
	URL     string
	Headers map[string]string

	// file and asset sources
	Path string

	// optional format hint; inferred from the location or content when empty
	Format Format

	// optional metadata
	Label    string
	Language string
}

func NetworkSource(url string, headers map[string]string) Source {
	return Source{Kind: SourceNetwork, URL: url, Headers: headers}
}

func FileSource(path string) Source {
	return Source{Kind: SourceFile, Path: path}
}

func AssetSource(path string) Source {
	return Source{Kind: SourceAsset, Path: path}
}

// URL or path the source resolves against
func (s Source) Location() string {
	if s.Kind == SourceNetwork {
		return s.URL
	}
	return s.Path
}

// strips a leading BOM and normalizes CRLF/CR line endings to LF
func normalizeInput(content string) string {
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.ReplaceAll(content, "\r", "\n")
}

// merges adjacent spans carrying the same style
func mergeSpans(spans []StyledSpan) []StyledSpan {
	if len(spans) < 2 {
		return spans
	}
	merged := spans[:1]
	for _, sp := range spans[1:] {
		last := &merged[len(merged)-1]
		if styleEqual(last.Style, sp.Style) {
			last.Text += sp.Text
			continue
		}
		merged = append(merged, sp)
	}
	return merged
}

// spanText concatenates all span texts
func spanText(spans []StyledSpan) string {
	var sb strings.Builder
	for _, sp := range spans {
		sb.WriteString(sp.Text)
	}
	return sb.String()
}

// drops span styling when no span carries formatting
func collapsePlainSpans(spans []StyledSpan) []StyledSpan {
	for _, sp := range spans {
		if sp.Style != nil {
			return spans
		}
	}
	return nil
}
