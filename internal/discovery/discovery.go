// Package discovery finds sidecar subtitle files for a video by filename
// similarity.
package discovery

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/subcue/subcue/internal/languages"
	"github.com/subcue/subcue/internal/logging"
	"github.com/subcue/subcue/internal/subtitle"
)

// controls how strictly candidate file names must match the video name
type MatchMode int

const (
	// exact base-name match, or exact match followed by a dot suffix
	// such as "movie.en.srt"
	MatchStrict MatchMode = iota

	// candidate base name starts with the video base name
	MatchPrefix

	// leading name tokens must match in order
	MatchFuzzy
)

func (m MatchMode) String() string {
	switch m {
	case MatchStrict:
		return "strict"
	case MatchPrefix:
		return "prefix"
	case MatchFuzzy:
		return "fuzzy"
	default:
		return "unknown"
	}
}

// ParseMatchMode resolves a mode name used on the command line.
func ParseMatchMode(s string) (MatchMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return MatchStrict, true
	case "prefix":
		return MatchPrefix, true
	case "fuzzy":
		return MatchFuzzy, true
	default:
		return MatchStrict, false
	}
}

// conventional sidecar subdirectories, scanned non-recursively
var subtitleDirs = []string{"Subs", "subs", "Subtitles", "subtitles"}

var nameTokenRegex = regexp.MustCompile(`[._\-\s]+`)

type Option func(*Scanner)

// WithExtraDirs adds search directories; relative ones resolve against the
// video's directory.
func WithExtraDirs(dirs []string) Option {
	return func(s *Scanner) {
		s.extraDirs = dirs
	}
}

func WithLogger(log *logging.Logger) Option {
	return func(s *Scanner) {
		s.log = log
	}
}

// Scanner discovers candidate subtitle files next to a video.
type Scanner struct {
	extraDirs []string
	log       *logging.Logger
}

func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{log: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan returns file sources for subtitle files matching the video's name,
// with format, language and label metadata filled in. Directory read errors
// are swallowed; discovery is best-effort.
func (s *Scanner) Scan(videoPath string, mode MatchMode) []subtitle.Source {
	videoDir := filepath.Dir(videoPath)
	videoBase := strings.TrimSuffix(
		filepath.Base(videoPath),
		filepath.Ext(videoPath),
	)

	dirs := []string{videoDir}
	for _, sub := range subtitleDirs {
		dirs = append(dirs, filepath.Join(videoDir, sub))
	}
	for _, dir := range s.extraDirs {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(videoDir, dir)
		}
		dirs = append(dirs, dir)
	}

	var sources []subtitle.Source
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			s.log.Debugw("skipping subtitle directory", "dir", dir, "error", err)
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			src, ok := s.candidate(dir, entry.Name(), videoBase, mode)
			if !ok {
				continue
			}
			sources = append(sources, src)
		}
	}
	return sources
}

func (s *Scanner) candidate(dir, name, videoBase string, mode MatchMode) (subtitle.Source, bool) {
	format, ok := subtitle.FormatFromExtension(name)
	if !ok {
		return subtitle.Source{}, false
	}

	candBase := strings.TrimSuffix(name, filepath.Ext(name))
	if !baseNameMatches(videoBase, candBase, mode) {
		return subtitle.Source{}, false
	}

	lang := extractLanguage(videoBase, candBase)
	src := subtitle.FileSource(filepath.Join(dir, name))
	src.Format = format
	src.Language = lang
	src.Label = displayLabel(lang)
	return src, true
}

func baseNameMatches(videoBase, candBase string, mode MatchMode) bool {
	switch mode {
	case MatchStrict:
		return strings.EqualFold(candBase, videoBase) ||
			hasFoldPrefix(candBase, videoBase+".")
	case MatchPrefix:
		return hasFoldPrefix(candBase, videoBase)
	case MatchFuzzy:
		videoTokens := tokenizeName(videoBase)
		candTokens := tokenizeName(candBase)
		need := len(videoTokens)
		if need > 2 {
			need = 2
		}
		if len(candTokens) < need {
			return false
		}
		for i := 0; i < need; i++ {
			if !strings.EqualFold(videoTokens[i], candTokens[i]) {
				return false
			}
		}
		return need > 0
	default:
		return false
	}
}

func hasFoldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func tokenizeName(name string) []string {
	var tokens []string
	for _, t := range nameTokenRegex.Split(name, -1) {
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// pulls a language code out of the candidate's suffix tokens: a known
// language name maps to its code, anything at most three characters long
// passes through as a code
func extractLanguage(videoBase, candBase string) string {
	for _, token := range suffixTokens(videoBase, candBase) {
		if code, ok := languages.Code(token); ok {
			return code
		}
		if len(token) <= 3 && isAlpha(token) {
			return strings.ToLower(token)
		}
	}
	return ""
}

// candidate name tokens past the part matched against the video name
func suffixTokens(videoBase, candBase string) []string {
	if hasFoldPrefix(candBase, videoBase) {
		return tokenizeName(candBase[len(videoBase):])
	}
	videoTokens := tokenizeName(videoBase)
	matched := len(videoTokens)
	if matched > 2 {
		matched = 2
	}
	candTokens := tokenizeName(candBase)
	if matched >= len(candTokens) {
		return nil
	}
	return candTokens[matched:]
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return s != ""
}

func displayLabel(lang string) string {
	if lang == "" {
		return "External"
	}
	if name, ok := languages.DisplayName(lang); ok {
		return name
	}
	return "External"
}
