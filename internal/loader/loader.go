// Package loader resolves subtitle content from network, filesystem and
// asset-bundle sources and hands it to the format parsers.
package loader

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"

	"github.com/subcue/subcue/internal/logging"
	"github.com/subcue/subcue/internal/subtitle"
)

type Option func(*Loader)

// WithHTTPClient injects the client used for network sources.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) {
		l.client = client
	}
}

// WithAssets injects the bundle asset sources read from.
func WithAssets(assets fs.FS) Option {
	return func(l *Loader) {
		l.assets = assets
	}
}

// WithUserAgent sets the User-Agent header for network sources.
func WithUserAgent(ua string) Option {
	return func(l *Loader) {
		l.userAgent = ua
	}
}

func WithLogger(log *logging.Logger) Option {
	return func(l *Loader) {
		l.log = log
	}
}

// Loader acquires raw subtitle text and parses it. Parsing failures are
// local and lenient; acquisition failures always surface, wrapped with the
// failed source's identity.
type Loader struct {
	client    *http.Client
	assets    fs.FS
	userAgent string
	log       *logging.Logger
}

func New(opts ...Option) *Loader {
	l := &Loader{
		client: &http.Client{},
		log:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load resolves a source and parses its content into cues.
func (l *Loader) Load(ctx context.Context, src subtitle.Source) ([]subtitle.Cue, error) {
	content, err := l.resolve(ctx, src)
	if err != nil {
		return nil, err
	}
	return l.parse(content, src), nil
}

// LoadWebVTT resolves a source and returns its content as WebVTT text.
// Content that already is WebVTT passes through unchanged.
func (l *Loader) LoadWebVTT(ctx context.Context, src subtitle.Source) (string, error) {
	content, err := l.resolve(ctx, src)
	if err != nil {
		return "", err
	}
	if l.resolveFormat(content, src) == subtitle.FormatVTT {
		return content, nil
	}
	return subtitle.ConvertToVTT(l.parse(content, src)), nil
}

// Close releases the underlying HTTP client. The loader owns no other
// resources.
func (l *Loader) Close() {
	l.client.CloseIdleConnections()
}

func (l *Loader) parse(content string, src subtitle.Source) []subtitle.Cue {
	format := l.resolveFormat(content, src)
	if format == "" {
		return subtitle.ParseAuto(content)
	}
	cues, err := subtitle.Parse(content, format)
	if err != nil {
		// unknown hint value; fall back to sniffing
		return subtitle.ParseAuto(content)
	}
	return cues
}

// format hint if given, else the location's extension, else content sniffing
func (l *Loader) resolveFormat(content string, src subtitle.Source) subtitle.Format {
	if src.Format != "" {
		return src.Format
	}
	if format, ok := subtitle.FormatFromExtension(src.Location()); ok {
		return format
	}
	format, _ := subtitle.DetectFormat(content)
	return format
}

func (l *Loader) resolve(ctx context.Context, src subtitle.Source) (string, error) {
	switch src.Kind {
	case subtitle.SourceNetwork:
		return l.fetch(ctx, src)
	case subtitle.SourceFile:
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return "", fmt.Errorf("failed to read subtitle file %q: %w", src.Path, err)
		}
		return string(data), nil
	case subtitle.SourceAsset:
		if l.assets == nil {
			return "", fmt.Errorf("no asset bundle configured for subtitle asset %q", src.Path)
		}
		data, err := fs.ReadFile(l.assets, src.Path)
		if err != nil {
			return "", fmt.Errorf("failed to read subtitle asset %q: %w", src.Path, err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported subtitle source kind %d", src.Kind)
	}
}

func (l *Loader) fetch(ctx context.Context, src subtitle.Source) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return "", fmt.Errorf("invalid subtitle URL %q: %w", src.URL, err)
	}
	if l.userAgent != "" {
		req.Header.Set("User-Agent", l.userAgent)
	}
	for k, v := range src.Headers {
		req.Header.Set(k, v)
	}

	l.log.Debugw("fetching subtitles", "url", src.URL)
	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch subtitles from %q: %w", src.URL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch subtitles from %q: status %d", src.URL, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read subtitle response from %q: %w", src.URL, err)
	}
	return string(data), nil
}
