package cli

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/subcue/subcue/internal/loader"
	"github.com/subcue/subcue/internal/subtitle"
)

var convertCmd = &cobra.Command{
	Use:   "convert [subtitle_file_or_url]",
	Short: "Convert a subtitle file to WebVTT",
	Long: `Load a subtitle file or URL in any supported format and print it as
canonical WebVTT. Content that already is WebVTT passes through unchanged.

Examples:
  subcue convert episode.srt
  subcue convert episode.ass -o episode.vtt
  subcue convert https://example.com/captions.ttml --format ttml`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().
		StringP("format", "f", "", "Source format hint (srt, vtt, ssa, ass, ttml)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	location := args[0]
	formatHint, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	src := sourceForLocation(location)
	if formatHint != "" {
		format := subtitle.Format(strings.ToLower(formatHint))
		if subtitle.ParserFor(format) == nil {
			return fmt.Errorf(
				"invalid format %q: supported formats are srt, vtt, ssa, ass, ttml",
				formatHint,
			)
		}
		src.Format = format
	}

	l := loader.New(
		loader.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		loader.WithUserAgent(cfg.UserAgent),
		loader.WithLogger(logger),
	)
	defer l.Close()

	vtt, err := l.LoadWebVTT(cmd.Context(), src)
	if err != nil {
		return err
	}

	if outputPath == "" {
		cmd.Print(vtt)
		return nil
	}
	if err := os.WriteFile(outputPath, []byte(vtt), 0644); err != nil {
		return fmt.Errorf("failed to write %q: %w", outputPath, err)
	}
	logger.Infow("Converted subtitles", "input", location, "output", outputPath)
	return nil
}

func sourceForLocation(location string) subtitle.Source {
	if strings.HasPrefix(location, "http://") ||
		strings.HasPrefix(location, "https://") {
		return subtitle.NetworkSource(location, nil)
	}
	return subtitle.FileSource(location)
}
