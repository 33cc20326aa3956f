package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/subcue/subcue/internal/discovery"
)

var discoverCmd = &cobra.Command{
	Use:   "discover [video_file]",
	Short: "Find sidecar subtitle files for a video",
	Long: `Scan the video's directory and conventional subtitle subdirectories
(Subs, Subtitles) for subtitle files whose names match the video.

Match modes:
  strict  exact name match, optionally followed by a dot suffix (movie.en.srt)
  prefix  subtitle name starts with the video name
  fuzzy   leading name tokens match in order

Examples:
  subcue discover movie.mkv
  subcue discover movie.mkv --mode fuzzy`,
	Args: cobra.ExactArgs(1),
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)

	discoverCmd.Flags().
		StringP("mode", "m", "strict", "Match mode (strict, prefix, fuzzy)")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	videoPath := args[0]

	modeName, _ := cmd.Flags().GetString("mode")
	mode, ok := discovery.ParseMatchMode(modeName)
	if !ok {
		return fmt.Errorf(
			"invalid mode %q: supported modes are strict, prefix, fuzzy",
			modeName,
		)
	}

	scanner := discovery.NewScanner(
		discovery.WithExtraDirs(cfg.SubtitleDirs),
		discovery.WithLogger(logger),
	)

	sources := scanner.Scan(videoPath, mode)
	if len(sources) == 0 {
		cmd.Println("no subtitle files found")
		return nil
	}

	for _, src := range sources {
		lang := src.Language
		if lang == "" {
			lang = "-"
		}
		cmd.Printf("%-8s %-10s %s\n", lang, src.Label, src.Path)
	}
	return nil
}
