package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/subcue/subcue/internal/video"
)

var extractCmd = &cobra.Command{
	Use:   "extract [video_file]",
	Short: "Extract an embedded subtitle track from a video file",
	Long: `Extract one subtitle track from a video container and save it as a
sidecar file. The output extension selects the subtitle format.

Examples:
  subcue extract movie.mkv
  subcue extract movie.mkv --list
  subcue extract movie.mkv -t 1 -o movie.en.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().
		IntP("track", "t", 0, "Subtitle track index within the container")
	extractCmd.Flags().
		Bool("list", false, "List embedded subtitle tracks and exit")
}

func runExtract(cmd *cobra.Command, args []string) error {
	videoPath := args[0]

	track, _ := cmd.Flags().GetInt("track")
	list, _ := cmd.Flags().GetBool("list")
	outputPath, _ := cmd.Flags().GetString("output")

	processor := video.NewProcessor()

	if list {
		tracks, err := processor.ProbeSubtitleTracks(cmd.Context(), videoPath)
		if err != nil {
			return err
		}
		if len(tracks) == 0 {
			cmd.Println("no embedded subtitle tracks")
			return nil
		}
		for _, t := range tracks {
			lang := t.Language
			if lang == "" {
				lang = "-"
			}
			title := t.Title
			if title == "" {
				title = "-"
			}
			cmd.Printf("%d  %-10s %-6s %s\n", t.Index, t.Codec, lang, title)
		}
		return nil
	}

	if outputPath == "" {
		base := strings.TrimSuffix(videoPath, filepath.Ext(videoPath))
		outputPath = fmt.Sprintf("%s.%d.srt", base, track)
	}

	logger.Infow("Extracting subtitle track",
		"video", videoPath,
		"track", track,
		"output", outputPath,
	)

	if err := processor.ExtractSubtitle(cmd.Context(), videoPath, track, outputPath); err != nil {
		return err
	}

	logger.Infow("Subtitle track extracted", "output", outputPath)
	return nil
}
