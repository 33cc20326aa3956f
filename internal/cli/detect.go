package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/subcue/subcue/internal/subtitle"
)

var detectCmd = &cobra.Command{
	Use:   "detect [subtitle_file]",
	Short: "Detect the format of a subtitle file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read subtitle file %q: %w", path, err)
	}

	format, ok := subtitle.DetectFormat(string(data))
	if !ok {
		return fmt.Errorf("could not detect subtitle format of %q", path)
	}

	cues := subtitle.ParseAuto(string(data))
	cmd.Printf("%s (%d cues)\n", format, len(cues))
	return nil
}
