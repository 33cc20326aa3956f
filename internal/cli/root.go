package cli

import (
	"github.com/spf13/cobra"
	"github.com/subcue/subcue/internal/config"
	"github.com/subcue/subcue/internal/logging"
)

var (
	verbose bool
	logger  *logging.Logger
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "subcue",
	Short: "Subtitle parsing, conversion, and discovery toolkit",
	Long: `Subcue normalizes subtitle files in SRT, WebVTT, SSA/ASS and TTML
formats into a single cue model, converts any of them to canonical
WebVTT, and finds sidecar subtitle files for a video.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
}
