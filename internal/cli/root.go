package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/captioncraft/captioncraft/internal/config"
	"github.com/captioncraft/captioncraft/internal/logging"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "captioncraft",
	Short: "AI-powered styled subtitle generator",
	Long: `CaptionCraft generates styled WebVTT subtitles for audio and video files
using AI transcription.

Transcripts with per-segment timing become exact cues; plain transcripts
fall back to evenly spaced cues. Subtitles can also be translated or
converted between formats.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
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
	rootCmd.PersistentFlags().
		StringP("language", "l", "", "Language code (e.g., en, es, fr)")
	rootCmd.PersistentFlags().
		String("config", "", "Config file path (default: user config dir)")
}

// loadConfig opens the settings store named by --config, falling back to
// the per-user default location.
func loadConfig(cmd *cobra.Command) *config.Store {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil || configDir == "" {
			configDir = os.TempDir()
		}
		path = filepath.Join(configDir, "captioncraft", "config.json")
	}
	return config.Load(path)
}
