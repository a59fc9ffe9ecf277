package cmd

import (
	"github.com/spf13/cobra"

	"image-browser/internal/logging"
	"image-browser/internal/startup"
	"image-browser/internal/thumbs"
)

var rootCmd = &cobra.Command{
	Use:   "image-browser",
	Short: "Browse and batch-rename image collections",
	Long: `image-browser scans a directory of images into a stable indexed
collection and offers navigation, thumbnail generation, and a two-phase
batch rename engine over it.

Configuration comes from environment variables; see the startup package
documentation for the full list. The most common ones:

  BROWSE_DIR   directory to browse (default: current directory)
  EXTENSIONS   comma-separated extensions to include
  RECURSIVE    include subdirectories
  LOG_LEVEL    debug, info, warn, error`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logging.Error("%v", err)
	}
	return err
}

// loadConfig wraps startup.LoadConfig for subcommands, initializing
// libvips when configured.
func loadConfig() (*startup.Config, error) {
	config, err := startup.LoadConfig()
	if err != nil {
		return nil, err
	}
	if config.VipsEnabled && config.ThumbnailsEnabled {
		if err := thumbs.InitVips(); err != nil {
			logging.Warn("libvips unavailable, using pure-Go decoding: %v", err)
		}
	}
	return config, nil
}
