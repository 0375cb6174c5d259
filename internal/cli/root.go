package cli

import (
	"github.com/bassista/go_folio/internal/config"
	"github.com/bassista/go_folio/internal/logger"
	"github.com/spf13/cobra"
)

// Version is set via ldflags at build time.
var Version = "dev"

// NewRootCmd builds the folio command tree.
func NewRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "folio",
		Short:         "Companion tool for the go_folio portfolio server",
		Long:          `folio runs the location widget in a terminal, manages the stored theme preference and checks resume content files.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// stdout belongs to the command output
			logger.SetOutput(cmd.ErrOrStderr())
			return logger.Configure(logLevel, logger.FormatText)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newWidgetCmd(), newThemeCmd(), newContentCmd())
	return root
}

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

var loadConfig = config.LoadConfig
