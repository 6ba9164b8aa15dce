// Package cli is the command line entry point. Without a subcommand the
// desktop window starts.
package cli

import (
	"github.com/spf13/cobra"
)

const (
	appName = "autoclicker"
	version = "dev"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	backend    string
	logLevel   string
	logFile    string
	configPath string
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "Automatic mouse clicker",
		Long:  `Clicks a mouse button at a fixed interval, at the pointer or at a chosen position, toggled by a global hotkey.`,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.backend, "backend", "auto", "input backend: auto, native, x11 or dry-run")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	flags.StringVar(&opts.logFile, "log-file", "", "also write logs to this rotating file")
	flags.StringVar(&opts.configPath, "config", "", "settings file (default <user config dir>/autoclicker/settings.yaml)")

	rootCmd.AddCommand(
		newRunCommand(opts),
		newSettingsCommand(opts),
		newPickCommand(opts),
	)
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}
