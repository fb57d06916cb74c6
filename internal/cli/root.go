package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	app        *App
	configPath string
	rootCmd    = &cobra.Command{
		Use:   "launchpad",
		Short: "Keyboard-driven launcher overlay for the terminal",
		Long: `launchpad - a small launcher overlay that lives in a terminal window.

Type part of a name, pick a result with the arrow keys and press Enter.
Candidates come from the configured launch folder (desktop entries,
executables, app bundles and shortcuts).

Signals:
  SIGUSR1  focus the overlay
  SIGUSR2  hide the overlay and reset the query`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion":
				return nil
			}

			var err error
			app, err = NewApp(configPath)
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
		RunE: runOverlay,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/launchpad/config.toml)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
