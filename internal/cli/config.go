package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"launchpad/internal/config"
	"launchpad/internal/ui/settings"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file and the launch folder",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "config: %s\n", app.Config.Path())
		fmt.Fprintf(out, "launch folder: %s\n", app.Config.ConfiguredPath())
		return nil
	},
}

var configSetPathCmd = &cobra.Command{
	Use:   "set-path [dir]",
	Short: "Change the launch folder",
	Long: `Change the folder launchpad scans for candidates.

With no argument an interactive prompt asks for the folder and a
confirmation before saving.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSetPath,
}

func init() {
	configCmd.AddCommand(configPathCmd, configSetPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runSetPath(cmd *cobra.Command, args []string) error {
	var chooser config.PathChooser = settings.Chooser{}
	if len(args) == 1 {
		dir := args[0]
		chooser = config.PathChooserFunc(func(_ context.Context, _ string) (string, error) {
			return dir, nil
		})
	}

	path, err := app.Config.ChooseAndPersistPath(app.Ctx(), chooser)
	if errors.Is(err, config.ErrNoPathChosen) {
		fmt.Fprintln(cmd.OutOrStdout(), "launch folder unchanged")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "launch folder set to %s\n", path)
	return nil
}
