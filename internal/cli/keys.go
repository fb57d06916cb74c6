package cli

import (
	"github.com/spf13/cobra"

	"launchpad/internal/ui"
	"launchpad/internal/ui/input"
)

var keysPlain bool

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show the overlay key bindings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		content := ui.RenderHelpContent(input.DefaultKeyMap())
		if keysPlain {
			_, err := cmd.OutOrStdout().Write([]byte(content + "\n"))
			return err
		}
		return ui.RunPager(content)
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
	keysCmd.Flags().BoolVar(&keysPlain, "plain", false, "print instead of opening the pager")
}
