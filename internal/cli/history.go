package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"launchpad/internal/history"
)

var (
	historyJSON bool
	historyMax  int
)

const defaultHistoryMax = 20

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent launches",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyCmd.Flags().IntVar(&historyMax, "max", defaultHistoryMax, "maximum entries to show")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	store, err := app.OpenHistory()
	if err != nil {
		return err
	}
	entries, err := store.Recent(app.Ctx(), historyMax)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if historyJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	fmt.Fprint(out, formatHistory(entries))
	return nil
}

var (
	timeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	nameStyle = lipgloss.NewStyle().Bold(true)
	pathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

func formatHistory(entries []history.Entry) string {
	if len(entries) == 0 {
		return "No launches yet\n"
	}
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s  %s  %s\n",
			timeStyle.Render(e.At.Format("2006-01-02 15:04")),
			nameStyle.Render(e.Name),
			pathStyle.Render(e.Path))
	}
	return b.String()
}
