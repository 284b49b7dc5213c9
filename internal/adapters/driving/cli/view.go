package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/personarank/internal/adapters/driven/report"
	"github.com/custodia-labs/personarank/internal/adapters/driving/tui"
)

// viewCmd represents the view command.
var viewCmd = &cobra.Command{
	Use:   "view [report]",
	Short: "Browse a report in the terminal",
	Long: `Open a written report in an interactive browser.

Without an argument the default report location is used. When standard
output is not a terminal a plain summary is printed instead.

Controls:
  ↑/k, ↓/j  - Move between sections
  pgup/pgdn - Scroll the section text
  tab       - Filter by document
  ?         - Toggle help
  q         - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		path = defaultOutputPath(settings)
	}

	rep, err := report.NewJSONStore().Read(cmd.Context(), path)
	if err != nil {
		return err
	}

	if !isTerminal(cmd.OutOrStdout()) {
		fmt.Fprint(cmd.OutOrStdout(), plainSummary(rep, ""))
		return nil
	}

	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := tui.NewApp(rep)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
