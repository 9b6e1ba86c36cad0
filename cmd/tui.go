package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"stockpick/internal/catalog"
	"stockpick/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive catalog browser (same as default)",
	Long: `Start the terminal user interface for browsing the catalog, searching
rows and building pick lists.

Note: This is the same as running the program without any commands.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	path, err := requireCatalog()
	if err != nil {
		return err
	}

	model := tui.NewModel(cfg, catalog.NewCache(), logger, path, cfg.DelimiterRune())

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}
