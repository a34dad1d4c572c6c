package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mytec0l/ToDoListParser/internal/ui"
)

func newViewCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "view [file]",
		Short: "Browse a todo file interactively",
		Long: `View opens a terminal browser over the tasks of a todo file. Tasks
can be sorted, filtered by tag and edited in $EDITOR. The file is
reloaded when it changes unless auto_refresh is off.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, root, root.todoFile(args))
		},
	}
}

func runView(cmd *cobra.Command, root *rootOptions, path string) error {
	model := ui.NewModel(root.cfg, path, root.logger)
	if root.cfg.AutoRefresh {
		if err := model.Watch(); err != nil {
			root.logger.Warn("auto refresh disabled", "path", path, "err", err)
		}
	}
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	return nil
}
