package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mytec0l/ToDoListParser/internal/render"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check [file...]",
		Short: "Report syntax errors in todo files",
		Long: `Check parses each file and reports the first error in it with its
line, column and the tokens that were expected there. The exit status
is non-zero when any file fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{root.cfg.TodoFile}
			}
			return runCheck(cmd, root, args)
		},
	}
}

func runCheck(cmd *cobra.Command, root *rootOptions, paths []string) error {
	out := cmd.OutOrStdout()
	printer := render.NewPrinter(out, root.cfg.Colors, 0, root.cfg.NoColor)

	failed := 0
	for _, path := range paths {
		tasks, err := readTasks(path)
		if err != nil {
			failed++
			root.logger.Debug("check failed", "path", path, "err", err)
			fmt.Fprintln(out, printer.Error(path, err))
			continue
		}

		noun := "tasks"
		if len(tasks) == 1 {
			noun = "task"
		}
		fmt.Fprintf(out, "%s: ok, %d %s\n", path, len(tasks), noun)
	}

	if failed > 0 {
		root.logger.Warn("check found errors", "files", failed, "checked", len(paths))
		return errReported
	}
	return nil
}
