package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mytec0l/ToDoListParser/internal/render"
	"github.com/mytec0l/ToDoListParser/internal/todo"
	"github.com/mytec0l/ToDoListParser/internal/watch"
)

type parseOptions struct {
	byPriority bool
	byStatus   bool
	byStart    bool
	byDue      bool
	sort       string
	tag        string
	json       bool
	watch      bool
}

func newParseCmd(root *rootOptions) *cobra.Command {
	opts := &parseOptions{}

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Print the tasks of a todo file",
		Long: `Parse a todo file and print its tasks, optionally sorted or filtered
by tag. Without a file argument the configured todo_file is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, root, opts, root.todoFile(args))
		},
	}

	cmd.Flags().BoolVar(&opts.byPriority, "sort-by-priority", false, "Sort by priority, highest first")
	cmd.Flags().BoolVar(&opts.byStatus, "sort-by-status", false, "Sort by status: todo, doing, done")
	cmd.Flags().BoolVar(&opts.byStart, "sort-by-start", false, "Sort by start date, undated last")
	cmd.Flags().BoolVar(&opts.byDue, "sort-by-due", false, "Sort by due date, undated last")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "Sort mode (none, priority, status, start, due)")
	cmd.Flags().StringVarP(&opts.tag, "tag", "t", "", "Only show tasks with this tag")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the tasks as JSON")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Print again whenever the file changes")
	cmd.MarkFlagsMutuallyExclusive("sort-by-priority", "sort-by-status", "sort-by-start", "sort-by-due", "sort")

	return cmd
}

// sortMode picks the mode from the flags, falling back to the configured
// default.
func (o *parseOptions) sortMode(fallback todo.SortMode) (todo.SortMode, error) {
	switch {
	case o.byPriority:
		return todo.SortPriority, nil
	case o.byStatus:
		return todo.SortStatus, nil
	case o.byStart:
		return todo.SortStart, nil
	case o.byDue:
		return todo.SortDue, nil
	case o.sort != "":
		return todo.ParseSortMode(o.sort)
	}
	return fallback, nil
}

func runParse(cmd *cobra.Command, root *rootOptions, opts *parseOptions, path string) error {
	mode, err := opts.sortMode(root.cfg.SortMode())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printer := render.NewPrinter(out, root.cfg.Colors, root.cfg.WrapWidth, root.cfg.NoColor)
	errPrinter := render.NewPrinter(cmd.ErrOrStderr(), root.cfg.Colors, 0, root.cfg.NoColor)

	show := func() error {
		tasks, err := readTasks(path)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), errPrinter.Error(path, err))
			return errReported
		}
		root.logger.Debug("parsed", "path", path, "tasks", len(tasks))
		return printTasks(out, printer, tasks, mode, opts, root.cfg.ShowSummary)
	}

	err = show()
	if !opts.watch {
		return err
	}

	changes := make(chan string, 1)
	watcher, werr := watch.NewFileWatcher(root.cfg.RefreshRate, root.logger, func(name string) {
		select {
		case changes <- name:
		default:
		}
	})
	if werr != nil {
		return fmt.Errorf("failed to watch %s: %w", path, werr)
	}
	defer watcher.Close()

	if err := watcher.AddFile(path); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	root.logger.Info("watching for changes", "path", path)

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			// Failures are shown and the watch goes on.
			_ = show()
		}
	}
}

func printTasks(w io.Writer, p *render.Printer, tasks []todo.Task, mode todo.SortMode, opts *parseOptions, summary bool) error {
	if opts.tag != "" {
		tasks = todo.FilterByTag(tasks, opts.tag)
	}
	todo.SortTasks(tasks, mode)

	if opts.json {
		return todo.WriteJSON(w, tasks, mode)
	}
	return p.List(tasks, mode, summary)
}

func readTasks(path string) ([]todo.Task, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}
	return todo.ParseFile(string(content))
}
