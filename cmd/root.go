package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mytec0l/ToDoListParser/internal/config"
	"github.com/mytec0l/ToDoListParser/internal/logging"
)

// errReported is returned once a command has already printed its
// failures, so Execute only sets the exit status.
var errReported = errors.New("errors reported")

type rootOptions struct {
	cfgFile  string
	logLevel string
	noColor  bool

	cfg    *config.Config
	logger *log.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "todo-parser",
		Short: "Parse, check and browse todo list files",
		Long: `todo-parser reads todo lists where every line is a task with an
optional priority, a status and a free-form description carrying
tags, start dates and due dates. It prints them sorted, reports
syntax errors with their position, exports JSON and offers an
interactive browser.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initConfig(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		newParseCmd(opts),
		newCheckCmd(opts),
		newViewCmd(opts),
		newCreditsCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the command line and prints any error that the command
// did not report itself.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

func (o *rootOptions) initConfig(cmd *cobra.Command) error {
	var err error
	if o.cfgFile != "" {
		o.cfg, err = config.LoadConfigFile(o.cfgFile)
	} else {
		o.cfg, err = config.LoadConfig()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if o.logLevel != "" {
		o.cfg.LogLevel = o.logLevel
	}
	if o.noColor {
		o.cfg.NoColor = true
	}
	if err := o.cfg.Validate(); err != nil {
		return err
	}

	o.logger = logging.FromConfig(cmd.ErrOrStderr(), o.cfg.LogLevel, o.cfg.LogFormat, o.cfg.NoColor)
	if o.cfg.Path != "" {
		o.logger.Debug("config loaded", "path", o.cfg.Path)
	}
	return nil
}

// todoFile returns the file named on the command line, or the configured
// default.
func (o *rootOptions) todoFile(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return o.cfg.TodoFile
}
