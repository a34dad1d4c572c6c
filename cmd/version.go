package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of todo-parser",
		Long:  `All software has versions. This is todo-parser's.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "todo-parser %s\n", version)
		},
	}
}

func newCreditsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "credits",
		Short: "Show authors and license",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Credits")
			fmt.Fprintln(cmd.OutOrStdout(), "Created by Dyshlyuk Nikita")
			fmt.Fprintln(cmd.OutOrStdout(), "MIT license")
		},
	}
}
