package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pf",
		Short: "Portfolio: project health tracking",
		Long:  "Portfolio tracks projects, tasks, risks and gap notes and classifies each project's health.",
	}

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newDBCmd())
	cmd.AddCommand(newDashboardCmd())
	cmd.AddCommand(newProjectCmd())
	cmd.AddCommand(newTaskCmd())
	cmd.AddCommand(newRiskCmd())
	cmd.AddCommand(newNoteCmd())
	cmd.AddCommand(newHealthCmd())
	cmd.AddCommand(newDigestCmd())
	cmd.AddCommand(newGapsCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pf %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd()))
}
