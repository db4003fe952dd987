package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/portfolio/internal/models"
	"github.com/zulandar/portfolio/internal/portfolio"
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"p"},
		Short:   "Project management commands",
	}

	cmd.AddCommand(newProjectListCmd())
	cmd.AddCommand(newProjectCreateCmd())
	cmd.AddCommand(newProjectEditCmd())
	cmd.AddCommand(newProjectArchiveCmd(true))
	cmd.AddCommand(newProjectArchiveCmd(false))
	cmd.AddCommand(newProjectResultsCmd())
	return cmd
}

func newProjectListCmd() *cobra.Command {
	var (
		configPath string
		filter     portfolio.ProjectFilter
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Long:  "Lists active projects, or archived ones with --archived.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			projects, err := a.svc.ListProjects(cmd.Context(), filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(projects) == 0 {
				fmt.Fprintln(out, "No projects found.")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSPONSOR\tMANAGER\tSTATUS\tEND\tREVISIONS")
			for _, p := range projects {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%d\n",
					p.ID, p.Name, orDash(p.Sponsor), orDash(p.Manager), p.Status, formatDate(p.EndDate), p.EndDateRevisions)
			}
			return w.Flush()
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().BoolVar(&filter.Archived, "archived", false, "list archived projects instead")
	cmd.Flags().StringVar(&filter.Sponsor, "sponsor", "", "filter by sponsor area")
	return cmd
}

func newProjectCreateCmd() *cobra.Command {
	var (
		configPath string
		in         portfolio.NewProject
		start, end string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		Long:  "Registers a new project in Backlog.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if in.StartDate, err = parseDate(start); err != nil {
				return err
			}
			if in.EndDate, err = parseDate(end); err != nil {
				return err
			}

			a, err := openApp(cmd, configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			p, err := a.svc.CreateProject(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %d: %s\n", p.ID, p.Name)
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().StringVar(&in.Name, "name", "", "project name (required)")
	cmd.Flags().StringVar(&in.Code, "code", "", "project code")
	cmd.Flags().StringVar(&in.Sponsor, "sponsor", "", "sponsor area")
	cmd.Flags().StringVar(&in.Manager, "manager", "", "project manager")
	cmd.Flags().StringVar(&in.Priority, "priority", "", "priority (Alta, Média, Baixa)")
	cmd.Flags().StringVar(&in.Scope, "scope", "", "scope description")
	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "end date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectEditCmd() *cobra.Command {
	var (
		configPath string
		manager    string
		status     string
		end        string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a project's manager, status or end date",
		Long: fmt.Sprintf(`Changes only the flags that are given.

Valid statuses: %s.
Moving the end date to another day increments the project's revision counter.`,
			strings.Join(models.ProjectStatuses, ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var edit portfolio.ProjectEdit
			if cmd.Flags().Changed("manager") {
				edit.Manager = &manager
			}
			if cmd.Flags().Changed("status") {
				edit.Status = &status
			}
			if cmd.Flags().Changed("end") {
				if edit.EndDate, err = parseDate(end); err != nil {
					return err
				}
			}

			a, err := openApp(cmd, configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			p, err := a.svc.EditProject(cmd.Context(), id, edit)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %d: status %s, end %s, revisions %d\n",
				p.ID, p.Status, formatDate(p.EndDate), p.EndDateRevisions)
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().StringVar(&manager, "manager", "", "new manager")
	cmd.Flags().StringVar(&status, "status", "", "new status")
	cmd.Flags().StringVar(&end, "end", "", "new end date (YYYY-MM-DD)")
	return cmd
}

// newProjectArchiveCmd builds "archive" or, with archive false, "restore".
func newProjectArchiveCmd(archive bool) *cobra.Command {
	var configPath string

	use, short, verb := "restore <id>", "Move an archived project back to the active list", "Restored"
	if archive {
		use, short, verb = "archive <id>", "Archive a project", "Archived"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := openApp(cmd, configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			if archive {
				err = a.svc.ArchiveProject(cmd.Context(), id)
			} else {
				err = a.svc.RestoreProject(cmd.Context(), id)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s project %d\n", verb, id)
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}

func newProjectResultsCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "results <id> <text>",
		Short: "Record the results achieved by a project",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := openApp(cmd, configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			p, err := a.svc.SaveResults(cmd.Context(), id, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved results for project %d: %s\n", p.ID, p.Name)
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}
