package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/portfolio/internal/models"
	"github.com/zulandar/portfolio/internal/portfolio"
)

// taskStatusAliases lets shell users skip quoting "A fazer".
var taskStatusAliases = map[string]string{
	"todo":    models.TaskTodo,
	"doing":   models.TaskDoing,
	"blocked": models.TaskBlocked,
	"done":    models.TaskDone,
}

func resolveTaskStatus(s string) string {
	if v, ok := taskStatusAliases[strings.ToLower(s)]; ok {
		return v
	}
	return s
}

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"t"},
		Short:   "Task management commands",
	}

	cmd.AddCommand(newTaskAddCmd())
	cmd.AddCommand(newTaskMoveCmd())
	cmd.AddCommand(newTaskReopenCmd())
	cmd.AddCommand(newTaskListCmd())
	return cmd
}

func newTaskAddCmd() *cobra.Command {
	var (
		configPath string
		in         portfolio.NewTask
		end        string
	)

	cmd := &cobra.Command{
		Use:   "add <project-id>",
		Short: "Add a task to a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if in.ProjectID, err = parseID(args[0]); err != nil {
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

			t, err := a.svc.CreateTask(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task %d: %s\n", t.ID, t.Title)
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().StringVar(&in.Title, "title", "", "task title (required)")
	cmd.Flags().StringVar(&in.Owner, "owner", "", "task owner")
	cmd.Flags().StringVar(&in.Priority, "priority", "", "priority")
	cmd.Flags().IntVar(&in.Effort, "effort", 0, "estimated effort in hours")
	cmd.Flags().StringVar(&end, "end", "", "due date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newTaskMoveCmd() *cobra.Command {
	var (
		configPath string
		progress   int
	)

	cmd := &cobra.Command{
		Use:   "move <id> <status>",
		Short: "Move a task to another kanban column",
		Long: fmt.Sprintf(`Changes a task's status.

Valid statuses: %s (or todo, doing, blocked, done).
Moving to Feito sets progress to 100 and to A fazer resets it to 0.
For the other columns --progress sets the percentage.`,
			strings.Join(models.TaskStatuses, ", ")),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var p *int
			if cmd.Flags().Changed("progress") {
				p = &progress
			}

			a, err := openApp(cmd, configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			t, err := a.svc.MoveTask(cmd.Context(), id, resolveTaskStatus(args[1]), p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %d is now %s (%d%%)\n", t.ID, t.Status, t.Progress)
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().IntVar(&progress, "progress", 0, "progress percentage (0-100)")
	return cmd
}

func newTaskReopenCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "reopen <id>",
		Short: "Reopen a task (Fazendo, 50%)",
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

			t, err := a.svc.ReopenTask(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %d is now %s (%d%%)\n", t.ID, t.Status, t.Progress)
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}

func newTaskListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list <project-id>",
		Short: "Show a project's kanban board",
		Long:  "Lists a project's tasks grouped by kanban column. Late tasks are flagged with !.",
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

			board, err := a.svc.KanbanBoard(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, col := range board {
				fmt.Fprintf(w, "%s (%d)\n", col.Status, len(col.Cards))
				for _, c := range col.Cards {
					late := ""
					if c.Late {
						late = "!"
					}
					fmt.Fprintf(w, "  %d\t%s\t%s\t%d%%\t%s%s\n",
						c.Task.ID, c.Task.Title, orDash(c.Task.Owner), c.Task.Progress, formatDate(c.Task.EndDate), late)
				}
			}
			return w.Flush()
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}
