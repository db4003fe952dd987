package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/portfolio/internal/portfolio"
)

func newNoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Documentation links and gap notes",
		Long:  `Notes whose category contains "Gap" are blocking gaps and make an active project Critical.`,
	}

	cmd.AddCommand(newNoteAddCmd())
	cmd.AddCommand(newNoteListCmd())
	cmd.AddCommand(newNoteDeleteCmd())
	return cmd
}

func newNoteAddCmd() *cobra.Command {
	var (
		configPath string
		in         portfolio.NewNote
	)

	cmd := &cobra.Command{
		Use:   "add <project-id>",
		Short: "Attach a note to a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := openApp(cmd, configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.svc.AddNote(cmd.Context(), projectID, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added note %d [%s]\n", n.ID, n.Category)
			if n.IsGap() {
				fmt.Fprintln(cmd.OutOrStdout(), "Note is a gap: the project is now Critical while it stays open.")
			}
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().StringVar(&in.Category, "category", "", `category, e.g. "Gap Técnico" or "Link" (required)`)
	cmd.Flags().StringVar(&in.Description, "description", "", "note text (required)")
	cmd.Flags().StringVar(&in.LinkURL, "link", "", "related URL")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func newNoteListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list <project-id>",
		Short: "List a project's notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := openApp(cmd, configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			notes, err := a.svc.ListNotes(cmd.Context(), projectID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(notes) == 0 {
				fmt.Fprintln(out, "No notes.")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCATEGORY\tGAP\tCREATED\tDESCRIPTION\tLINK")
			for _, n := range notes {
				gap := ""
				if n.IsGap() {
					gap = "yes"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					n.ID, n.Category, orDash(gap), formatDate(&n.CreatedAt), n.Description, orDash(n.LinkURL))
			}
			return w.Flush()
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}

func newNoteDeleteCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note (closing it if it is a gap)",
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

			if err := a.svc.DeleteNote(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted note %d\n", id)
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}
