package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/portfolio/internal/portfolio"
)

func newHealthCmd() *cobra.Command {
	var (
		configPath string
		sponsor    string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Print the portfolio health overview",
		Long: `Classifies every active project as Saudável, Atenção or Crítico and
lists late tasks and open gaps across the active portfolio.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			ov := a.svc.Overview(cmd.Context(), sponsor)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(ov)
			}
			return printOverview(cmd.OutOrStdout(), ov)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().StringVar(&sponsor, "sponsor", "", "only show projects of this sponsor area")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func printOverview(out io.Writer, ov portfolio.Overview) error {
	fmt.Fprintf(out, "Portfolio on %s", ov.Date.Format("02/01/2006"))
	if ov.Sponsor != "" {
		fmt.Fprintf(out, " (area %s)", ov.Sponsor)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Projects: %d  Healthy: %d  Attention: %d  Critical: %d\n\n",
		ov.Total, ov.Healthy, ov.Attention(), ov.Critical)

	if len(ov.Projects) == 0 {
		fmt.Fprintln(out, "No active projects.")
	} else {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPROJECT\tSPONSOR\tSTATUS\tPROGRESS\tELAPSED\tLATE\tRISKS\tHEALTH")
		for _, row := range ov.Projects {
			h := row.Health
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d%%\t%d%%\t%d/%d\t%d\t%s\n",
				row.Project.ID, row.Project.Name, orDash(row.Project.Sponsor), row.Project.Status,
				h.ProgressPct, row.TimeElapsed, h.LateTaskCount, row.TaskCount, h.OpenRiskCount,
				h.Tier.Label())
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if len(ov.Late) > 0 {
		fmt.Fprintf(out, "\nLate tasks (%d):\n", len(ov.Late))
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, lt := range ov.Late {
			fmt.Fprintf(w, "  %d\t%s\t%s\tdue %s\n", lt.Task.ID, lt.ProjectName, lt.Task.Title, formatDate(lt.Task.EndDate))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if len(ov.Gaps) > 0 {
		fmt.Fprintf(out, "\nOpen gaps (%d):\n", len(ov.Gaps))
		for _, g := range ov.Gaps {
			fmt.Fprintf(out, "  #%d %s [%s] %s\n", g.Note.ID, g.ProjectName, g.Note.Category, g.Note.Description)
		}
	}
	return nil
}
