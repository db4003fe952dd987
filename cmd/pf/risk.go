package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/portfolio/internal/portfolio"
)

func newRiskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Risk register commands",
	}

	cmd.AddCommand(newRiskAddCmd())
	cmd.AddCommand(newRiskListCmd())
	cmd.AddCommand(newRiskDeleteCmd())
	return cmd
}

func newRiskAddCmd() *cobra.Command {
	var (
		configPath string
		in         portfolio.NewRisk
	)

	cmd := &cobra.Command{
		Use:   "add <project-id>",
		Short: "Log a risk against a project",
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

			r, err := a.svc.AddRisk(cmd.Context(), projectID, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged risk %d (%s/%s)\n", r.ID, r.Probability, r.Impact)
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().StringVar(&in.Description, "description", "", "risk description (required)")
	cmd.Flags().StringVar(&in.Probability, "probability", "Média", "probability (Baixa, Média, Alta)")
	cmd.Flags().StringVar(&in.Impact, "impact", "Média", "impact (Baixa, Média, Alta)")
	cmd.Flags().StringVar(&in.MitigationPlan, "mitigation", "", "mitigation plan")
	cmd.Flags().StringVar(&in.Owner, "owner", "", "risk owner")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func newRiskListCmd() *cobra.Command {
	var (
		configPath string
		matrix     bool
	)

	cmd := &cobra.Command{
		Use:   "list <project-id>",
		Short: "List a project's risks",
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

			out := cmd.OutOrStdout()
			if matrix {
				m, err := a.svc.RiskMatrix(cmd.Context(), projectID)
				if err != nil {
					return err
				}
				return printRiskMatrix(out, m)
			}

			risks, err := a.svc.ListRisks(cmd.Context(), projectID)
			if err != nil {
				return err
			}
			if len(risks) == 0 {
				fmt.Fprintln(out, "No risks logged.")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPROBABILITY\tIMPACT\tSTATUS\tOWNER\tDESCRIPTION")
			for _, r := range risks {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					r.ID, r.Probability, r.Impact, r.Status, orDash(r.Owner), r.Description)
			}
			return w.Flush()
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().BoolVar(&matrix, "matrix", false, "print the probability x impact matrix")
	return cmd
}

var levelLabels = [3]string{"Baixa", "Média", "Alta"}

// printRiskMatrix prints probability rows from high to low and impact
// columns from low to high, matching the dashboard.
func printRiskMatrix(out io.Writer, m portfolio.RiskMatrix) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROB \\ IMPACT\tBaixa\tMédia\tAlta")
	for p := 3; p >= 1; p-- {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", levelLabels[p-1], m.Count(p, 1), m.Count(p, 2), m.Count(p, 3))
	}
	fmt.Fprintf(w, "Total\t%d\n", m.Total)
	return w.Flush()
}

func newRiskDeleteCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a risk",
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

			if err := a.svc.DeleteRisk(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted risk %d\n", id)
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}
