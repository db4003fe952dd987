package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/zulandar/portfolio/internal/db"
	"golang.org/x/term"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
	}

	cmd.AddCommand(newDBInitCmd())
	cmd.AddCommand(newDBResetCmd())
	return cmd
}

func newDBInitCmd() *cobra.Command {
	var (
		configPath string
		noExample  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the portfolio database",
		Long:  "Migrates all tables, seeds the sponsor areas and, on an empty database, an example project.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBInit(cmd, configPath, noExample)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().BoolVar(&noExample, "no-example", false, "skip the example project")
	return cmd
}

func runDBInit(cmd *cobra.Command, configPath string, noExample bool) error {
	a, err := openApp(cmd, configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := initSchema(cmd.OutOrStdout(), a, noExample); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "\nPortfolio database initialized successfully.")
	return nil
}

// initSchema migrates and seeds. It is shared by init and reset.
func initSchema(out io.Writer, a *app, noExample bool) error {
	if err := db.AutoMigrate(a.db); err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrated %d tables\n", len(db.AllModels()))

	if err := db.SeedSponsors(a.db, a.cfg.Areas); err != nil {
		return err
	}
	fmt.Fprintf(out, "Seeded %d areas: %s\n", len(a.cfg.Areas), strings.Join(a.cfg.Areas, ", "))

	if noExample {
		return nil
	}
	seeded, err := db.SeedExample(a.db, time.Now())
	if err != nil {
		return err
	}
	if seeded {
		fmt.Fprintln(out, "Created example project")
	}
	return nil
}

func newDBResetCmd() *cobra.Command {
	var (
		configPath string
		yes        bool
		noExample  bool
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop and re-initialize the portfolio database",
		Long: `Drops every portfolio table and re-creates them (migrate + seed).

Asks for confirmation unless --yes is given. Without --yes the command
refuses to run when stdin is not a terminal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBReset(cmd, configPath, yes, noExample)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	cmd.Flags().BoolVar(&noExample, "no-example", false, "skip the example project")
	return cmd
}

func runDBReset(cmd *cobra.Command, configPath string, skipConfirm, noExample bool) error {
	out := cmd.OutOrStdout()

	a, err := openApp(cmd, configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	if !skipConfirm {
		if !interactive(cmd.InOrStdin()) {
			return fmt.Errorf("refusing to reset without a terminal; pass --yes to confirm")
		}
		if !confirmReset(cmd, a.cfg.Database.Driver) {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	if err := db.DropAll(a.db); err != nil {
		return err
	}
	fmt.Fprintln(out, "Dropped all tables")

	if err := initSchema(out, a, noExample); err != nil {
		return err
	}
	fmt.Fprintln(out, "\nPortfolio database reset and re-initialized successfully.")
	return nil
}

// interactive reports whether in is a terminal. Readers that are not files
// (tests, pipes wrapped by cobra) count as interactive so the prompt decides.
func interactive(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return true
	}
	return term.IsTerminal(int(f.Fd()))
}

func confirmReset(cmd *cobra.Command, driver string) bool {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "WARNING: This will permanently delete all portfolio data (%s).\n", driver)
	fmt.Fprintln(out, "This action cannot be undone.")
	fmt.Fprintln(out)
	fmt.Fprint(out, "Type \"yes\" to confirm: ")

	scanner := bufio.NewScanner(cmd.InOrStdin())
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()) == "yes"
	}
	return false
}
