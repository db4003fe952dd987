package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zulandar/portfolio/internal/issues"
)

func newGapsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gaps",
		Short: "Open gap commands",
	}

	cmd.AddCommand(newGapsSyncGitHubCmd())
	return cmd
}

func newGapsSyncGitHubCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "sync-github",
		Short: "Open a GitHub issue for every unlinked open gap",
		Long: `Creates one issue per open gap note in github.owner/github.repo and
stores the issue URL as the note's link. Notes that already carry a link are
skipped, so the command can be run repeatedly. The token comes from
github.token (use ${GITHUB_TOKEN} in the config).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			gh := a.cfg.GitHub
			if !gh.Enabled() {
				return fmt.Errorf("github.owner and github.repo are not configured")
			}
			ctx := cmd.Context()
			syncer, err := issues.NewSyncer(a.svc, issues.NewClient(ctx, gh.Token), issues.Opts{
				Owner:  gh.Owner,
				Repo:   gh.Repo,
				Labels: gh.Labels,
				Logger: a.log,
			})
			if err != nil {
				return err
			}

			res, syncErr := syncer.Sync(ctx)
			out := cmd.OutOrStdout()
			for _, c := range res.Created {
				fmt.Fprintf(out, "Note %d (%s): %s\n", c.NoteID, c.Project, c.URL)
			}
			fmt.Fprintf(out, "Created %d issue(s), %d gap(s) already linked\n", len(res.Created), res.Skipped)
			return syncErr
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}
