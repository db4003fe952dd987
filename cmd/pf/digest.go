package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/zulandar/portfolio/internal/config"
	"github.com/zulandar/portfolio/internal/telegraph"
	discordadapter "github.com/zulandar/portfolio/internal/telegraph/discord"
	slackadapter "github.com/zulandar/portfolio/internal/telegraph/slack"
	"go.uber.org/zap"
)

func newDigestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Post the health digest to Slack and Discord",
		Long:  "Formats the portfolio overview as a chat digest and posts it to every configured platform.",
	}

	cmd.AddCommand(newDigestSendCmd())
	cmd.AddCommand(newDigestScheduleCmd())
	return cmd
}

// newBroadcaster builds one target per configured chat platform.
func newBroadcaster(cfg config.NotifyConfig, log *zap.Logger) (*telegraph.Broadcaster, error) {
	var targets []telegraph.Target
	if cfg.Slack.Enabled() {
		a, err := slackadapter.New(slackadapter.AdapterOpts{
			BotToken:  cfg.Slack.BotToken,
			ChannelID: cfg.Slack.ChannelID,
			Logger:    log,
		})
		if err != nil {
			return nil, err
		}
		targets = append(targets, telegraph.Target{Name: "slack", Adapter: a})
	}
	if cfg.Discord.Enabled() {
		a, err := discordadapter.New(discordadapter.AdapterOpts{
			BotToken:  cfg.Discord.BotToken,
			ChannelID: cfg.Discord.ChannelID,
			Logger:    log,
		})
		if err != nil {
			return nil, err
		}
		targets = append(targets, telegraph.Target{Name: "discord", Adapter: a})
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("no chat platform configured: set notify.slack or notify.discord")
	}
	return telegraph.NewBroadcaster(log, targets...), nil
}

func newDigestSendCmd() *cobra.Command {
	var (
		configPath string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send the digest once",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			if dryRun {
				printDigest(cmd.OutOrStdout(), telegraph.FormatDigest(a.svc.Overview(ctx, "")))
				return nil
			}

			b, err := newBroadcaster(a.cfg.Notify, a.log)
			if err != nil {
				return err
			}
			if err := b.Connect(ctx); err != nil {
				return err
			}
			defer b.Close()

			if err := telegraph.DigestJob(a.svc, b)(ctx); err != nil {
				return fmt.Errorf("send digest: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Digest sent to %d platform(s)\n", b.Len())
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the digest instead of posting it")
	return cmd
}

func printDigest(out io.Writer, msg telegraph.OutboundMessage) {
	fmt.Fprintln(out, msg.Text)
	for _, evt := range msg.Events {
		fmt.Fprintf(out, "== %s [%s]\n", evt.Title, evt.Severity)
		if evt.Body != "" {
			fmt.Fprintln(out, evt.Body)
		}
		for _, f := range evt.Fields {
			fmt.Fprintf(out, "  %s: %s\n", f.Name, f.Value)
		}
	}
}

func newDigestScheduleCmd() *cobra.Command {
	var (
		configPath string
		schedule   string
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Send the digest on a cron schedule",
		Long: `Runs in the foreground and posts the digest whenever the cron expression
fires. The expression comes from --schedule or notify.schedule in the config.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			if schedule == "" {
				schedule = a.cfg.Notify.Schedule
			}
			if schedule == "" {
				return fmt.Errorf("no schedule: pass --schedule or set notify.schedule")
			}

			b, err := newBroadcaster(a.cfg.Notify, a.log)
			if err != nil {
				return err
			}
			sched, err := telegraph.NewScheduler(schedule, telegraph.DigestJob(a.svc, b), a.log)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := b.Connect(ctx); err != nil {
				return err
			}
			defer b.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "Digest scheduled (%s), next run %s\n",
				schedule, sched.Next(a.svc.Today()).Format("2006-01-02 15:04"))
			return sched.Run(ctx)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().StringVar(&schedule, "schedule", "", `cron expression, e.g. "0 9 * * 1-5"`)
	return cmd
}
