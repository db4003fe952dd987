package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/zulandar/portfolio/internal/dashboard"
)

func newDashboardCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Start the web dashboard",
		Long:  "Launches the portfolio web dashboard with its JSON API, gap-alert event stream and /metrics.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, configPath, port)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (default from config)")
	return cmd
}

func runDashboard(cmd *cobra.Command, configPath string, port int) error {
	a, err := openApp(cmd, configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	if port == 0 {
		port = a.cfg.Dashboard.Port
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return dashboard.Start(ctx, dashboard.StartOpts{
		Service: a.svc,
		Port:    port,
		Out:     cmd.OutOrStdout(),
		Logger:  a.log,
		Refresh: time.Duration(a.cfg.Dashboard.RefreshSeconds) * time.Second,
	})
}
