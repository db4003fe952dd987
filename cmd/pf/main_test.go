package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// writeTestConfig writes a config pointing at a fresh sqlite file and
// returns its path.
func writeTestConfig(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "portfolio.yaml")
	content := fmt.Sprintf("database:\n  driver: sqlite\n  path: %s\nlog:\n  level: error\n%s",
		filepath.Join(dir, "portfolio.db"), extra)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCmd(t *testing.T, in io.Reader, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	if in != nil {
		cmd.SetIn(in)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// mustRun fails the test when the command errors.
func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCmd(t, nil, args...)
	if err != nil {
		t.Fatalf("pf %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestVersionCmd(t *testing.T) {
	out := mustRun(t, "version")
	if !strings.Contains(out, "pf dev") {
		t.Errorf("expected output to contain 'pf dev', got: %s", out)
	}
	if !strings.Contains(out, "commit: none") {
		t.Errorf("expected output to contain 'commit: none', got: %s", out)
	}
}

func TestVersionCmdWithCustomValues(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, Date
	Version, Commit, Date = "1.0.0", "abc123", "2026-01-01"
	defer func() { Version, Commit, Date = origVersion, origCommit, origDate }()

	out := mustRun(t, "version")
	for _, want := range []string{"pf 1.0.0", "commit: abc123", "built: 2026-01-01"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got: %s", want, out)
		}
	}
}

func TestRootCmdHelp(t *testing.T) {
	out := mustRun(t, "--help")
	for _, sub := range []string{"version", "db", "dashboard", "project", "task", "risk", "note", "health", "digest", "gaps"} {
		if !strings.Contains(out, sub) {
			t.Errorf("expected help to list %q, got: %s", sub, out)
		}
	}
}

func TestEveryCommandTakesConfigFlag(t *testing.T) {
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		if c.Runnable() && c.Name() != "version" && c.Name() != "help" {
			if c.Flags().Lookup("config") == nil {
				t.Errorf("%s has no --config flag", c.CommandPath())
			} else if c.Flags().ShorthandLookup("c") == nil {
				t.Errorf("%s has no -c shorthand", c.CommandPath())
			}
		}
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(newRootCmd())
}

func TestExecute_ReturnsExitCode(t *testing.T) {
	ok := newRootCmd()
	ok.SetOut(io.Discard)
	ok.SetArgs([]string{"version"})
	if code := execute(ok); code != 0 {
		t.Errorf("execute(version) = %d, want 0", code)
	}

	bad := newRootCmd()
	bad.SetOut(io.Discard)
	bad.SetErr(io.Discard)
	bad.SetArgs([]string{"no-such-command"})
	if code := execute(bad); code != 1 {
		t.Errorf("execute(unknown) = %d, want 1", code)
	}
}

func TestMissingExplicitConfig(t *testing.T) {
	_, err := runCmd(t, nil, "project", "list", "--config", "/nonexistent/portfolio.yaml")
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
	if !strings.Contains(err.Error(), "load config") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "load config")
	}
}

func TestInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	if err := os.WriteFile(path, []byte("database:\n  driver: oracle\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := runCmd(t, nil, "db", "init", "-c", path)
	if err == nil || !strings.Contains(err.Error(), "database.driver") {
		t.Errorf("err = %v, want database.driver validation error", err)
	}
}

func TestDashboardCmd_Help(t *testing.T) {
	out := mustRun(t, "dashboard", "--help")
	if !strings.Contains(out, "--port") || !strings.Contains(out, "portfolio.yaml") {
		t.Errorf("dashboard help = %s", out)
	}
}
