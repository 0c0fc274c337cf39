// Command check_fcswitch is a Nagios-compatible check plugin for
// fibre-channel switches. It polls the switch over SNMP, prints one status
// line with performance data on stdout and exits with the plugin state:
// 0 OK, 1 WARNING, 2 CRITICAL, 3 UNKNOWN.
//
// Usage:
//
//	check_fcswitch -H <host> [-c <community>] [-v]
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vpbank/check_fcswitch/models"
	"github.com/vpbank/check_fcswitch/pkg/fcswitch/app"
	"github.com/vpbank/check_fcswitch/pkg/fcswitch/config"
)

// Version information, injected at build time via -ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs the command line in args and returns the process exit code.
// Anything that stops the check from running, including --help, exits
// UNKNOWN.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	code := models.SeverityUnknown.ExitCode()

	root := newRootCmd(stdout, stderr, &code)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		// Flag parse errors never reach RunE.
		a := app.New(app.Config{Writer: stdout}, nil)
		v := app.ConfigError(err)
		if rerr := a.Report(v); rerr != nil {
			fmt.Fprintf(stderr, "check_fcswitch: %v\n", rerr)
		}
		return v.Severity.ExitCode()
	}
	return code
}

func newRootCmd(stdout, stderr io.Writer, code *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check_fcswitch -H <host> [-c <community>] [-v]",
		Short: "Check the health of a fibre-channel switch over SNMP",
		Long: `check_fcswitch polls a fibre-channel switch over SNMPv2c and reports one
Nagios status line with performance data.

Collected: switch type, operational status, FC port count, firmware version,
CPU and RAM utilisation, temperature, fan and power supply count, and the
ports whose Class-3 discard counter exceeds 1000.

Every flag can also be set from the environment with the CHECK_FCSWITCH_
prefix, e.g. CHECK_FCSWITCH_COMMUNITY. Flags win over the environment.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := config.LoadOptions(cmd.Flags())
			if opts == nil {
				return err
			}

			logger := buildLogger(opts.Verbose, opts.LogFormat, stderr)
			a := app.New(app.Config{Options: *opts, Writer: stdout}, logger)

			var v models.Verdict
			if err != nil {
				v = app.ConfigError(err)
			} else {
				v = a.Run(cmd.Context())
			}
			if rerr := a.Report(v); rerr != nil {
				logger.Error("check_fcswitch: report failed", "error", rerr.Error())
			}
			*code = v.Severity.ExitCode()
			return nil
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate(versionInfo() + "\n")
	config.RegisterFlags(cmd.Flags())
	return cmd
}

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

// buildLogger logs to w at debug level when verbose, otherwise errors only.
// Unknown formats fall back to text.
func buildLogger(verbose bool, format string, w io.Writer) *slog.Logger {
	lvl := slog.LevelError
	if verbose {
		lvl = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler

	switch format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

func versionInfo() string {
	return "check_fcswitch " + Version + "\n" +
		"Build Time: " + BuildTime + "\n" +
		"Git Commit: " + GitCommit + "\n" +
		"Go Version: " + runtime.Version() + "\n" +
		"OS/Arch: " + runtime.GOOS + "/" + runtime.GOARCH
}
