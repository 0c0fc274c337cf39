// Package app wires the check pipeline together for a single run.
//
// Run path:
//
//	Options → Validate → Precheck → snmpclient → Collector →
//	health.Evaluate → format/nagios → transport/file
//
// Every failure is turned into a Verdict; Run never returns an error. The
// caller reports the verdict and exits with its code.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/vpbank/check_fcswitch/format/nagios"
	"github.com/vpbank/check_fcswitch/models"
	"github.com/vpbank/check_fcswitch/pkg/fcswitch/config"
	"github.com/vpbank/check_fcswitch/pkg/fcswitch/health"
	"github.com/vpbank/check_fcswitch/pkg/fcswitch/precheck"
	"github.com/vpbank/check_fcswitch/pkg/fcswitch/snmpclient"
	"github.com/vpbank/check_fcswitch/producer/metrics"
	filetransport "github.com/vpbank/check_fcswitch/transport/file"
)

// ─────────────────────────────────────────────────────────────────────────────
// Configuration
// ─────────────────────────────────────────────────────────────────────────────

// Prechecker verifies the switch is reachable before SNMP is attempted.
type Prechecker interface {
	Check(ctx context.Context, host string) error
}

// ClientFactory opens an SNMP client for the named backend.
type ClientFactory func(backend string, ep models.Endpoint, logger *slog.Logger) (snmpclient.Client, error)

// Config holds everything a run needs. Zero-value fields fall back to the
// production implementations.
type Config struct {
	Options config.Options

	// Profile is the OID profile. nil selects config.DefaultProfile().
	Profile *config.Profile

	// Writer receives the status line. nil = os.Stdout.
	Writer io.Writer

	// CheckName prefixes the status line. Default "FCSWITCH".
	CheckName string

	Precheck  Prechecker
	NewClient ClientFactory
}

// ─────────────────────────────────────────────────────────────────────────────
// App
// ─────────────────────────────────────────────────────────────────────────────

// App runs one check against one switch.
type App struct {
	cfg       Config
	logger    *slog.Logger
	formatter nagios.Formatter
	transport filetransport.Transport
}

// New constructs an App. Nothing is contacted until Run.
func New(cfg Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(noopWriter{}, nil))
	}
	if cfg.Profile == nil {
		cfg.Profile = config.DefaultProfile()
	}
	if cfg.Precheck == nil {
		cfg.Precheck = precheck.New(precheck.Options{SkipPing: cfg.Options.NoPing}, logger)
	}
	if cfg.NewClient == nil {
		cfg.NewClient = snmpclient.New
	}
	return &App{
		cfg:       cfg,
		logger:    logger,
		formatter: nagios.New(nagios.Config{CheckName: cfg.CheckName}, logger),
		transport: filetransport.New(filetransport.Config{Writer: cfg.Writer}, logger),
	}
}

// Check runs the pipeline, reports the verdict and returns the exit code.
func (a *App) Check(ctx context.Context) int {
	v := a.Run(ctx)
	if err := a.Report(v); err != nil {
		a.logger.Error("app: report failed", "error", err.Error())
	}
	return v.Severity.ExitCode()
}

// Run executes every stage in order and stops at the first fatal condition.
func (a *App) Run(ctx context.Context) models.Verdict {
	opts := a.cfg.Options

	// ── 1. Options ──────────────────────────────────────────────────────
	if err := config.Validate(&opts); err != nil {
		a.logger.Debug("app: invalid options", "error", err.Error())
		return ConfigError(err)
	}

	// ── 2. Reachability ─────────────────────────────────────────────────
	if err := a.cfg.Precheck.Check(ctx, opts.Host); err != nil {
		a.logger.Debug("app: precheck failed", "host", opts.Host, "error", err.Error())
		return ConnectivityError(opts.Host, err)
	}

	// ── 3. SNMP client ──────────────────────────────────────────────────
	client, err := a.cfg.NewClient(opts.Backend, opts.Endpoint(), a.logger)
	if err != nil {
		a.logger.Debug("app: snmp client unavailable", "backend", opts.Backend, "error", err.Error())
		return models.NewVerdict(models.SeverityUnknown, fmt.Sprintf("Cannot open SNMP client: %v", err))
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			a.logger.Debug("app: close snmp client", "error", cerr.Error())
		}
	}()

	// ── 4. Collection ───────────────────────────────────────────────────
	m, err := metrics.NewCollector(client, a.cfg.Profile, a.logger).Collect(ctx)
	switch {
	case errors.Is(err, metrics.ErrSession):
		a.logger.Debug("app: snmp session failed", "host", opts.Host, "error", err.Error())
		return health.SessionFailure(opts.Host)
	case err != nil:
		a.logger.Debug("app: collection aborted", "error", err.Error())
		return models.NewVerdict(models.SeverityUnknown, fmt.Sprintf("Check aborted: %v", err))
	}

	// ── 5. Evaluation ───────────────────────────────────────────────────
	v := health.Evaluate(m)
	a.logger.Debug("app: evaluated",
		"rule", v.Rule,
		"severity", v.Severity.String(),
	)
	return v
}

// Report formats v and writes it through the transport.
func (a *App) Report(v models.Verdict) error {
	line, err := a.formatter.Format(&v)
	if err != nil {
		return fmt.Errorf("app: format: %w", err)
	}
	if err := a.transport.Send(line); err != nil {
		return fmt.Errorf("app: send: %w", err)
	}
	return a.transport.Close()
}

// ─────────────────────────────────────────────────────────────────────────────
// Verdicts for fatal conditions
// ─────────────────────────────────────────────────────────────────────────────

// ConfigError is the verdict for unusable options. It is UNKNOWN.
func ConfigError(err error) models.Verdict {
	return models.NewVerdict(models.SeverityUnknown, err.Error())
}

// ConnectivityError is the verdict for a failed pre-check. It is UNKNOWN.
func ConnectivityError(host string, err error) models.Verdict {
	switch {
	case errors.Is(err, precheck.ErrResolve):
		return models.NewVerdict(models.SeverityUnknown, "Cannot resolve host "+host)
	case errors.Is(err, precheck.ErrUnreachable):
		return models.NewVerdict(models.SeverityUnknown, "Host "+host+" is unreachable")
	default:
		return models.NewVerdict(models.SeverityUnknown, fmt.Sprintf("Reachability check failed: %v", err))
	}
}

// noopWriter discards all log output when no logger is provided.
type noopWriter struct{}

func (noopWriter) Write(p []byte) (int, error) { return len(p), nil }
