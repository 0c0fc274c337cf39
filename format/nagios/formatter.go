// Package nagios renders a check verdict as a Nagios plugin status line:
//
//	FCSWITCH WARNING - CPU utilization elevated. Type: ..., CPU: 75% | temperature=41C;;;; cpu=75%;;;; ram=34%;;;;
//
// Pipeline position:
//
//	pkg/fcswitch/health → format/nagios → transport/file
package nagios

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/vpbank/check_fcswitch/models"
)

// DefaultCheckName prefixes every line when Config.CheckName is empty.
const DefaultCheckName = "FCSWITCH"

// ─────────────────────────────────────────────────────────────────────────────
// Formatter interface
// ─────────────────────────────────────────────────────────────────────────────

// Formatter serialises a verdict into the bytes handed to the transport.
type Formatter interface {
	Format(v *models.Verdict) ([]byte, error)
}

// Config controls LineFormatter behaviour.
type Config struct {
	// CheckName is the first word of the line. Defaults to DefaultCheckName.
	CheckName string
}

// ─────────────────────────────────────────────────────────────────────────────
// LineFormatter
// ─────────────────────────────────────────────────────────────────────────────

// LineFormatter implements Formatter. The output is always a single line.
type LineFormatter struct {
	cfg    Config
	logger *slog.Logger
}

// New constructs a LineFormatter. A nil logger is replaced by a no-op logger.
func New(cfg Config, logger *slog.Logger) *LineFormatter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(noopWriter{}, nil))
	}
	if cfg.CheckName == "" {
		cfg.CheckName = DefaultCheckName
	}
	return &LineFormatter{cfg: cfg, logger: logger}
}

// Format builds "<check> <label> - <reason>. <summary> | <perf>". The summary
// and perf parts are omitted when empty. Newlines are replaced by spaces, and
// a "|" inside reason or summary becomes "/" so the perf-data delimiter
// appears at most once.
func (f *LineFormatter) Format(v *models.Verdict) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("format/nagios: verdict must not be nil")
	}

	label := v.Label
	if label == "" {
		label = v.Severity.String()
	}

	var b strings.Builder
	b.WriteString(f.cfg.CheckName)
	b.WriteByte(' ')
	b.WriteString(label)
	b.WriteString(" - ")
	b.WriteString(escapeText(v.Reason))
	b.WriteByte('.')
	if v.Summary != "" {
		b.WriteByte(' ')
		b.WriteString(escapeText(v.Summary))
	}
	if v.PerfData != "" {
		b.WriteString(" | ")
		b.WriteString(v.PerfData)
	}

	line := singleLine(b.String())
	f.logger.Debug("format/nagios: formatted verdict",
		"label", label,
		"exit_code", v.Severity.ExitCode(),
		"bytes", len(line),
	)
	return []byte(line), nil
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// perfDelimiter is reserved for the separator before performance data.
var perfDelimiter = strings.NewReplacer("|", "/")

func escapeText(s string) string {
	return perfDelimiter.Replace(s)
}

func singleLine(s string) string {
	return lineBreaks.Replace(s)
}

// noopWriter discards all log output when no logger is provided.
type noopWriter struct{}

func (noopWriter) Write(p []byte) (int, error) { return len(p), nil }
