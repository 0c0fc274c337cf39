// Package file delivers the formatted status line to an io.Writer, normally
// os.Stdout where the monitoring scheduler reads it.
//
// Pipeline position:
//
//	format/nagios → transport/file
//
// A check run produces exactly one line, so a WriterTransport accepts a
// single Send; later calls fail with ErrAlreadySent.
package file

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// ErrAlreadySent is returned by Send after the line has been written.
var ErrAlreadySent = errors.New("transport/file: line already sent")

// ─────────────────────────────────────────────────────────────────────────────
// Transport interface
// ─────────────────────────────────────────────────────────────────────────────

// Transport delivers one pre-formatted line. Close releases resources.
type Transport interface {
	Send(data []byte) error
	Close() error
}

// Config controls WriterTransport behaviour.
type Config struct {
	// Writer is the destination. nil defaults to os.Stdout.
	Writer io.Writer

	// Newline terminates the line. Default "\n".
	Newline string
}

// ─────────────────────────────────────────────────────────────────────────────
// WriterTransport
// ─────────────────────────────────────────────────────────────────────────────

// WriterTransport implements Transport on top of an io.Writer.
type WriterTransport struct {
	w      io.Writer
	nl     []byte
	sent   bool
	logger *slog.Logger
}

// New constructs a WriterTransport.
//
//   - cfg.Writer defaults to os.Stdout when nil.
//   - cfg.Newline defaults to "\n" when empty.
//   - logger defaults to a no-op writer when nil.
func New(cfg Config, logger *slog.Logger) *WriterTransport {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(noopWriter{}, nil))
	}
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	nl := cfg.Newline
	if nl == "" {
		nl = "\n"
	}
	return &WriterTransport{
		w:      w,
		nl:     []byte(nl),
		logger: logger,
	}
}

// Send writes data and the newline with a single Write call so a reader never
// sees a partial line.
func (t *WriterTransport) Send(data []byte) error {
	if t.sent {
		return ErrAlreadySent
	}
	t.sent = true

	buf := make([]byte, 0, len(data)+len(t.nl))
	buf = append(buf, data...)
	buf = append(buf, t.nl...)
	if _, err := t.w.Write(buf); err != nil {
		t.logger.Error("transport/file: write failed", "error", err.Error(), "bytes", len(buf))
		return fmt.Errorf("transport/file: write: %w", err)
	}

	t.logger.Debug("transport/file: sent line", "bytes", len(data))
	return nil
}

// Close is a no-op. The writer's lifetime belongs to whoever created it.
func (t *WriterTransport) Close() error {
	return nil
}

type noopWriter struct{}

func (noopWriter) Write(p []byte) (int, error) { return len(p), nil }
