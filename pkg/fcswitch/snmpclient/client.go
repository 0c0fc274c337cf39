package snmpclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"
	"github.com/vpbank/check_fcswitch/models"
	"github.com/vpbank/check_fcswitch/snmp/decoder"
)

// ─────────────────────────────────────────────────────────────────────────────
// Client interface
// ─────────────────────────────────────────────────────────────────────────────

// Client is the adapter contract consumed by the collector.
type Client interface {
	// Get fetches a single scalar OID.
	Get(ctx context.Context, oid string) ([]models.RawResponse, error)

	// Walk returns every value below oidPrefix, in agent order.
	Walk(ctx context.Context, oidPrefix string) ([]models.RawResponse, error)

	// Close releases the underlying session or process resources.
	Close() error
}

// ─────────────────────────────────────────────────────────────────────────────
// SNMPClient: gosnmp backend
// ─────────────────────────────────────────────────────────────────────────────

// SNMPClient is the default Client backed by a single gosnmp session.
type SNMPClient struct {
	endpoint models.Endpoint
	conn     *gosnmp.GoSNMP
	logger   *slog.Logger
}

// Dial opens a gosnmp session for ep. Opening a UDP socket does not contact
// the agent, so Dial only fails on local errors such as an unresolvable host.
func Dial(ep models.Endpoint, logger *slog.Logger) (*SNMPClient, error) {
	conn, err := NewSession(ep)
	if err != nil {
		return nil, err
	}
	return NewSNMPClient(ep, conn, logger), nil
}

// NewSNMPClient wraps an already connected session.
func NewSNMPClient(ep models.Endpoint, conn *gosnmp.GoSNMP, logger *slog.Logger) *SNMPClient {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(noopWriter{}, nil))
	}
	return &SNMPClient{endpoint: ep, conn: conn, logger: logger}
}

// Get implements Client.
func (c *SNMPClient) Get(ctx context.Context, oid string) ([]models.RawResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.conn.Context = ctx

	started := time.Now()
	pkt, err := c.conn.Get([]string{oid})
	if err != nil {
		return nil, c.wrap("get", oid, err)
	}

	resps := decoder.FromPDUs(pkt.Variables)
	c.trace("get", oid, resps, started)
	return resps, nil
}

// Walk implements Client. It uses GETBULK, which every v2c agent supports.
func (c *SNMPClient) Walk(ctx context.Context, oidPrefix string) ([]models.RawResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.conn.Context = ctx

	started := time.Now()
	pdus, err := c.conn.BulkWalkAll(oidPrefix)
	if err != nil {
		return nil, c.wrap("walk", oidPrefix, err)
	}

	resps := decoder.FromPDUs(pdus)
	c.trace("walk", oidPrefix, resps, started)
	return resps, nil
}

// Close implements Client.
func (c *SNMPClient) Close() error {
	if c.conn == nil || c.conn.Conn == nil {
		return nil
	}
	return c.conn.Conn.Close()
}

func (c *SNMPClient) wrap(op, oid string, err error) error {
	c.logger.Debug("snmp request failed",
		"host", c.endpoint.Host,
		"op", op,
		"oid", oid,
		"error", err.Error(),
	)
	if isTimeout(err) {
		return fmt.Errorf("snmp %s %s %s: %w", op, c.endpoint.Host, oid, ErrTimeout)
	}
	return fmt.Errorf("snmp %s %s %s: %w", op, c.endpoint.Host, oid, err)
}

func (c *SNMPClient) trace(op, oid string, resps []models.RawResponse, started time.Time) {
	c.logger.Debug("snmp request completed",
		"host", c.endpoint.Host,
		"op", op,
		"oid", oid,
		"responses", len(resps),
		"duration_ms", time.Since(started).Milliseconds(),
	)
	for _, r := range resps {
		c.logger.Debug("snmp varbind", "oid", r.OID, "kind", r.Kind.String(), "value", r.Text)
	}
}

// isTimeout recognises the ways gosnmp reports an unanswered request.
func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return strings.Contains(err.Error(), "timeout")
}

// noopWriter discards log output.
type noopWriter struct{}

func (noopWriter) Write(b []byte) (int, error) { return len(b), nil }

// ─────────────────────────────────────────────────────────────────────────────
// Backend selection
// ─────────────────────────────────────────────────────────────────────────────

// Backend names understood by New.
const (
	BackendGoSNMP  = "gosnmp"
	BackendNetSNMP = "net-snmp"
)

// New returns the Client for the named backend.
func New(backend string, ep models.Endpoint, logger *slog.Logger) (Client, error) {
	switch backend {
	case BackendGoSNMP, "":
		c, err := Dial(ep, logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendNetSNMP:
		c, err := NewCommandClient(ep, CommandOptions{}, logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported snmp backend %q", backend)
	}
}
