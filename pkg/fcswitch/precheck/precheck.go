// Package precheck verifies that the switch can be reached at all before any
// SNMP request is made: the name must resolve and the host must answer ICMP
// echo through the system ping binary.
package precheck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/netip"

	"github.com/vpbank/check_fcswitch/pkg/fcswitch/snmpclient"
)

// PingDirs are the directories searched for the ping binary, in order.
var PingDirs = []string{"/bin", "/usr/bin", "/sbin", "/usr/sbin"}

var (
	// ErrResolve is returned when the host name does not resolve.
	ErrResolve = errors.New("host name does not resolve")

	// ErrUnreachable is returned when the host does not answer ping.
	ErrUnreachable = errors.New("host is unreachable")
)

// Resolver is the subset of *net.Resolver used by Checker.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// Options configures a Checker. Zero values select the defaults.
type Options struct {
	// SkipPing disables the ICMP step; name resolution still runs.
	SkipPing bool

	Resolver Resolver
	Dirs     []string
	Run      snmpclient.Runner
}

// Checker runs the reachability pre-check.
type Checker struct {
	opts   Options
	logger *slog.Logger
}

// New returns a Checker.
func New(opts Options, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(noopWriter{}, nil))
	}
	if opts.Resolver == nil {
		opts.Resolver = net.DefaultResolver
	}
	if len(opts.Dirs) == 0 {
		opts.Dirs = PingDirs
	}
	if opts.Run == nil {
		opts.Run = defaultRun
	}
	return &Checker{opts: opts, logger: logger}
}

// Check resolves host and pings it once. The returned error wraps ErrResolve
// or ErrUnreachable for the respective failure, or describes a local problem
// such as a missing ping binary.
func (c *Checker) Check(ctx context.Context, host string) error {
	if _, err := netip.ParseAddr(host); err != nil {
		addrs, err := c.opts.Resolver.LookupHost(ctx, host)
		if err != nil || len(addrs) == 0 {
			c.logger.Debug("precheck: resolve failed", "host", host, "error", fmt.Sprint(err))
			return fmt.Errorf("%s: %w", host, ErrResolve)
		}
		c.logger.Debug("precheck: resolved", "host", host, "addrs", addrs)
	}

	if c.opts.SkipPing {
		return nil
	}

	ping, err := snmpclient.LocateBinary("ping", c.opts.Dirs)
	if err != nil {
		return fmt.Errorf("precheck: %w", err)
	}

	out, err := c.opts.Run(ctx, ping, "-c", "1", "-W", "2", host)
	if err != nil {
		c.logger.Debug("precheck: ping failed", "host", host, "output", string(out), "error", err.Error())
		return fmt.Errorf("%s: %w", host, ErrUnreachable)
	}
	c.logger.Debug("precheck: host answered ping", "host", host)
	return nil
}

// noopWriter discards log output.
type noopWriter struct{}

func (noopWriter) Write(b []byte) (int, error) { return len(b), nil }
