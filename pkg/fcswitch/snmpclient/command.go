package snmpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vpbank/check_fcswitch/models"
	"github.com/vpbank/check_fcswitch/snmp/decoder"
)

// BinaryDirs are the directories searched for the net-snmp tools, in order.
var BinaryDirs = []string{"/usr/bin", "/usr/local/bin", "/opt/local/bin", "/usr/sfw/bin", "/bin"}

// ErrBinaryNotFound is returned when a net-snmp tool is in none of the search
// directories.
var ErrBinaryNotFound = errors.New("snmp tool not found")

// Runner executes a command and returns its combined stdout and stderr.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.Bytes(), err
}

// LocateBinary returns the full path of the first executable regular file
// called name found in dirs.
func LocateBinary(name string, dirs []string) (string, error) {
	for _, dir := range dirs {
		path := filepath.Join(dir, name)
		fi, err := os.Stat(path)
		if err != nil || !fi.Mode().IsRegular() || fi.Mode().Perm()&0o111 == 0 {
			continue
		}
		return path, nil
	}
	return "", fmt.Errorf("%s in %v: %w", name, dirs, ErrBinaryNotFound)
}

// ─────────────────────────────────────────────────────────────────────────────
// CommandClient: net-snmp backend
// ─────────────────────────────────────────────────────────────────────────────

// CommandOptions configures NewCommandClient. Zero values select the defaults.
type CommandOptions struct {
	// Dirs overrides BinaryDirs.
	Dirs []string

	// Run overrides the os/exec runner.
	Run Runner
}

// CommandClient implements Client by running snmpget and snmpwalk with
// numeric OID output and parsing their stdout.
type CommandClient struct {
	endpoint models.Endpoint
	getPath  string
	walkPath string
	run      Runner
	logger   *slog.Logger
}

// NewCommandClient locates the net-snmp tools and returns a ready client.
func NewCommandClient(ep models.Endpoint, opts CommandOptions, logger *slog.Logger) (*CommandClient, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(noopWriter{}, nil))
	}
	dirs := opts.Dirs
	if len(dirs) == 0 {
		dirs = BinaryDirs
	}
	run := opts.Run
	if run == nil {
		run = execRunner
	}

	getPath, err := LocateBinary("snmpget", dirs)
	if err != nil {
		return nil, err
	}
	walkPath, err := LocateBinary("snmpwalk", dirs)
	if err != nil {
		return nil, err
	}
	logger.Debug("net-snmp tools located", "snmpget", getPath, "snmpwalk", walkPath)

	return &CommandClient{
		endpoint: ep,
		getPath:  getPath,
		walkPath: walkPath,
		run:      run,
		logger:   logger,
	}, nil
}

// Get implements Client.
func (c *CommandClient) Get(ctx context.Context, oid string) ([]models.RawResponse, error) {
	return c.query(ctx, "get", c.getPath, oid)
}

// Walk implements Client.
func (c *CommandClient) Walk(ctx context.Context, oidPrefix string) ([]models.RawResponse, error) {
	return c.query(ctx, "walk", c.walkPath, oidPrefix)
}

// Close implements Client. There is nothing to release.
func (c *CommandClient) Close() error { return nil }

func (c *CommandClient) args(oid string) []string {
	return []string{
		"-v2c",
		"-c", c.endpoint.Community,
		"-t", strconv.Itoa(int(Timeout / time.Second)),
		"-r", strconv.Itoa(Retries),
		"-On",
		c.endpoint.Host,
		oid,
	}
}

func (c *CommandClient) query(ctx context.Context, op, bin, oid string) ([]models.RawResponse, error) {
	started := time.Now()
	out, runErr := c.run(ctx, bin, c.args(oid)...)
	text := string(out)

	if decoder.IsTimeoutMarker(text) {
		c.logger.Debug("snmp request timed out", "host", c.endpoint.Host, "op", op, "oid", oid)
		return nil, fmt.Errorf("snmp %s %s %s: %w", op, c.endpoint.Host, oid, ErrTimeout)
	}

	resps := decoder.ParseOutput(text)
	if runErr != nil && len(resps) == 0 {
		c.logger.Debug("snmp request failed",
			"host", c.endpoint.Host,
			"op", op,
			"oid", oid,
			"output", text,
			"error", runErr.Error(),
		)
		return nil, fmt.Errorf("snmp %s %s %s: %w", op, c.endpoint.Host, oid, runErr)
	}

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
	return resps, nil
}
