package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vpbank/check_fcswitch/models"
	"github.com/vpbank/check_fcswitch/pkg/fcswitch/config"
	"github.com/vpbank/check_fcswitch/pkg/fcswitch/snmpclient"
	"github.com/vpbank/check_fcswitch/snmp/decoder"
)

// ErrSession is returned by Collect when the initial probe shows there is no
// working SNMP session with the switch. Nothing else is collected then.
var ErrSession = errors.New("snmp session failed")

// ─────────────────────────────────────────────────────────────────────────────
// Collection steps
// ─────────────────────────────────────────────────────────────────────────────

// step is one SNMP request and the extractors fed by its responses.
type step struct {
	name  string
	oid   string
	walk  bool
	apply func(m *models.SwitchMetrics, resps []models.RawResponse)
}

func steps(p *config.Profile) []step {
	o := p.Objects
	return []step{
		{name: "status", oid: o.Status.OID, apply: func(m *models.SwitchMetrics, r []models.RawResponse) {
			m.Status = Status(r)
		}},
		{name: "port_count", oid: o.PortDescr.OID, walk: true, apply: func(m *models.SwitchMetrics, r []models.RawResponse) {
			m.PortCount = PortCount(r)
		}},
		{name: "firmware", oid: o.Firmware.OID, apply: func(m *models.SwitchMetrics, r []models.RawResponse) {
			m.FirmwareVersion = FirmwareVersion(r)
		}},
		{name: "cpu", oid: o.CPU.OID, apply: func(m *models.SwitchMetrics, r []models.RawResponse) {
			m.CPUPercent = CPUPercent(r)
		}},
		{name: "ram", oid: o.RAM.OID, apply: func(m *models.SwitchMetrics, r []models.RawResponse) {
			m.RAMPercent = RAMPercent(r)
		}},
		{name: "temperature", oid: o.Temperature.OID, apply: func(m *models.SwitchMetrics, r []models.RawResponse) {
			m.TemperatureC = TemperatureC(r)
		}},
		{name: "fans_power_supplies", oid: o.PhysicalName.OID, walk: true, apply: func(m *models.SwitchMetrics, r []models.RawResponse) {
			m.FanCount = FanCount(r)
			m.PowerSupplyCount = PowerSupplyCount(r)
		}},
		{name: "port_errors", oid: o.C3Discards.OID, walk: true, apply: func(m *models.SwitchMetrics, r []models.RawResponse) {
			m.PortErrors = AggregatePortErrors(r)
		}},
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Collector
// ─────────────────────────────────────────────────────────────────────────────

// Collector runs every request of a profile against one switch, one at a
// time, and assembles the results.
type Collector struct {
	client  snmpclient.Client
	profile *config.Profile
	logger  *slog.Logger
}

// NewCollector constructs a Collector. A nil profile selects the built-in one.
func NewCollector(client snmpclient.Client, profile *config.Profile, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(noopWriter{}, nil))
	}
	if profile == nil {
		profile = config.DefaultProfile()
	}
	return &Collector{client: client, profile: profile, logger: logger}
}

// Collect probes the session with the switch type request, then runs every
// remaining request. Only the probe can fail the run (with ErrSession); any
// later failure leaves the affected metric at its default.
func (c *Collector) Collect(ctx context.Context) (models.SwitchMetrics, error) {
	m := models.NewSwitchMetrics()

	switchType, err := c.probe(ctx)
	if err != nil {
		return m, err
	}
	m.SwitchType = switchType

	for _, s := range steps(c.profile) {
		if err := ctx.Err(); err != nil {
			return m, err
		}
		resps, err := c.fetch(ctx, s)
		if err != nil {
			c.logger.Warn("collect: request failed, using default",
				"metric", s.name,
				"oid", s.oid,
				"error", err.Error(),
			)
			resps = nil
		}
		s.apply(&m, resps)
	}

	c.logger.Debug("collect: completed",
		"switch_type", m.SwitchType,
		"status", m.Status.String(),
		"ports", m.PortCount,
		"firmware", m.FirmwareVersion,
		"cpu", m.CPUPercent,
		"ram", m.RAMPercent,
		"temperature", m.TemperatureC,
		"fans", m.FanCount,
		"power_supplies", m.PowerSupplyCount,
		"port_errors", len(m.PortErrors),
	)
	return m, nil
}

// probe fetches the switch type. No valid string response, or a response
// carrying the timeout marker text, means there is no usable session.
func (c *Collector) probe(ctx context.Context) (string, error) {
	oid := c.profile.Objects.SwitchType.OID
	resps, err := c.client.Get(ctx, oid)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSession, err)
	}
	r, ok := firstOfKind(resps, models.KindString)
	if !ok {
		return "", fmt.Errorf("%w: no valid response for %s", ErrSession, oid)
	}
	if decoder.IsTimeoutMarker(r.Text) {
		return "", fmt.Errorf("%w: %s", ErrSession, StripQuotes(r.Text))
	}

	switchType := SwitchType(resps)
	c.logger.Debug("collect: session established", "switch_type", switchType)
	return switchType, nil
}

func (c *Collector) fetch(ctx context.Context, s step) ([]models.RawResponse, error) {
	if s.walk {
		return c.client.Walk(ctx, s.oid)
	}
	return c.client.Get(ctx, s.oid)
}

// noopWriter discards log output.
type noopWriter struct{}

func (noopWriter) Write(b []byte) (int, error) { return len(b), nil }
