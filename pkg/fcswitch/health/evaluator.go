// Package health reduces the collected switch metrics to a single verdict.
//
// The decision is an ordered rule table. Rules are tried top to bottom and the
// first match wins; the last rule always matches. Device fault states produce
// WARNING, never CRITICAL: CRITICAL is only printed for a failed SNMP session,
// which is decided before evaluation (see SessionFailure).
package health

import (
	"fmt"
	"strings"

	"github.com/vpbank/check_fcswitch/models"
)

// CPUWarnPercent is the CPU utilisation at or above which the switch is
// reported as elevated.
const CPUWarnPercent = 50

// ─────────────────────────────────────────────────────────────────────────────
// Rule table
// ─────────────────────────────────────────────────────────────────────────────

type rule struct {
	name     string
	match    func(m models.SwitchMetrics) bool
	severity models.Severity
	reason   string
}

func cpuHigh(m models.SwitchMetrics) bool {
	return m.CPUPercent >= CPUWarnPercent
}

func hasPortErrs(m models.SwitchMetrics) bool {
	return len(m.PortErrors) > 0
}

func statusIs(s models.StatusCode) func(models.SwitchMetrics) bool {
	return func(m models.SwitchMetrics) bool { return m.Status == s }
}

var rules = []rule{
	{
		name: "healthy",
		match: func(m models.SwitchMetrics) bool {
			return m.Status == models.StatusOK && !cpuHigh(m) && !hasPortErrs(m)
		},
		severity: models.SeverityOK,
		reason:   "Switch is healthy",
	},
	{
		name: "cpu_elevated",
		match: func(m models.SwitchMetrics) bool {
			return m.Status == models.StatusOK && cpuHigh(m) && !hasPortErrs(m)
		},
		severity: models.SeverityWarning,
		reason:   "CPU utilization elevated",
	},
	{
		name:     "switch_faulty",
		match:    statusIs(models.StatusUnknownFault),
		severity: models.SeverityWarning,
		reason:   "Switch reports a faulty status",
	},
	{
		name: "port_errors",
		match: func(m models.SwitchMetrics) bool {
			return m.Status == models.StatusOK && !cpuHigh(m) && hasPortErrs(m)
		},
		severity: models.SeverityWarning,
		reason:   "Port errors detected, check optics and cables",
	},
	{
		name: "port_errors_cpu_elevated",
		match: func(m models.SwitchMetrics) bool {
			return m.Status == models.StatusOK && cpuHigh(m) && hasPortErrs(m)
		},
		severity: models.SeverityWarning,
		reason:   "Port errors detected and CPU utilization elevated",
	},
	{
		name:     "embedded_port_fault",
		match:    statusIs(models.StatusEmbeddedPortFault),
		severity: models.SeverityWarning,
		reason:   "Embedded port fault reported",
	},
	{
		name:     "status_unset",
		match:    statusIs(models.StatusUnset),
		severity: models.SeverityWarning,
		reason:   "Switch status could not be determined",
	},
	{
		name:     "fallback",
		match:    func(models.SwitchMetrics) bool { return true },
		severity: models.SeverityWarning,
		reason:   "Cannot determine switch state",
	},
}

// ─────────────────────────────────────────────────────────────────────────────
// Evaluation
// ─────────────────────────────────────────────────────────────────────────────

func firstMatch(m models.SwitchMetrics) rule {
	for _, r := range rules {
		if r.match(m) {
			return r
		}
	}
	return rules[len(rules)-1]
}

// Evaluate returns the verdict of the first matching rule, with Rule set to
// that rule's name. Summary and PerfData do not depend on which rule matched.
func Evaluate(m models.SwitchMetrics) models.Verdict {
	r := firstMatch(m)
	v := models.NewVerdict(r.severity, r.reason)
	v.Rule = r.name
	v.Summary = Summary(m)
	v.PerfData = PerfData(m)
	return v
}

// SessionFailure is the verdict for a switch that did not answer the initial
// SNMP request. It is labelled CRITICAL and exits UNKNOWN.
func SessionFailure(host string) models.Verdict {
	v := models.NewVerdict(models.SeverityUnknown, "SNMP session with "+host+" failed")
	v.Label = models.SeverityCritical.String()
	v.Rule = "session_failure"
	return v
}

// Summary renders every collected metric in readable form.
func Summary(m models.SwitchMetrics) string {
	parts := []string{
		"Type: " + m.SwitchType,
		"Status: " + m.Status.String(),
		"Firmware: " + m.FirmwareVersion,
		fmt.Sprintf("Ports: %d", m.PortCount),
		fmt.Sprintf("CPU: %d%%", m.CPUPercent),
		fmt.Sprintf("RAM: %d%%", m.RAMPercent),
		fmt.Sprintf("Temperature: %dC", m.TemperatureC),
		fmt.Sprintf("Fans: %d", m.FanCount),
		fmt.Sprintf("Power supplies: %d", m.PowerSupplyCount),
	}
	if len(m.PortErrors) == 0 {
		parts = append(parts, "Port errors: none")
	} else {
		parts = append(parts, "Port errors: "+PortErrors(m.PortErrors))
	}
	return strings.Join(parts, ", ")
}

// PortErrors renders entries as Port<idx>_C3discards=<n>, space separated,
// in the order given.
func PortErrors(errs []models.PortError) string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, fmt.Sprintf("Port%d_C3discards=%d", e.PortIndex, e.C3Discards))
	}
	return strings.Join(out, " ")
}

// PerfData renders the performance-data section with empty warn/crit/min/max.
func PerfData(m models.SwitchMetrics) string {
	return fmt.Sprintf("temperature=%dC;;;; cpu=%d%%;;;; ram=%d%%;;;;",
		m.TemperatureC, m.CPUPercent, m.RAMPercent)
}
