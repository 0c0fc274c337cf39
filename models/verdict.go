package models

// Severity is the check result level. The numeric value is the process exit
// code expected by Nagios-compatible schedulers.
type Severity int

const (
	SeverityOK       Severity = 0
	SeverityWarning  Severity = 1
	SeverityCritical Severity = 2
	SeverityUnknown  Severity = 3
)

// ExitCode returns the process exit code bound to s.
func (s Severity) ExitCode() int { return int(s) }

func (s Severity) String() string {
	switch s {
	case SeverityOK:
		return "OK"
	case SeverityWarning:
		return "WARNING"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Verdict is the single result of one check run.
type Verdict struct {
	Severity Severity

	// Label is the state word printed in the status line. It equals
	// Severity.String() except for an SNMP session failure, which prints
	// CRITICAL but exits UNKNOWN.
	Label string

	// Rule names the decision that produced the verdict, for diagnostics.
	// Empty for verdicts built outside the health evaluator.
	Rule string

	// Reason is the short human-readable cause, e.g. "CPU utilization elevated".
	Reason string

	// Summary lists every collected metric in readable form. May be empty.
	Summary string

	// PerfData is the performance-data section without the leading "|".
	PerfData string
}

// NewVerdict builds a Verdict whose label matches its severity.
func NewVerdict(sev Severity, reason string) Verdict {
	return Verdict{Severity: sev, Label: sev.String(), Reason: reason}
}
