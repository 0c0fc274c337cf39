package nagios_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpbank/check_fcswitch/format/nagios"
	"github.com/vpbank/check_fcswitch/models"
)

func TestFormat_FullLine(t *testing.T) {
	v := models.NewVerdict(models.SeverityWarning, "CPU utilization elevated")
	v.Summary = "Type: Brocade 300, CPU: 75%"
	v.PerfData = "temperature=41C;;;; cpu=75%;;;; ram=34%;;;;"

	out, err := nagios.New(nagios.Config{}, nil).Format(&v)
	require.NoError(t, err)
	assert.Equal(t,
		"FCSWITCH WARNING - CPU utilization elevated. Type: Brocade 300, CPU: 75% | temperature=41C;;;; cpu=75%;;;; ram=34%;;;;",
		string(out))
}

func TestFormat_LabelOverridesSeverity(t *testing.T) {
	v := models.Verdict{Severity: models.SeverityUnknown, Label: "CRITICAL", Reason: "SNMP session with fcsw01 failed"}

	out, err := nagios.New(nagios.Config{}, nil).Format(&v)
	require.NoError(t, err)
	assert.Equal(t, "FCSWITCH CRITICAL - SNMP session with fcsw01 failed.", string(out))
}

func TestFormat_EmptyLabelUsesSeverity(t *testing.T) {
	v := models.Verdict{Severity: models.SeverityUnknown, Reason: "host is required"}

	out, err := nagios.New(nagios.Config{CheckName: "FC"}, nil).Format(&v)
	require.NoError(t, err)
	assert.Equal(t, "FC UNKNOWN - host is required.", string(out))
}

func TestFormat_NoNewlines(t *testing.T) {
	v := models.NewVerdict(models.SeverityUnknown, "invalid options:\nhost: required")
	v.Summary = "line one\r\nline two\rthree"

	out, err := nagios.New(nagios.Config{}, nil).Format(&v)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "\n")
	assert.NotContains(t, string(out), "\r")
	assert.Equal(t, "FCSWITCH UNKNOWN - invalid options: host: required. line one line two three", string(out))
}

func TestFormat_NilVerdict(t *testing.T) {
	_, err := nagios.New(nagios.Config{}, nil).Format(nil)
	assert.Error(t, err)
}

func TestFormat_PipeInTextKeepsSinglePerfDelimiter(t *testing.T) {
	v := models.NewVerdict(models.SeverityOK, "Switch is healthy")
	v.Summary = "Type: Brocade|G620, Firmware: v9.1|a"
	v.PerfData = "temperature=41C;;;; cpu=12%;;;; ram=34%;;;;"

	out, err := nagios.New(nagios.Config{}, nil).Format(&v)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(out), "|"))
	assert.Equal(t,
		"FCSWITCH OK - Switch is healthy. Type: Brocade/G620, Firmware: v9.1/a | temperature=41C;;;; cpu=12%;;;; ram=34%;;;;",
		string(out))
}

func TestFormat_PipeInReason(t *testing.T) {
	v := models.NewVerdict(models.SeverityUnknown, "invalid options: community: a|b")

	out, err := nagios.New(nagios.Config{}, nil).Format(&v)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "|")
}
