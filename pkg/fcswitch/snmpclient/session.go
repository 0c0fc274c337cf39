// Package snmpclient is the SNMP adapter of the check. It issues scalar
// fetches and subtree walks against one switch and returns the varbinds as
// models.RawResponse values; it never interprets them.
//
// Two backends implement Client: SNMPClient speaks SNMP directly through
// gosnmp, CommandClient shells out to the net-snmp snmpget/snmpwalk tools.
// Both use the same fixed timeout and retry policy.
package snmpclient

import (
	"errors"
	"fmt"
	"time"

	"github.com/gosnmp/gosnmp"
	"github.com/vpbank/check_fcswitch/models"
)

// Request policy. These are constants of the probe, not per-call settings.
const (
	Port    = 161
	Timeout = 5 * time.Second
	Retries = 2
)

// ErrTimeout is returned when the agent produced no valid response within the
// timeout after all retries.
var ErrTimeout = errors.New("snmp: no response from agent")

// ─────────────────────────────────────────────────────────────────────────────
// Session factory: Endpoint → *gosnmp.GoSNMP
// ─────────────────────────────────────────────────────────────────────────────

// NewSession creates and connects a SNMPv2c gosnmp session for ep. The caller
// is responsible for closing session.Conn.
func NewSession(ep models.Endpoint) (*gosnmp.GoSNMP, error) {
	g := &gosnmp.GoSNMP{
		Target:    ep.Host,
		Port:      Port,
		Community: ep.Community,
		Version:   gosnmp.Version2c,
		Timeout:   Timeout,
		Retries:   Retries,
		MaxOids:   60,
	}

	if err := g.Connect(); err != nil {
		return nil, fmt.Errorf("snmp connect %s:%d: %w", ep.Host, Port, err)
	}
	return g, nil
}
