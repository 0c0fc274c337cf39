// Package decoder turns protocol-level SNMP responses into models.RawResponse
// values. It is the only place that knows how values are rendered on the wire
// (gosnmp PDUs) or on the terminal (net-snmp tool output); extractors never see
// either form.
package decoder

import (
	"fmt"
	"strings"

	"github.com/gosnmp/gosnmp"
	"github.com/vpbank/check_fcswitch/models"
)

// ─────────────────────────────────────────────────────────────────────────────
// SNMP PDU Type → String
// ─────────────────────────────────────────────────────────────────────────────

// PDUTypeString returns the human-readable name for a gosnmp Asn1BER type tag.
func PDUTypeString(t gosnmp.Asn1BER) string {
	switch t {
	case gosnmp.Integer:
		return "Integer"
	case gosnmp.BitString:
		return "BitString"
	case gosnmp.OctetString:
		return "OctetString"
	case gosnmp.Null:
		return "Null"
	case gosnmp.ObjectIdentifier:
		return "ObjectIdentifier"
	case gosnmp.IPAddress:
		return "IpAddress"
	case gosnmp.Counter32:
		return "Counter32"
	case gosnmp.Gauge32:
		return "Gauge32"
	case gosnmp.TimeTicks:
		return "TimeTicks"
	case gosnmp.Counter64:
		return "Counter64"
	case gosnmp.Uinteger32:
		return "Unsigned32"
	case gosnmp.NoSuchObject:
		return "NoSuchObject"
	case gosnmp.NoSuchInstance:
		return "NoSuchInstance"
	case gosnmp.EndOfMibView:
		return "EndOfMibView"
	default:
		return fmt.Sprintf("Unknown(0x%02X)", uint8(t))
	}
}

// IsErrorType returns true when the PDU type signals an SNMP retrieval error
// rather than an actual value. Such varbinds never become a RawResponse.
func IsErrorType(t gosnmp.Asn1BER) bool {
	return t == gosnmp.NoSuchObject || t == gosnmp.NoSuchInstance || t == gosnmp.EndOfMibView || t == gosnmp.Null
}

// KindOf maps a PDU type to the reduced Kind tag.
func KindOf(t gosnmp.Asn1BER) models.Kind {
	switch t {
	case gosnmp.OctetString:
		return models.KindString
	case gosnmp.Integer:
		return models.KindInteger
	case gosnmp.Counter32:
		return models.KindCounter32
	default:
		return models.KindOther
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// PDU → RawResponse
// ─────────────────────────────────────────────────────────────────────────────

// FromPDU converts a single gosnmp varbind. ok is false for error sentinels.
func FromPDU(pdu gosnmp.SnmpPDU) (resp models.RawResponse, ok bool) {
	if IsErrorType(pdu.Type) {
		return resp, false
	}
	return models.RawResponse{
		OID:  NormaliseOID(pdu.Name),
		Kind: KindOf(pdu.Type),
		Text: valueText(pdu),
	}, true
}

// FromPDUs converts a slice of varbinds, dropping error sentinels.
func FromPDUs(pdus []gosnmp.SnmpPDU) []models.RawResponse {
	out := make([]models.RawResponse, 0, len(pdus))
	for _, pdu := range pdus {
		if resp, ok := FromPDU(pdu); ok {
			out = append(out, resp)
		}
	}
	return out
}

// valueText renders the PDU value the way the extractors expect to read it:
// octet strings as text, every numeric type in decimal.
func valueText(pdu gosnmp.SnmpPDU) string {
	switch pdu.Type {
	case gosnmp.OctetString:
		switch x := pdu.Value.(type) {
		case []byte:
			return strings.TrimRight(string(x), "\x00")
		case string:
			return strings.TrimRight(x, "\x00")
		}
	case gosnmp.ObjectIdentifier, gosnmp.IPAddress:
		if s, ok := pdu.Value.(string); ok {
			return s
		}
	case gosnmp.Integer, gosnmp.Counter32, gosnmp.Gauge32, gosnmp.TimeTicks,
		gosnmp.Counter64, gosnmp.Uinteger32:
		return gosnmp.ToBigInt(pdu.Value).String()
	}
	return fmt.Sprintf("%v", pdu.Value)
}

// NormaliseOID strips a leading dot and any whitespace from an OID string.
// All OIDs inside the probe are stored and compared in the no-leading-dot form.
func NormaliseOID(oid string) string {
	oid = strings.TrimSpace(oid)
	return strings.TrimPrefix(oid, ".")
}
