// Package models defines the core data structures shared across all layers of
// the switch check. These types are the canonical in-memory form of everything
// the probe collects; every other package depends on this package and nothing
// here depends on any other internal package.
package models

// Endpoint identifies the SNMP agent being polled. It is fixed for the whole
// process lifetime.
type Endpoint struct {
	Host      string `json:"host"`
	Community string `json:"community"`
}

// Kind is the SNMP value-type tag of a response, reduced to the tags the
// extractors care about.
type Kind int

const (
	KindOther Kind = iota
	KindString
	KindInteger
	KindCounter32
)

// String returns the tag name as printed by net-snmp tools.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "STRING"
	case KindInteger:
		return "INTEGER"
	case KindCounter32:
		return "Counter32"
	default:
		return "Other"
	}
}

// RawResponse is one variable binding returned by the SNMP adapter. Text holds
// the value exactly as rendered by the backend (strings may still carry their
// surrounding quotes); interpretation is left to the extractors.
type RawResponse struct {
	OID  string `json:"oid"`
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}
