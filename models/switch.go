package models

// Default values used when a metric could not be collected.
const (
	UnknownText = "unknown"
)

// StatusCode is the operational status reported by the switch.
type StatusCode int

const (
	// StatusUnset means no recognised status value was returned.
	StatusUnset StatusCode = iota
	StatusOK
	StatusUnknownFault
	StatusEmbeddedPortFault
)

// StatusFromValue maps the raw SNMP status integer to a StatusCode. Values
// outside 1..3 map to StatusUnset.
func StatusFromValue(v int64) StatusCode {
	switch v {
	case 1:
		return StatusOK
	case 2:
		return StatusUnknownFault
	case 3:
		return StatusEmbeddedPortFault
	default:
		return StatusUnset
	}
}

func (s StatusCode) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusUnknownFault:
		return "unknown fault"
	case StatusEmbeddedPortFault:
		return "embedded port fault"
	default:
		return "unset"
	}
}

// PortError records one port whose Class-3 discard counter is above the
// threshold. PortIndex is zero-based, matching portErrShow numbering.
type PortError struct {
	PortIndex  int    `json:"port_index"`
	C3Discards uint64 `json:"c3_discards"`
}

// SwitchMetrics is the aggregate record built by the extractors and consumed
// once by the health evaluator.
type SwitchMetrics struct {
	SwitchType       string      `json:"switch_type"`
	Status           StatusCode  `json:"status"`
	PortCount        int         `json:"port_count"`
	FirmwareVersion  string      `json:"firmware_version"`
	CPUPercent       int64       `json:"cpu_percent"`
	RAMPercent       int64       `json:"ram_percent"`
	TemperatureC     int64       `json:"temperature_c"`
	FanCount         int         `json:"fan_count"`
	PowerSupplyCount int         `json:"power_supply_count"`
	PortErrors       []PortError `json:"port_errors"`
}

// NewSwitchMetrics returns a record holding every documented default, so a
// run with no telemetry at all still evaluates cleanly.
func NewSwitchMetrics() SwitchMetrics {
	return SwitchMetrics{
		SwitchType:      UnknownText,
		Status:          StatusUnset,
		FirmwareVersion: UnknownText,
		PortErrors:      []PortError{},
	}
}
