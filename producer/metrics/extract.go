// Package metrics turns SNMP responses into a models.SwitchMetrics record.
//
// Every extractor is a pure function over the responses of one request. It
// looks for values of the expected kind and falls back to the documented
// default when there are none, so missing telemetry degrades the verdict
// instead of aborting the run.
package metrics

import (
	"strconv"
	"strings"

	"github.com/vpbank/check_fcswitch/models"
)

// Text matched by the walked-table extractors. Matching is case-sensitive.
const (
	FCPortPrefix    = "FC port"
	FanName         = "FAN"
	PowerSupplyName = "POWER SUPPLY"
)

// ─────────────────────────────────────────────────────────────────────────────
// Scalar extractors
// ─────────────────────────────────────────────────────────────────────────────

// SwitchType returns the unquoted chassis description, or "unknown".
func SwitchType(resps []models.RawResponse) string {
	return stringOr(resps, models.UnknownText)
}

// FirmwareVersion returns the unquoted firmware revision, or "unknown".
func FirmwareVersion(resps []models.RawResponse) string {
	return stringOr(resps, models.UnknownText)
}

// Status maps the switch operational status; StatusUnset when absent or out
// of range.
func Status(resps []models.RawResponse) models.StatusCode {
	v, ok := firstInteger(resps)
	if !ok {
		return models.StatusUnset
	}
	return models.StatusFromValue(v)
}

// CPUPercent returns the CPU utilization as reported, without clamping.
func CPUPercent(resps []models.RawResponse) int64 {
	v, _ := firstInteger(resps)
	return v
}

// RAMPercent returns the memory utilization as reported.
func RAMPercent(resps []models.RawResponse) int64 {
	v, _ := firstInteger(resps)
	return v
}

// TemperatureC returns the chassis temperature in degrees Celsius.
func TemperatureC(resps []models.RawResponse) int64 {
	v, _ := firstInteger(resps)
	return v
}

// ─────────────────────────────────────────────────────────────────────────────
// Walked-table extractors
// ─────────────────────────────────────────────────────────────────────────────

// PortCount counts interface descriptions starting with "FC port".
func PortCount(resps []models.RawResponse) int {
	return countStrings(resps, func(s string) bool { return strings.HasPrefix(s, FCPortPrefix) })
}

// FanCount counts physical entities named exactly "FAN".
func FanCount(resps []models.RawResponse) int {
	return countStrings(resps, func(s string) bool { return s == FanName })
}

// PowerSupplyCount counts physical entities named exactly "POWER SUPPLY".
func PowerSupplyCount(resps []models.RawResponse) int {
	return countStrings(resps, func(s string) bool { return s == PowerSupplyName })
}

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

// firstOfKind returns the first response tagged kind.
func firstOfKind(resps []models.RawResponse, kind models.Kind) (models.RawResponse, bool) {
	for _, r := range resps {
		if r.Kind == kind {
			return r, true
		}
	}
	return models.RawResponse{}, false
}

// firstInteger parses the first Integer response. A malformed payload counts
// as absent.
func firstInteger(resps []models.RawResponse) (int64, bool) {
	r, ok := firstOfKind(resps, models.KindInteger)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseInt(strings.TrimSpace(r.Text), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// stringOr returns the first String response without its quotes, or def when
// there is none or it is empty.
func stringOr(resps []models.RawResponse, def string) string {
	r, ok := firstOfKind(resps, models.KindString)
	if !ok {
		return def
	}
	if s := StripQuotes(r.Text); s != "" {
		return s
	}
	return def
}

func countStrings(resps []models.RawResponse, match func(string) bool) int {
	n := 0
	for _, r := range resps {
		if r.Kind == models.KindString && match(StripQuotes(r.Text)) {
			n++
		}
	}
	return n
}

// StripQuotes removes one pair of surrounding double quotes.
func StripQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
