package decoder

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vpbank/check_fcswitch/models"
)

// TimeoutMarker is the text net-snmp tools print when the agent never answers.
const TimeoutMarker = "No Response from"

var (
	typeTagRe   = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*$`)
	enumValueRe = regexp.MustCompile(`^[^()]*\((-?\d+)\)$`)
)

// IsTimeoutMarker reports whether text is the net-snmp timeout message, either
// as a whole output line or as a value that ended up in a string response.
func IsTimeoutMarker(text string) bool {
	return strings.Contains(text, TimeoutMarker)
}

// ParseLine parses one line of numeric-OID net-snmp output (-On), e.g.
//
//	.1.3.6.1.2.1.47.1.1.1.1.2.1 = STRING: "Brocade 300"
//	.1.3.6.1.4.1.1588.2.1.1.1.1.7.0 = INTEGER: online(1)
//	.1.3.6.1.4.1.1588.2.1.1.1.6.2.1.28.4 = Counter32: 1500
//
// ok is false for anything that is not a well-formed value line: error text,
// "No Such Object" answers, string continuation lines, blank lines.
func ParseLine(line string) (resp models.RawResponse, ok bool) {
	line = strings.TrimRight(line, "\r\n")
	lhs, rhs, found := strings.Cut(line, " = ")
	if !found {
		return resp, false
	}
	oid := NormaliseOID(lhs)
	if !isNumericOID(oid) {
		return resp, false
	}

	// net-snmp prints a zero-length octet string without a type tag.
	if strings.TrimSpace(rhs) == `""` {
		return models.RawResponse{OID: oid, Kind: models.KindString, Text: `""`}, true
	}

	tag, value, found := strings.Cut(rhs, ":")
	if !found || !typeTagRe.MatchString(tag) {
		return resp, false
	}
	value = strings.TrimSpace(value)

	kind := kindOfTag(tag)
	if kind == models.KindInteger {
		if m := enumValueRe.FindStringSubmatch(value); m != nil {
			value = m[1]
		}
	}
	return models.RawResponse{OID: oid, Kind: kind, Text: value}, true
}

// ParseOutput parses every valid line of a tool's stdout.
func ParseOutput(out string) []models.RawResponse {
	var resps []models.RawResponse
	for _, line := range strings.Split(out, "\n") {
		if resp, ok := ParseLine(line); ok {
			resps = append(resps, resp)
		}
	}
	return resps
}

func kindOfTag(tag string) models.Kind {
	switch tag {
	case "STRING":
		return models.KindString
	case "INTEGER":
		return models.KindInteger
	case "Counter32":
		return models.KindCounter32
	default:
		return models.KindOther
	}
}

func isNumericOID(oid string) bool {
	if oid == "" {
		return false
	}
	for _, part := range strings.Split(oid, ".") {
		if _, err := strconv.ParseUint(part, 10, 32); err != nil {
			return false
		}
	}
	return true
}

// TableIndex returns the last OID arc of a walked response, which is the row
// index for single-index tables. ok is false when the arc is not numeric.
func TableIndex(oid string) (int, bool) {
	oid = NormaliseOID(oid)
	dot := strings.LastIndex(oid, ".")
	idx, err := strconv.Atoi(oid[dot+1:])
	if err != nil {
		return 0, false
	}
	return idx, true
}
