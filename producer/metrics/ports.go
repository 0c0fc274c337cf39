package metrics

import (
	"sort"
	"strconv"
	"strings"

	"github.com/vpbank/check_fcswitch/models"
	"github.com/vpbank/check_fcswitch/snmp/decoder"
)

// C3DiscardThreshold is the Class-3 discard count a port must exceed to be
// reported.
const C3DiscardThreshold uint64 = 1000

// PortDiscards maps a zero-based port index to its Class-3 discard counter.
type PortDiscards map[int]uint64

// PortDiscardsFrom builds the port → counter mapping from a walk of the
// discard counter table. The agent numbers ports from 1 while portErrShow
// numbers them from 0, so table index i becomes port i-1.
func PortDiscardsFrom(resps []models.RawResponse) PortDiscards {
	out := make(PortDiscards, len(resps))
	for _, r := range resps {
		if r.Kind != models.KindCounter32 {
			continue
		}
		idx, ok := decoder.TableIndex(r.OID)
		if !ok || idx < 1 {
			continue
		}
		v, err := strconv.ParseUint(strings.TrimSpace(r.Text), 10, 64)
		if err != nil {
			continue
		}
		out[idx-1] = v
	}
	return out
}

// Offending returns the ports whose counter is strictly above
// C3DiscardThreshold, ordered by port index.
func (p PortDiscards) Offending() []models.PortError {
	errs := make([]models.PortError, 0)
	for port, n := range p {
		if n > C3DiscardThreshold {
			errs = append(errs, models.PortError{PortIndex: port, C3Discards: n})
		}
	}
	sort.Slice(errs, func(i, j int) bool { return errs[i].PortIndex < errs[j].PortIndex })
	return errs
}

// AggregatePortErrors is PortDiscardsFrom followed by Offending.
func AggregatePortErrors(resps []models.RawResponse) []models.PortError {
	return PortDiscardsFrom(resps).Offending()
}
