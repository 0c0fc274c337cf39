package metrics_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpbank/check_fcswitch/models"
	"github.com/vpbank/check_fcswitch/producer/metrics"
)

const c3OID = "1.3.6.1.4.1.1588.2.1.1.1.6.2.1.28"

func c3(index int, value string) models.RawResponse {
	return counter(fmt.Sprintf("%s.%d", c3OID, index), value)
}

func TestAggregatePortErrors_IndexCorrection(t *testing.T) {
	got := metrics.AggregatePortErrors([]models.RawResponse{c3(10, "1500")})
	require.Len(t, got, 1)
	assert.Equal(t, models.PortError{PortIndex: 9, C3Discards: 1500}, got[0])
}

func TestAggregatePortErrors_ThresholdIsExclusive(t *testing.T) {
	got := metrics.AggregatePortErrors([]models.RawResponse{
		c3(1, "1000"),
		c3(2, "1001"),
		c3(3, "0"),
	})
	assert.Equal(t, []models.PortError{{PortIndex: 1, C3Discards: 1001}}, got)
}

func TestAggregatePortErrors_OrderedByPort(t *testing.T) {
	got := metrics.AggregatePortErrors([]models.RawResponse{
		c3(32, "9000"),
		c3(4, "5000"),
		c3(17, "2000"),
	})
	assert.Equal(t, []models.PortError{
		{PortIndex: 3, C3Discards: 5000},
		{PortIndex: 16, C3Discards: 2000},
		{PortIndex: 31, C3Discards: 9000},
	}, got)
}

func TestAggregatePortErrors_SkipsInvalid(t *testing.T) {
	got := metrics.AggregatePortErrors([]models.RawResponse{
		integer(c3OID+".1", "5000"),        // wrong kind
		counter(c3OID+".x", "5000"),        // no numeric index
		counter(c3OID+".0", "5000"),        // index below 1
		c3(2, "lots"),                      // unparsable value
		str(c3OID+".3", `"5000"`),          // wrong kind
		counter("1.3.6.1.4.1.1588.5", "2"), // below threshold
	})
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestPortDiscardsFrom(t *testing.T) {
	got := metrics.PortDiscardsFrom([]models.RawResponse{c3(1, "7"), c3(2, "1200")})
	assert.Equal(t, metrics.PortDiscards{0: 7, 1: 1200}, got)
}

func TestAggregatePortErrors_Empty(t *testing.T) {
	assert.Empty(t, metrics.AggregatePortErrors(nil))
}
