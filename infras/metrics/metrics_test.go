package metrics_test

import (
	"testing"

	"hotel/infras/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollectors(t *testing.T) {
	before := testutil.ToFloat64(metrics.BookingRejectionsTotal.WithLabelValues(metrics.RejectionOverlap))

	metrics.BookingRejectionsTotal.WithLabelValues(metrics.RejectionOverlap).Inc()

	assert.InDelta(t, before+1, testutil.ToFloat64(metrics.BookingRejectionsTotal.WithLabelValues(metrics.RejectionOverlap)), 0.0001)

	metrics.OccupancyRate.Set(50)
	assert.InDelta(t, 50, testutil.ToFloat64(metrics.OccupancyRate), 0.0001)

	assert.NotPanics(t, func() {
		metrics.HTTPRequestDuration.WithLabelValues("/v1/rooms", "GET").Observe(0.01)
		metrics.LockWaitDuration.Observe(0.002)
	})
}
