// Package metrics holds the Prometheus collectors of the hotel API. Collectors are
// registered with the default registry on package init through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hotel"

// HTTPRequestsTotal counts served requests by chi route pattern, method and status code.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests served.",
	},
	[]string{"route", "method", "status"},
)

// HTTPRequestDuration measures request latency by route pattern and method.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"route", "method"},
)

// BookingsCreatedTotal counts bookings that were persisted.
var BookingsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of bookings created.",
	},
)

// BookingRejectionsTotal counts booking attempts refused by the availability check.
// Label reason: invalid_dates, room_unavailable, overlap, too_long.
var BookingRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_rejections_total",
		Help:      "Total number of booking attempts rejected.",
	},
	[]string{"reason"},
)

// BookingTransitionsTotal counts applied status transitions.
var BookingTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_transitions_total",
		Help:      "Total number of booking status transitions.",
	},
	[]string{"from", "to"},
)

// OccupancyRate is the last occupancy percentage computed by the dashboard.
var OccupancyRate = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "occupancy_rate_percent",
		Help:      "Share of rooms currently booked, in percent.",
	},
)

// LockWaitDuration measures how long booking creation waited for the per-room lock.
var LockWaitDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "room_lock_wait_seconds",
		Help:      "Time spent acquiring the per-room booking lock.",
		Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5},
	},
)

const (
	RejectionInvalidDates    = "invalid_dates"
	RejectionRoomUnavailable = "room_unavailable"
	RejectionOverlap         = "overlap"
	RejectionTooLong         = "too_long"
)
