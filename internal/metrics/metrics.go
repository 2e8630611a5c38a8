// Package metrics registers the application's Prometheus collectors.
// Handlers and middleware record into the exported collectors; the
// router exposes them on /metrics via promhttp.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	EventsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eventdesk",
			Subsystem: "events",
			Name:      "created_total",
			Help:      "Total number of events created",
		},
		[]string{"kind"},
	)

	GuestsAdded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "eventdesk",
			Subsystem: "guests",
			Name:      "added_total",
			Help:      "Total number of guests registered",
		},
	)

	CapacityRejections = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "eventdesk",
			Subsystem: "guests",
			Name:      "capacity_rejections_total",
			Help:      "Total number of guest registrations rejected because the event was full",
		},
	)

	NotificationsSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "eventdesk",
			Subsystem: "notifications",
			Name:      "sent_total",
			Help:      "Total number of guest notifications delivered",
		},
	)

	NotificationsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "eventdesk",
			Subsystem: "notifications",
			Name:      "failed_total",
			Help:      "Total number of guest notifications that failed to deliver",
		},
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eventdesk",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "eventdesk",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		EventsCreated,
		GuestsAdded,
		CapacityRejections,
		NotificationsSent,
		NotificationsFailed,
		HTTPRequestsTotal,
		HTTPRequestDuration,
	)
}
