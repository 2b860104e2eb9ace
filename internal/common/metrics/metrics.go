package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RemindersSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminder_dispatches_total",
			Help: "Total number of reminders dispatched successfully",
		},
		[]string{"scanner", "kind"},
	)

	RemindersFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminder_dispatch_failures_total",
			Help: "Total number of reminder dispatch failures",
		},
		[]string{"scanner", "error_code"},
	)

	RecordsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminder_records_skipped_total",
			Help: "Total number of records skipped as malformed or incomplete",
		},
		[]string{"scanner"},
	)

	ScanDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "reminder_scan_duration_seconds",
			Help: "Duration of one scan pass in seconds",
		},
		[]string{"scanner"},
	)

	ScanAborts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminder_scan_aborts_total",
			Help: "Total number of scan passes aborted by a state store failure",
		},
		[]string{"scanner"},
	)
)
