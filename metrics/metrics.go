package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "quotedesk",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	QuotesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "quotedesk",
		Name:      "quotes_created_total",
		Help:      "Quotes persisted by the quote engine.",
	})

	QuoteLinesDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quotedesk",
		Name:      "quote_lines_dropped_total",
		Help:      "Quote request lines skipped without creating an item.",
	}, []string{"reason"})

	RemindersSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quotedesk",
		Name:      "reminders_total",
		Help:      "Appointment reminders attempted, by outcome.",
	}, []string{"status"})
)

const (
	DropInvalidLine    = "invalid_line"
	DropUnknownService = "unknown_service"
)
