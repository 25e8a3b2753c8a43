package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Appointment metrics
	AppointmentsCreated   prometheus.Counter
	AppointmentsDeleted   prometheus.Counter
	AppointmentRejections prometheus.Counter
	StatusTransitions     *prometheus.CounterVec

	// Cache metrics
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec

	// Email metrics
	RemindersSent    prometheus.Counter
	ReminderFailures prometheus.Counter
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		AppointmentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_created_total",
			Help:      "Total number of appointments created",
		}),
		AppointmentsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_deleted_total",
			Help:      "Total number of appointments deleted",
		}),
		AppointmentRejections: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointment_rejections_total",
			Help:      "Appointments rejected by business-hours validation",
		}),
		StatusTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointment_status_transitions_total",
			Help:      "Appointment status transitions by target status",
		}, []string{"status"}),

		CacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Cache hits by cache name",
		}, []string{"cache"}),
		CacheMisses: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Cache misses by cache name",
		}, []string{"cache"}),

		RemindersSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_sent_total",
			Help:      "Appointment reminder emails sent",
		}),
		ReminderFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminder_failures_total",
			Help:      "Appointment reminder emails that failed to send",
		}),
	}
}
