package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hilom"

// Metrics holds the service counters scraped at /metrics. Callers pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests
// so repeated construction never double-registers.
type Metrics struct {
	BookingsCreated   prometheus.Counter
	StatusTransitions *prometheus.CounterVec
	RemindersSent     *prometheus.CounterVec
	RemindersSkipped  prometheus.Counter
	PushesSent        prometheus.Counter
	PushFailures      prometheus.Counter
	SMSFailures       prometheus.Counter
	SOSAlerts         prometheus.Counter
	WalletTxns        *prometheus.CounterVec
	ChatMessages      prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		BookingsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "created_total",
			Help:      "Bookings created.",
		}),
		StatusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "transitions_total",
			Help:      "Successful booking status transitions.",
		}, []string{"status"}),
		RemindersSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reminder",
			Name:      "sent_total",
			Help:      "Reminders delivered, by lead offset in minutes.",
		}, []string{"offset"}),
		RemindersSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reminder",
			Name:      "skipped_total",
			Help:      "Reminders skipped because another tick already claimed them.",
		}),
		PushesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notification",
			Name:      "pushes_sent_total",
			Help:      "Push notifications handed to a provider.",
		}),
		PushFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notification",
			Name:      "push_failures_total",
			Help:      "Push notifications a provider rejected.",
		}),
		SMSFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notification",
			Name:      "sms_failures_total",
			Help:      "SMS sends that failed.",
		}),
		SOSAlerts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "sos_alerts_total",
			Help:      "SOS alerts raised.",
		}),
		WalletTxns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "wallet",
			Name:      "transactions_total",
			Help:      "Wallet ledger entries written, by type.",
		}, []string{"type"}),
		ChatMessages: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chat",
			Name:      "messages_total",
			Help:      "Chat messages persisted.",
		}),
	}
}
