package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type EventMetrics struct {
	PublishedTotal *prometheus.CounterVec
	ConsumedTotal  *prometheus.CounterVec
}

type RemoteClientMetrics struct {
	RequestsTotal *prometheus.CounterVec
	BreakerState  *prometheus.GaugeVec
}

type BusinessMetrics struct {
	AccountsCreatedTotal prometheus.Counter
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bank_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Event = EventMetrics{
		PublishedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bank_events_published_total",
				Help: "Total number of events published to the broker, by routing key and outcome.",
			},
			[]string{"routing_key", "outcome"},
		),
		ConsumedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bank_events_consumed_total",
				Help: "Total number of events consumed from the broker, by routing key and outcome.",
			},
			[]string{"routing_key", "outcome"},
		),
	}

	RemoteClient = RemoteClientMetrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bank_remote_client_requests_total",
				Help: "Total number of downstream service calls, by client and outcome.",
			},
			[]string{"client", "outcome"},
		),
		BreakerState: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "bank_remote_client_breaker_state",
				Help: "Circuit breaker state per remote client: 0=closed, 1=half-open, 2=open.",
			},
			[]string{"client"},
		),
	}

	Business = BusinessMetrics{
		AccountsCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "bank_accounts_created_total",
				Help: "Total number of accounts successfully created.",
			},
		),
	}
)

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordEventPublished(routingKey, outcome string) {
	Event.PublishedTotal.WithLabelValues(routingKey, outcome).Inc()
}

func RecordEventConsumed(routingKey, outcome string) {
	Event.ConsumedTotal.WithLabelValues(routingKey, outcome).Inc()
}

func RecordRemoteCall(client, outcome string) {
	RemoteClient.RequestsTotal.WithLabelValues(client, outcome).Inc()
}

func RecordBreakerState(client string, state float64) {
	RemoteClient.BreakerState.WithLabelValues(client).Set(state)
}

func RecordAccountCreated() {
	Business.AccountsCreatedTotal.Inc()
}
